package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunely/internal/shared"
	"github.com/desertthunder/tunely/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI over the configured search service and favorites store.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	err = ui.Run(ctx, ui.Options{
		Search:    r.searchService(),
		Favorites: favorites,
		Logger:    r.logger,
		Term:      cmd.String("term"),
	})
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
