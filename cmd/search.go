package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunely/internal/metrics"
	"github.com/desertthunder/tunely/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the search service and prints the results.
//
// Multiple arguments are joined into a single term; an empty term searches the configured default.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	term := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if term == "" {
		term = r.cfg().Search.DefaultTerm
	}

	limit := int(cmd.Int("limit"))
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", shared.ErrInvalidFlag)
	}

	svc := r.searchService()
	r.logger.Debug("searching", "service", svc.Name(), "term", term)

	tracks, err := svc.Search(ctx, term)
	metrics.ObserveSearch(len(tracks), err)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if limit > 0 && len(tracks) > limit {
		tracks = tracks[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	saved, err := favorites.IDs(ctx)
	if err != nil {
		r.logger.Warn("failed to read favorites", "error", err)
		saved = map[string]bool{}
	}

	r.writePlainHeader(fmt.Sprintf("%s results for %q (%d)", svc.Name(), term, len(tracks)))
	if len(tracks) == 0 {
		return r.writePlain("No results.\n")
	}

	for i, t := range tracks {
		mark := " "
		if saved[t.TrackID.String()] {
			mark = "★"
		}
		if err := r.writePlain("%s %2d. %-40s %-28s %s\n", mark, i+1,
			shared.Truncate(t.TrackName, 40), shared.Truncate(t.ArtistName, 28), t.TrackID); err != nil {
			return err
		}
	}

	return nil
}
