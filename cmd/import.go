package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/desertthunder/tunely/internal/shared"
	"github.com/desertthunder/tunely/internal/tasks"
	"github.com/urfave/cli/v3"
)

// importSummary is the JSON form of [tasks.ImportResult].
type importSummary struct {
	Total      int          `json:"total"`
	Matched    int          `json:"matched"`
	Added      int          `json:"added"`
	Duplicates int          `json:"duplicates"`
	NotFound   int          `json:"not_found"`
	Failed     int          `json:"failed"`
	Terms      []importTerm `json:"terms"`
}

type importTerm struct {
	Term    string `json:"term"`
	TrackID string `json:"trackId,omitempty"`
	Name    string `json:"trackName,omitempty"`
	Artist  string `json:"artistName,omitempty"`
	Added   bool   `json:"added"`
	Error   string `json:"error,omitempty"`
}

// FavoritesImport seeds favorites from a file of search terms (one per line, - for stdin).
func (r *Runner) FavoritesImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: terms file", shared.ErrMissingArgument)
	}

	terms, err := r.readTerms(path)
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		return fmt.Errorf("%w: no search terms in %s", shared.ErrInvalidInput, path)
	}

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	useJSON := cmd.Bool("json")
	importer := tasks.NewImporter(r.searchService(), favorites, r.logger)
	opts := tasks.ImportOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  r.cfg().Search.RateLimit,
		DryRun:     cmd.Bool("dry-run"),
	}

	prog := make(chan tasks.ProgressUpdate, len(terms)*2+1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			if !useJSON {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	result, err := importer.Run(ctx, prog, terms, opts)
	close(prog)
	wg.Wait()
	if err != nil {
		if result == nil {
			return err
		}
		if werr := r.writeImportSummary(result, useJSON, opts.DryRun, "Import interrupted"); werr != nil {
			r.logger.Error("failed to write partial import summary", "error", werr)
		}
		return fmt.Errorf("import interrupted: %w", err)
	}

	return r.writeImportSummary(result, useJSON, opts.DryRun, "Import complete")
}

func (r *Runner) writeImportSummary(result *tasks.ImportResult, useJSON, dryRun bool, header string) error {
	if useJSON {
		return r.writeJSON(summarize(result), true)
	}

	r.writePlainHeader(header)
	if dryRun {
		return r.writePlain("Matched %d of %d terms (dry run, nothing saved)\n", result.Matched, result.Total)
	}
	return r.writePlain("Added: %d  Already saved: %d  No results: %d  Failed: %d\n",
		result.Added, result.Duplicates, result.NotFound, result.Failed)
}

func (r *Runner) readTerms(path string) ([]string, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open terms file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return tasks.ReadTerms(in)
}

func summarize(result *tasks.ImportResult) importSummary {
	summary := importSummary{
		Total:      result.Total,
		Matched:    result.Matched,
		Added:      result.Added,
		Duplicates: result.Duplicates,
		NotFound:   result.NotFound,
		Failed:     result.Failed,
		Terms:      make([]importTerm, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		term := importTerm{Term: res.Term, Added: res.Added}
		if res.Match != nil {
			term.TrackID = res.Match.TrackID
			term.Name = res.Match.TrackName
			term.Artist = res.Match.ArtistName
		}
		if res.Err != nil {
			term.Error = res.Err.Error()
		}
		summary.Terms = append(summary.Terms, term)
	}

	return summary
}
