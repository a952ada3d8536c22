package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/repositories"
	"github.com/desertthunder/tunely/internal/services"
	"github.com/desertthunder/tunely/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 5.0
)

// TermResult is the outcome of importing a single search term.
type TermResult struct {
	Term  string                // Search term as given
	Match *models.FavoriteTrack // First search result (nil if none or on error)
	Added bool                  // True when Match was appended to favorites
	Err   error                 // Search or store error
}

// ImportResult summarizes an [Importer.Run].
type ImportResult struct {
	Results    []TermResult // Per-term results in input order
	Total      int          // Number of terms processed
	Matched    int          // Terms that resolved to a track
	Added      int          // Matches appended to favorites
	Duplicates int          // Matches already stored
	NotFound   int          // Terms with no results
	Failed     int          // Terms whose search or add failed
}

// ImportOpts contains configuration for [Importer.Run].
type ImportOpts struct {
	NumWorkers int     // Concurrent searches (default: 4, max: 10)
	RateLimit  float64 // Search requests per second across all workers (default: 5)
	DryRun     bool    // Resolve matches without writing favorites
}

// Importer resolves search terms to tracks and adds the first match of each to favorites.
type Importer struct {
	search    services.SearchService
	favorites *repositories.Favorites
	logger    *log.Logger
}

// NewImporter creates an [Importer]. A nil logger falls back to [shared.NewLogger].
func NewImporter(search services.SearchService, favorites *repositories.Favorites, logger *log.Logger) *Importer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Importer{search: search, favorites: favorites, logger: shared.WithLogger(logger, "task", "import")}
}

type searchJob struct {
	index int
	term  string
}

// Run searches every term concurrently, then adds the matches to favorites in input order.
//
// A failed search is recorded on its [TermResult] and does not stop the import.
// A canceled context stops both phases and returns the context error with the partial result.
func (i *Importer) Run(ctx context.Context, prog chan<- ProgressUpdate, terms []string, opts ImportOpts) (*ImportResult, error) {
	if i.search == nil || i.favorites == nil {
		return nil, fmt.Errorf("%w: importer requires a search service and favorites", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	result := &ImportResult{Total: len(terms), Results: make([]TermResult, len(terms))}
	for idx, term := range terms {
		result.Results[idx].Term = term
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan searchJob, len(terms))
	done := make(chan int, len(terms))

	i.sendProgress(prog, searchStartedUpdate(len(terms), opts.NumWorkers))

	var wg sync.WaitGroup
	for w := 0; w < opts.NumWorkers; w++ {
		wg.Add(1)
		go i.searchWorker(ctx, &wg, limiter, jobs, done, result.Results)
	}

	for idx, term := range terms {
		jobs <- searchJob{index: idx, term: term}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for idx := range done {
		completed++
		i.sendProgress(prog, termSearchedUpdate(completed, len(terms), result.Results[idx]))
	}

	if err := ctx.Err(); err != nil {
		result.tally(opts.DryRun)
		return result, err
	}

	matched := 0
	for idx := range result.Results {
		if result.Results[idx].Match != nil {
			matched++
		}
	}

	step := 0
	for idx := range result.Results {
		res := &result.Results[idx]
		if res.Match == nil {
			continue
		}
		step++

		if opts.DryRun {
			continue
		}

		added, err := i.favorites.Add(ctx, *res.Match)
		if err != nil {
			res.Err = fmt.Errorf("failed to add favorite: %w", err)
			if ctx.Err() != nil {
				result.tally(opts.DryRun)
				return result, ctx.Err()
			}
			continue
		}
		res.Added = added
		i.sendProgress(prog, favoriteAddedUpdate(step, matched, res.Match, added))
	}

	result.tally(opts.DryRun)
	i.logger.Info("import finished", "terms", result.Total, "added", result.Added,
		"duplicates", result.Duplicates, "not_found", result.NotFound, "failed", result.Failed)
	return result, nil
}

// searchWorker resolves jobs until the channel is drained, writing each outcome to its own slot in results.
func (i *Importer) searchWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan searchJob,
	done chan<- int,
	results []TermResult,
) {
	defer wg.Done()

	for job := range jobs {
		res := &results[job.index]
		if err := limiter.Wait(ctx); err != nil {
			res.Err = err
			done <- job.index
			continue
		}

		tracks, err := i.search.Search(ctx, job.term)
		switch {
		case err != nil:
			res.Err = err
			i.logger.Warn("search failed", "term", job.term, "error", err)
		case len(tracks) > 0:
			match := tracks[0].ToFavorite()
			res.Match = &match
		}
		done <- job.index
	}
}

func (r *ImportResult) tally(dryRun bool) {
	r.Matched, r.Added, r.Duplicates, r.NotFound, r.Failed = 0, 0, 0, 0, 0
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			r.Failed++
			continue
		case res.Match == nil:
			r.NotFound++
			continue
		}

		r.Matched++
		if dryRun {
			continue
		}
		if res.Added {
			r.Added++
		} else {
			r.Duplicates++
		}
	}
}

// sendProgress sends a progress update to the channel without blocking.
func (i *Importer) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

// ReadTerms reads one search term per line, skipping blank lines, # comments and repeated terms.
func ReadTerms(r io.Reader) ([]string, error) {
	var terms []string
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read terms: %w", err)
	}
	return terms, nil
}
