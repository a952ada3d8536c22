package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/repositories"
	"github.com/desertthunder/tunely/internal/shared"
	tu "github.com/desertthunder/tunely/internal/testing"
)

type harness struct {
	runner *Runner
	output *bytes.Buffer
	search *tu.MockSearchService
	store  *repositories.MemoryStore
}

func newHarness(t *testing.T, seed ...models.FavoriteTrack) *harness {
	t.Helper()

	config := shared.DefaultConfig()
	config.Store.Driver = shared.DriverMemory
	config.Database.Path = filepath.Join(t.TempDir(), "tunely.db")

	h := &harness{
		output: &bytes.Buffer{},
		search: &tu.MockSearchService{Results: []models.Track{
			{TrackID: "1", TrackName: "Şımarık", ArtistName: "Tarkan"},
			{TrackID: "2", TrackName: "Dudu", ArtistName: "Tarkan"},
			{TrackID: "3", TrackName: "Kuzu Kuzu", ArtistName: "Tarkan"},
		}},
		store: repositories.NewMemoryStore(seed),
	}
	h.runner = NewRunner(RunnerOpts{
		Config: config,
		Search: h.search,
		Store:  h.store,
		Logger: shared.NewLogger(io.Discard),
		Output: h.output,
	})
	return h
}

func (h *harness) run(args ...string) error {
	return h.runner.app().Run(context.Background(), append([]string{"tunely"}, args...))
}

func (h *harness) stored(t *testing.T) []models.FavoriteTrack {
	t.Helper()
	tracks, err := h.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return tracks
}

func TestSearchCommand(t *testing.T) {
	t.Run("joins arguments into one term", func(t *testing.T) {
		h := newHarness(t, models.FavoriteTrack{TrackID: "2", TrackName: "Dudu"})
		if err := h.run("search", "sezen", "aksu"); err != nil {
			t.Fatalf("search error = %v", err)
		}

		if terms := h.search.Terms(); len(terms) != 1 || terms[0] != "sezen aksu" {
			t.Errorf("unexpected terms %v", terms)
		}

		out := h.output.String()
		if !strings.Contains(out, "Şımarık") || !strings.Contains(out, "Kuzu Kuzu") {
			t.Errorf("expected results in output, got:\n%s", out)
		}
		if !strings.Contains(out, "★") {
			t.Error("expected saved marker for stored favorite")
		}
	})

	t.Run("empty term uses default", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("search"); err != nil {
			t.Fatalf("search error = %v", err)
		}
		if terms := h.search.Terms(); terms[0] != "Tarkan" {
			t.Errorf("expected default term, got %v", terms)
		}
	})

	t.Run("json with limit", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("search", "--json", "--limit", "2", "tarkan"); err != nil {
			t.Fatalf("search error = %v", err)
		}

		var tracks []models.Track
		if err := json.Unmarshal(h.output.Bytes(), &tracks); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(tracks) != 2 {
			t.Errorf("expected 2 tracks, got %d", len(tracks))
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("search", "--limit=-1", "x"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("search failure", func(t *testing.T) {
		h := newHarness(t)
		h.search.Err = shared.ErrAPIRequest
		if err := h.run("search", "x"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestFavoritesCommands(t *testing.T) {
	t.Run("add appends once", func(t *testing.T) {
		h := newHarness(t)
		args := []string{"favorites", "add", "--id", "42", "--name", "Dudu", "--artist", "Tarkan",
			"--artwork", "https://example.com/100x100bb.jpg", "--preview", "https://example.com/p.m4a"}

		if err := h.run(args...); err != nil {
			t.Fatalf("add error = %v", err)
		}
		if !strings.Contains(h.output.String(), "✓ Added Tarkan - Dudu (42)") {
			t.Errorf("unexpected output %q", h.output.String())
		}

		h.output.Reset()
		args[5] = "Dudu (dup)"
		if err := h.run(args...); err != nil {
			t.Fatalf("duplicate add error = %v", err)
		}
		if !strings.Contains(h.output.String(), "already a favorite") {
			t.Errorf("unexpected output %q", h.output.String())
		}

		stored := h.stored(t)
		want := models.FavoriteTrack{
			TrackID:    "42",
			TrackName:  "Dudu",
			ArtistName: "Tarkan",
			ArtworkURL: "https://example.com/100x100bb.jpg",
			PreviewURL: "https://example.com/p.m4a",
		}
		if len(stored) != 1 || stored[0] != want {
			t.Errorf("unexpected favorites %+v", stored)
		}
		if h.store.Saves() != 1 {
			t.Errorf("expected a single store write, got %d", h.store.Saves())
		}
	})

	t.Run("add requires id", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("favorites", "add", "--name", "x"); err == nil {
			t.Error("expected error without --id")
		}
	})

	t.Run("add rejects blank id", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("favorites", "add", "--id", "  "); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		h := newHarness(t,
			models.FavoriteTrack{TrackID: "1", TrackName: "First", ArtistName: "A"},
			models.FavoriteTrack{TrackID: "2", TrackName: "Second", ArtistName: "B"},
		)
		if err := h.run("favorites", "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}

		out := h.output.String()
		if !strings.Contains(out, "Favorites (2)") {
			t.Errorf("expected header, got:\n%s", out)
		}
		if strings.Index(out, "First") > strings.Index(out, "Second") {
			t.Error("expected insertion order")
		}
	})

	t.Run("list empty", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("favorites", "list"); err != nil {
			t.Fatalf("list error = %v", err)
		}
		if !strings.Contains(h.output.String(), "No favorites yet.") {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})

	t.Run("list json uses store format", func(t *testing.T) {
		h := newHarness(t, models.FavoriteTrack{TrackID: "1", TrackName: "Şımarık"})
		if err := h.run("favorites", "list", "--json"); err != nil {
			t.Fatalf("list error = %v", err)
		}

		out := h.output.String()
		if !strings.Contains(out, "    {\n        \"trackId\": \"1\"") || !strings.Contains(out, "Şımarık") {
			t.Errorf("unexpected JSON output:\n%s", out)
		}
	})

	t.Run("remove preserves order", func(t *testing.T) {
		h := newHarness(t,
			models.FavoriteTrack{TrackID: "1"},
			models.FavoriteTrack{TrackID: "2"},
			models.FavoriteTrack{TrackID: "3"},
		)
		if err := h.run("favorites", "remove", "2"); err != nil {
			t.Fatalf("remove error = %v", err)
		}

		stored := h.stored(t)
		if len(stored) != 2 || stored[0].TrackID != "1" || stored[1].TrackID != "3" {
			t.Errorf("unexpected favorites %+v", stored)
		}
		if !strings.Contains(h.output.String(), "✓ Removed 2") {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})

	t.Run("remove missing id", func(t *testing.T) {
		h := newHarness(t, models.FavoriteTrack{TrackID: "1"})
		if err := h.run("favorites", "remove", "9"); err != nil {
			t.Fatalf("remove error = %v", err)
		}
		if !strings.Contains(h.output.String(), "not a favorite") {
			t.Errorf("unexpected output %q", h.output.String())
		}
		if h.store.Saves() != 1 {
			t.Errorf("expected store to be rewritten, got %d writes", h.store.Saves())
		}
	})

	t.Run("remove requires id", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("favorites", "remove"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export to file", func(t *testing.T) {
		h := newHarness(t, models.FavoriteTrack{TrackID: "1", TrackName: "A", ArtistName: "X"})
		path := filepath.Join(t.TempDir(), "favs.csv")

		if err := h.run("favorites", "export", "--format", "csv", "--output", path); err != nil {
			t.Fatalf("export error = %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.HasPrefix(content, "ID,Name,Artist,Artwork,Preview\n1,A,X,,\n") {
			t.Errorf("unexpected CSV:\n%s", content)
		}
		if !strings.Contains(h.output.String(), "Exported 1 favorites") {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})

	t.Run("export to stdout", func(t *testing.T) {
		h := newHarness(t, models.FavoriteTrack{TrackID: "1", TrackName: "A", ArtistName: "X"})
		if err := h.run("favorites", "export", "-f", "text", "-o", "-"); err != nil {
			t.Fatalf("export error = %v", err)
		}
		if h.output.String() != "Favorites: 1\n\n1. X - A\n" {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})

	t.Run("export unknown format", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("favorites", "export", "--format", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

// cancelingSearch cancels the import's context on its first call.
type cancelingSearch struct {
	cancel context.CancelFunc
}

func (s *cancelingSearch) Name() string { return "canceling" }

func (s *cancelingSearch) Search(ctx context.Context, term string) ([]models.Track, error) {
	s.cancel()
	return nil, ctx.Err()
}

func TestImportCommand(t *testing.T) {
	writeTerms := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "terms.txt")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("adds first result per term", func(t *testing.T) {
		h := newHarness(t)
		path := writeTerms(t, "# seed\ntarkan\nsezen aksu\n")

		if err := h.run("favorites", "import", path); err != nil {
			t.Fatalf("import error = %v", err)
		}

		// the mock returns the same results for every term, so the second match is a duplicate
		stored := h.stored(t)
		if len(stored) != 1 || stored[0].TrackID != "1" {
			t.Errorf("unexpected favorites %+v", stored)
		}
		if !strings.Contains(h.output.String(), "Added: 1  Already saved: 1") {
			t.Errorf("unexpected output:\n%s", h.output.String())
		}
	})

	t.Run("dry run json", func(t *testing.T) {
		h := newHarness(t)
		path := writeTerms(t, "tarkan\n")

		if err := h.run("favorites", "import", "--dry-run", "--json", path); err != nil {
			t.Fatalf("import error = %v", err)
		}

		var summary importSummary
		if err := json.Unmarshal(h.output.Bytes(), &summary); err != nil {
			t.Fatalf("failed to decode output: %v\n%s", err, h.output.String())
		}
		if summary.Matched != 1 || summary.Added != 0 || summary.Terms[0].TrackID != "1" {
			t.Errorf("unexpected summary %+v", summary)
		}
		if h.store.Saves() != 0 {
			t.Error("expected no store writes on dry run")
		}
	})

	t.Run("canceled import prints partial summary", func(t *testing.T) {
		h := newHarness(t)
		path := writeTerms(t, "tarkan\nsezen aksu\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h.runner.search = &cancelingSearch{cancel: cancel}

		err := h.runner.app().Run(ctx, []string{"tunely", "favorites", "import", "--json", "--workers", "1", path})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		var summary importSummary
		if err := json.Unmarshal(h.output.Bytes(), &summary); err != nil {
			t.Fatalf("expected partial summary in output: %v\n%s", err, h.output.String())
		}
		if summary.Total != 2 || summary.Added != 0 || len(summary.Terms) != 2 {
			t.Errorf("unexpected summary %+v", summary)
		}
		if h.store.Saves() != 0 {
			t.Error("expected no store writes after cancel")
		}
	})

	t.Run("canceled import plain output", func(t *testing.T) {
		h := newHarness(t)
		path := writeTerms(t, "tarkan\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h.runner.search = &cancelingSearch{cancel: cancel}

		if err := h.runner.app().Run(ctx, []string{"tunely", "favorites", "import", path}); err == nil {
			t.Fatal("expected error after cancel")
		}
		if !strings.Contains(h.output.String(), "Import interrupted") {
			t.Errorf("expected interrupted summary, got:\n%s", h.output.String())
		}
	})

	t.Run("empty file", func(t *testing.T) {
		h := newHarness(t)
		path := writeTerms(t, "\n# nothing\n")
		if err := h.run("favorites", "import", path); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing file argument", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("favorites", "import"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config writes example", func(t *testing.T) {
		h := newHarness(t)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := h.run("--config", path, "setup", "config"); err != nil {
			t.Fatalf("setup config error = %v", err)
		}
		tu.AssertFileExists(t, path)

		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("written config should load, got %v", err)
		}

		if err := h.run("--config", path, "setup", "config"); err == nil {
			t.Error("expected error when config already exists")
		}
	})

	t.Run("database runs migrations", func(t *testing.T) {
		h := newHarness(t)
		if err := h.run("setup", "database"); err != nil {
			t.Fatalf("setup database error = %v", err)
		}

		path := h.runner.config.Database.Path
		tu.AssertFileExists(t, path)

		db, err := shared.NewDatabase(path)
		if err != nil {
			t.Fatalf("NewDatabase() error = %v", err)
		}
		defer db.Close()

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM favorites`).Scan(&count); err != nil {
			t.Errorf("expected favorites table, got %v", err)
		}
		if !strings.Contains(h.output.String(), "Database ready") {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})
}

func TestServeRouter(t *testing.T) {
	h := newHarness(t)
	favorites := repositories.NewFavorites(h.store, h.runner.logger)

	handler, err := h.runner.newRouter(favorites)
	if err != nil {
		t.Fatalf("newRouter() error = %v", err)
	}

	t.Run("serves search page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?search=tarkan", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
		if !strings.Contains(rec.Body.String(), "Şımarık") {
			t.Error("expected search results")
		}
	})

	t.Run("serves health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), version) {
			t.Errorf("unexpected health response %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("serves metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if !strings.Contains(rec.Body.String(), "tunely_http_requests_total") {
			t.Error("expected request counter in metrics output")
		}
	})

	t.Run("add then remove through forms", func(t *testing.T) {
		form := strings.NewReader("trackId=7&trackName=Yolla&artistName=Tarkan")
		req := httptest.NewRequest(http.MethodPost, "/add_favorite", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if stored := h.stored(t); len(stored) != 1 || stored[0].TrackID != "7" {
			t.Fatalf("unexpected favorites %+v", stored)
		}

		req = httptest.NewRequest(http.MethodPost, "/remove_favorite", strings.NewReader("trackId=7"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if loc := rec.Header().Get("Location"); loc != "/favorites" {
			t.Errorf("expected redirect to /favorites, got %q", loc)
		}
		if stored := h.stored(t); len(stored) != 0 {
			t.Errorf("expected empty favorites, got %+v", stored)
		}
	})
}

func TestSplitAddr(t *testing.T) {
	host, port, err := splitAddr("127.0.0.1:8080")
	if err != nil || host != "127.0.0.1" || port != 8080 {
		t.Errorf("splitAddr() = %q, %d, %v", host, port, err)
	}

	for _, bad := range []string{"nope", "host:abc", "host:70000"} {
		if _, _, err := splitAddr(bad); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("splitAddr(%q) expected ErrInvalidFlag, got %v", bad, err)
		}
	}
}
