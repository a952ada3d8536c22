// Package web serves the tunely front-end: a search page, a favorites page, and the
// two form actions that mutate the favorites collection.
//
// Routes
//
//	GET  /                → search results for ?search= (default term when absent)
//	GET  /favorites       → stored favorites
//	POST /add_favorite    → append a track, 303 back to the search page
//	POST /remove_favorite → drop a track, 303 back to /favorites
//
// Pages are rendered server-side from embedded html/template files.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunely/internal/metrics"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/repositories"
	"github.com/desertthunder/tunely/internal/server"
	"github.com/desertthunder/tunely/internal/services"
	"github.com/desertthunder/tunely/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTerm is searched when a request carries no search parameter.
const DefaultTerm = "Tarkan"

const (
	thumbnailSize = "100x100"
	displaySize   = "400x400"
)

var funcs = template.FuncMap{"artwork": Artwork}

// Artwork rewrites an iTunes 100x100 artwork URL to its 400x400 rendition.
func Artwork(u string) string {
	return strings.ReplaceAll(u, thumbnailSize, displaySize)
}

// Options configures [New].
type Options struct {
	Search      services.SearchService
	Favorites   *repositories.Favorites
	Logger      *log.Logger
	DefaultTerm string
}

// App holds the handlers for the web front-end.
type App struct {
	search      services.SearchService
	favorites   *repositories.Favorites
	logger      *log.Logger
	defaultTerm string
	templates   *template.Template
}

type card struct {
	models.FavoriteTrack
	Saved bool
}

type page struct {
	Title      string
	Term       string
	FavCount   int
	ShowSearch bool
	Cards      []card
}

// New parses the embedded templates and returns an App.
func New(opts Options) (*App, error) {
	if opts.Search == nil || opts.Favorites == nil {
		return nil, errors.New("web: search service and favorites are required")
	}

	tmpl, err := template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	term := opts.DefaultTerm
	if term == "" {
		term = DefaultTerm
	}

	return &App{
		search:      opts.Search,
		favorites:   opts.Favorites,
		logger:      logger,
		defaultTerm: term,
		templates:   tmpl,
	}, nil
}

// Register adds the front-end routes to router.
func (a *App) Register(router server.Router) {
	router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.Index))
	router.Handle(http.MethodGet, "/favorites", http.HandlerFunc(a.Favorites))
	router.Handle(http.MethodPost, "/add_favorite", http.HandlerFunc(a.AddFavorite))
	router.Handle(http.MethodPost, "/remove_favorite", http.HandlerFunc(a.RemoveFavorite))
}

// Index searches for the request's term and renders the results.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := strings.TrimSpace(r.URL.Query().Get("search"))
	if term == "" {
		term = a.defaultTerm
	}

	tracks, err := a.search.Search(ctx, term)
	metrics.ObserveSearch(len(tracks), err)
	if err != nil {
		a.logger.Error("search failed", "term", term, "service", a.search.Name(), "error", err,
			"request_id", server.RequestIDFrom(ctx))
		http.Error(w, "search failed", http.StatusBadGateway)
		return
	}

	stored, err := a.favorites.List(ctx)
	if err != nil {
		a.storeError(w, r, err)
		return
	}

	saved := make(map[string]bool, len(stored))
	for _, t := range stored {
		saved[t.TrackID] = true
	}

	cards := make([]card, 0, len(tracks))
	for _, t := range tracks {
		fav := t.ToFavorite()
		cards = append(cards, card{FavoriteTrack: fav, Saved: saved[fav.TrackID]})
	}

	metrics.SetFavoritesStored(len(stored))
	a.render(w, r, page{
		Title:      "Tunely",
		Term:       term,
		FavCount:   len(stored),
		ShowSearch: true,
		Cards:      cards,
	})
}

// Favorites renders the stored favorites in insertion order.
func (a *App) Favorites(w http.ResponseWriter, r *http.Request) {
	stored, err := a.favorites.List(r.Context())
	if err != nil {
		a.storeError(w, r, err)
		return
	}

	cards := make([]card, 0, len(stored))
	for _, t := range stored {
		cards = append(cards, card{FavoriteTrack: t, Saved: true})
	}

	metrics.SetFavoritesStored(len(stored))
	a.render(w, r, page{
		Title:    "My Favorites",
		FavCount: len(stored),
		Cards:    cards,
	})
}

// AddFavorite appends the posted track and redirects to the search page.
func (a *App) AddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	track := models.FavoriteTrack{
		TrackID:    strings.TrimSpace(r.PostForm.Get("trackId")),
		TrackName:  r.PostForm.Get("trackName"),
		ArtistName: r.PostForm.Get("artistName"),
		ArtworkURL: r.PostForm.Get("artworkUrl100"),
		PreviewURL: r.PostForm.Get("previewUrl"),
	}
	if track.TrackID == "" {
		http.Error(w, "trackId is required", http.StatusBadRequest)
		return
	}

	added, err := a.favorites.Add(r.Context(), track)
	if err != nil {
		metrics.ObserveFavorite(metrics.OpAdd, metrics.ResultError)
		a.storeError(w, r, err)
		return
	}

	if added {
		metrics.ObserveFavorite(metrics.OpAdd, metrics.ResultAdded)
	} else {
		metrics.ObserveFavorite(metrics.OpAdd, metrics.ResultDuplicate)
	}
	a.refreshGauge(r.Context())

	target := "/"
	if term := strings.TrimSpace(r.PostForm.Get("search")); term != "" {
		target += "?" + url.Values{"search": {term}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RemoveFavorite drops the posted track id and redirects to the favorites page.
func (a *App) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.PostForm.Get("trackId"))
	if id == "" {
		http.Error(w, "trackId is required", http.StatusBadRequest)
		return
	}

	removed, err := a.favorites.Remove(r.Context(), id)
	if err != nil {
		metrics.ObserveFavorite(metrics.OpRemove, metrics.ResultError)
		a.storeError(w, r, err)
		return
	}

	if removed > 0 {
		metrics.ObserveFavorite(metrics.OpRemove, metrics.ResultRemoved)
	} else {
		metrics.ObserveFavorite(metrics.OpRemove, metrics.ResultMissing)
	}
	a.refreshGauge(r.Context())

	http.Redirect(w, r, "/favorites", http.StatusSeeOther)
}

func (a *App) render(w http.ResponseWriter, r *http.Request, data page) {
	var buf strings.Builder
	if err := a.templates.ExecuteTemplate(&buf, "page", data); err != nil {
		a.logger.Error("template render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(buf.String()))
}

func (a *App) storeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, shared.ErrInvalidInput) {
		status = http.StatusBadRequest
	}

	a.logger.Error("favorites store failed", "path", r.URL.Path, "error", err,
		"request_id", server.RequestIDFrom(r.Context()))
	http.Error(w, http.StatusText(status), status)
}

func (a *App) refreshGauge(ctx context.Context) {
	if n, err := a.favorites.Count(ctx); err == nil {
		metrics.SetFavoritesStored(n)
	}
}
