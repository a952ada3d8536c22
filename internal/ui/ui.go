package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/repositories"
	"github.com/desertthunder/tunely/internal/services"
	"github.com/desertthunder/tunely/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	FavoritesView
)

// Options configures [NewModel].
type Options struct {
	Search    services.SearchService
	Favorites *repositories.Favorites
	Logger    *log.Logger
	Term      string // searched on start when non-empty
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	search    services.SearchService
	favorites *repositories.Favorites
	logger    *log.Logger
	width     int
	height    int
	input     textinput.Model
	results   list.Model
	tracks    []models.Track
	favList   list.Model
	stored    []models.FavoriteTrack
	saved     map[string]bool
	searching bool
	status    string
	level     statusLevel
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	input := textinput.New()
	input.Placeholder = "Search songs..."
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.SetValue(opts.Term)
	input.Focus()

	return &Model{
		ctx:       ctx,
		view:      SearchView,
		search:    opts.Search,
		favorites: opts.Favorites,
		logger:    logger,
		input:     input,
		results:   newList("Results"),
		favList:   newList("Favorites"),
		saved:     map[string]bool{},
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// Init loads the favorites and runs the initial search when a term was given.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.loadFavorites()}
	if term := strings.TrimSpace(m.input.Value()); term != "" {
		cmds = append(cmds, m.runSearch(term))
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, msg.Height-10)
		m.favList.SetSize(msg.Width-4, msg.Height-8)
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.abort) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.tab) {
			return m.switchView()
		}
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case FavoritesView:
			return m.handleFavoritesKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateActive(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchCompleted:
		data := msg.data.(searchResult)
		m.searching = false
		if data.err != nil {
			m.logger.Error("search failed", "term", data.term, "error", data.err)
			m.setStatus(statusError, fmt.Sprintf("Search failed: %v", data.err))
			return m, nil
		}
		m.tracks = data.tracks
		m.setStatus(statusInfo, fmt.Sprintf("%d results for %q", len(data.tracks), data.term))
		m.input.Blur()
		return m, m.refreshResults()

	case MsgFavoritesLoaded:
		data := msg.data.(favoritesResult)
		if data.err != nil {
			m.logger.Error("failed to load favorites", "error", data.err)
			m.setStatus(statusError, fmt.Sprintf("Could not load favorites: %v", data.err))
			return m, nil
		}
		m.stored = data.tracks
		m.saved = make(map[string]bool, len(data.tracks))
		items := make([]list.Item, len(data.tracks))
		for i, t := range data.tracks {
			m.saved[t.TrackID] = true
			items[i] = favoriteItem{track: t}
		}
		m.favList.Title = fmt.Sprintf("Favorites (%d)", len(data.tracks))
		return m, tea.Batch(m.favList.SetItems(items), m.refreshResults())

	case MsgFavoriteAdded:
		data := msg.data.(mutationResult)
		switch {
		case data.err != nil:
			m.setStatus(statusError, fmt.Sprintf("Could not add %q: %v", data.track.TrackName, data.err))
			return m, nil
		case data.changed:
			m.setStatus(statusOK, fmt.Sprintf("★ Added %q", data.track.TrackName))
		default:
			m.setStatus(statusWarn, fmt.Sprintf("%q is already a favorite", data.track.TrackName))
		}
		return m, m.loadFavorites()

	case MsgFavoriteRemoved:
		data := msg.data.(mutationResult)
		if data.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Could not remove %q: %v", data.track.TrackName, data.err))
			return m, nil
		}
		m.setStatus(statusOK, fmt.Sprintf("Removed %q", data.track.TrackName))
		return m, m.loadFavorites()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SearchView:
		body = m.renderSearch()
	case FavoritesView:
		body = m.renderFavorites()
	}

	var status string
	if m.status != "" {
		status = "\n" + styles.status(m.level, m.status)
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", m.renderTabs(), body, status, m.renderHelp())
}

func (m *Model) switchView() (tea.Model, tea.Cmd) {
	if m.view == SearchView {
		m.view = FavoritesView
		m.input.Blur()
		return m, nil
	}

	m.view = SearchView
	if len(m.tracks) == 0 {
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input.Focused() {
		if key.Matches(msg, m.keys.search) {
			term := strings.TrimSpace(m.input.Value())
			if term == "" || m.searching {
				return m, nil
			}
			return m, m.runSearch(term)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.add):
		if item, ok := m.results.SelectedItem().(trackItem); ok {
			return m, m.addFavorite(item.track.ToFavorite())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		return m, m.loadFavorites()
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.favList.SelectedItem().(favoriteItem); ok {
			return m, m.removeFavorite(item.track)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.favList, cmd = m.favList.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		if m.input.Focused() {
			m.input, cmd = m.input.Update(msg)
		} else {
			m.results, cmd = m.results.Update(msg)
		}
	case FavoritesView:
		m.favList, cmd = m.favList.Update(msg)
	}
	return m, cmd
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.level = level
	m.status = text
}

func (m *Model) refreshResults() tea.Cmd {
	items := make([]list.Item, len(m.tracks))
	for i, t := range m.tracks {
		items[i] = trackItem{track: t, saved: m.saved[t.TrackID.String()]}
	}
	return m.results.SetItems(items)
}

func (m *Model) runSearch(term string) tea.Cmd {
	m.searching = true
	m.setStatus(statusInfo, fmt.Sprintf("Searching %s for %q...", m.search.Name(), term))
	return func() tea.Msg {
		tracks, err := m.search.Search(m.ctx, term)
		return searchCompletedMsg(term, tracks, err)
	}
}

func (m *Model) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.favorites.List(m.ctx)
		return favoritesLoadedMsg(tracks, err)
	}
}

func (m *Model) addFavorite(track models.FavoriteTrack) tea.Cmd {
	return func() tea.Msg {
		added, err := m.favorites.Add(m.ctx, track)
		return favoriteAddedMsg(track, added, err)
	}
}

func (m *Model) removeFavorite(track models.FavoriteTrack) tea.Cmd {
	return func() tea.Msg {
		n, err := m.favorites.Remove(m.ctx, track.TrackID)
		return favoriteRemovedMsg(track, n > 0, err)
	}
}

func (m *Model) renderTabs() string {
	search, favs := "Search", fmt.Sprintf("Favorites (%d)", len(m.stored))
	if m.view == SearchView {
		search = styles.active.Render(search)
		favs = styles.help.Render(favs)
	} else {
		search = styles.help.Render(search)
		favs = styles.active.Render(favs)
	}
	return styles.title.Render("🎵 tunely") + "\n" + search + "  │  " + favs + "\n"
}

func (m *Model) renderSearch() string {
	if len(m.tracks) == 0 {
		return m.input.View() + "\n\n" + styles.help.Render("No results yet.")
	}
	return m.input.View() + "\n\n" + m.results.View()
}

func (m *Model) renderFavorites() string {
	if len(m.stored) == 0 {
		return styles.help.Render("No favorites yet. Press tab to search.")
	}
	return m.favList.View()
}

func (m *Model) renderHelp() string {
	var keys []key.Binding
	switch {
	case m.view == FavoritesView:
		keys = []key.Binding{m.keys.remove, m.keys.reload, m.keys.tab, m.keys.quit}
	case m.input.Focused():
		keys = []key.Binding{m.keys.search, m.keys.tab, m.keys.abort}
	default:
		keys = []key.Binding{m.keys.add, m.keys.focus, m.keys.tab, m.keys.quit}
	}
	return m.help.ShortHelpView(keys)
}
