package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunely/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchCompleted MsgKind = iota
	MsgFavoritesLoaded
	MsgFavoriteAdded
	MsgFavoriteRemoved
)

type searchResult struct {
	term   string
	tracks []models.Track
	err    error
}

type favoritesResult struct {
	tracks []models.FavoriteTrack
	err    error
}

type mutationResult struct {
	track   models.FavoriteTrack
	changed bool
	err     error
}

// searchCompletedMsg is the constructor for [MsgSearchCompleted]
func searchCompletedMsg(term string, tracks []models.Track, err error) Msg {
	return Msg{kind: MsgSearchCompleted, data: searchResult{term, tracks, err}}
}

// favoritesLoadedMsg is the constructor for [MsgFavoritesLoaded]
func favoritesLoadedMsg(tracks []models.FavoriteTrack, err error) Msg {
	return Msg{kind: MsgFavoritesLoaded, data: favoritesResult{tracks, err}}
}

// favoriteAddedMsg is the constructor for [MsgFavoriteAdded]
func favoriteAddedMsg(track models.FavoriteTrack, added bool, err error) Msg {
	return Msg{kind: MsgFavoriteAdded, data: mutationResult{track, added, err}}
}

// favoriteRemovedMsg is the constructor for [MsgFavoriteRemoved]
func favoriteRemovedMsg(track models.FavoriteTrack, removed bool, err error) Msg {
	return Msg{kind: MsgFavoriteRemoved, data: mutationResult{track, removed, err}}
}
