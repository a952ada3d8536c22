package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunely/internal/models"
)

var (
	_ list.Item = trackItem{}
	_ list.Item = favoriteItem{}
)

// trackItem wraps a search result [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
	saved bool
}

func (i trackItem) FilterValue() string { return i.track.TrackName }
func (i trackItem) Title() string {
	if i.saved {
		return "★ " + i.track.TrackName
	}
	return i.track.TrackName
}
func (i trackItem) Description() string {
	return fmt.Sprintf("%s • %s", i.track.ArtistName, i.track.TrackID)
}

// favoriteItem wraps [models.FavoriteTrack] to implement [list.Item].
type favoriteItem struct {
	track models.FavoriteTrack
}

func (i favoriteItem) FilterValue() string { return i.track.TrackName }
func (i favoriteItem) Title() string       { return i.track.TrackName }
func (i favoriteItem) Description() string {
	desc := i.track.ArtistName
	if i.track.PreviewURL != "" {
		desc = fmt.Sprintf("%s • preview", desc)
	}
	return desc
}
