package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
)

// Favorites applies the add/remove policy to a [Store].
//
// Every operation loads the full collection, and mutations write it back in full.
type Favorites struct {
	store  Store
	logger *log.Logger
	mu     sync.Mutex
}

// NewFavorites creates a Favorites over store. A nil logger falls back to [shared.NewLogger].
func NewFavorites(store Store, logger *log.Logger) *Favorites {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Favorites{store: store, logger: logger}
}

// List returns the full ordered collection.
func (f *Favorites) List(ctx context.Context) ([]models.FavoriteTrack, error) {
	return f.store.Load(ctx)
}

// Count returns the number of stored favorites.
func (f *Favorites) Count(ctx context.Context) (int, error) {
	tracks, err := f.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(tracks), nil
}

// Contains reports whether a favorite with trackID is stored.
func (f *Favorites) Contains(ctx context.Context, trackID string) (bool, error) {
	tracks, err := f.store.Load(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(tracks, trackID) >= 0, nil
}

// IDs returns the set of stored track ids.
func (f *Favorites) IDs(ctx context.Context) (map[string]bool, error) {
	tracks, err := f.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		ids[t.TrackID] = true
	}
	return ids, nil
}

// Add appends track unless a favorite with the same id exists.
//
// Returns true when the track was appended. A duplicate is a no-op and the store is not rewritten.
func (f *Favorites) Add(ctx context.Context, track models.FavoriteTrack) (bool, error) {
	if err := track.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tracks, err := f.store.Load(ctx)
	if err != nil {
		return false, err
	}

	if indexOf(tracks, track.TrackID) >= 0 {
		f.logger.Debug("favorite already present", "track_id", track.TrackID)
		return false, nil
	}

	if err := f.store.Save(ctx, append(tracks, track)); err != nil {
		return false, err
	}

	f.logger.Info("favorite added", "track_id", track.TrackID, "track", track.TrackName)
	return true, nil
}

// Remove drops every favorite whose id equals trackID, preserving the order of the rest.
//
// The collection is written back even when nothing matched. Returns the number of records removed.
func (f *Favorites) Remove(ctx context.Context, trackID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tracks, err := f.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]models.FavoriteTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.TrackID != trackID {
			kept = append(kept, t)
		}
	}

	if err := f.store.Save(ctx, kept); err != nil {
		return 0, err
	}

	removed := len(tracks) - len(kept)
	f.logger.Info("favorite removed", "track_id", trackID, "removed", removed)
	return removed, nil
}

func indexOf(tracks []models.FavoriteTrack, trackID string) int {
	for i, t := range tracks {
		if t.TrackID == trackID {
			return i
		}
	}
	return -1
}
