package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
)

// Store persists the full, ordered favorites collection.
type Store interface {
	// Load returns every persisted record in order. A store that has never been written is empty, not an error.
	Load(ctx context.Context) ([]models.FavoriteTrack, error)

	// Save replaces the persisted collection with tracks.
	Save(ctx context.Context, tracks []models.FavoriteTrack) error

	// Close releases resources held by the store.
	Close() error
}

// NewStore builds the [Store] selected by config.Store.Driver.
func NewStore(config *shared.Config) (Store, error) {
	switch config.Store.Driver {
	case shared.DriverJSON:
		return NewJSONStore(config.Store.Path), nil
	case shared.DriverSQLite:
		db, err := shared.OpenDatabase(config.Database)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	case shared.DriverMemory:
		return NewMemoryStore(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownDriver, config.Store.Driver)
	}
}

// clone copies tracks so callers cannot alias a store's internal slice. A nil input yields an empty slice.
func clone(tracks []models.FavoriteTrack) []models.FavoriteTrack {
	out := make([]models.FavoriteTrack, len(tracks))
	copy(out, tracks)
	return out
}
