package repositories

import (
	"context"
	"sync"

	"github.com/desertthunder/tunely/internal/models"
)

// MemoryStore keeps the favorites collection in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	tracks []models.FavoriteTrack
	saves  int
}

// NewMemoryStore creates a store seeded with a copy of tracks.
func NewMemoryStore(tracks []models.FavoriteTrack) *MemoryStore {
	return &MemoryStore{tracks: clone(tracks)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.FavoriteTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.tracks), nil
}

func (s *MemoryStore) Save(ctx context.Context, tracks []models.FavoriteTrack) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = clone(tracks)
	s.saves++
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Saves reports how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
