package repositories

import (
	"context"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
)

// storeFactories builds one fresh instance of every [Store] implementation.
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"json": func(t *testing.T) Store {
			return NewJSONStore(filepath.Join(t.TempDir(), "favorites.json"))
		},
		"sqlite": func(t *testing.T) Store {
			db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: shared.MemoryDSN})
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			store := NewSQLiteStore(db)
			t.Cleanup(func() { store.Close() })
			return store
		},
		"memory": func(t *testing.T) Store {
			return NewMemoryStore(nil)
		},
	}
}

func newFavorites(store Store) *Favorites {
	return NewFavorites(store, shared.NewLogger(io.Discard))
}

func track(id, name string) models.FavoriteTrack {
	return models.FavoriteTrack{
		TrackID:    id,
		TrackName:  name,
		ArtistName: "Artist " + id,
		ArtworkURL: "https://example.com/" + id + "/100x100bb.jpg",
		PreviewURL: "https://example.com/" + id + ".m4a",
	}
}

func ids(tracks []models.FavoriteTrack) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.TrackID
	}
	return out
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("Load Empty", func(t *testing.T) {
				tracks, err := newStore(t).Load(ctx)
				if err != nil {
					t.Fatalf("expected no error loading empty store, got %v", err)
				}
				if tracks == nil || len(tracks) != 0 {
					t.Errorf("expected empty non-nil slice, got %#v", tracks)
				}
			})

			t.Run("Round Trip", func(t *testing.T) {
				store := newStore(t)
				want := []models.FavoriteTrack{
					track("3", "Dudu"),
					track("1", "Şımarık"),
					{TrackID: "2"},
				}

				if err := store.Save(ctx, want); err != nil {
					t.Fatalf("failed to save: %v", err)
				}
				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("failed to load: %v", err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, want)
				}
			})

			t.Run("Save Overwrites", func(t *testing.T) {
				store := newStore(t)
				if err := store.Save(ctx, []models.FavoriteTrack{track("1", "A"), track("2", "B")}); err != nil {
					t.Fatalf("failed to save: %v", err)
				}
				if err := store.Save(ctx, []models.FavoriteTrack{track("9", "Z")}); err != nil {
					t.Fatalf("failed to save: %v", err)
				}
				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("failed to load: %v", err)
				}
				if !reflect.DeepEqual(ids(got), []string{"9"}) {
					t.Errorf("expected only [9], got %v", ids(got))
				}
			})

			t.Run("Save Empty", func(t *testing.T) {
				store := newStore(t)
				if err := store.Save(ctx, []models.FavoriteTrack{track("1", "A")}); err != nil {
					t.Fatalf("failed to save: %v", err)
				}
				if err := store.Save(ctx, nil); err != nil {
					t.Fatalf("failed to save nil: %v", err)
				}
				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("failed to load: %v", err)
				}
				if len(got) != 0 {
					t.Errorf("expected empty collection, got %v", ids(got))
				}
			})

			t.Run("Load Returns Copy", func(t *testing.T) {
				store := newStore(t)
				if err := store.Save(ctx, []models.FavoriteTrack{track("1", "A")}); err != nil {
					t.Fatalf("failed to save: %v", err)
				}
				first, _ := store.Load(ctx)
				first[0].TrackName = "mutated"
				second, _ := store.Load(ctx)
				if second[0].TrackName != "A" {
					t.Errorf("mutating a loaded slice changed the store: %q", second[0].TrackName)
				}
			})

			t.Run("Canceled Context", func(t *testing.T) {
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				if _, err := newStore(t).Load(cctx); err == nil {
					t.Error("expected error for canceled context")
				}
			})
		})
	}
}

func TestNewStore(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Store.Path = filepath.Join(t.TempDir(), "favs.json")

		store, err := NewStore(config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer store.Close()

		js, ok := store.(*JSONStore)
		if !ok {
			t.Fatalf("expected *JSONStore, got %T", store)
		}
		if js.Path() != config.Store.Path {
			t.Errorf("expected path %s, got %s", config.Store.Path, js.Path())
		}
	})

	t.Run("SQLite", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Store.Driver = shared.DriverSQLite
		config.Database.Path = filepath.Join(t.TempDir(), "tunely.db")

		store, err := NewStore(config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer store.Close()

		if _, ok := store.(*SQLiteStore); !ok {
			t.Fatalf("expected *SQLiteStore, got %T", store)
		}
	})

	t.Run("Memory", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Store.Driver = shared.DriverMemory

		store, err := NewStore(config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := store.(*MemoryStore); !ok {
			t.Fatalf("expected *MemoryStore, got %T", store)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Store.Driver = "etcd"

		if _, err := NewStore(config); err == nil {
			t.Error("expected error for unknown driver")
		}
	})
}
