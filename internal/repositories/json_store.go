package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/tunely/internal/formatter"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
)

// JSONStore keeps the favorites collection as a JSON array in a single file.
//
// A missing or empty file reads as an empty collection.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path. The file is not touched until the first Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string { return s.path }

// Load reads and decodes the whole file.
func (s *JSONStore) Load(ctx context.Context) ([]models.FavoriteTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.FavoriteTrack{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreRead, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.FavoriteTrack{}, nil
	}

	var tracks []models.FavoriteTrack
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrStoreRead, s.path, err)
	}

	return clone(tracks), nil
}

// Save encodes tracks with 4-space indentation and replaces the file atomically.
//
// The data is written to a temporary file in the same directory, synced, then renamed over the target,
// so a failed write leaves the previous collection intact.
func (s *JSONStore) Save(ctx context.Context, tracks []models.FavoriteTrack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := formatter.ExportToJSON(tracks)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", shared.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", shared.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", shared.ErrStoreWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", shared.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreWrite, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %v", shared.ErrStoreWrite, s.path, err)
	}

	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONStore) Close() error { return nil }
