package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
)

// SQLiteStore keeps the favorites collection in the favorites table.
//
// Row order is carried by the position column, so Load returns records in the order they were saved.
// The schema is created by [shared.RunMigrations].
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over a migrated database connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns all rows ordered by position.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.FavoriteTrack, error) {
	query := `
		SELECT track_id, track_name, artist_name, artwork_url, preview_url
		FROM favorites
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreRead, err)
	}
	defer rows.Close()

	tracks := []models.FavoriteTrack{}
	for rows.Next() {
		var t models.FavoriteTrack
		if err := rows.Scan(&t.TrackID, &t.TrackName, &t.ArtistName, &t.ArtworkURL, &t.PreviewURL); err != nil {
			return nil, fmt.Errorf("%w: failed to scan favorite: %v", shared.ErrStoreRead, err)
		}
		tracks = append(tracks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreRead, err)
	}

	return tracks, nil
}

// Save deletes every row and inserts tracks in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, tracks []models.FavoriteTrack) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStoreWrite, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
		return fmt.Errorf("%w: failed to clear favorites: %v", shared.ErrStoreWrite, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO favorites (track_id, position, track_name, artist_name, artwork_url, preview_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare insert: %v", shared.ErrStoreWrite, err)
	}
	defer stmt.Close()

	for i, t := range tracks {
		if _, err := stmt.ExecContext(ctx, t.TrackID, i, t.TrackName, t.ArtistName, t.ArtworkURL, t.PreviewURL); err != nil {
			return fmt.Errorf("%w: failed to insert favorite %s: %v", shared.ErrStoreWrite, t.TrackID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %v", shared.ErrStoreWrite, err)
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
