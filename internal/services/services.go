// package services defines interface SearchService for querying music search APIs
//
// iTunes Search API
package services

import (
	"context"

	"github.com/desertthunder/tunely/internal/models"
)

// SearchService defines the interface for music search providers.
type SearchService interface {
	// Search returns the tracks matching a free-text term.
	// A failed call returns an error; an empty result is not an error.
	Search(ctx context.Context, term string) ([]models.Track, error)

	// Name returns the name of the service (e.g., "iTunes")
	Name() string
}
