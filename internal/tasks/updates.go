package tasks

import (
	"fmt"

	"github.com/desertthunder/tunely/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchTerms Phase = iota
	AddFavorites
)

func (p Phase) String() string {
	switch p {
	case SearchTerms:
		return "search_terms"
	case AddFavorites:
		return "add_favorites"
	default:
		return ""
	}
}

func searchStartedUpdate(total, workers int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTerms,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Searching %d terms with %d workers...", total, workers),
	}
}

func termSearchedUpdate(step, total int, res TermResult) ProgressUpdate {
	switch {
	case res.Err != nil:
		return ProgressUpdate{
			Phase:   SearchTerms,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Term, res.Err),
		}
	case res.Match == nil:
		return ProgressUpdate{
			Phase:   SearchTerms,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ? %s: no results", step, total, res.Term),
		}
	default:
		return ProgressUpdate{
			Phase:   SearchTerms,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] %s → %s - %s", step, total, res.Term, res.Match.ArtistName, res.Match.TrackName),
			Data:    res.Match,
		}
	}
}

func favoriteAddedUpdate(step, total int, track *models.FavoriteTrack, added bool) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ★ %s - %s", step, total, track.ArtistName, track.TrackName)
	if !added {
		msg = fmt.Sprintf("[%d/%d] = %s - %s (already saved)", step, total, track.ArtistName, track.TrackName)
	}
	return ProgressUpdate{
		Phase:   AddFavorites,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    track,
	}
}
