package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunely/internal/formatter"
	"github.com/desertthunder/tunely/internal/metrics"
	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the stored favorites in insertion order.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	tracks, err := favorites.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(tracks)
		if err != nil {
			return fmt.Errorf("failed to encode favorites: %w", err)
		}
		return r.writePlain("%s", data)
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(tracks)))
	if len(tracks) == 0 {
		return r.writePlain("No favorites yet.\n")
	}

	for i, t := range tracks {
		if err := r.writePlain("%2d. %-40s %-28s %s\n", i+1,
			shared.Truncate(t.TrackName, 40), shared.Truncate(t.ArtistName, 28), t.TrackID); err != nil {
			return err
		}
	}

	return nil
}

// FavoritesAdd appends a track unless its id is already stored.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	track := models.FavoriteTrack{
		TrackID:    cmd.String("id"),
		TrackName:  cmd.String("name"),
		ArtistName: cmd.String("artist"),
		ArtworkURL: cmd.String("artwork"),
		PreviewURL: cmd.String("preview"),
	}

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	added, err := favorites.Add(ctx, track)
	if err != nil {
		metrics.ObserveFavorite(metrics.OpAdd, metrics.ResultError)
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	if !added {
		metrics.ObserveFavorite(metrics.OpAdd, metrics.ResultDuplicate)
		return r.writePlain("Track %s is already a favorite\n", track.TrackID)
	}

	metrics.ObserveFavorite(metrics.OpAdd, metrics.ResultAdded)
	return r.writePlain("✓ Added %s (%s)\n", displayName(track), track.TrackID)
}

// FavoritesRemove drops the track with the given id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: track id", shared.ErrMissingArgument)
	}

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	removed, err := favorites.Remove(ctx, id)
	if err != nil {
		metrics.ObserveFavorite(metrics.OpRemove, metrics.ResultError)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if removed == 0 {
		metrics.ObserveFavorite(metrics.OpRemove, metrics.ResultMissing)
		return r.writePlain("Track %s is not a favorite\n", id)
	}

	metrics.ObserveFavorite(metrics.OpRemove, metrics.ResultRemoved)
	return r.writePlain("✓ Removed %s\n", id)
}

// FavoritesExport writes the favorites collection in the requested format.
//
// An output of "-" writes to the runner's output instead of a file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	favorites, release, err := r.openFavorites()
	if err != nil {
		return err
	}
	defer release()

	tracks, err := favorites.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	output := cmd.String("output")
	if output == "-" {
		data, err := formatter.Export(format, tracks)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	path, err := formatter.WriteExport(format, tracks, output)
	if err != nil {
		return err
	}

	r.logger.Info("favorites exported", "format", format, "path", path, "tracks", len(tracks))
	return r.writePlain("✓ Exported %d favorites to %s\n", len(tracks), path)
}

func displayName(t models.FavoriteTrack) string {
	switch {
	case t.TrackName != "" && t.ArtistName != "":
		return fmt.Sprintf("%s - %s", t.ArtistName, t.TrackName)
	case t.TrackName != "":
		return t.TrackName
	default:
		return "track"
	}
}
