// package formatter exports the favorites collection to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/tunely/internal/models"
	"github.com/desertthunder/tunely/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat resolves a format name. "md" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (expected csv, markdown, text or json)", shared.ErrInvalidFlag, s)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// Export renders tracks in the given format.
func Export(format Format, tracks []models.FavoriteTrack) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(tracks)
	case FormatMarkdown:
		return ExportToMarkdown(tracks)
	case FormatText:
		return ExportToText(tracks)
	case FormatJSON:
		return ExportToJSON(tracks)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// ExportToCSV converts favorites to CSV format with columns: ID, Name, Artist, Artwork, Preview
func ExportToCSV(tracks []models.FavoriteTrack) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Artwork", "Preview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.TrackID,
			track.TrackName,
			track.ArtistName,
			track.ArtworkURL,
			track.PreviewURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts favorites to a Markdown list, linking previews where present
func ExportToMarkdown(tracks []models.FavoriteTrack) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	if len(tracks) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		title := track.TrackName
		if track.PreviewURL != "" {
			title = fmt.Sprintf("[%s](%s)", track.TrackName, track.PreviewURL)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s `%s`\n", i+1, track.ArtistName, title, track.TrackID))
	}

	return buf.Bytes(), nil
}

// ExportToText converts favorites to plain text format
func ExportToText(tracks []models.FavoriteTrack) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Favorites: %d\n\n", len(tracks)))
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.ArtistName, track.TrackName))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders favorites in the favorites file format: a 4-space indented array with
// non-ASCII and HTML characters written as-is. A nil slice renders as [].
func ExportToJSON(tracks []models.FavoriteTrack) ([]byte, error) {
	if tracks == nil {
		tracks = []models.FavoriteTrack{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tracks); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteExport renders tracks and writes them to path.
//
// Defaults to favorites.{ext} as the filename.
func WriteExport(format Format, tracks []models.FavoriteTrack, path string) (string, error) {
	if path == "" {
		path = "favorites." + format.Extension()
	}

	data, err := Export(format, tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
