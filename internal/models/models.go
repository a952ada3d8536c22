// package models defines the data model for the music search front-end
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// FavoriteTrack is a user-saved reference to a searchable track, keyed by its external track id.
//
// The JSON keys match the persisted store format; all values are strings.
type FavoriteTrack struct {
	TrackID    string `json:"trackId"`
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	ArtworkURL string `json:"artworkUrl100"`
	PreviewURL string `json:"previewUrl"`
}

// Validate checks that the record can be stored.
func (f FavoriteTrack) Validate() error {
	if strings.TrimSpace(f.TrackID) == "" {
		return fmt.Errorf("track id is required")
	}
	return nil
}

// Track is a single search result returned by the search collaborator.
//
// Every field except TrackID is optional on the wire and defaults to "".
type Track struct {
	TrackID    TrackID `json:"trackId"`
	TrackName  string  `json:"trackName"`
	ArtistName string  `json:"artistName"`
	ArtworkURL string  `json:"artworkUrl100"`
	PreviewURL string  `json:"previewUrl"`
}

// ToFavorite converts a search result into the record stored in the favorites collection.
func (t Track) ToFavorite() FavoriteTrack {
	return FavoriteTrack{
		TrackID:    t.TrackID.String(),
		TrackName:  t.TrackName,
		ArtistName: t.ArtistName,
		ArtworkURL: t.ArtworkURL,
		PreviewURL: t.PreviewURL,
	}
}

// SearchResponse is the envelope returned by the search endpoint.
//
// Results stay raw so that one malformed record cannot fail the whole response.
type SearchResponse struct {
	ResultCount int               `json:"resultCount"`
	Results     []json.RawMessage `json:"results"`
}

// Tracks decodes each result on its own, in response order.
//
// Records that fail to decode or carry no track id are dropped and counted in skipped.
func (r SearchResponse) Tracks() (tracks []Track, skipped int) {
	tracks = make([]Track, 0, len(r.Results))
	for _, raw := range r.Results {
		var t Track
		if err := json.Unmarshal(raw, &t); err != nil || t.TrackID == "" {
			skipped++
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, skipped
}

// TrackID holds an external track id that may arrive as a JSON number or string.
//
// Numbers are kept in their decimal integer form, so 1.5e+09 and 1500000000.0 both become "1500000000".
type TrackID string

// String returns the id as stored in the favorites collection.
func (id TrackID) String() string { return string(id) }

// UnmarshalJSON accepts numbers, strings and null.
func (id *TrackID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TrackID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("track id must be a number or string: %w", err)
	}

	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return fmt.Errorf("track id must be an integer, got %s", n)
	}
	*id = TrackID(r.Num().String())
	return nil
}

// MarshalJSON writes the id as a string.
func (id TrackID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}
