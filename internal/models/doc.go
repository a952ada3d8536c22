// Package models defines the domain entities for the tunely music search front-end.
//
//   - [Track] : a search result decoded from the search collaborator, tolerant of missing fields
//   - [FavoriteTrack] : a saved track, keyed by its external track id, as persisted in the favorites store
//   - [SearchResponse] : the search endpoint's response envelope
//
// [TrackID] normalizes numeric ids from the search API to the string form used as the favorites key.
package models
