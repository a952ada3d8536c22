// Package services defines the [SearchService] interface for music search providers and implements it for the
// iTunes Search API.
//
// # iTunes Implementation
//
// [ITunesService] issues GET requests of the form
//
//	https://itunes.apple.com/search?term=<term>&entity=song&limit=12
//
// and decodes the {"resultCount", "results"} envelope into [models.Track] values.
// The API is unauthenticated. Outbound calls are paced by a token bucket ([rate.Limiter]).
//
// # Response Shape
//
// The response is treated as best-effort: results without a track id are skipped because they cannot be
// favorited, and any other missing field decodes to "".
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//
// There is no retry; a failed search surfaces to the caller as-is.
package services
