// Package tasks runs long favorites operations with real-time progress reporting.
//
// # Import
//
// [Importer.Run] seeds the favorites collection from a list of search terms:
//   - Searches every term on a pool of workers sharing one rate limiter
//   - Takes the first result of each search as the match
//   - Adds matches to favorites in the order the terms were given, skipping ids already stored
//   - Returns per-term results including terms with no match or a failed search
//
// # Progress Reporting
//
// Operations take an optional send-only channel of [ProgressUpdate].
// Updates use select with default to prevent blocking, so a slow or absent reader never stalls the import.
package tasks
