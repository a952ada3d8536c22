// Package repositories implements persistence for the favorites collection.
//
// The collection is always read and written as a whole: [Store.Load] returns every record in order and
// [Store.Save] replaces the persisted collection with the given sequence.
//
// Key Implementations:
//   - [JSONStore] : a single JSON array on disk, replaced atomically (temp file + rename) on every save
//   - [SQLiteStore] : the same collection in a SQLite table, replaced in one transaction
//   - [MemoryStore] : an in-process slice for tests and throwaway runs
//
// [Favorites] layers the add/remove policy over any Store. It serializes read-modify-write cycles within one
// process; nothing coordinates writers across processes, so two processes sharing a file can lose an update.
package repositories
