// Package sqlite implements a SQLite-backed storage.Repository.
package sqlite

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite file path or URI, e.g.:
	//   "app_data.db" (created if absent)
	//   "file:app_data.db?_pragma=busy_timeout(5000)"
	//   ":memory:"
	DSN string
}
