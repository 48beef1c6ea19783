package checklog

import "context"

// Repository is the port for persisting checkout log entries. The
// coordinator depends on this abstraction rather than on SQLite directly,
// so tests can use an in-memory recorder.
type Repository interface {
	// Save appends one entry. The log is append-only, never an upsert.
	Save(ctx context.Context, entry *Entry) error
}
