// Package sqlite provides a SQLite-backed implementation of
// checklog.Repository.
//
// WAL mode is enabled on Open so readers never block writers: the checkout
// handlers write while an operator may be querying the funnel.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/feastly/storefront/internal/checkout/checklog"

	// Register the pure-Go SQLite driver (no CGO, builds on Alpine).
	_ "modernc.org/sqlite"
)

// The table is append-only: one immutable row per checkout event.
const schema = `
CREATE TABLE IF NOT EXISTS checkout_log (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Browser session that drove the event.
    session     TEXT    NOT NULL,

    -- Platform order ID; 0 while no order record exists yet.
    order_id    INTEGER NOT NULL DEFAULT 0,

    -- Funnel stage, e.g. ORDER_PLACED, PAYMENT_PENDING.
    stage       TEXT    NOT NULL,

    -- Human-readable specifics: rejection reason, transport error, method.
    detail      TEXT    NOT NULL DEFAULT '',

    -- W3C trace/span IDs from the active OTel span, for trace correlation.
    trace_id    TEXT    NOT NULL DEFAULT '',
    span_id     TEXT    NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, the SQLite idiom.
    recorded_at TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_log_order ON checkout_log(order_id, recorded_at);
CREATE INDEX IF NOT EXISTS idx_checkout_log_session ON checkout_log(session, recorded_at);
`

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

var _ checklog.Repository = (*Repository)(nil)

// Save inserts one checkout log row. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *checklog.Entry) error {
	const q = `
		INSERT INTO checkout_log
			(session, order_id, stage, detail, trace_id, span_id, recorded_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.Session,
		entry.OrderID,
		string(entry.Stage),
		entry.Detail,
		entry.TraceID,
		entry.SpanID,
		entry.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save checkout log for session %q: %w", entry.Session, err)
	}
	return nil
}

// History returns all events recorded for one order, oldest first.
func (r *Repository) History(ctx context.Context, orderID int64) ([]checklog.Entry, error) {
	const q = `
		SELECT session, order_id, stage, detail, trace_id, span_id, recorded_at
		FROM   checkout_log
		WHERE  order_id = ?
		ORDER  BY recorded_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var entries []checklog.Entry
	for rows.Next() {
		var e checklog.Entry
		var recordedAt string
		if err := rows.Scan(&e.Session, &e.OrderID, &e.Stage, &e.Detail, &e.TraceID, &e.SpanID, &recordedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan checkout log: %w", err)
		}
		e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse time %q: %w", recordedAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
