// Package kv defines the durable key-value port the storefront persists
// session-scoped state into (cart mirrors, session identity).
//
// The cart store depends on this abstraction, not on Redis directly,
// so the implementation can be swapped for in-memory (tests) or any
// other key-value backend.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value. An absent
// cart mirror is a normal condition (empty cart), so callers are expected
// to check for it with errors.Is rather than treat it as a failure.
var ErrNotFound = errors.New("kv: key not found")

// Store is the port for durable key-value storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the key entirely. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
