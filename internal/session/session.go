// Package session exposes the authenticated-session capability: the bearer
// token and user record the auth flow stored for a session. The cart/order
// core reads this state, it never mutates it — issuing and expiring tokens
// belongs to the platform's auth service.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/feastly/storefront/internal/pkg/kv"
)

// ErrNoSession is returned when the session has no stored token, i.e. the
// user is not logged in.
var ErrNoSession = errors.New("session: not authenticated")

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type Manager struct {
	kv kv.Store
}

func NewManager(store kv.Store) *Manager {
	return &Manager{kv: store}
}

func tokenKey(session string) string { return fmt.Sprintf("token:%s", session) }
func userKey(session string) string  { return fmt.Sprintf("user:%s", session) }

// Token returns the bearer token for the session, or ErrNoSession.
func (m *Manager) Token(ctx context.Context, session string) (string, error) {
	token, err := m.kv.Get(ctx, tokenKey(session))
	if errors.Is(err, kv.ErrNotFound) {
		return "", ErrNoSession
	}
	return token, err
}

// User returns the stored user record for the session, or ErrNoSession.
func (m *Manager) User(ctx context.Context, session string) (*User, error) {
	raw, err := m.kv.Get(ctx, userKey(session))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("session: decode user: %w", err)
	}
	return &u, nil
}

// Logout drops the session's identity. Called by the outer application when
// the platform answers 401/403 on an authenticated call.
func (m *Manager) Logout(ctx context.Context, session string) error {
	if err := m.kv.Delete(ctx, tokenKey(session)); err != nil {
		return err
	}
	return m.kv.Delete(ctx, userKey(session))
}
