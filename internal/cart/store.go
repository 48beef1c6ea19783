package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/feastly/storefront/internal/ordering"
	"github.com/feastly/storefront/internal/pkg/kv"
)

// Store owns cart state and its durable mirror. All mutation goes through
// these operations; nothing outside this package touches the persisted blob.
type Store struct {
	kv kv.Store
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

func cartKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}

// Load hydrates the session's cart from the durable mirror.
//
// An absent mirror is an empty cart. A mirror that parses but contains
// invalid quantities is repaired in place (quantity coerced to 1) and the
// repaired state is written back, so one bad field never costs the user
// the whole cart. An unparsable mirror is discarded entirely: the corrupted
// entry is deleted, the failure is logged, and an empty cart is returned —
// corruption is never surfaced as a user-visible error.
func (s *Store) Load(ctx context.Context, session string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, cartKey(session))
	if errors.Is(err, kv.ErrNotFound) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		slog.WarnContext(ctx, "discarding corrupted cart mirror",
			"session", session, "error", err)
		if delErr := s.kv.Delete(ctx, cartKey(session)); delErr != nil {
			return nil, delErr
		}
		return &Cart{}, nil
	}

	if c.sanitize() {
		slog.WarnContext(ctx, "repaired invalid quantities in persisted cart", "session", session)
		if err := s.persist(ctx, session, &c); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// Add puts the item in the session's cart and persists the result.
// Quantity defaults to 1 when non-positive.
func (s *Store) Add(ctx context.Context, session string, item ordering.MenuItem, quantity int) (*Cart, error) {
	c, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := c.Add(item, quantity); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes the line with that menu item ID and persists the result.
func (s *Store) Remove(ctx context.Context, session string, itemID int64) (*Cart, error) {
	c, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	c.Remove(itemID)
	if err := s.persist(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity sets a line's quantity exactly; zero or below removes the line.
func (s *Store) SetQuantity(ctx context.Context, session string, itemID int64, quantity int) (*Cart, error) {
	c, err := s.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(itemID, quantity)
	if err := s.persist(ctx, session, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart by deleting the durable mirror entirely, not by
// writing an empty value.
func (s *Store) Clear(ctx context.Context, session string) error {
	return s.kv.Delete(ctx, cartKey(session))
}

func (s *Store) persist(ctx context.Context, session string, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart: marshal: %w", err)
	}
	return s.kv.Set(ctx, cartKey(session), string(raw))
}
