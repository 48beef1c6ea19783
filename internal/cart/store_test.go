package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/feastly/storefront/internal/pkg/kv"
)

const testSession = "sess-1"

type StoreTestSuite struct {
	suite.Suite
	kv    *kv.MemoryStore
	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	s.kv = kv.NewMemoryStore()
	s.store = NewStore(s.kv)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestAddPersistsAcrossLoads() {
	ctx := context.Background()

	_, err := s.store.Add(ctx, testSession, menuItem(1, "4.50", 0), 2)
	s.Require().NoError(err)

	c, err := s.store.Load(ctx, testSession)
	s.Require().NoError(err)
	s.Require().Len(c.Lines, 1)
	s.Equal(2, c.Lines[0].Quantity)
}

func (s *StoreTestSuite) TestLoadAbsentMirrorIsEmptyCart() {
	c, err := s.store.Load(context.Background(), testSession)
	s.Require().NoError(err)
	s.True(c.IsEmpty())
}

func (s *StoreTestSuite) TestHydrationSanitizesNullQuantity() {
	ctx := context.Background()

	// One line with quantity null, a sibling with a valid quantity.
	raw := `{"lines":[
		{"id":1,"name":"Margherita","price":"10.00","restaurantId":5,"quantity":null},
		{"id":2,"name":"Pepperoni","price":"12.00","restaurantId":5,"quantity":2}
	]}`
	s.Require().NoError(s.kv.Set(ctx, "cart:"+testSession, raw))

	c, err := s.store.Load(ctx, testSession)
	s.Require().NoError(err)
	s.Require().Len(c.Lines, 2)
	s.Equal(1, c.Lines[0].Quantity, "null quantity coerced to 1")
	s.Equal(2, c.Lines[1].Quantity, "sibling line untouched")
}

func (s *StoreTestSuite) TestHydrationSanitizesNegativeQuantity() {
	ctx := context.Background()

	raw := `{"lines":[{"id":1,"name":"Margherita","price":"10.00","restaurantId":5,"quantity":-4}]}`
	s.Require().NoError(s.kv.Set(ctx, "cart:"+testSession, raw))

	c, err := s.store.Load(ctx, testSession)
	s.Require().NoError(err)
	s.Require().Len(c.Lines, 1)
	s.Equal(1, c.Lines[0].Quantity)
}

func (s *StoreTestSuite) TestHydrationDiscardsUnparsableMirror() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Set(ctx, "cart:"+testSession, `{not json`))

	c, err := s.store.Load(ctx, testSession)
	s.Require().NoError(err, "corruption is recovered, not surfaced")
	s.True(c.IsEmpty())

	// The corrupted entry is gone.
	_, err = s.kv.Get(ctx, "cart:"+testSession)
	s.ErrorIs(err, kv.ErrNotFound)
}

func (s *StoreTestSuite) TestRepairedMirrorIsWrittenBack() {
	ctx := context.Background()

	raw := `{"lines":[{"id":1,"name":"Margherita","price":"10.00","restaurantId":5,"quantity":null}]}`
	s.Require().NoError(s.kv.Set(ctx, "cart:"+testSession, raw))

	_, err := s.store.Load(ctx, testSession)
	s.Require().NoError(err)

	// A second load must see the repaired state without re-sanitizing.
	c, err := s.store.Load(ctx, testSession)
	s.Require().NoError(err)
	s.Equal(1, c.Lines[0].Quantity)
}

func (s *StoreTestSuite) TestClearDeletesMirrorEntirely() {
	ctx := context.Background()

	_, err := s.store.Add(ctx, testSession, menuItem(1, "4.50", 0), 1)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Clear(ctx, testSession))

	_, err = s.kv.Get(ctx, "cart:"+testSession)
	s.ErrorIs(err, kv.ErrNotFound, "clear removes the key, not just the value")
}

func (s *StoreTestSuite) TestSessionsAreIsolated() {
	ctx := context.Background()

	_, err := s.store.Add(ctx, "sess-a", menuItem(1, "4.50", 0), 1)
	s.Require().NoError(err)

	c, err := s.store.Load(ctx, "sess-b")
	s.Require().NoError(err)
	s.True(c.IsEmpty())
}
