package cart

import (
	"context"
	"testing"

	"storefront/internal/model"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalog is a mock implementation of Catalog.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalog) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockCarts is a mock implementation of Carts.
type MockCarts struct {
	mock.Mock
}

func (m *MockCarts) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCarts) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCarts) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error {
	args := m.Called(ctx, cartID, items)
	return args.Error(0)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct(id, price string, discount *string) *model.Product {
	p := &model.Product{
		ID:          id,
		Name:        "Product " + id,
		Category:    "Skincare",
		Price:       dec(price),
		Stock:       50,
		IsAvailable: true,
	}
	if discount != nil {
		d := dec(*discount)
		p.Discount = &d
	}
	return p
}

func newTestCart(t *testing.T) (*Cart, *session.Session) {
	t.Helper()
	sess := session.New()
	c, err := New(sess, nil, zerolog.Nop())
	require.NoError(t, err)
	return c, sess
}

func TestCart_AddAccumulatesQuantity(t *testing.T) {
	c, _ := newTestCart(t)
	p := testProduct("P001", "10.00", nil)

	c.Add(p, 2, false)
	c.Add(p, 3, false)

	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, dec("50.00").Equal(c.TotalPrice()))
}

func TestCart_AddOverrideSetsQuantity(t *testing.T) {
	c, _ := newTestCart(t)
	p := testProduct("P001", "10.00", nil)

	c.Add(p, 5, false)
	c.Add(p, 2, true)

	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_AddSnapshotsDiscountedPrice(t *testing.T) {
	c, _ := newTestCart(t)
	discount := "20.00"
	p := testProduct("P001", "100.00", &discount)

	c.Add(p, 1, false)

	// 100 - 100*20/100 = 80
	assert.True(t, dec("80.00").Equal(c.TotalPrice()))

	// A later price change must not affect the existing line.
	p.Price = dec("200.00")
	c.Add(p, 1, false)

	assert.Equal(t, 2, c.TotalItems())
	assert.True(t, dec("160.00").Equal(c.TotalPrice()),
		"snapshot price must survive live price changes, got %s", c.TotalPrice())
}

func TestCart_AddNonPositiveQuantityKeepsLine(t *testing.T) {
	// Unlike UpdateQuantity, Add performs no lower-bound check: a zero or
	// negative quantity adjusts the line but never removes it. Input
	// validation is the HTTP layer's job.
	c, _ := newTestCart(t)
	p := testProduct("P001", "10.00", nil)

	c.Add(p, 3, false)
	c.Add(p, -1, false)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_RemoveAbsentProductIsNoOp(t *testing.T) {
	c, sess := newTestCart(t)
	p := testProduct("P001", "10.00", nil)
	other := testProduct("P002", "5.00", nil)

	c.Add(p, 1, false)
	require.NoError(t, sessSave(sess))

	c.Remove(other)

	assert.Equal(t, 1, c.TotalItems())
	assert.False(t, sess.Dirty(), "removing an absent product must not touch the session")
}

// sessSave simulates the caller flushing a dirty session.
func sessSave(sess *session.Session) error {
	return session.NewMemoryStore().Save(context.Background(), sess)
}

func TestCart_UpdateQuantity(t *testing.T) {
	p := testProduct("P001", "10.00", nil)

	tests := []struct {
		name          string
		initial       int
		update        int
		expectPresent bool
		expectItems   int
	}{
		{name: "sets quantity directly", initial: 5, update: 2, expectPresent: true, expectItems: 2},
		{name: "zero removes the line", initial: 5, update: 0, expectPresent: false, expectItems: 0},
		{name: "negative removes the line", initial: 5, update: -3, expectPresent: false, expectItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCart(t)
			c.Add(p, tt.initial, false)

			c.UpdateQuantity(p, tt.update)

			assert.Equal(t, tt.expectItems, c.TotalItems())
			if tt.expectPresent {
				assert.Equal(t, 1, c.Len())
			} else {
				assert.Equal(t, 0, c.Len())
			}
		})
	}
}

func TestCart_UpdateQuantityNeverCreatesLine(t *testing.T) {
	c, _ := newTestCart(t)
	p := testProduct("P001", "10.00", nil)

	c.UpdateQuantity(p, 4)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalItems())
}

func TestCart_Scenario(t *testing.T) {
	c, _ := newTestCart(t)
	a := testProduct("A", "10.00", nil)

	assert.Equal(t, 0, c.TotalItems())

	c.Add(a, 2, false)
	assert.Equal(t, 2, c.TotalItems())
	assert.True(t, dec("20.00").Equal(c.TotalPrice()))

	c.Add(a, 3, false)
	assert.Equal(t, 5, c.TotalItems())

	c.UpdateQuantity(a, 1)
	assert.Equal(t, 1, c.TotalItems())

	c.UpdateQuantity(a, 0)
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0, c.Len())
}

func TestCart_ClearRemovesCartFromSession(t *testing.T) {
	c, sess := newTestCart(t)
	p := testProduct("P001", "10.00", nil)
	c.Add(p, 2, false)

	c.Clear()

	var lines map[string]Line
	ok, err := sess.Get(session.KeyCart, &lines)
	require.NoError(t, err)
	assert.False(t, ok, "cart key must be gone from the session")
	assert.Equal(t, 0, c.TotalItems())
}

func TestCart_MutationsVisibleThroughSession(t *testing.T) {
	sess := session.New()
	c, err := New(sess, nil, zerolog.Nop())
	require.NoError(t, err)

	p := testProduct("P001", "10.00", nil)
	c.Add(p, 2, false)

	assert.True(t, sess.Dirty())

	reread, err := New(sess, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, reread.TotalItems())
}

func TestCart_ItemsSkipsMissingProducts(t *testing.T) {
	c, _ := newTestCart(t)
	p1 := testProduct("P001", "10.00", nil)
	p2 := testProduct("P002", "5.00", nil)
	c.Add(p1, 1, false)
	c.Add(p2, 2, false)

	catalog := new(MockCatalog)
	// P002 has been deleted from the catalogue.
	catalog.On("GetByIDs", mock.Anything, []string{"P001", "P002"}).
		Return([]model.Product{*p1}, nil)

	items, err := c.Items(context.Background(), catalog)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "P001", items[0].Product.ID)
	assert.True(t, dec("10.00").Equal(items[0].TotalPrice))

	// The stale line stays in storage; only iteration hides it.
	assert.Equal(t, 2, c.Len())
	catalog.AssertExpectations(t)
}

func TestCart_SyncWithoutUserIsNoOp(t *testing.T) {
	c, _ := newTestCart(t)
	p := testProduct("P001", "10.00", nil)
	c.Add(p, 1, false)

	catalog := new(MockCatalog)
	carts := new(MockCarts)

	err := c.Sync(context.Background(), carts, catalog)
	require.NoError(t, err)

	carts.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCart_SyncPersistsResolvableLines(t *testing.T) {
	userID := uuid.New()
	sess := session.New()
	c, err := New(sess, &userID, zerolog.Nop())
	require.NoError(t, err)

	p1 := testProduct("P001", "10.00", nil)
	p2 := testProduct("P002", "5.00", nil)
	c.Add(p1, 2, false)
	c.Add(p2, 1, false)

	catalog := new(MockCatalog)
	// P002 no longer resolves; it must not reach the durable cart.
	catalog.On("GetByIDs", mock.Anything, []string{"P001", "P002"}).
		Return([]model.Product{*p1}, nil)

	durable := &model.Cart{ID: uuid.New(), UserID: userID}
	carts := new(MockCarts)
	carts.On("GetOrCreate", mock.Anything, userID).Return(durable, nil)
	carts.On("ReplaceItems", mock.Anything, durable.ID, mock.MatchedBy(func(items []model.CartItem) bool {
		return len(items) == 1 && items[0].ProductID == "P001" && items[0].Quantity == 2
	})).Return(nil)

	require.NoError(t, c.Sync(context.Background(), carts, catalog))
	carts.AssertExpectations(t)
}

func TestCart_LoadWithoutDurableCartLeavesSessionUntouched(t *testing.T) {
	userID := uuid.New()
	sess := session.New()
	c, err := New(sess, &userID, zerolog.Nop())
	require.NoError(t, err)

	p := testProduct("P001", "10.00", nil)
	c.Add(p, 3, false)

	catalog := new(MockCatalog)
	carts := new(MockCarts)
	carts.On("GetByUser", mock.Anything, userID).Return(nil, nil)

	require.NoError(t, c.Load(context.Background(), carts, catalog))

	assert.Equal(t, 3, c.TotalItems())
	catalog.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCart_LoadResnapshotsPrices(t *testing.T) {
	userID := uuid.New()
	sess := session.New()
	c, err := New(sess, &userID, zerolog.Nop())
	require.NoError(t, err)

	// The session line holds a stale snapshot of 10.00.
	stale := testProduct("P001", "10.00", nil)
	c.Add(stale, 1, false)

	durable := &model.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []model.CartItem{
			{ProductID: "P001", Quantity: 4},
		},
	}

	// The catalogue now prices P001 at 12.50.
	current := testProduct("P001", "12.50", nil)
	catalog := new(MockCatalog)
	catalog.On("GetByIDs", mock.Anything, []string{"P001"}).
		Return([]model.Product{*current}, nil)

	carts := new(MockCarts)
	carts.On("GetByUser", mock.Anything, userID).Return(durable, nil)

	require.NoError(t, c.Load(context.Background(), carts, catalog))

	assert.Equal(t, 4, c.TotalItems())
	assert.True(t, dec("50.00").Equal(c.TotalPrice()),
		"load must re-snapshot from the current price, got %s", c.TotalPrice())
}

func TestCart_SyncLoadRoundTrip(t *testing.T) {
	userID := uuid.New()
	sess := session.New()
	c, err := New(sess, &userID, zerolog.Nop())
	require.NoError(t, err)

	p1 := testProduct("P001", "10.00", nil)
	p2 := testProduct("P002", "5.00", nil)
	c.Add(p1, 2, false)
	c.Add(p2, 7, false)

	catalog := new(MockCatalog)
	catalog.On("GetByIDs", mock.Anything, []string{"P001", "P002"}).
		Return([]model.Product{*p1, *p2}, nil)

	durable := &model.Cart{ID: uuid.New(), UserID: userID}
	carts := new(MockCarts)
	carts.On("GetOrCreate", mock.Anything, userID).Return(durable, nil)
	carts.On("ReplaceItems", mock.Anything, durable.ID, mock.Anything).
		Run(func(args mock.Arguments) {
			durable.Items = args.Get(2).([]model.CartItem)
		}).
		Return(nil)
	carts.On("GetByUser", mock.Anything, userID).Return(durable, nil)

	require.NoError(t, c.Sync(context.Background(), carts, catalog))

	// A fresh session on another device loads the same quantities.
	other, err := New(session.New(), &userID, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, other.Load(context.Background(), carts, catalog))

	assert.Equal(t, 9, other.TotalItems())
	assert.Equal(t, 2, other.Len())
}

// TestCart_ConcurrentSessionsLastWriteWins documents the accepted
// concurrency limitation: the engine does no locking, so two requests
// mutating the same session perform a non-atomic read-modify-write and the
// last session save wins.
func TestCart_ConcurrentSessionsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))

	p := testProduct("P001", "10.00", nil)

	// Two requests load the same session state independently.
	sessA, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)
	sessB, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)

	cartA, err := New(sessA, nil, zerolog.Nop())
	require.NoError(t, err)
	cartB, err := New(sessB, nil, zerolog.Nop())
	require.NoError(t, err)

	cartA.Add(p, 2, false)
	cartB.Add(p, 5, false)

	require.NoError(t, store.Save(ctx, sessA))
	require.NoError(t, store.Save(ctx, sessB))

	final, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)
	merged, err := New(final, nil, zerolog.Nop())
	require.NoError(t, err)

	// B's write clobbered A's; 7 would require locking the session.
	assert.Equal(t, 5, merged.TotalItems())
}
