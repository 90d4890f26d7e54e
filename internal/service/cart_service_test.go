package service

import (
	"context"
	"errors"
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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id, price string) *model.Product {
	return &model.Product{
		ID:          id,
		Name:        "Product " + id,
		Category:    "gadgets",
		Price:       dec(price),
		Stock:       10,
		IsAvailable: true,
	}
}

func newCartService(products *MockProductRepository, carts *MockCartRepository) CartService {
	return NewCartService(products, carts, zerolog.Nop())
}

func TestCartService_AddRejectsNonPositiveQuantity(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)

	for _, quantity := range []int{0, -3} {
		_, err := svc.Add(context.Background(), session.New(), "p1", quantity, false)
		assert.ErrorIs(t, err, model.ErrInvalidQuantity)
	}

	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)

	products.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Add(context.Background(), session.New(), "ghost", 1, false)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	products.AssertExpectations(t)
}

func TestCartService_AddReturnsTotalsAndDirtiesSession(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()

	products.On("GetByID", mock.Anything, "p1").Return(testProduct("p1", "19.99"), nil)

	got, err := svc.Add(context.Background(), sess, "p1", 3, false)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalItems)
	assert.True(t, got.TotalPrice.Equal(dec("59.97")))
	assert.True(t, sess.Dirty())
	products.AssertExpectations(t)
}

func TestCartService_RemoveRequiresExistingProduct(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)

	products.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Remove(context.Background(), session.New(), "ghost")

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCartService_UpdateQuantityToZeroEmptiesLine(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()

	products.On("GetByID", mock.Anything, "p1").Return(testProduct("p1", "5.00"), nil)

	_, err := svc.Add(context.Background(), sess, "p1", 2, false)
	require.NoError(t, err)

	got, err := svc.UpdateQuantity(context.Background(), sess, "p1", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalItems)
	assert.True(t, got.TotalPrice.IsZero())
}

func TestCartService_ViewResolvesItems(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()

	p := testProduct("p1", "10.00")
	products.On("GetByID", mock.Anything, "p1").Return(p, nil)
	products.On("GetByIDs", mock.Anything, []string{"p1"}).Return([]model.Product{*p}, nil)

	_, err := svc.Add(context.Background(), sess, "p1", 2, false)
	require.NoError(t, err)

	view, err := svc.View(context.Background(), sess)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].Product.ID)
	assert.Equal(t, 2, view.TotalItems)
	assert.True(t, view.TotalPrice.Equal(dec("20.00")))
}

func TestCartService_LoginLoadsExistingDurableCart(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()
	userID := uuid.New()

	durable := &model.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []model.CartItem{
			{ID: uuid.New(), ProductID: "p9", Quantity: 4},
		},
	}
	p := testProduct("p9", "2.50")

	carts.On("GetByUser", mock.Anything, userID).Return(durable, nil).Twice()
	products.On("GetByIDs", mock.Anything, []string{"p9"}).Return([]model.Product{*p}, nil)

	err := svc.Login(context.Background(), sess, userID)
	require.NoError(t, err)

	// The durable cart replaced whatever the session held.
	view, err := svc.View(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalItems)
	assert.True(t, view.TotalPrice.Equal(dec("10.00")))
	assert.Equal(t, &userID, session.UserID(sess))

	carts.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_LoginPersistsSessionCartWhenNoDurableCart(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()
	userID := uuid.New()

	p := testProduct("p1", "10.00")
	products.On("GetByID", mock.Anything, "p1").Return(p, nil)
	products.On("GetByIDs", mock.Anything, []string{"p1"}).Return([]model.Product{*p}, nil)

	_, err := svc.Add(context.Background(), sess, "p1", 2, false)
	require.NoError(t, err)

	durable := &model.Cart{ID: uuid.New(), UserID: userID}
	carts.On("GetByUser", mock.Anything, userID).Return(nil, nil)
	carts.On("GetOrCreate", mock.Anything, userID).Return(durable, nil)
	carts.On("ReplaceItems", mock.Anything, durable.ID, mock.MatchedBy(func(items []model.CartItem) bool {
		return len(items) == 1 && items[0].ProductID == "p1" && items[0].Quantity == 2
	})).Return(nil)

	err = svc.Login(context.Background(), sess, userID)
	require.NoError(t, err)

	carts.AssertExpectations(t)
}

func TestCartService_LoginWithEmptyCartAndNoDurableCartSkipsSync(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()
	userID := uuid.New()

	carts.On("GetByUser", mock.Anything, userID).Return(nil, nil)

	err := svc.Login(context.Background(), sess, userID)
	require.NoError(t, err)

	carts.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_LogoutSyncsThenClears(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()
	userID := uuid.New()

	p := testProduct("p1", "10.00")
	products.On("GetByID", mock.Anything, "p1").Return(p, nil)
	products.On("GetByIDs", mock.Anything, []string{"p1"}).Return([]model.Product{*p}, nil)

	_, err := svc.Add(context.Background(), sess, "p1", 1, false)
	require.NoError(t, err)
	require.NoError(t, session.SetUserID(sess, &userID))

	durable := &model.Cart{ID: uuid.New(), UserID: userID}
	carts.On("GetOrCreate", mock.Anything, userID).Return(durable, nil)
	carts.On("ReplaceItems", mock.Anything, durable.ID, mock.Anything).Return(nil)

	err = svc.Logout(context.Background(), sess)
	require.NoError(t, err)

	assert.Nil(t, session.UserID(sess))
	view, err := svc.View(context.Background(), sess)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	carts.AssertExpectations(t)
}

func TestCartService_LogoutWithoutUserOnlyClears(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)
	sess := session.New()

	p := testProduct("p1", "10.00")
	products.On("GetByID", mock.Anything, "p1").Return(p, nil)

	_, err := svc.Add(context.Background(), sess, "p1", 1, false)
	require.NoError(t, err)

	err = svc.Logout(context.Background(), sess)
	require.NoError(t, err)

	carts.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_AddPropagatesRepositoryError(t *testing.T) {
	products := new(MockProductRepository)
	carts := new(MockCartRepository)
	svc := newCartService(products, carts)

	products.On("GetByID", mock.Anything, "p1").Return(nil, errors.New("connection refused"))

	_, err := svc.Add(context.Background(), session.New(), "p1", 1, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get product")
}
