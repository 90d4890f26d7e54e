package handler

import (
	"context"
	"io"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Add(ctx context.Context, sess *session.Session, productID string, quantity int, override bool) (*service.CartTotals, error) {
	args := m.Called(ctx, sess, productID, quantity, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartTotals), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, sess *session.Session, productID string) (*service.CartTotals, error) {
	args := m.Called(ctx, sess, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartTotals), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) (*service.CartTotals, error) {
	args := m.Called(ctx, sess, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartTotals), args.Error(1)
}

func (m *MockCartService) View(ctx context.Context, sess *session.Session) (*service.CartView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) Login(ctx context.Context, sess *session.Session, userID uuid.UUID) error {
	args := m.Called(ctx, sess, userID)
	return args.Error(0)
}

func (m *MockCartService) Logout(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Search(ctx context.Context, opts service.SearchOptions) (*service.CatalogPage, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CatalogPage), args.Error(1)
}

func (m *MockProductService) GetDetail(ctx context.Context, id string) (*service.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductDetail), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Patch(ctx context.Context, id string, patch model.ProductPatch) ([]string, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockProductService) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductService) AttachImage(ctx context.Context, id, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, id, filename, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockProductService) Stats(ctx context.Context) (*model.ProductStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductStats), args.Error(1)
}

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) AddProductReview(ctx context.Context, productID string, req *model.ReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) ListProductReviews(ctx context.Context, productID string) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) AddSiteReview(ctx context.Context, req *model.ReviewRequest) (*model.SiteReview, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteReview), args.Error(1)
}

func (m *MockReviewService) ListSiteReviews(ctx context.Context) ([]model.SiteReview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SiteReview), args.Error(1)
}
