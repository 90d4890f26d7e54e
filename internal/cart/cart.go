// Package cart implements the session-based shopping cart and its
// reconciliation with the durable per-user cart.
//
// Cart state lives in the session as a map of product ID to a quantity plus
// a unit price snapshotted when the line was first added, so later price or
// discount changes never retroactively alter an existing line. The engine
// performs no internal locking: two requests racing on the same session are
// a last-write-wins at the session store, which is an accepted limitation.
package cart

import (
	"context"
	"fmt"
	"sort"

	"storefront/internal/model"
	"storefront/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Line is one product's entry in the session cart.
type Line struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Item is a cart line joined with its live product for display.
type Item struct {
	Product    model.Product   `json:"product"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Catalog is the read-only product lookup the engine resolves lines against.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// Carts is the durable persistence contract for per-user carts.
type Carts interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []model.CartItem) error
}

// Cart manages the cart stored in one session, optionally bound to an
// authenticated user for durable reconciliation.
type Cart struct {
	sess   *session.Session
	userID *uuid.UUID
	lines  map[string]Line
	logger zerolog.Logger
}

// New builds a cart engine over the given session, creating an empty cart
// if the session has none. The engine owns the decoded line map; every
// mutation writes it back to the session and marks the session dirty, so the
// caller decides when to flush the session to its store.
func New(sess *session.Session, userID *uuid.UUID, logger zerolog.Logger) (*Cart, error) {
	lines := make(map[string]Line)
	if _, err := sess.Get(session.KeyCart, &lines); err != nil {
		return nil, fmt.Errorf("failed to read cart from session: %w", err)
	}

	return &Cart{
		sess:   sess,
		userID: userID,
		lines:  lines,
		logger: logger.With().Str("component", "cart").Logger(),
	}, nil
}

// save writes the line map back to the session, marking it dirty.
func (c *Cart) save() {
	// Marshalling a map of concrete values cannot fail.
	_ = c.sess.Set(session.KeyCart, c.lines)
}

// Add puts a product into the cart or adjusts its quantity. When the line is
// new its unit price is snapshotted from the product's current discounted
// price. With override the quantity is set directly, otherwise it is added
// to the existing quantity.
//
// No lower bound is enforced here; unlike UpdateQuantity, a non-positive
// quantity does not remove the line. The HTTP layer validates quantity >= 1
// before calling in.
func (c *Cart) Add(product *model.Product, quantity int, override bool) {
	line, ok := c.lines[product.ID]
	if !ok {
		line = Line{Quantity: 0, Price: product.DiscountedPrice()}
	}

	if override {
		line.Quantity = quantity
	} else {
		line.Quantity += quantity
	}
	c.lines[product.ID] = line
	c.save()

	c.logger.Debug().
		Str("product_id", product.ID).
		Int("quantity", line.Quantity).
		Bool("override", override).
		Msg("cart line updated")
}

// Remove deletes the product's line. Removing an absent product is a no-op.
func (c *Cart) Remove(product *model.Product) {
	if _, ok := c.lines[product.ID]; ok {
		delete(c.lines, product.ID)
		c.save()
	}
}

// UpdateQuantity sets a line's quantity directly. A quantity of zero or less
// removes the line. Products not already in the cart are left untouched; this
// never creates a line.
func (c *Cart) UpdateQuantity(product *model.Product, quantity int) {
	line, ok := c.lines[product.ID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.Remove(product)
		return
	}
	line.Quantity = quantity
	c.lines[product.ID] = line
	c.save()
}

// TotalPrice returns the exact decimal sum of snapshot price times quantity
// over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// TotalItems returns the number of units across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear removes the cart container from the session entirely.
func (c *Cart) Clear() {
	c.lines = make(map[string]Line)
	c.sess.Delete(session.KeyCart)
}

// Items resolves each line against the catalogue and returns displayable
// items ordered by product ID. Lines whose product no longer exists are
// silently skipped; they stay in the session and are purged lazily on the
// next durable sync.
func (c *Cart) Items(ctx context.Context, catalog Catalog) ([]Item, error) {
	if len(c.lines) == 0 {
		return []Item{}, nil
	}

	ids := make([]string, 0, len(c.lines))
	for id := range c.lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products, err := catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]Item, 0, len(c.lines))
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			c.logger.Debug().Str("product_id", id).Msg("skipping cart line for missing product")
			continue
		}
		line := c.lines[id]
		items = append(items, Item{
			Product:    product,
			Quantity:   line.Quantity,
			Price:      line.Price,
			TotalPrice: line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	return items, nil
}

// Sync overwrites the user's durable cart with the current session cart.
// Only lines that still resolve in the catalogue are persisted; the replace
// is a single transaction so no observer sees a half-written cart. Without
// an authenticated user this is a silent no-op.
func (c *Cart) Sync(ctx context.Context, carts Carts, catalog Catalog) error {
	if c.userID == nil {
		return nil
	}

	items, err := c.Items(ctx, catalog)
	if err != nil {
		return fmt.Errorf("failed to collect cart items for sync: %w", err)
	}

	durable, err := carts.GetOrCreate(ctx, *c.userID)
	if err != nil {
		return fmt.Errorf("failed to get or create durable cart: %w", err)
	}

	cartItems := make([]model.CartItem, len(items))
	for i, item := range items {
		cartItems[i] = model.CartItem{
			ID:        uuid.New(),
			CartID:    durable.ID,
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}

	if err := carts.ReplaceItems(ctx, durable.ID, cartItems); err != nil {
		return fmt.Errorf("failed to replace durable cart items: %w", err)
	}

	c.logger.Debug().
		Str("user_id", c.userID.String()).
		Int("lines", len(cartItems)).
		Msg("session cart synced to database")

	return nil
}

// Load replaces the session cart with the user's durable cart, if one
// exists. Unit prices are re-snapshotted from the current discounted prices,
// intentionally discarding any session-only snapshots. When no durable cart
// exists the session cart is left untouched. Without an authenticated user
// this is a silent no-op.
func (c *Cart) Load(ctx context.Context, carts Carts, catalog Catalog) error {
	if c.userID == nil {
		return nil
	}

	durable, err := carts.GetByUser(ctx, *c.userID)
	if err != nil {
		return fmt.Errorf("failed to load durable cart: %w", err)
	}
	if durable == nil {
		return nil
	}

	ids := make([]string, len(durable.Items))
	for i, item := range durable.Items {
		ids[i] = item.ProductID
	}

	products, err := catalog.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve durable cart products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	c.lines = make(map[string]Line, len(durable.Items))
	for _, item := range durable.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		c.lines[item.ProductID] = Line{
			Quantity: item.Quantity,
			Price:    product.DiscountedPrice(),
		}
	}
	c.save()

	c.logger.Debug().
		Str("user_id", c.userID.String()).
		Int("lines", len(c.lines)).
		Msg("session cart loaded from database")

	return nil
}
