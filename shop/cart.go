package shop

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/mytheresa/storefront/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddToCart describes one "add to cart" action. An empty Size means M and
// an empty Color means the product's first color.
type AddToCart struct {
	ProductID int64
	Color     string
	Size      models.Size
	Quantity  int
}

// CartItem is a cart line resolved against the current catalog.
type CartItem struct {
	Line     models.CartLine
	Product  models.Product
	Subtotal decimal.Decimal
}

type CartView struct {
	Items []CartItem
	Total decimal.Decimal
	// ItemCount sums the quantity of every stored line, resolved or not.
	ItemCount int
}

// CustomerInfo is the checkout form.
type CustomerInfo struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	PaymentMethod models.PaymentMethod
}

// Validate trims every field and checks that all of them are present and
// that the payment method is known.
func (c *CustomerInfo) Validate() error {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.PaymentMethod = models.PaymentMethod(strings.TrimSpace(string(c.PaymentMethod)))

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"full_name", c.FullName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"payment_method", string(c.PaymentMethod)},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "please fill all required fields", Fields: missing}
	}
	if !c.PaymentMethod.Valid() {
		return &ValidationError{Message: "unknown payment method", Fields: []string{"payment_method"}}
	}
	return nil
}

// AddToCart adds req to the cart and persists it. A line with the same
// product, color and size has its quantity increased instead of a new line
// being appended. Unknown products are ignored: the returned bool is false
// and nothing changes.
func (s *Store) AddToCart(ctx context.Context, req AddToCart) (models.CartLine, bool, error) {
	if req.Size == "" {
		req.Size = models.DefaultSize
	}
	if !req.Size.Valid() {
		return models.CartLine{}, false, &ValidationError{Message: "size must be one of S, M, L, XL", Fields: []string{"size"}}
	}
	if req.Quantity < 1 {
		return models.CartLine{}, false, &ValidationError{Message: "quantity must be at least 1", Fields: []string{"quantity"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.lookup(req.ProductID)
	if !ok {
		s.logger.Debug("ignoring unknown product", zap.Int64("product_id", req.ProductID))
		return models.CartLine{}, false, nil
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = product.FirstColor()
	}

	candidate := models.CartLine{
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Color:     color,
		Size:      req.Size,
		Price:     product.Price,
		Name:      product.Name,
		Image:     product.Image,
	}

	cart := slices.Clone(s.cart)
	idx := slices.IndexFunc(cart, func(l models.CartLine) bool {
		return l.Key() == candidate.Key()
	})
	if idx >= 0 {
		cart[idx].Quantity += req.Quantity
		candidate = cart[idx]
	} else {
		cart = append(cart, candidate)
	}

	if err := s.carts.SaveAll(ctx, cart); err != nil {
		return models.CartLine{}, false, err
	}
	s.cart = cart
	return candidate, true, nil
}

// ViewCart resolves every line against the current catalog. Lines whose
// product is gone are left out of Items and Total.
func (s *Store) ViewCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := CartView{
		Items: []CartItem{},
		Total: decimal.Zero,
	}
	for _, line := range s.cart {
		view.ItemCount += line.Quantity

		product, ok := s.lookup(line.ProductID)
		if !ok {
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, CartItem{
			Line:     line,
			Product:  cloneProduct(product),
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view
}

// CartLines returns the stored lines as they were persisted.
func (s *Store) CartLines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.cart)
}

// ClearCart empties the cart and removes its persisted slot.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.carts.Clear(ctx); err != nil {
		return err
	}
	s.cart = nil
	return nil
}

// Checkout places an order for the current cart. It fails with
// ErrEmptyCart or a *ValidationError without touching any state. On
// success the order is appended to the order log and the cart is cleared.
func (s *Store) Checkout(ctx context.Context, info CustomerInfo) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if err := info.Validate(); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:       uuid.New(),
		PlacedAt: s.now().UTC(),
		Customer: models.Customer{
			FullName: info.FullName,
			Email:    info.Email,
			Phone:    info.Phone,
			Address:  info.Address,
		},
		PaymentMethod: info.PaymentMethod,
		Items:         slices.Clone(s.cart),
		Total:         s.cartTotal(s.cart),
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return models.Order{}, err
	}

	s.cart = nil
	if err := s.carts.Clear(ctx); err != nil {
		s.logger.Error("order placed but persisted cart was not cleared",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("lines", len(order.Items)),
	)
	return order, nil
}

// Orders returns the order log, oldest first.
func (s *Store) Orders(ctx context.Context) ([]models.Order, error) {
	return s.orders.LoadAll(ctx)
}

// cartTotal prices lines at the current catalog price; lines whose product
// is gone count as zero. Callers hold s.mu.
func (s *Store) cartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if product, ok := s.lookup(line.ProductID); ok {
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	return total
}

func (s *Store) cartEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cart) == 0
}
