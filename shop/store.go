// Package shop is the storefront's state: the merged catalog, the admin
// products, the cart and the order log. Store is the only way to read or
// change them.
package shop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/storage"
	"go.uber.org/zap"
)

// Store owns the catalog, admin products, cart and order log. It is safe
// for concurrent use.
//
// The catalog is rebuilt from the fetched records and the admin products
// after every change; it is never written back. Admin products override
// fetched records with the same id. Until the first successful fetch the
// catalog only holds admin products created since then.
type Store struct {
	mu sync.Mutex

	loader *Loader
	admin  *models.ListRepository[models.Product]
	carts  *models.ListRepository[models.CartLine]
	orders *models.ListRepository[models.Order]
	ids    *IDGenerator
	now    func() time.Time
	logger *zap.Logger

	fetched       []models.Product
	adminProducts []models.Product
	catalog       []models.Product
	byID          map[int64]int
	cart          []models.CartLine

	fetchedOK bool
	// admin product ids created before the first successful fetch
	created map[int64]bool
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for order timestamps and product ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(backend storage.Backend, loader *Loader, opts ...Option) *Store {
	s := &Store{
		loader:  loader,
		now:     time.Now,
		logger:  zap.NewNop(),
		byID:    map[int64]int{},
		created: map[int64]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.admin = models.NewListRepository[models.Product](backend, models.AdminProductsSlot, s.logger)
	s.carts = models.NewListRepository[models.CartLine](backend, models.CartSlot, s.logger)
	s.orders = models.NewListRepository[models.Order](backend, models.OrdersSlot, s.logger)
	s.ids = NewIDGenerator(s.now)
	return s
}

// Load reads the persisted admin products and cart, then fetches the
// catalog. A failed fetch is logged and returned as *LoadError and leaves
// the catalog empty; persisted admin products only show up once a fetch
// succeeds.
func (s *Store) Load(ctx context.Context) error {
	admin, err := s.admin.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin products: %w", err)
	}
	cart, err := s.carts.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	s.mu.Lock()
	for i := range admin {
		admin[i].Source = models.SourceAdmin
		s.ids.Observe(admin[i].ID)
	}
	s.adminProducts = admin
	s.cart = cart
	s.rebuild()
	s.mu.Unlock()

	return s.Reload(ctx)
}

// Reload fetches the catalog source again. On failure the previously
// fetched records are kept.
func (s *Store) Reload(ctx context.Context) error {
	fetched, err := s.loader.Load(ctx)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			s.logger.Error("error loading products",
				zap.String("source", loadErr.Source),
				zap.Error(loadErr.Err),
			)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range fetched {
		s.ids.Observe(p.ID)
	}
	s.fetched = fetched
	s.fetchedOK = true
	clear(s.created)
	s.rebuild()

	s.logger.Info("catalog loaded",
		zap.Int("fetched", len(fetched)),
		zap.Int("admin", len(s.adminProducts)),
	)
	return nil
}

// Products returns the merged catalog: fetched records first, then admin
// products.
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.catalog))
	for i, p := range s.catalog {
		out[i] = cloneProduct(p)
	}
	return out
}

// FilteredProducts returns one page of the catalog products matching
// filters, and the number of matches before paging.
func (s *Store) FilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Product
	for _, p := range s.catalog {
		if filters.Match(p) {
			matched = append(matched, p)
		}
	}
	total := int64(len(matched))

	start := min(max(offset, 0), len(matched))
	end := len(matched)
	if limit >= 0 {
		end = min(start+limit, len(matched))
	}

	page := make([]models.Product, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, cloneProduct(p))
	}
	return page, total
}

func (s *Store) ProductByID(id int64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.lookup(id)
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

// AdminProducts returns the products created through the admin API.
func (s *Store) AdminProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.adminProducts))
	for i, p := range s.adminProducts {
		out[i] = cloneProduct(p)
	}
	return out
}

func (s *Store) lookup(id int64) (models.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.catalog[i], true
}

// rebuild recomputes the merged catalog. Callers hold s.mu.
func (s *Store) rebuild() {
	admin := s.adminProducts
	if !s.fetchedOK {
		admin = nil
		for _, p := range s.adminProducts {
			if s.created[p.ID] {
				admin = append(admin, p)
			}
		}
	}

	shadowed := make(map[int64]bool, len(admin))
	for _, p := range admin {
		shadowed[p.ID] = true
	}

	catalog := make([]models.Product, 0, len(s.fetched)+len(admin))
	for _, p := range s.fetched {
		if !shadowed[p.ID] {
			catalog = append(catalog, p)
		}
	}
	catalog = append(catalog, admin...)

	byID := make(map[int64]int, len(catalog))
	for i, p := range catalog {
		byID[p.ID] = i
	}
	s.catalog = catalog
	s.byID = byID
}
