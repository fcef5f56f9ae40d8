package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// --- Stub catalog source ---

type stubSource struct {
	products []models.Product
	err      error
	calls    int
}

func (s *stubSource) Fetch(context.Context) ([]models.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out, nil
}

func (s *stubSource) Location() string {
	return "stub://products.json"
}

// --- Helpers ---

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func newTestProduct(id int64, name string, price float64, colors ...string) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.NewFromFloat(price),
		Image:       name + ".jpg",
		Colors:      colors,
		Rating:      4,
		Description: name,
	}
}

func suitCatalog() []models.Product {
	return []models.Product{newTestProduct(1, "Suit", 500, "Navy")}
}

// newTestStore loads a store over backend with the given catalog.
func newTestStore(t *testing.T, backend storage.Backend, catalog []models.Product, opts ...Option) *Store {
	t.Helper()

	opts = append([]Option{WithClock(fixedClock)}, opts...)
	store := New(backend, NewLoader(&stubSource{products: catalog}, time.Second), opts...)
	require.NoError(t, store.Load(context.Background()))
	return store
}

var errBoom = errors.New("boom")

// flakyBackend fails every Save while failSaves is set.
type flakyBackend struct {
	*storage.MemoryBackend
	failSaves bool
}

func (f *flakyBackend) Save(ctx context.Context, name string, data []byte) error {
	if f.failSaves {
		return errBoom
	}
	return f.MemoryBackend.Save(ctx, name, data)
}
