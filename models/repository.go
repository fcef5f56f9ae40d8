package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mytheresa/storefront/storage"
	"go.uber.org/zap"
)

// Slot names of the persisted collections.
const (
	AdminProductsSlot = "admin_products"
	CartSlot          = "cart"
	OrdersSlot        = "orders"
)

// ListRepository loads and saves a whole list of T as one JSON blob.
type ListRepository[T any] struct {
	backend storage.Backend
	name    string
	logger  *zap.Logger
}

func NewListRepository[T any](backend storage.Backend, name string, logger *zap.Logger) *ListRepository[T] {
	return &ListRepository[T]{
		backend: backend,
		name:    name,
		logger:  logger,
	}
}

// LoadAll returns the stored list. A missing or malformed blob yields an
// empty list; only backend failures are returned as errors.
func (r *ListRepository[T]) LoadAll(ctx context.Context) ([]T, error) {
	data, err := r.backend.Load(ctx, r.name)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.Warn("discarding malformed collection",
			zap.String("slot", r.name),
			zap.Error(err),
		)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll replaces the stored list with items.
func (r *ListRepository[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", r.name, err)
	}
	return r.backend.Save(ctx, r.name, data)
}

// Append reads the list, adds item at the end and writes it back.
func (r *ListRepository[T]) Append(ctx context.Context, item T) error {
	items, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	return r.SaveAll(ctx, append(items, item))
}

// Clear removes the stored list entirely.
func (r *ListRepository[T]) Clear(ctx context.Context) error {
	return r.backend.Remove(ctx, r.name)
}
