package shop

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mytheresa/storefront/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultAdminRating = 4.5

// ProductFields is the admin authoring form, as submitted.
type ProductFields struct {
	Name        string
	Price       string
	Image       string
	Colors      string
	Rating      string
	Description string
}

// Confirmation asks whether p should really be deleted.
type Confirmation func(p models.Product) bool

// Confirmed approves every deletion.
func Confirmed(models.Product) bool { return true }

func (f ProductFields) parse() (models.Product, error) {
	var invalid []string

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || price.IsNegative() {
		invalid = append(invalid, "price")
	}

	rating := defaultAdminRating
	if raw := strings.TrimSpace(f.Rating); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil || math.IsNaN(r) || r < 0 || r > 5:
			invalid = append(invalid, "rating")
		case r != 0:
			rating = r
		}
	}

	if len(invalid) > 0 {
		return models.Product{}, &ValidationError{Message: "invalid number", Fields: invalid}
	}

	name := strings.TrimSpace(f.Name)
	description := strings.TrimSpace(f.Description)
	if description == "" {
		description = fmt.Sprintf("Premium %s crafted with the finest materials.", name)
	}

	return models.Product{
		Name:        name,
		Price:       price,
		Image:       strings.TrimSpace(f.Image),
		Colors:      splitColors(f.Colors),
		Rating:      rating,
		Description: description,
		Source:      models.SourceAdmin,
	}, nil
}

// splitColors splits the comma-separated color field and trims each piece.
// Empty pieces are kept, so a blank field gives one empty color.
func splitColors(raw string) []string {
	colors := strings.Split(raw, ",")
	for i, c := range colors {
		colors[i] = strings.TrimSpace(c)
	}
	return colors
}

// CreateProduct validates fields, assigns a fresh id and stores the new
// product in the admin list and the catalog.
func (s *Store) CreateProduct(ctx context.Context, fields ProductFields) (models.Product, error) {
	product, err := fields.parse()
	if err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.ids.Next()
	admin := append(slices.Clone(s.adminProducts), product)
	if err := s.admin.SaveAll(ctx, admin); err != nil {
		return models.Product{}, err
	}
	s.adminProducts = admin
	if !s.fetchedOK {
		s.created[product.ID] = true
	}
	s.rebuild()

	s.logger.Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
	)
	return cloneProduct(product), nil
}

// DeleteProduct removes an admin product once confirm approves it. Catalog
// products and unknown ids are left alone. The returned bool reports
// whether anything was deleted.
func (s *Store) DeleteProduct(ctx context.Context, id int64, confirm Confirmation) (bool, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.adminProducts, func(p models.Product) bool { return p.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	product := cloneProduct(s.adminProducts[idx])
	s.mu.Unlock()

	if confirm == nil || !confirm(product) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admin := slices.DeleteFunc(slices.Clone(s.adminProducts), func(p models.Product) bool { return p.ID == id })
	if len(admin) == len(s.adminProducts) {
		// deleted while confirming
		return false, nil
	}
	if err := s.admin.SaveAll(ctx, admin); err != nil {
		return false, err
	}
	s.adminProducts = admin
	s.rebuild()

	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return true, nil
}
