package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Colors      []string `json:"colors"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
}

// NewProduct maps a catalog product to its JSON representation.
func NewProduct(p models.Product) Product {
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
		Colors:      colors,
		Rating:      p.Rating,
		Description: p.Description,
		Source:      string(p.Source),
	}
}

type ProductProvider interface {
	FilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64)
	ProductByID(id int64) (models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		Color:         r.URL.Query().Get("color"),
		PriceLessThan: priceFilter,
	}

	res, total := h.repo.FilteredProducts(offset, limit, filters)

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = NewProduct(p)
	}

	api.RespondJSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(api.PathParam(r, "id"), 10, 64)
	if err != nil {
		api.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.repo.ProductByID(id)
	if errors.Is(err, models.ErrProductNotFound) {
		api.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	api.RespondJSON(w, http.StatusOK, NewProduct(product))
}
