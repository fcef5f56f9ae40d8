package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/shop"
)

type Response struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

type Item struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type AddResponse struct {
	Added     bool   `json:"added"`
	Message   string `json:"message,omitempty"`
	ItemCount int    `json:"itemCount"`
}

type CartProvider interface {
	AddToCart(ctx context.Context, req shop.AddToCart) (models.CartLine, bool, error)
	ViewCart() shop.CartView
	ClearCart(ctx context.Context) error
}

type CartHandler struct {
	repo CartProvider
}

func NewCartHandler(r CartProvider) *CartHandler {
	return &CartHandler{repo: r}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view := h.repo.ViewCart()

	items := make([]Item, len(view.Items))
	for i, it := range view.Items {
		items[i] = Item{
			ProductID: it.Line.ProductID,
			Name:      it.Product.Name,
			Image:     it.Product.Image,
			Color:     it.Line.Color,
			Size:      it.Line.Size.String(),
			Quantity:  it.Line.Quantity,
			Price:     it.Product.Price.InexactFloat64(),
			Subtotal:  it.Subtotal.InexactFloat64(),
		}
	}

	api.RespondJSON(w, http.StatusOK, Response{
		Items:     items,
		Total:     view.Total.InexactFloat64(),
		ItemCount: view.ItemCount,
	})
}

// HandleAdd adds a product to the cart. Size defaults to M, color to the
// product's first color and quantity to 1. Unknown products are ignored.
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID int64  `json:"productId"`
		Color     string `json:"color"`
		Size      string `json:"size"`
		Quantity  *int   `json:"quantity"`
	}

	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	line, added, err := h.repo.AddToCart(r.Context(), shop.AddToCart{
		ProductID: input.ProductID,
		Color:     input.Color,
		Size:      models.Size(input.Size),
		Quantity:  quantity,
	})
	var validationErr *shop.ValidationError
	if errors.As(err, &validationErr) {
		api.RespondError(w, http.StatusBadRequest, validationErr.Message, validationErr.Fields...)
		return
	}
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	resp := AddResponse{
		Added:     added,
		ItemCount: h.repo.ViewCart().ItemCount,
	}
	if added {
		resp.Message = fmt.Sprintf("%d %s(s) added to cart", quantity, line.Name)
	}
	api.RespondJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ClearCart(r.Context()); err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	api.RespondJSON(w, http.StatusOK, api.MessageResponse{Message: "Cart cleared"})
}
