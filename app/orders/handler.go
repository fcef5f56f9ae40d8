package orders

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/shop"
)

type OrderResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Customer      models.Customer `json:"customer"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentLabel  string          `json:"paymentLabel"`
	Items         []Item          `json:"items"`
	Total         float64         `json:"total"`
}

type Item struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func NewOrderResponse(o models.Order) OrderResponse {
	items := make([]Item, len(o.Items))
	for i, l := range o.Items {
		items[i] = Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Color:     l.Color,
			Size:      l.Size.String(),
			Quantity:  l.Quantity,
			Price:     l.Price.InexactFloat64(),
		}
	}
	return OrderResponse{
		ID:            o.ID.String(),
		Date:          o.PlacedAt,
		Customer:      o.Customer,
		PaymentMethod: string(o.PaymentMethod),
		PaymentLabel:  o.PaymentMethod.Label(),
		Items:         items,
		Total:         o.Total.InexactFloat64(),
	}
}

type OrderProvider interface {
	Checkout(ctx context.Context, info shop.CustomerInfo) (models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
}

type OrderHandler struct {
	repo OrderProvider
}

func NewOrderHandler(r OrderProvider) *OrderHandler {
	return &OrderHandler{repo: r}
}

func (h *OrderHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.Orders(r.Context())
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = NewOrderResponse(o)
	}

	api.RespondJSON(w, http.StatusOK, response)
}

func (h *OrderHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName      string `json:"fullName"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		PaymentMethod string `json:"paymentMethod"`
	}

	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := h.repo.Checkout(r.Context(), shop.CustomerInfo{
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		PaymentMethod: models.PaymentMethod(input.PaymentMethod),
	})
	if errors.Is(err, shop.ErrEmptyCart) {
		api.RespondError(w, http.StatusConflict, "Your cart is empty!")
		return
	}
	var validationErr *shop.ValidationError
	if errors.As(err, &validationErr) {
		api.RespondError(w, http.StatusBadRequest, "Please fill all required fields!", validationErr.Fields...)
		return
	}
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	api.RespondJSON(w, http.StatusCreated, NewOrderResponse(order))
}
