package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/shop"
)

type CreateResponse struct {
	Message string          `json:"message"`
	Product catalog.Product `json:"product"`
}

type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

type ReloadResponse struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
}

type AdminProvider interface {
	AdminProducts() []models.Product
	Products() []models.Product
	CreateProduct(ctx context.Context, fields shop.ProductFields) (models.Product, error)
	DeleteProduct(ctx context.Context, id int64, confirm shop.Confirmation) (bool, error)
	Reload(ctx context.Context) error
}

type AdminHandler struct {
	repo AdminProvider
}

func NewAdminHandler(r AdminProvider) *AdminHandler {
	return &AdminHandler{repo: r}
}

func (h *AdminHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	products := h.repo.AdminProducts()

	response := make([]catalog.Product, len(products))
	for i, p := range products {
		response[i] = catalog.NewProduct(p)
	}

	api.RespondJSON(w, http.StatusOK, response)
}

func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        api.FormValue `json:"name"`
		Price       api.FormValue `json:"price"`
		Image       api.FormValue `json:"image"`
		Colors      api.FormValue `json:"colors"`
		Rating      api.FormValue `json:"rating"`
		Description api.FormValue `json:"description"`
	}

	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.RespondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := h.repo.CreateProduct(r.Context(), shop.ProductFields{
		Name:        string(input.Name),
		Price:       string(input.Price),
		Image:       string(input.Image),
		Colors:      string(input.Colors),
		Rating:      string(input.Rating),
		Description: string(input.Description),
	})
	var validationErr *shop.ValidationError
	if errors.As(err, &validationErr) {
		api.RespondError(w, http.StatusBadRequest, "Price and rating must be valid numbers", validationErr.Fields...)
		return
	}
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	api.RespondJSON(w, http.StatusCreated, CreateResponse{
		Message: "Product added successfully!",
		Product: catalog.NewProduct(product),
	})
}

// HandleDelete removes an admin product. The caller confirms the deletion
// with ?confirm=true; without it nothing is removed.
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(api.PathParam(r, "id"), 10, 64)
	if err != nil {
		api.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	asked := false
	deleted, err := h.repo.DeleteProduct(r.Context(), id, func(models.Product) bool {
		asked = true
		return confirmed
	})
	if err != nil {
		api.RespondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	resp := DeleteResponse{Deleted: deleted}
	switch {
	case deleted:
		resp.Message = "Product deleted successfully"
	case asked:
		resp.Message = "Deletion not confirmed"
	default:
		resp.Message = "Only admin products can be deleted"
	}
	api.RespondJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Reload(r.Context()); err != nil {
		api.RespondError(w, http.StatusBadGateway, "failed to load catalog")
		return
	}

	api.RespondJSON(w, http.StatusOK, ReloadResponse{
		Message: "Catalog reloaded",
		Total:   len(h.repo.Products()),
	})
}
