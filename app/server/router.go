// Package server wires the storefront handlers onto a chi router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/admin"
	"github.com/mytheresa/storefront/app/advice"
	"github.com/mytheresa/storefront/app/api"
	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/orders"
	"github.com/mytheresa/storefront/shop"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
}

func NewRouter(store *shop.Store, logger *zap.Logger) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(store)
	adminHandler := admin.NewAdminHandler(store)
	cartHandler := cart.NewCartHandler(store)
	orderHandler := orders.NewOrderHandler(store)
	adviceHandler := advice.NewAdviceHandler()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api.RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.RespondJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Products: len(store.Products()),
		})
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleGet)
		r.Get("/{id}", catalogHandler.HandleGetProduct)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/products", adminHandler.HandleGetAll)
		r.Post("/products", adminHandler.HandleCreate)
		r.Delete("/products/{id}", adminHandler.HandleDelete)
		r.Post("/catalog/reload", adminHandler.HandleReload)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.HandleGet)
		r.Delete("/", cartHandler.HandleClear)
		r.Post("/items", cartHandler.HandleAdd)
	})

	r.Post("/checkout", orderHandler.HandleCheckout)
	r.Get("/orders", orderHandler.HandleGetAll)
	r.Post("/advisor", adviceHandler.HandleRecommend)

	return r
}
