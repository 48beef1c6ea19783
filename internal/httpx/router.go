package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/feastly/storefront/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachSession)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/restaurants", handler.ListRestaurants)
	r.Get("/restaurants/{id}/menu", handler.GetMenu)
	r.Get("/restaurants/{id}/feedback", handler.GetRestaurantFeedback)
	r.Get("/restaurants/{id}/rating", handler.GetRestaurantRating)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Post("/items", handler.AddCartItem)
		r.Put("/items/{itemID}", handler.SetCartItemQuantity)
		r.Delete("/items/{itemID}", handler.RemoveCartItem)
	})

	r.Post("/checkout", handler.Checkout)

	r.Route("/orders/{id}", func(r chi.Router) {
		r.Get("/", handler.GetOrder)
		r.Put("/cancel", handler.CancelOrder)
		r.Post("/pay", handler.PayOrder)
	})

	r.Post("/feedback", handler.SubmitFeedback)

	return r
}
