package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/middleware"
)

type RouterOptions struct {
	Logger           zerolog.Logger
	CORSAllowOrigins []string
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Logger)...)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(opts.CORSAllowOrigins))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{productId}", h.GetProduct)

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{orderId}", h.GetOrder)

		r.Get("/reference/categories", h.Categories)
		r.Get("/reference/units", h.Units)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Delete("/", h.EndSession)
			r.Get("/cart", h.GetCart)
			r.Post("/cart/items", h.AddItem)
			r.Put("/cart/items/{productId}", h.UpdateItem)
			r.Delete("/cart/items/{productId}", h.RemoveItem)
		})
	})

	return r
}
