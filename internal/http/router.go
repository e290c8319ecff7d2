package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/VasKaleev/internetmag-comp/docs"
	"github.com/VasKaleev/internetmag-comp/internal/http/handlers"
	rl "github.com/VasKaleev/internetmag-comp/internal/http/rate_limiter"
)

// NewRouter wires the API routes. limiter may be nil to disable rate limiting.
func NewRouter(srv *handlers.Server, limiter *rl.Limiter, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}

	r.Get("/healthz", srv.Health)

	r.Get("/products", srv.ListProducts)
	r.Get("/products/{id}", srv.GetProduct)
	r.Get("/categories", srv.ListCategories)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", srv.GetCart)
		r.Delete("/", srv.ClearCart)
		r.Get("/count", srv.GetCartCount)
		r.Post("/order", srv.PlaceOrder)
		r.Post("/items/{id}", srv.AddCartItem)
		r.Patch("/items/{id}", srv.ChangeCartItem)
		r.Delete("/items/{id}", srv.RemoveCartItem)
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	return r
}
