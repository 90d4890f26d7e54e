// Package router wires handlers and middleware into the HTTP surface.
package router

import (
	"net/http"
	"time"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options carries everything the router needs beyond the handlers.
type Options struct {
	SessionStore  session.Store
	SessionCookie string
	SessionTTL    time.Duration
	APIKey        string
	MediaDir      string // empty when media is served from S3
	Visitors      service.VisitorService
	Logger        zerolog.Logger
}

// New creates the HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	sessionHandler *handler.SessionHandler,
	reviewHandler *handler.ReviewHandler,
	dashboardHandler *handler.DashboardHandler,
	opts Options,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.Logging(opts.Logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Storefront routes carry a session and count page views.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(opts.SessionStore, opts.SessionCookie, opts.SessionTTL, opts.Logger))
		r.Use(middleware.Tracker(opts.Visitors))

		r.Get("/api/products", productHandler.List)
		r.Get("/api/products/{id}", productHandler.Get)
		r.Get("/api/products/{id}/reviews", reviewHandler.ListProductReviews)
		r.Post("/api/products/{id}/reviews", reviewHandler.CreateProductReview)

		r.Get("/api/site-reviews", reviewHandler.ListSiteReviews)
		r.Post("/api/site-reviews", reviewHandler.CreateSiteReview)

		r.Get("/api/cart", cartHandler.View)
		r.Get("/api/cart/info", cartHandler.Info)
		r.Post("/api/cart/add", cartHandler.Add)
		r.Post("/api/cart/remove", cartHandler.Remove)
		r.Post("/api/cart/update", cartHandler.Update)

		r.Post("/api/session/login", sessionHandler.Login)
		r.Post("/api/session/logout", sessionHandler.Logout)
	})

	// Dashboard routes are protected by the API key.
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(opts.APIKey, opts.Logger))

		r.Get("/products", dashboardHandler.ListProducts)
		r.Post("/products", dashboardHandler.CreateProduct)
		r.Put("/products/{id}", dashboardHandler.UpdateProduct)
		r.Patch("/products/{id}", dashboardHandler.PatchProduct)
		r.Delete("/products/{id}", dashboardHandler.DeleteProduct)
		r.Post("/products/{id}/availability", dashboardHandler.ToggleAvailability)
		r.Post("/products/{id}/image", dashboardHandler.UploadImage)

		r.Get("/visitors", dashboardHandler.Visitors)
		r.Get("/purchases", dashboardHandler.Purchases)
	})

	// Locally stored product images.
	if opts.MediaDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir)))
		r.Get("/media/*", fs.ServeHTTP)
	}

	return r
}
