package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/sadieom/BiblioMatch/internal/config"
	"github.com/sadieom/BiblioMatch/internal/handler"
	"github.com/sadieom/BiblioMatch/internal/metrics"
)

type routerDeps struct {
	health    *handler.HealthHandler
	recommend *handler.RecommendHandler
	auth      *handler.AuthHandler
	shelf     *handler.BookshelfHandler
	books     *handler.BookHandler
	admin     *handler.AdminModelHandler
}

func newRouter(cfg *config.Config, h routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", h.health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", h.auth.Register)
	r.Post("/auth/login", h.auth.Login)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		r.Post("/recommend", h.recommend.Recommend)
		r.Post("/taste_test", h.recommend.TasteTest)
		r.Get("/ws/taste_test", h.recommend.TasteTestWS)
		r.Get("/books/{isbn}/details", h.books.Details)
	})

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(handler.JWTAuth(cfg.JWTSecret))

		r.Get("/me", h.auth.Me)
		handler.MountBookshelfRoutes(r, h.shelf)

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())
			handler.MountAdminModelRoutes(r, h.admin)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
