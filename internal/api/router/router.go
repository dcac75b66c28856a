package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/campusfind/lostfound-api/internal/contact"
	httpmiddleware "github.com/campusfind/lostfound-api/internal/http/middleware"
	"github.com/campusfind/lostfound-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ContactHandler     *contact.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// AdminJWTSecret guards the operator surface. When empty the admin
	// routes are left open (development only).
	AdminJWTSecret string

	// SubmitLimiter throttles the public submission endpoint when set.
	SubmitLimiter httpmiddleware.Limiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Route("/contact", func(r chi.Router) {
		// Public endpoints
		r.Group(func(public chi.Router) {
			if cfg.SubmitLimiter != nil {
				public.With(httpmiddleware.RateLimit(cfg.SubmitLimiter)).Post("/", cfg.ContactHandler.Submit)
			} else {
				public.Post("/", cfg.ContactHandler.Submit)
			}
			public.Get("/health", cfg.ContactHandler.Health)
		})

		// Operator surface (protected by JWT when a secret is configured)
		r.Group(func(admin chi.Router) {
			if cfg.AdminJWTSecret != "" {
				admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			}
			admin.Get("/", cfg.ContactHandler.List)
			admin.Get("/stats", cfg.ContactHandler.GetStats)
			admin.Get("/{id}", cfg.ContactHandler.GetByID)
			admin.Put("/{id}", cfg.ContactHandler.UpdateStatus)
		})
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
