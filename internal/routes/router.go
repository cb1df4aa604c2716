package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"easiernav/boreholed/internal/api"
	"easiernav/boreholed/internal/logging"
	"easiernav/boreholed/internal/middleware"
)

// Options carries the router settings that come from configuration.
type Options struct {
	UpSince        time.Time
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// RegisterRoutes builds the chi router serving the UI, the borehole API and
// the health check.
func RegisterRoutes(deps *api.Dependencies, opts Options) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(chimw.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	r.Get("/healthCheck", api.HealthCheckHandler(deps.Health, opts.UpSince))

	limiter := middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, deps.Metrics)

	RegisterUIRoutes(r)
	RegisterAPIRoutes(r, deps, limiter)

	logging.Info("Router initialized",
		"cors_origins", origins,
		"rate_limit_rps", opts.RateLimitRPS,
	)
	return r
}
