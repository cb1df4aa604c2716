package routes

import (
	"github.com/go-chi/chi/v5"

	"easiernav/boreholed/internal/api"
	"easiernav/boreholed/internal/middleware"
)

const (
	PathAddBorehole   = "/add_borehole"
	PathAdd           = "/add"
	PathListBoreholes = "/get_boreholes"
	PathEasierNav     = "/easiernav"
)

// RegisterAPIRoutes registers the borehole create and list endpoints. Both
// historical paths are served for each.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	store := deps.Repo.Boreholes

	r.Group(func(write chi.Router) {
		write.Use(limiter.Middleware)
		write.Post(PathAddBorehole, api.AddBoreholeHandler(store))
		write.Post(PathAdd, api.AddBoreholeHandler(store))
	})

	r.Get(PathListBoreholes, api.ListBoreholesHandler(store))
	r.Get(PathEasierNav, api.ListBoreholesHandler(store))
}
