package routes

import (
	"github.com/go-chi/chi/v5"

	"easiernav/boreholed/ui"
)

// RegisterUIRoutes registers the HTML front page.
func RegisterUIRoutes(r chi.Router) {
	uiHandler := ui.NewUIHandler(PathAddBorehole, PathListBoreholes)
	r.Get("/", uiHandler.HomeHandler)
}
