package ui

import (
	"net/http"
)

// FormField is one numeric or text input on the submission form.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Required bool
}

// BoreholeFormFields are rendered in this order.
var BoreholeFormFields = []FormField{
	{Name: "hole_id", Label: "Hole ID", Type: "text", Required: true},
	{Name: "azimuth", Label: "Azimuth", Type: "number", Required: true},
	{Name: "inclination", Label: "Inclination", Type: "number", Required: true},
	{Name: "depth", Label: "Depth", Type: "number", Required: true},
	{Name: "northing", Label: "Northing", Type: "number"},
	{Name: "easting", Label: "Easting", Type: "number"},
	{Name: "tvd", Label: "TVD", Type: "number"},
	{Name: "deviation", Label: "Deviation", Type: "number"},
}

// UIHandler serves the HTML front page
type UIHandler struct {
	addPath  string
	listPath string
}

// NewUIHandler points the page's script at the given create and list
// endpoints.
func NewUIHandler(addPath, listPath string) *UIHandler {
	return &UIHandler{addPath: addPath, listPath: listPath}
}

// HomeHandler renders the submission form and the borehole table, which the
// page fills from the list endpoint after load.
func (h *UIHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":    "Directional Drilling Management",
		"Fields":   BoreholeFormFields,
		"AddPath":  h.addPath,
		"ListPath": h.listPath,
	}
	_ = RenderTemplate(w, "index.html", data)
}
