package ui

import (
	"embed"
	"html/template"
	"net/http"

	"easiernav/boreholed/internal/logging"
)

//go:embed templates
var templateFS embed.FS

// RenderTemplate renders a page inside the base layout
func RenderTemplate(w http.ResponseWriter, templateName string, data map[string]interface{}) error {
	t, err := template.New("base.html").ParseFS(templateFS,
		"templates/layouts/base.html",
		"templates/"+templateName,
	)
	if err != nil {
		logging.Error("Error loading template", "template", templateName, "error", err.Error())
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		logging.Error("Error rendering template", "template", templateName, "error", err.Error())
		return err
	}

	return nil
}
