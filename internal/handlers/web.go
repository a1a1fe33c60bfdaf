package handlers

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/index.html
var indexDocument []byte

// WebHandler serves the frontend document and the legacy link redirects.
type WebHandler struct{}

// NewWebHandler creates the web handler.
func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

// Index serves the frontend document. The same document backs both the
// landing page and the share pages; it reads the share target from the URL.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexDocument)
}

// RedirectLegacy turns the old /{kind}/:id link shape into the canonical
// /share/{kind}/:id one.
func (h *WebHandler) RedirectLegacy(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		http.Redirect(w, r, "/share/"+kind+"/"+id, http.StatusMovedPermanently)
	}
}
