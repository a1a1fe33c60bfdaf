package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudpaste/cloudpaste/internal/middleware"
	"github.com/cloudpaste/cloudpaste/internal/models"
	"github.com/cloudpaste/cloudpaste/internal/services"
)

// PasteHandler serves the text-share endpoints.
type PasteHandler struct {
	pastes *services.PasteService
	admin  *services.AdminService
}

// NewPasteHandler creates the text-share handler.
func NewPasteHandler(pastes *services.PasteService, admin *services.AdminService) *PasteHandler {
	return &PasteHandler{pastes: pastes, admin: admin}
}

type createPasteRequest struct {
	Content    string `json:"content"`
	IsMarkdown bool   `json:"isMarkdown"`
	Password   string `json:"password"`
	ExpiresIn  string `json:"expiresIn"`
	CustomID   string `json:"customId"`
	MaxViews   int    `json:"maxViews"`
}

type createPasteResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Create handles POST /api/paste.
func (h *PasteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	isAdmin := middleware.IsAdmin(r, h.admin.VerifyCredentials)
	paste, err := h.pastes.Create(services.CreatePasteInput{
		Content:    req.Content,
		IsMarkdown: req.IsMarkdown,
		Password:   req.Password,
		ExpiresIn:  req.ExpiresIn,
		CustomID:   req.CustomID,
		MaxViews:   req.MaxViews,
	}, isAdmin)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, createPasteResponse{
		ID:  paste.Slug,
		URL: h.admin.ShareURL(models.KindPaste, paste.Slug),
	}, http.StatusCreated)
}

// Get handles GET /api/paste/{id}: the gated read.
func (h *PasteHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "id")

	paste, err := h.pastes.Get(slug, readAccess(r, h.admin.VerifyCredentials))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, paste, http.StatusOK)
}

// readAccess extracts the supplied share password and admin credential from
// a request. The password travels in the X-Password header, or a query
// parameter for browser navigations that cannot set headers.
func readAccess(r *http.Request, verify middleware.CredentialCheck) services.ReadAccess {
	password := r.Header.Get("X-Password")
	if password == "" {
		password = r.URL.Query().Get("password")
	}
	return services.ReadAccess{
		Password: password,
		IsAdmin:  middleware.IsAdmin(r, verify),
	}
}
