package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudpaste/cloudpaste/internal/models"
	"github.com/cloudpaste/cloudpaste/internal/services"
)

// AdminHandler serves the management endpoints. All of them except Login
// sit behind the basic-auth middleware.
type AdminHandler struct {
	admin  *services.AdminService
	pastes *services.PasteService
	files  *services.FileService
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(admin *services.AdminService, pastes *services.PasteService, files *services.FileService) *AdminHandler {
	return &AdminHandler{admin: admin, pastes: pastes, files: files}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login. On success it echoes the basic-auth
// credential the client should present on subsequent requests; there are no
// sessions or tokens.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if !h.admin.VerifyCredentials(req.Username, req.Password) {
		respondError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(req.Username + ":" + req.Password))
	respondJSON(w, map[string]string{
		"status":      "success",
		"credentials": credentials,
	}, http.StatusOK)
}

// ListShares handles GET /api/admin/shares.
func (h *AdminHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.admin.ListShares()
	if err != nil {
		respondError(w, "failed to list shares", http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]interface{}{"shares": shares}, http.StatusOK)
}

func shareKind(r *http.Request) (models.ShareKind, bool) {
	kind := models.ShareKind(chi.URLParam(r, "kind"))
	return kind, kind.Valid()
}

// DeleteShare handles DELETE /api/admin/{kind}/{id}.
func (h *AdminHandler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	kind, ok := shareKind(r)
	if !ok {
		respondError(w, "unknown share kind", http.StatusBadRequest)
		return
	}
	if err := h.admin.DeleteShare(kind, chi.URLParam(r, "id")); err != nil {
		respondError(w, "failed to delete share", http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]string{"status": "success"}, http.StatusOK)
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

// SetPassword handles PUT /api/admin/{kind}/{id}/password. An empty
// password clears the gate and the share becomes public.
func (h *AdminHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	kind, ok := shareKind(r)
	if !ok {
		respondError(w, "unknown share kind", http.StatusBadRequest)
		return
	}
	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := h.admin.SetSharePassword(kind, chi.URLParam(r, "id"), req.Password); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, "share not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to update password", http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]string{"status": "success"}, http.StatusOK)
}

type updatePasteRequest struct {
	Content    string `json:"content"`
	IsMarkdown bool   `json:"isMarkdown"`
	ExpiresIn  string `json:"expiresIn"`
	MaxViews   int    `json:"maxViews"`
}

// editResponse returns the refreshed lifecycle triple so the caller can
// update its view without a second read.
type editResponse struct {
	ExpiresAt interface{} `json:"expiresAt"`
	MaxViews  int         `json:"maxViews"`
	ViewCount int         `json:"viewCount"`
}

// UpdatePasteContent handles PUT /api/admin/paste/{id}/content.
func (h *AdminHandler) UpdatePasteContent(w http.ResponseWriter, r *http.Request) {
	var req updatePasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	paste, err := h.pastes.Update(chi.URLParam(r, "id"), services.UpdatePasteInput{
		Content:    req.Content,
		IsMarkdown: req.IsMarkdown,
		ExpiresIn:  req.ExpiresIn,
		MaxViews:   req.MaxViews,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, editResponse{
		ExpiresAt: paste.ExpiresAt,
		MaxViews:  paste.MaxViews,
		ViewCount: paste.ViewCount,
	}, http.StatusOK)
}

type updateFileRequest struct {
	ExpiresIn string `json:"expiresIn"`
	MaxViews  int    `json:"maxViews"`
}

// UpdateFileSettings handles PUT /api/admin/file/{id}/settings.
func (h *AdminHandler) UpdateFileSettings(w http.ResponseWriter, r *http.Request) {
	var req updateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	file, err := h.files.UpdateSettings(chi.URLParam(r, "id"), req.ExpiresIn, req.MaxViews)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, editResponse{
		ExpiresAt: file.ExpiresAt,
		MaxViews:  file.MaxViews,
		ViewCount: file.ViewCount,
	}, http.StatusOK)
}

// GetUploadStatus handles GET /api/admin/upload-status.
func (h *AdminHandler) GetUploadStatus(w http.ResponseWriter, r *http.Request) {
	toggles, err := h.admin.GetUploadToggles()
	if err != nil {
		respondError(w, "failed to read upload status", http.StatusInternalServerError)
		return
	}
	respondJSON(w, toggles, http.StatusOK)
}

// SetUploadStatus handles PUT /api/admin/upload-status.
func (h *AdminHandler) SetUploadStatus(w http.ResponseWriter, r *http.Request) {
	var toggles services.UploadToggles
	if err := json.NewDecoder(r.Body).Decode(&toggles); err != nil {
		respondError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := h.admin.SetUploadToggles(toggles); err != nil {
		respondError(w, "failed to update upload status", http.StatusInternalServerError)
		return
	}
	respondJSON(w, toggles, http.StatusOK)
}

// GetStorage handles GET /api/admin/storage.
func (h *AdminHandler) GetStorage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.admin.GetStorageUsage()
	if err != nil {
		respondError(w, "failed to compute storage usage", http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]interface{}{"storage": usage}, http.StatusOK)
}
