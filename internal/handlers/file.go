package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cloudpaste/cloudpaste/internal/middleware"
	"github.com/cloudpaste/cloudpaste/internal/models"
	"github.com/cloudpaste/cloudpaste/internal/services"
)

// FileHandler serves the file-share endpoints.
type FileHandler struct {
	files *services.FileService
	admin *services.AdminService
}

// NewFileHandler creates the file-share handler.
func NewFileHandler(files *services.FileService, admin *services.AdminService) *FileHandler {
	return &FileHandler{files: files, admin: admin}
}

type uploadResult struct {
	FileID      string `json:"fileId,omitempty"`
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
	URL         string `json:"url,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// Upload handles POST /api/file: one or more files in a multipart form.
// Each file is accepted or rejected on its own; the request fails outright
// only when every file was rejected.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, "malformed multipart form", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	opts := services.FileOptions{
		Password:  r.FormValue("password"),
		ExpiresIn: r.FormValue("expiresIn"),
		CustomID:  r.FormValue("customId"),
	}
	if raw := r.FormValue("maxViews"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, "maxViews must be an integer", http.StatusBadRequest)
			return
		}
		opts.MaxViews = n
	}
	if opts.CustomID != "" && len(headers) > 1 {
		respondError(w, "a custom link requires a single file", http.StatusBadRequest)
		return
	}

	isAdmin := middleware.IsAdmin(r, h.admin.VerifyCredentials)
	results := make([]uploadResult, 0, len(headers))
	succeeded := 0
	for _, fh := range headers {
		file, err := h.files.Save(fh, opts, isAdmin)
		if err != nil {
			results = append(results, uploadResult{
				Filename: fh.Filename,
				Status:   "error",
				Message:  userMessage(err),
			})
			continue
		}
		succeeded++
		results = append(results, uploadResult{
			FileID:      file.Slug,
			Filename:    file.Filename,
			Status:      "success",
			SizeBytes:   file.SizeBytes,
			URL:         h.admin.ShareURL(models.KindFile, file.Slug),
			DownloadURL: h.admin.DownloadURL(file.Slug),
		})
	}

	status := http.StatusCreated
	if succeeded == 0 {
		status = http.StatusBadRequest
	}
	respondJSON(w, map[string]interface{}{"files": results}, status)
}

// Get handles GET /api/file/{id}: metadata by default, the blob itself with
// ?download=true.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("download") == "true" {
		h.serveDownload(w, r)
		return
	}

	slug := chi.URLParam(r, "id")
	file, err := h.files.Get(slug, readAccess(r, h.admin.VerifyCredentials))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, file, http.StatusOK)
}

// Download handles GET /download/{id}, the alias for a forced download.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveDownload(w, r)
}

func (h *FileHandler) serveDownload(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "id")

	file, err := h.files.Get(slug, readAccess(r, h.admin.VerifyCredentials))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	blob, err := h.files.Open(file)
	if err != nil {
		respondError(w, "failed to read file content", http.StatusInternalServerError)
		return
	}
	defer blob.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	io.Copy(w, blob)
}

// userMessage keeps expected rejections readable and hides everything else.
func userMessage(err error) string {
	var conflict *services.SlugConflictError
	switch {
	case errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrQuotaExceeded),
		errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrUploadDisabled):
		return err.Error()
	case errors.As(err, &conflict):
		return conflict.Error()
	default:
		return "upload failed"
	}
}
