package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	mw "github.com/cloudpaste/cloudpaste/internal/middleware"
	"github.com/cloudpaste/cloudpaste/internal/services"
)

// NewRouter wires every route of the HTTP surface.
func NewRouter(log zerolog.Logger, pastes *services.PasteService, files *services.FileService, admin *services.AdminService) chi.Router {
	ph := NewPasteHandler(pastes, admin)
	fh := NewFileHandler(files, admin)
	ah := NewAdminHandler(admin, pastes, files)
	wh := NewWebHandler()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))

		r.Post("/paste", ph.Create)
		r.Get("/paste/{id}", ph.Get)
		r.Post("/file", fh.Upload)
		r.Get("/file/{id}", fh.Get)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", ah.Login)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin(admin.VerifyCredentials))

				r.Get("/shares", ah.ListShares)
				r.Get("/storage", ah.GetStorage)
				r.Get("/upload-status", ah.GetUploadStatus)
				r.Put("/upload-status", ah.SetUploadStatus)
				r.Put("/paste/{id}/content", ah.UpdatePasteContent)
				r.Put("/file/{id}/settings", ah.UpdateFileSettings)
				r.Delete("/{kind}/{id}", ah.DeleteShare)
				r.Put("/{kind}/{id}/password", ah.SetPassword)
			})
		})
	})

	r.Get("/download/{id}", fh.Download)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// frontend document and legacy link shapes
	r.Get("/", wh.Index)
	r.Get("/share/{kind}/{id}", wh.Index)
	r.Get("/paste/{id}", wh.RedirectLegacy("paste"))
	r.Get("/file/{id}", wh.RedirectLegacy("file"))

	return r
}
