package resumeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns a router with the public résumé endpoints.
//
// When mounted at /api/resume:
//   - GET /api/resume/download          - Resolve the current résumé
//   - GET /api/resume/download/{fileID} - Stream a stored blob
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/download", h.ResolveHandler)
	r.Get("/download/{fileID}", h.StreamHandler)
	return r
}
