package contactapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Routes returns a router with the public contact endpoint.
//
// When mounted at /api/contact:
//   - POST /api/contact - Submit the contact form, rate limited per IP
func Routes(h *Handler, submitsPerMinute int) http.Handler {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(httprate.LimitByIP(submitsPerMinute, time.Minute))
		gr.Post("/", h.SubmitHandler)
	})

	return r
}
