package adminauth

import (
	"net/http"
	"time"

	"github.com/bhavyaverma/portfolio/internal/app/system/adminauth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Routes returns a router with the admin auth endpoints.
//
// When mounted at /api/admin:
//   - POST /api/admin/login           - Authenticate, rate limited per IP
//   - POST /api/admin/logout          - Deactivate the bearer session
//   - POST /api/admin/change-password - Change password (authenticated)
func Routes(h *Handler, svc *adminauth.Service, loginPerMinute int) http.Handler {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(httprate.LimitByIP(loginPerMinute, time.Minute))
		gr.Post("/login", h.LoginHandler)
	})

	r.Post("/logout", h.LogoutHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(svc.RequireAdmin)
		gr.Post("/change-password", h.ChangePasswordHandler)
	})

	return r
}
