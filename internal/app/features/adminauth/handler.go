// Package adminauth exposes the admin authentication endpoints: login,
// logout, and password change.
package adminauth

import (
	"errors"
	"net/http"

	"github.com/bhavyaverma/portfolio/internal/app/system/adminauth"
	"github.com/bhavyaverma/portfolio/internal/app/system/authutil"
	"github.com/bhavyaverma/portfolio/internal/app/system/jsonutil"
	"github.com/bhavyaverma/portfolio/internal/app/system/network"
	"go.uber.org/zap"
)

// Handler handles admin authentication requests.
type Handler struct {
	svc    *adminauth.Service
	logger *zap.Logger
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *adminauth.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler handles POST /login. Failures are always answered with
// the same generic message so the response does not reveal whether the
// username exists.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := jsonutil.Decode(r, &input); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}
	if input.Username == "" || input.Password == "" {
		jsonutil.BadRequest(w, "Username and password are required")
		return
	}

	result, err := h.svc.Login(r.Context(), input.Username, input.Password, network.GetClientIP(r))
	if err != nil {
		if errors.Is(err, adminauth.ErrInvalidCredentials) {
			jsonutil.Unauthorized(w, "Invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		jsonutil.InternalError(w, "Login failed")
		return
	}

	jsonutil.OK(w, map[string]any{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"admin":     result.Admin,
	})
}

// LogoutHandler handles POST /logout. Logout is idempotent: an unknown
// or already-inactive token still gets a success response.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token := adminauth.BearerToken(r)
	if token == "" {
		jsonutil.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		jsonutil.InternalError(w, "Logout failed")
		return
	}

	jsonutil.OK(w, map[string]any{"success": true, "message": "Logged out"})
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePasswordHandler handles POST /change-password for the
// authenticated admin. Other outstanding sessions are revoked on
// success; the calling session stays valid.
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	token := adminauth.TokenFromContext(r.Context())

	var input changePasswordInput
	if err := jsonutil.Decode(r, &input); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		jsonutil.BadRequest(w, "Current and new password are required")
		return
	}

	err := h.svc.ChangePassword(r.Context(), token, input.CurrentPassword, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, adminauth.ErrIncorrectPassword):
			jsonutil.Unauthorized(w, "Current password is incorrect")
		case errors.Is(err, authutil.ErrPasswordTooShort),
			errors.Is(err, authutil.ErrPasswordTooLong),
			errors.Is(err, authutil.ErrPasswordCommon):
			jsonutil.BadRequest(w, err.Error())
		case errors.Is(err, adminauth.ErrInvalidToken),
			errors.Is(err, adminauth.ErrSessionExpired),
			errors.Is(err, adminauth.ErrAccountDeactivated):
			jsonutil.Unauthorized(w, "Authentication required")
		default:
			h.logger.Error("password change failed", zap.Error(err))
			jsonutil.InternalError(w, "Password change failed")
		}
		return
	}

	jsonutil.OK(w, map[string]any{"success": true, "message": "Password changed"})
}
