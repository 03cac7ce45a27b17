// Package statsapi serves the admin dashboard aggregates.
package statsapi

import (
	"net/http"

	"github.com/bhavyaverma/portfolio/internal/app/store/contacts"
	"github.com/bhavyaverma/portfolio/internal/app/store/downloads"
	"github.com/bhavyaverma/portfolio/internal/app/store/loginattempts"
	"github.com/bhavyaverma/portfolio/internal/app/store/sessions"
	"github.com/bhavyaverma/portfolio/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// RecentLimit is how many recent records each dashboard list carries.
const RecentLimit = 10

// Handler handles admin statistics requests.
type Handler struct {
	downloads *downloads.Store
	contacts  *contacts.Store
	attempts  *loginattempts.Store
	sessions  *sessions.Store
	logger    *zap.Logger
}

// NewHandler creates a stats Handler.
func NewHandler(downloadStore *downloads.Store, contactStore *contacts.Store, attemptStore *loginattempts.Store, sessionStore *sessions.Store, logger *zap.Logger) *Handler {
	return &Handler{
		downloads: downloadStore,
		contacts:  contactStore,
		attempts:  attemptStore,
		sessions:  sessionStore,
		logger:    logger,
	}
}

// DashboardHandler handles GET /stats: totals plus the most recent
// downloads, contacts, and login attempts.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalDownloads, err := h.downloads.Count(ctx)
	if err != nil {
		h.logger.Error("failed to count downloads", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load statistics")
		return
	}

	totalContacts, err := h.contacts.Count(ctx)
	if err != nil {
		h.logger.Error("failed to count contacts", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load statistics")
		return
	}

	activeSessions, err := h.sessions.CountActive(ctx)
	if err != nil {
		h.logger.Error("failed to count active sessions", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load statistics")
		return
	}

	recentDownloads, err := h.downloads.GetRecent(ctx, RecentLimit)
	if err != nil {
		h.logger.Error("failed to load recent downloads", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load statistics")
		return
	}

	recentContacts, err := h.contacts.GetRecent(ctx, RecentLimit)
	if err != nil {
		h.logger.Error("failed to load recent contacts", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load statistics")
		return
	}

	recentLogins, err := h.attempts.GetRecent(ctx, RecentLimit)
	if err != nil {
		h.logger.Error("failed to load recent logins", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load statistics")
		return
	}

	jsonutil.OK(w, map[string]any{
		"totalDownloads":  totalDownloads,
		"totalContacts":   totalContacts,
		"activeSessions":  activeSessions,
		"recentDownloads": recentDownloads,
		"recentContacts":  recentContacts,
		"recentLogins":    recentLogins,
	})
}

// DownloadStatsHandler handles GET /download-stats: total and
// trailing-30-day counts with a by-type breakdown.
func (h *Handler) DownloadStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.downloads.GetStats(r.Context(), downloads.DefaultStatsWindow)
	if err != nil {
		h.logger.Error("failed to load download stats", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load download statistics")
		return
	}
	jsonutil.OK(w, stats)
}
