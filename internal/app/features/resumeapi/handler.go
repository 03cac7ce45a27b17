// Package resumeapi handles résumé upload, download resolution, and
// blob streaming.
package resumeapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/bhavyaverma/portfolio/internal/app/store/analytics"
	"github.com/bhavyaverma/portfolio/internal/app/store/downloads"
	"github.com/bhavyaverma/portfolio/internal/app/store/resume"
	"github.com/bhavyaverma/portfolio/internal/app/system/adminauth"
	"github.com/bhavyaverma/portfolio/internal/app/system/jsonutil"
	"github.com/bhavyaverma/portfolio/internal/app/system/network"
	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler handles résumé requests.
type Handler struct {
	resumes   *resume.Store
	downloads *downloads.Store
	analytics *analytics.Store
	maxUpload int64
	logger    *zap.Logger
}

// NewHandler creates a résumé Handler. maxUpload caps the accepted
// upload size in bytes.
func NewHandler(resumeStore *resume.Store, downloadStore *downloads.Store, analyticsStore *analytics.Store, maxUpload int64, logger *zap.Logger) *Handler {
	return &Handler{
		resumes:   resumeStore,
		downloads: downloadStore,
		analytics: analyticsStore,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// UploadHandler handles POST /resume (authenticated, multipart). The
// file is validated before any chunk reaches storage, so a rejected
// upload leaves no partial blob behind.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	// Cap the body slightly above the file limit to leave room for
	// multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+64*1024)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonutil.TooLarge(w, fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUpload/(1<<20)))
			return
		}
		jsonutil.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		jsonutil.BadRequest(w, "Missing resume file field")
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		jsonutil.TooLarge(w, fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUpload/(1<<20)))
		return
	}

	// The declared type is the gate; a PDF-looking filename on a
	// non-PDF part is not accepted.
	if header.Header.Get("Content-Type") != "application/pdf" {
		jsonutil.UnsupportedMedia(w, "Only PDF files are accepted")
		return
	}

	fileID, err := h.resumes.Store(r.Context(), file, header.Filename)
	if err != nil {
		h.logger.Error("resume upload failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		jsonutil.InternalError(w, "Failed to store resume")
		return
	}

	h.logger.Info("resume uploaded",
		zap.String("file_id", fileID.Hex()),
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	resp := map[string]any{
		"success":  true,
		"fileId":   fileID.Hex(),
		"filename": header.Filename,
		"size":     header.Size,
	}
	if admin := adminauth.AdminFromContext(r.Context()); admin != nil {
		resp["uploadedBy"] = admin.Username
	}
	jsonutil.Created(w, resp)
}

// ResolveHandler handles GET /download. It resolves the current résumé
// to a download URL and records the download event. Tracking is
// fail-open: if the event write fails, the response still resolves and
// carries a warning instead.
func (h *Handler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	latest, err := h.resumes.GetLatest(r.Context())
	if err != nil {
		h.logger.Error("failed to resolve latest resume", zap.Error(err))
		jsonutil.InternalError(w, "Failed to resolve resume")
		return
	}

	event := models.DownloadEvent{
		Type:      models.DownloadTypeResume,
		IsStatic:  latest.IsStatic,
		IP:        network.GetClientIP(r),
		UserAgent: r.UserAgent(),
	}
	if latest.Ref != nil {
		event.ResumeID = &latest.Ref.FileID
	}

	var warning string
	if _, err := h.downloads.Record(r.Context(), event); err != nil {
		h.logger.Warn("failed to record download event", zap.Error(err))
		warning = "Download tracking unavailable"
	}

	if err := h.analytics.Track(r.Context(), analytics.Event{
		Event: analytics.EventResumeDownloaded,
		Data:  bson.M{"static": latest.IsStatic},
	}); err != nil {
		h.logger.Warn("failed to track resume download", zap.Error(err))
	}

	resp := map[string]any{"success": true}
	if latest.IsStatic {
		resp["downloadUrl"] = latest.URL
		resp["isStatic"] = true
		resp["filename"] = path.Base(latest.URL)
	} else {
		resp["downloadUrl"] = "/api/resume/download/" + latest.Ref.FileID.Hex()
		resp["isStatic"] = false
		resp["filename"] = latest.Ref.Filename
	}
	if warning != "" {
		resp["warning"] = warning
	}

	jsonutil.OK(w, resp)
}

// StreamHandler handles GET /download/{fileID}, streaming the stored
// blob chunk by chunk with attachment headers.
func (h *Handler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	fileID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "fileID"))
	if err != nil {
		jsonutil.BadRequest(w, "Invalid file id")
		return
	}

	stream, ref, err := h.resumes.Open(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			jsonutil.NotFound(w, "Resume not found")
			return
		}
		h.logger.Error("failed to open resume stream",
			zap.String("file_id", fileID.Hex()),
			zap.Error(err))
		jsonutil.InternalError(w, "Failed to open resume")
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ref.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(ref.Size, 10))

	written, err := io.Copy(w, stream)
	if err != nil {
		// Headers are already out; the client sees a truncated body.
		h.logger.Warn("resume stream interrupted",
			zap.String("file_id", fileID.Hex()),
			zap.Int64("written", written),
			zap.Error(err))
		return
	}

	if err := h.resumes.RecordCompletion(r.Context(), models.DownloadCompletion{
		FileID:   ref.FileID,
		Filename: ref.Filename,
		FileSize: ref.Size,
	}); err != nil {
		h.logger.Warn("failed to record download completion",
			zap.String("file_id", fileID.Hex()),
			zap.Error(err))
	}
}
