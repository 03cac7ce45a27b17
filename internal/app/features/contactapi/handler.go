// Package contactapi handles contact-form intake: public submission
// with validation and email notification, plus the admin listing.
package contactapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bhavyaverma/portfolio/internal/app/store/analytics"
	"github.com/bhavyaverma/portfolio/internal/app/store/contacts"
	"github.com/bhavyaverma/portfolio/internal/app/system/jsonutil"
	"github.com/bhavyaverma/portfolio/internal/app/system/mailer"
	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Field length bounds for contact submissions.
const (
	NameMinLen    = 2
	NameMaxLen    = 100
	SubjectMinLen = 5
	SubjectMaxLen = 200
	MessageMinLen = 10
	MessageMaxLen = 2000
)

// DefaultListLimit bounds the admin contact listing.
const DefaultListLimit = 50

// Handler handles contact form requests.
type Handler struct {
	contacts   *contacts.Store
	analytics  *analytics.Store
	mail       *mailer.Mailer
	ownerEmail string
	ownerName  string
	logger     *zap.Logger
}

// NewHandler creates a new contact Handler. ownerEmail receives the
// notification for each submission; ownerName signs the auto-reply.
func NewHandler(contactStore *contacts.Store, analyticsStore *analytics.Store, mail *mailer.Mailer, ownerEmail, ownerName string, logger *zap.Logger) *Handler {
	return &Handler{
		contacts:   contactStore,
		analytics:  analyticsStore,
		mail:       mail,
		ownerEmail: ownerEmail,
		ownerName:  ownerName,
		logger:     logger,
	}
}

type submitInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ProjectType string `json:"projectType"`
}

// validate checks field presence, lengths, and email shape. Returns a
// map of field name to problem, empty when the input is acceptable.
func (in *submitInput) validate() map[string]string {
	problems := make(map[string]string)

	name := strings.TrimSpace(in.Name)
	if len(name) < NameMinLen || len(name) > NameMaxLen {
		problems["name"] = "Name must be between 2 and 100 characters."
	}

	if !isValidEmail(strings.TrimSpace(in.Email)) {
		problems["email"] = "Please enter a valid email address."
	}

	subject := strings.TrimSpace(in.Subject)
	if len(subject) < SubjectMinLen || len(subject) > SubjectMaxLen {
		problems["subject"] = "Subject must be between 5 and 200 characters."
	}

	message := strings.TrimSpace(in.Message)
	if len(message) < MessageMinLen || len(message) > MessageMaxLen {
		problems["message"] = "Message must be between 10 and 2000 characters."
	}

	return problems
}

// isValidEmail performs a basic email format validation: an @ with a
// non-empty local part and a dotted domain.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 {
		return false
	}
	domain := parts[1]
	dotIdx := strings.LastIndex(domain, ".")
	return dotIdx >= 1 && dotIdx < len(domain)-1
}

// SubmitHandler handles POST /contact. The submission is persisted
// first; email notification runs afterward and its outcome never
// changes the response the submitter already earned.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var input submitInput
	if err := jsonutil.Decode(r, &input); err != nil {
		jsonutil.BadRequest(w, "Invalid request body")
		return
	}

	if problems := input.validate(); len(problems) > 0 {
		jsonutil.ValidationError(w, problems)
		return
	}

	sub, err := h.contacts.Create(r.Context(), models.ContactSubmission{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Subject:     strings.TrimSpace(input.Subject),
		Message:     strings.TrimSpace(input.Message),
		ProjectType: strings.TrimSpace(input.ProjectType),
	})
	if err != nil {
		h.logger.Error("failed to store contact submission", zap.Error(err))
		jsonutil.InternalError(w, "Failed to submit message")
		return
	}

	if err := h.analytics.Track(r.Context(), analytics.Event{
		Event: analytics.EventContactSubmitted,
		Data:  bson.M{"reference": sub.Reference, "subject": sub.Subject},
	}); err != nil {
		h.logger.Warn("failed to track contact submission", zap.Error(err))
	}

	go h.notify(sub)

	jsonutil.Created(w, map[string]any{
		"success":   true,
		"message":   "Message received",
		"reference": sub.Reference,
	})
}

// notify sends the owner notification and the submitter auto-reply,
// then records which of the two went out. Runs detached from the
// request; failures are logged only.
func (h *Handler) notify(sub *models.ContactSubmission) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	notifText, notifHTML := mailer.ContactNotificationEmail(mailer.ContactNotificationData{
		Name:        sub.Name,
		Email:       sub.Email,
		Subject:     sub.Subject,
		Message:     sub.Message,
		ProjectType: sub.ProjectType,
		Reference:   sub.Reference,
		SubmittedAt: sub.SubmittedAt,
	})
	emailSent := h.mail.Send(mailer.Email{
		To:       h.ownerEmail,
		Subject:  "New contact: " + sub.Subject,
		TextBody: notifText,
		HTMLBody: notifHTML,
	}) == nil

	confText, confHTML := mailer.ContactConfirmationEmail(mailer.ContactConfirmationData{
		Name:      sub.Name,
		Subject:   sub.Subject,
		Reference: sub.Reference,
		OwnerName: h.ownerName,
	})
	confirmationSent := h.mail.Send(mailer.Email{
		To:       sub.Email,
		Subject:  "Thanks for getting in touch",
		TextBody: confText,
		HTMLBody: confHTML,
	}) == nil

	if err := h.contacts.MarkNotified(ctx, sub.ID, emailSent, confirmationSent); err != nil {
		h.logger.Warn("failed to record notification outcome",
			zap.String("reference", sub.Reference),
			zap.Error(err))
	}
}

// ListHandler handles GET /contacts for the admin dashboard, newest
// first.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := h.contacts.GetRecent(r.Context(), DefaultListLimit)
	if err != nil {
		h.logger.Error("failed to list contacts", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load contacts")
		return
	}

	total, err := h.contacts.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count contacts", zap.Error(err))
		jsonutil.InternalError(w, "Failed to load contacts")
		return
	}

	if subs == nil {
		subs = []models.ContactSubmission{}
	}
	jsonutil.OK(w, map[string]any{
		"contacts": subs,
		"total":    total,
	})
}
