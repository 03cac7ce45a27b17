package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact submission statuses.
const (
	ContactStatusNew = "new"
)

// ContactSubmission is a contact-form message. It is created on submit
// and mutated once afterwards to record email delivery outcomes; it is
// never deleted by the application.
type ContactSubmission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference   string             `bson:"reference" json:"reference"` // uuid returned to the submitter
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Subject     string             `bson:"subject" json:"subject"`
	Message     string             `bson:"message" json:"message"`
	ProjectType string             `bson:"project_type,omitempty" json:"projectType,omitempty"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
	Status      string    `bson:"status" json:"status"`

	// Email delivery bookkeeping, set after the notification attempts.
	EmailSent          bool       `bson:"email_sent" json:"emailSent"`
	ConfirmationSent   bool       `bson:"confirmation_sent" json:"confirmationSent"`
	EmailSentAt        *time.Time `bson:"email_sent_at,omitempty" json:"emailSentAt,omitempty"`
	ConfirmationSentAt *time.Time `bson:"confirmation_sent_at,omitempty" json:"confirmationSentAt,omitempty"`
}
