// Package contacts provides storage for contact-form submissions.
package contacts

import (
	"context"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

// Create inserts a new submission with status "new" and a fresh
// reference id the submitter can quote in follow-ups.
func (s *Store) Create(ctx context.Context, sub models.ContactSubmission) (*models.ContactSubmission, error) {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.Reference == "" {
		sub.Reference = uuid.NewString()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	if sub.Status == "" {
		sub.Status = models.ContactStatusNew
	}
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// MarkNotified records the outcome of the two notification emails for a
// submission. Called once after the delivery attempts.
func (s *Store) MarkNotified(ctx context.Context, id primitive.ObjectID, emailSent, confirmationSent bool) error {
	now := time.Now().UTC()
	set := bson.M{
		"email_sent":        emailSent,
		"confirmation_sent": confirmationSent,
	}
	if emailSent {
		set["email_sent_at"] = now
	}
	if confirmationSent {
		set["confirmation_sent_at"] = now
	}

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// GetRecent retrieves the most recent submissions, newest first.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]models.ContactSubmission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.ContactSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetByID retrieves a single submission.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContactSubmission, error) {
	var sub models.ContactSubmission
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Count returns the total number of submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
