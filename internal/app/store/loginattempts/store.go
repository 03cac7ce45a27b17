// Package loginattempts provides the append-only audit log of admin
// login attempts.
package loginattempts

import (
	"context"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_login_attempts")}
}

// Create inserts a LoginAttempt. If AttemptedAt is zero, it's set to
// time.Now().UTC().
func (s *Store) Create(ctx context.Context, attempt models.LoginAttempt) error {
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, attempt)
	return err
}

// GetRecent retrieves the most recent login attempts, newest first.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]models.LoginAttempt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "attempted_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.LoginAttempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// CountFailedSince counts failed attempts for a username since the cutoff.
func (s *Store) CountFailedSince(ctx context.Context, username string, since time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"username":     username,
		"success":      false,
		"attempted_at": bson.M{"$gte": since},
	})
}
