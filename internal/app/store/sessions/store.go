// Package sessions provides server-side storage for admin bearer-token
// sessions. The token itself is a signed JWT; the session record is what
// makes a token revocable before its structural expiry.
package sessions

import (
	"context"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store manages admin session records in MongoDB.
type Store struct {
	c *mongo.Collection
}

// New creates a new session Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_sessions")}
}

// Create inserts a new session record. The TTL index on expires_at only
// controls physical cleanup; validity is always decided by comparing
// expires_at against the clock at verification.
func (s *Store) Create(ctx context.Context, session models.AdminSession) (*models.AdminSession, error) {
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	if session.LoginAt.IsZero() {
		session.LoginAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActiveByToken retrieves a session that is active and unexpired.
// Returns mongo.ErrNoDocuments for unknown, logged-out, or expired tokens.
func (s *Store) GetActiveByToken(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByToken retrieves a session by token regardless of state.
func (s *Store) GetByToken(ctx context.Context, token string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Deactivate marks the session for the token inactive and records the
// logout time. Deactivating an unknown or already-inactive token is a
// no-op, which makes logout idempotent.
func (s *Store) Deactivate(ctx context.Context, token string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"token": token}, bson.M{
		"$set": bson.M{
			"is_active": false,
			"logout_at": time.Now().UTC(),
		},
	})
	return err
}

// DeactivateByAdminExcept marks all active sessions for an admin
// inactive, except the one holding exceptToken. Used to revoke other
// outstanding sessions when the password changes.
func (s *Store) DeactivateByAdminExcept(ctx context.Context, adminID primitive.ObjectID, exceptToken string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"admin_id":  adminID,
			"token":     bson.M{"$ne": exceptToken},
			"is_active": true,
		},
		bson.M{
			"$set": bson.M{
				"is_active": false,
				"logout_at": time.Now().UTC(),
			},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CountActive counts currently active, unexpired sessions.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	})
}
