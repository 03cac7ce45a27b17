// Package admins provides storage for the administrator identity.
package admins

import (
	"context"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store manages admin identity records in MongoDB.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// Create inserts a new admin identity. The unique username index
// guarantees at most one identity per username.
func (s *Store) Create(ctx context.Context, admin models.AdminIdentity) (*models.AdminIdentity, error) {
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetActiveByUsername retrieves an active admin by username.
// Returns mongo.ErrNoDocuments if no active identity matches.
func (s *Store) GetActiveByUsername(ctx context.Context, username string) (*models.AdminIdentity, error) {
	var admin models.AdminIdentity
	err := s.c.FindOne(ctx, bson.M{
		"username":  username,
		"is_active": true,
	}).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByUsername retrieves an admin by username regardless of active flag.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.AdminIdentity, error) {
	var admin models.AdminIdentity
	if err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetActiveByID retrieves an active admin by ID.
func (s *Store) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*models.AdminIdentity, error) {
	var admin models.AdminIdentity
	err := s.c.FindOne(ctx, bson.M{
		"_id":       id,
		"is_active": true,
	}).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdatePassword replaces the stored password hash and records when the
// change happened.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password":            hash,
			"password_changed_at": time.Now().UTC(),
		},
	})
	return err
}

// SetActive enables or disables an admin account. A disabled account
// fails token verification even while its sessions are still stored.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"is_active": active},
	})
	return err
}

// Count returns the number of admin identities.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
