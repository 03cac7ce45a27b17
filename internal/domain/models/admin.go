package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminIdentity is the single administrator account for the site.
// It is created once at startup (seeded from configuration) and only
// mutated when the password changes. It is never deleted in normal
// operation; deactivation is a soft flag.
type AdminIdentity struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"` // unique
	Password string             `bson:"password"` // bcrypt hash, never exposed
	Email    string             `bson:"email"`
	Role     string             `bson:"role"`
	IsActive bool               `bson:"is_active"`

	CreatedAt         time.Time  `bson:"created_at"`
	PasswordChangedAt *time.Time `bson:"password_changed_at,omitempty"`
}

// AdminSummary is the non-secret projection of an AdminIdentity that is
// safe to return to clients and to carry in request context.
type AdminSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
