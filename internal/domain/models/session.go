package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminSession binds an issued bearer token to an admin identity and an
// expiry. A session is valid iff it is active, unexpired, and the admin
// it references is still active. Logout flips is_active and records
// logout_at; expiry is derived from expires_at at verification time, so
// an expired session needs no stored transition.
type AdminSession struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	AdminID  primitive.ObjectID `bson:"admin_id"`
	Username string             `bson:"username"`
	Token    string             `bson:"token"` // unique

	LoginAt   time.Time  `bson:"login_at"`
	ExpiresAt time.Time  `bson:"expires_at"`
	IsActive  bool       `bson:"is_active"`
	LogoutAt  *time.Time `bson:"logout_at,omitempty"`
}
