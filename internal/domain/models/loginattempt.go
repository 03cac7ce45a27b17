package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginAttempt is an append-only audit record of an admin login.
// Attempts are never mutated or deleted by the application.
type LoginAttempt struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username    string              `bson:"username" json:"username"`
	Success     bool                `bson:"success" json:"success"`
	AttemptedAt time.Time           `bson:"attempted_at" json:"attemptedAt"`
	IP          string              `bson:"ip_address,omitempty" json:"ip,omitempty"`
	SessionID   *primitive.ObjectID `bson:"session_id,omitempty" json:"sessionId,omitempty"`
}
