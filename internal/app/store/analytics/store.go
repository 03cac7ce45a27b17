// Package analytics provides the generic site analytics event log.
// Events here are pure telemetry; every write is best-effort at the
// call site.
package analytics

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Event names recorded by the application.
const (
	EventResumeDownloaded = "resume_downloaded"
	EventContactSubmitted = "contact_submitted"
)

// Event is a generic analytics record.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Event     string             `bson:"event"`
	Timestamp time.Time          `bson:"timestamp"`
	Data      bson.M             `bson:"data,omitempty"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("analytics")}
}

// Track appends an analytics event. If Timestamp is zero, it's set to
// time.Now().UTC().
func (s *Store) Track(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// CountByEvent returns the number of events with the given name.
func (s *Store) CountByEvent(ctx context.Context, name string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"event": name})
}
