// Package downloads records résumé download events and answers the
// aggregate questions the admin dashboard asks about them.
package downloads

import (
	"context"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultStatsWindow is the trailing window for the "recent" count.
const DefaultStatsWindow = 30 * 24 * time.Hour

// Store manages download event records in MongoDB.
type Store struct {
	c *mongo.Collection
}

// New creates a new downloads Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("downloads")}
}

// Record appends a DownloadEvent. If DownloadedAt is zero, it's set to
// time.Now().UTC().
func (s *Store) Record(ctx context.Context, event models.DownloadEvent) (primitive.ObjectID, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Type == "" {
		event.Type = models.DownloadTypeResume
	}
	if event.DownloadedAt.IsZero() {
		event.DownloadedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, event); err != nil {
		return primitive.NilObjectID, err
	}
	return event.ID, nil
}

// TypeCount is one bucket of the by-type download breakdown.
type TypeCount struct {
	Type  string `bson:"_id" json:"type"`
	Count int64  `bson:"count" json:"count"`
}

// Stats summarizes download activity.
type Stats struct {
	Total  int64       `json:"totalDownloads"`
	Recent int64       `json:"recentDownloads"`
	ByType []TypeCount `json:"downloadsByType"`
}

// GetStats returns total and trailing-window counts plus a by-type
// breakdown. A non-positive window falls back to DefaultStatsWindow.
func (s *Store) GetStats(ctx context.Context, window time.Duration) (*Stats, error) {
	if window <= 0 {
		window = DefaultStatsWindow
	}

	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-window)
	recent, err := s.c.CountDocuments(ctx, bson.M{
		"downloaded_at": bson.M{"$gte": cutoff},
	})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var byType []TypeCount
	if err := cur.All(ctx, &byType); err != nil {
		return nil, err
	}
	if byType == nil {
		byType = []TypeCount{}
	}

	return &Stats{Total: total, Recent: recent, ByType: byType}, nil
}

// GetRecent retrieves the most recent download events, newest first.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]models.DownloadEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "downloaded_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.DownloadEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the total number of download events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
