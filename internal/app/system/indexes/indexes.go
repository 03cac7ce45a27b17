// internal/app/system/indexes/indexes.go
// Package indexes creates every MongoDB index the app relies on. Index
// definitions live here, next to each other, rather than spread across
// the store packages, so the full index surface is reviewable in one
// place and the stores stay import-free for tests.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Index creation is idempotent. We
aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureAdmins(ctx, db); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := ensureSessions(ctx, db); err != nil {
		problems = append(problems, "admin_sessions: "+err.Error())
	}
	if err := ensureLoginAttempts(ctx, db); err != nil {
		problems = append(problems, "admin_login_attempts: "+err.Error())
	}
	if err := ensureDownloads(ctx, db); err != nil {
		problems = append(problems, "downloads: "+err.Error())
	}
	if err := ensureContacts(ctx, db); err != nil {
		problems = append(problems, "contacts: "+err.Error())
	}
	if err := ensureAnalytics(ctx, db); err != nil {
		problems = append(problems, "analytics: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureAdmins(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_admin_username"),
		},
	})
	return err
}

func ensureSessions(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admin_sessions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Token lookup on every authenticated request
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_session_token"),
		},
		// Per-admin session listing and bulk revocation
		{
			Keys:    bson.D{{Key: "admin_id", Value: 1}},
			Options: options.Index().SetName("idx_session_admin"),
		},
		// Mongo reaps expired sessions on its own
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_session_ttl"),
		},
	})
	return err
}

func ensureLoginAttempts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admin_login_attempts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Recent attempts, latest-first
		{
			Keys:    bson.D{{Key: "attempted_at", Value: -1}},
			Options: options.Index().SetName("idx_attempts_time"),
		},
		// Per-username history
		{
			Keys:    bson.D{{Key: "username", Value: 1}, {Key: "attempted_at", Value: -1}},
			Options: options.Index().SetName("idx_attempts_username"),
		},
	})
	return err
}

func ensureDownloads(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("downloads").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "downloaded_at", Value: -1}},
			Options: options.Index().SetName("idx_downloads_time"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index().SetName("idx_downloads_type"),
		},
	})
	return err
}

func ensureContacts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("contacts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("idx_contacts_time"),
		},
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_contacts_reference"),
		},
	})
	return err
}

func ensureAnalytics(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("analytics").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_analytics_event_time"),
		},
	})
	return err
}
