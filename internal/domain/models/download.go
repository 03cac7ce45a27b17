package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Download event types.
const (
	DownloadTypeResume = "resume"
)

// DownloadEvent records a single résumé retrieval. ResumeID is nil when
// the static fallback file was served instead of a stored blob.
type DownloadEvent struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type         string              `bson:"type" json:"type"`
	ResumeID     *primitive.ObjectID `bson:"resume_id,omitempty" json:"resumeId,omitempty"`
	IsStatic     bool                `bson:"is_static" json:"isStatic"`
	DownloadedAt time.Time           `bson:"downloaded_at" json:"downloadedAt"`
	IP           string              `bson:"ip_address,omitempty" json:"ip,omitempty"`
	UserAgent    string              `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
}

// DownloadCompletion records that a blob download stream ran to
// completion, with the byte count actually served.
type DownloadCompletion struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FileID       primitive.ObjectID `bson:"file_id"`
	Filename     string             `bson:"filename"`
	FileSize     int64              `bson:"file_size"`
	DownloadedAt time.Time          `bson:"downloaded_at"`
}
