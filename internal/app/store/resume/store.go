// Package resume provides chunked binary storage for résumé files,
// backed by a GridFS bucket. GridFS only registers a file's metadata
// document after its upload stream finishes cleanly, so a failed or
// abandoned upload is never addressable.
package resume

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BucketName is the GridFS bucket for résumé files.
const BucketName = "resumes"

// ErrNotFound is returned when a file id does not resolve to a stored blob.
var ErrNotFound = errors.New("resume: file not found")

// Store streams résumé blobs in and out of a GridFS bucket.
type Store struct {
	db        *mongo.Database
	staticURL string
}

// New creates a résumé Store. staticURL is the public path of the
// bundled fallback PDF served when no résumé has been uploaded yet.
func New(db *mongo.Database, staticURL string) *Store {
	return &Store{db: db, staticURL: staticURL}
}

func (s *Store) bucket() (*gridfs.Bucket, error) {
	return gridfs.NewBucket(s.db, options.GridFSBucket().SetName(BucketName))
}

// Store streams the reader into the bucket in bounded-size chunks and
// returns the new file id. The whole file is never buffered in memory;
// on error no file document is registered. The bucket API carries no
// context, so the ctx deadline is applied as the bucket write deadline.
func (s *Store) Store(ctx context.Context, src io.Reader, filename string) (primitive.ObjectID, error) {
	bucket, err := s.bucket()
	if err != nil {
		return primitive.NilObjectID, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return primitive.NilObjectID, err
		}
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{
		{Key: "uploadedAt", Value: time.Now().UTC()},
		{Key: "type", Value: "resume"},
		{Key: "version", Value: "1.0"},
	})

	return bucket.UploadFromStream(filename, src, opts)
}

// Ref describes a stored résumé file without its bytes.
type Ref struct {
	FileID     primitive.ObjectID
	Filename   string
	Size       int64
	UploadedAt time.Time
}

// Latest is the result of resolving the current résumé: either a
// reference to the newest uploaded blob, or the static fallback. The
// fallback is an expected steady state, not an error.
type Latest struct {
	IsStatic bool
	URL      string // set for the static fallback
	Ref      *Ref   // set when a stored blob exists
}

// fileDoc mirrors the GridFS files-collection document shape.
type fileDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Length     int64              `bson:"length"`
	UploadDate time.Time          `bson:"uploadDate"`
	Filename   string             `bson:"filename"`
}

// GetLatest resolves the most recently uploaded résumé. With an empty
// bucket it returns the static-fallback sentinel.
func (s *Store) GetLatest(ctx context.Context) (*Latest, error) {
	bucket, err := s.bucket()
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}

	findOpts := options.GridFSFind().
		SetSort(bson.D{{Key: "uploadDate", Value: -1}}).
		SetLimit(1)

	cur, err := bucket.Find(bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []fileDoc
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return &Latest{IsStatic: true, URL: s.staticURL}, nil
	}

	f := files[0]
	return &Latest{
		Ref: &Ref{
			FileID:     f.ID,
			Filename:   f.Filename,
			Size:       f.Length,
			UploadedAt: f.UploadDate,
		},
	}, nil
}

// Open opens a read stream over the stored chunks of the given file.
// The caller must close the returned stream; closing it promptly on
// client abort releases the underlying cursor. The ctx deadline bounds
// every read from the returned stream.
func (s *Store) Open(ctx context.Context, id primitive.ObjectID) (*gridfs.DownloadStream, *Ref, error) {
	bucket, err := s.bucket()
	if err != nil {
		return nil, nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, nil, err
		}
	}

	stream, err := bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	file := stream.GetFile()
	ref := &Ref{
		FileID:     id,
		Filename:   file.Name,
		Size:       file.Length,
		UploadedAt: file.UploadDate,
	}
	return stream, ref, nil
}

// RecordCompletion appends a download-completion record for a fully
// streamed blob. Best-effort bookkeeping; callers log failures and move on.
func (s *Store) RecordCompletion(ctx context.Context, rec models.DownloadCompletion) error {
	if rec.DownloadedAt.IsZero() {
		rec.DownloadedAt = time.Now().UTC()
	}
	_, err := s.db.Collection("download_completions").InsertOne(ctx, rec)
	return err
}
