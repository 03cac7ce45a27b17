package resume

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"github.com/bhavyaverma/portfolio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const fallbackURL = "/Bhavya_Verma_Resume.pdf"

func TestStoreAndOpenRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, fallbackURL)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	content := strings.Repeat("portfolio resume bytes ", 1000)
	fileID, err := store.Store(ctx, strings.NewReader(content), "resume_v2.pdf")
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if fileID.IsZero() {
		t.Fatal("Store() returned zero file id")
	}

	stream, ref, err := store.Open(ctx, fileID)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer stream.Close()

	if ref.Filename != "resume_v2.pdf" {
		t.Errorf("Filename = %q, want resume_v2.pdf", ref.Filename)
	}
	if ref.Size != int64(len(content)) {
		t.Errorf("Size = %d, want %d", ref.Size, len(content))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if buf.String() != content {
		t.Error("streamed content does not match stored content")
	}
}

func TestStore_ExpiredDeadline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, fallbackURL)

	// The bucket deadline is derived from the context, so an already
	// expired context must abort the upload instead of hanging.
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if _, err := store.Store(ctx, strings.NewReader("too late"), "resume.pdf"); err == nil {
		t.Error("Store() with an expired deadline should fail")
	}
}

func TestGetLatest_EmptyBucketFallsBackToStatic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, fallbackURL)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	latest, err := store.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest() error = %v", err)
	}
	if !latest.IsStatic {
		t.Error("empty bucket should resolve to the static fallback")
	}
	if latest.URL != fallbackURL {
		t.Errorf("URL = %q, want %q", latest.URL, fallbackURL)
	}
	if latest.Ref != nil {
		t.Error("static fallback should carry no blob reference")
	}
}

func TestGetLatest_ReturnsNewestUpload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, fallbackURL)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Store(ctx, strings.NewReader("old version"), "resume_v1.pdf"); err != nil {
		t.Fatalf("Store(v1) error = %v", err)
	}
	newID, err := store.Store(ctx, strings.NewReader("new version"), "resume_v2.pdf")
	if err != nil {
		t.Fatalf("Store(v2) error = %v", err)
	}

	latest, err := store.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest() error = %v", err)
	}
	if latest.IsStatic {
		t.Fatal("bucket has uploads, should not fall back to static")
	}
	if latest.Ref.FileID != newID {
		t.Errorf("latest FileID = %v, want %v", latest.Ref.FileID, newID)
	}
	if latest.Ref.Filename != "resume_v2.pdf" {
		t.Errorf("latest Filename = %q, want resume_v2.pdf", latest.Ref.Filename)
	}
}

func TestOpen_UnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, fallbackURL)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := store.Open(ctx, primitive.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Open(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestRecordCompletion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, fallbackURL)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.RecordCompletion(ctx, models.DownloadCompletion{
		FileID:   primitive.NewObjectID(),
		Filename: "resume.pdf",
		FileSize: 1234,
	})
	if err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}

	n, err := db.Collection("download_completions").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if n != 1 {
		t.Errorf("download_completions count = %d, want 1", n)
	}
}
