package downloads

import (
	"testing"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"github.com/bhavyaverma/portfolio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecord_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := store.Record(ctx, models.DownloadEvent{IP: "10.0.0.1", UserAgent: "test"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if id.IsZero() {
		t.Fatal("Record() returned zero id")
	}

	recent, err := store.GetRecent(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("GetRecent() returned %d events, want 1", len(recent))
	}
	if recent[0].Type != models.DownloadTypeResume {
		t.Errorf("Type = %q, want %q", recent[0].Type, models.DownloadTypeResume)
	}
	if recent[0].DownloadedAt.IsZero() {
		t.Error("Record() should default DownloadedAt")
	}
}

func TestGetStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	resumeID := primitive.NewObjectID()
	events := []models.DownloadEvent{
		{Type: models.DownloadTypeResume, ResumeID: &resumeID, DownloadedAt: now.Add(-time.Hour)},
		{Type: models.DownloadTypeResume, IsStatic: true, DownloadedAt: now.Add(-2 * time.Hour)},
		{Type: models.DownloadTypeResume, IsStatic: true, DownloadedAt: now.Add(-60 * 24 * time.Hour)},
	}
	for _, e := range events {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	stats, err := store.GetStats(ctx, DefaultStatsWindow)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.Recent != 2 {
		t.Errorf("Recent = %d, want 2 (one event is outside the 30d window)", stats.Recent)
	}
	if len(stats.ByType) != 1 {
		t.Fatalf("ByType has %d buckets, want 1", len(stats.ByType))
	}
	if stats.ByType[0].Type != models.DownloadTypeResume || stats.ByType[0].Count != 3 {
		t.Errorf("ByType[0] = %+v, want {resume 3}", stats.ByType[0])
	}
}

func TestGetStats_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	stats, err := store.GetStats(ctx, 0)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.Total != 0 || stats.Recent != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
	if stats.ByType == nil {
		t.Error("ByType should be an empty slice, not nil")
	}
}

func TestGetRecent_Order(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	for i, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if _, err := store.Record(ctx, models.DownloadEvent{
			IP:           ip,
			DownloadedAt: now.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	recent, err := store.GetRecent(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("GetRecent() returned %d events, want 2", len(recent))
	}
	if recent[0].IP != "10.0.0.3" {
		t.Errorf("newest event IP = %q, want 10.0.0.3", recent[0].IP)
	}
}
