package contacts

import (
	"testing"
	"time"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"github.com/bhavyaverma/portfolio/internal/testutil"
)

func TestCreate_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, models.ContactSubmission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Project inquiry",
		Message: "I would like to discuss a collaboration.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.ID.IsZero() {
		t.Error("Create() did not assign an ID")
	}
	if sub.Reference == "" {
		t.Error("Create() did not assign a reference")
	}
	if sub.Status != models.ContactStatusNew {
		t.Errorf("Status = %q, want %q", sub.Status, models.ContactStatusNew)
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("Create() did not set SubmittedAt")
	}
	if sub.EmailSent || sub.ConfirmationSent {
		t.Error("delivery flags should start false")
	}

	// References are unique per submission.
	other, err := store.Create(ctx, models.ContactSubmission{
		Name: "B", Email: "b@example.com", Subject: "Hello there", Message: "Second message here.",
	})
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if other.Reference == sub.Reference {
		t.Error("two submissions share a reference")
	}
}

func TestMarkNotified(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, models.ContactSubmission{
		Name: "Ada", Email: "ada@example.com", Subject: "Inquiry!", Message: "A long enough message.",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.MarkNotified(ctx, sub.ID, true, false); err != nil {
		t.Fatalf("MarkNotified() error = %v", err)
	}

	got, err := store.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.EmailSent {
		t.Error("EmailSent should be true")
	}
	if got.ConfirmationSent {
		t.Error("ConfirmationSent should be false")
	}
	if got.EmailSentAt == nil {
		t.Error("EmailSentAt should be set when the notification went out")
	}
	if got.ConfirmationSentAt != nil {
		t.Error("ConfirmationSentAt should stay unset for a failed auto-reply")
	}
}

func TestGetRecentAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	subjects := []string{"First inquiry", "Second inquiry", "Third inquiry"}
	for i, subj := range subjects {
		if _, err := store.Create(ctx, models.ContactSubmission{
			Name:        "Ada",
			Email:       "ada@example.com",
			Subject:     subj,
			Message:     "A long enough message body.",
			SubmittedAt: now.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("Create(%q) error = %v", subj, err)
		}
	}

	recent, err := store.GetRecent(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("GetRecent() returned %d, want 2", len(recent))
	}
	if recent[0].Subject != "Third inquiry" {
		t.Errorf("newest subject = %q, want Third inquiry", recent[0].Subject)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}
