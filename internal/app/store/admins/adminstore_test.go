package admins

import (
	"errors"
	"testing"

	"github.com/bhavyaverma/portfolio/internal/domain/models"
	"github.com/bhavyaverma/portfolio/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAndGetActiveByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.AdminIdentity{
		Username: "bhavya",
		Password: "$2a$12$fakehash",
		Email:    "bhavya@example.com",
		Role:     "admin",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID.IsZero() {
		t.Error("Create() did not assign an ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}

	got, err := store.GetActiveByUsername(ctx, "bhavya")
	if err != nil {
		t.Fatalf("GetActiveByUsername() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetActiveByUsername() ID = %v, want %v", got.ID, created.ID)
	}
	if got.Email != "bhavya@example.com" {
		t.Errorf("Email = %q, want bhavya@example.com", got.Email)
	}
}

func TestGetActiveByUsername_ExcludesInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.AdminIdentity{
		Username: "disabled",
		Password: "hash",
		IsActive: false,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := store.GetActiveByUsername(ctx, "disabled")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetActiveByUsername() error = %v, want ErrNoDocuments", err)
	}

	// GetByUsername ignores the active flag
	if _, err := store.GetByUsername(ctx, "disabled"); err != nil {
		t.Errorf("GetByUsername() error = %v", err)
	}
}

func TestUsernameUniqueIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.AdminIdentity{Username: "dup", Password: "a", IsActive: true}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if _, err := store.Create(ctx, models.AdminIdentity{Username: "dup", Password: "b", IsActive: true}); err == nil {
		t.Error("second Create() with duplicate username should fail")
	}
}

func TestUpdatePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.AdminIdentity{
		Username: "bhavya",
		Password: "oldhash",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.PasswordChangedAt != nil {
		t.Error("new account should have no PasswordChangedAt")
	}

	if err := store.UpdatePassword(ctx, created.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}

	got, err := store.GetActiveByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetActiveByID() error = %v", err)
	}
	if got.Password != "newhash" {
		t.Errorf("Password = %q, want newhash", got.Password)
	}
	if got.PasswordChangedAt == nil {
		t.Error("UpdatePassword() did not set PasswordChangedAt")
	}
}
