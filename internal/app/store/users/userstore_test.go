package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/app/system/indexes"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/labhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) *userstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return userstore.New(db)
}

func TestCreate_DefaultsAndNormalization(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	user, err := store.Create(ctx, models.User{
		Name:         "Asha Rao",
		Email:        "  Asha.Rao@Example.EDU ",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.Email != "asha.rao@example.edu" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Role != models.RoleEmployee {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleEmployee)
	}
	if user.Documents == nil {
		t.Error("documents should be initialized")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, models.User{Name: "A", Email: "dup@example.edu", PasswordHash: "x"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Name: "B", Email: "DUP@example.edu", PasswordHash: "x"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetByEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	created, err := store.Create(ctx, models.User{Name: "A", Email: "a@example.edu", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, " A@Example.edu ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("lookup returned the wrong user")
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.edu"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	user, err := store.Create(ctx, models.User{Name: "A", Email: "a@example.edu", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, user.ID, bson.M{"name": "Renamed", "email": "NEW@Example.edu"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Renamed" || got.Email != "new@example.edu" {
		t.Errorf("update not applied: name=%q email=%q", got.Name, got.Email)
	}

	err = store.Update(ctx, primitive.NewObjectID(), bson.M{"name": "x"})
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPushDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	user, err := store.Create(ctx, models.User{Name: "A", Email: "a@example.edu", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	doc := models.Document{
		ID:       primitive.NewObjectID(),
		Filename: "cv.pdf",
		URL:      "users/documents/2026/01/abc-cv.pdf",
	}
	if err := store.PushDocument(ctx, user.ID, doc); err != nil {
		t.Fatalf("PushDocument failed: %v", err)
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Documents) != 1 || got.Documents[0].ID != doc.ID {
		t.Errorf("document not appended: %+v", got.Documents)
	}

	err = store.PushDocument(ctx, primitive.NewObjectID(), doc)
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByIDs_SkipsMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	a, err := store.Create(ctx, models.User{Name: "A", Email: "a@example.edu", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	users, err := store.GetByIDs(ctx, []primitive.ObjectID{a.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != a.ID {
		t.Errorf("expected only the existing user, got %+v", users)
	}
}
