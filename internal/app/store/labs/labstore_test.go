package labstore_test

import (
	"errors"
	"testing"
	"time"

	labstore "github.com/dalemusser/labhub/internal/app/store/labs"
	"github.com/dalemusser/labhub/internal/app/system/indexes"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/labhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) (*labstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return labstore.New(db), testutil.NewFixtures(t, db)
}

func sampleLab(name string) models.Lab {
	return models.Lab{
		Name: name,
		Directors: []models.Director{
			{Name: "Dr. X", Designation: "Director", From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := testutil.TestContext(t)

	lab, err := store.Create(ctx, sampleLab("Optics Lab"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if lab.ID.IsZero() {
		t.Error("expected assigned id")
	}
	if lab.CreatedAt.IsZero() || lab.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if lab.Directors[0].ID.IsZero() {
		t.Error("expected director to get an embedded id")
	}
	if lab.Notices == nil || lab.Projects == nil {
		t.Error("expected arrays to be initialized, not nil")
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := testutil.TestContext(t)

	if _, err := store.Create(ctx, sampleLab("Optics Lab")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, sampleLab("Optics Lab"))
	if !errors.Is(err, labstore.ErrDuplicateLabName) {
		t.Errorf("expected ErrDuplicateLabName, got %v", err)
	}

	// Folded comparison catches case-only variants too.
	_, err = store.Create(ctx, sampleLab("OPTICS LAB"))
	if !errors.Is(err, labstore.ErrDuplicateLabName) {
		t.Errorf("expected ErrDuplicateLabName for case variant, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := testutil.TestContext(t)

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, labstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing lab, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := testutil.TestContext(t)

	err := store.Update(ctx, primitive.NewObjectID(), bson.M{"vision": "x"})
	if !errors.Is(err, labstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPushAndPullFileItem(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx := testutil.TestContext(t)

	lab := fixtures.CreateLab(ctx, "Optics Lab")
	item := models.FileItem{
		ID:          primitive.NewObjectID(),
		Name:        "Annual Notice",
		Description: "Yearly announcement",
		FileURL:     "labs/notices/2026/01/abc-notice.pdf",
		CreatedAt:   time.Now().UTC(),
	}

	if err := store.PushFileItem(ctx, lab.ID, "notices", item); err != nil {
		t.Fatalf("PushFileItem failed: %v", err)
	}

	got, err := store.GetByID(ctx, lab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Notices) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(got.Notices))
	}
	if got.Notices[0].ID != item.ID {
		t.Error("expected the appended item to be retrievable by its id")
	}

	if err := store.PullFileItem(ctx, lab.ID, "notices", item.ID); err != nil {
		t.Fatalf("PullFileItem failed: %v", err)
	}

	got, err = store.GetByID(ctx, lab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Notices) != 0 {
		t.Errorf("expected 0 notices after pull, got %d", len(got.Notices))
	}

	// Second delete of the same id is a not-found.
	err = store.PullFileItem(ctx, lab.ID, "notices", item.ID)
	if !errors.Is(err, labstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestUpdateFileItem_RewritesFields(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx := testutil.TestContext(t)

	lab := fixtures.CreateLab(ctx, "Optics Lab")
	item := models.FileItem{
		ID:          primitive.NewObjectID(),
		Name:        "Old Name",
		Description: "Old description",
		FileURL:     "labs/products/2026/01/old.pdf",
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.PushFileItem(ctx, lab.ID, "products", item); err != nil {
		t.Fatalf("PushFileItem failed: %v", err)
	}

	set := bson.M{"name": "New Name", "file_url": "labs/products/2026/02/new.pdf"}
	if err := store.UpdateFileItem(ctx, lab.ID, "products", item.ID, set); err != nil {
		t.Fatalf("UpdateFileItem failed: %v", err)
	}

	got, err := store.GetByID(ctx, lab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Products[0].Name != "New Name" {
		t.Errorf("name: got %q, want %q", got.Products[0].Name, "New Name")
	}
	if got.Products[0].FileURL != "labs/products/2026/02/new.pdf" {
		t.Errorf("file_url not replaced: got %q", got.Products[0].FileURL)
	}
	if got.Products[0].Description != "Old description" {
		t.Error("untouched field should survive a partial item update")
	}

	err = store.UpdateFileItem(ctx, lab.ID, "products", primitive.NewObjectID(), bson.M{"name": "x"})
	if !errors.Is(err, labstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for absent item, got %v", err)
	}
}

func TestPullWorkRecordRef(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx := testutil.TestContext(t)

	lab := fixtures.CreateLab(ctx, "Optics Lab")
	projectID := primitive.NewObjectID()

	res, err := fixtures.DB().Collection("labs").UpdateByID(ctx, lab.ID, bson.M{
		"$push": bson.M{"projects": projectID},
	})
	if err != nil || res.MatchedCount == 0 {
		t.Fatalf("failed to seed project ref: %v", err)
	}

	if err := store.PullWorkRecordRef(ctx, lab.ID, "projects", projectID); err != nil {
		t.Fatalf("PullWorkRecordRef failed: %v", err)
	}

	got, err := store.GetByID(ctx, lab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Projects) != 0 {
		t.Errorf("expected 0 project refs, got %d", len(got.Projects))
	}

	err = store.PullWorkRecordRef(ctx, lab.ID, "projects", projectID)
	if !errors.Is(err, labstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for absent ref, got %v", err)
	}
}

func TestFileField(t *testing.T) {
	cases := map[string]string{
		"notice":         "notices",
		"notices":        "notices",
		"circular":       "circulars",
		"advertisement":  "advertisements",
		"advertisements": "advertisements",
		"product":        "products",
		"projects":       "",
		"bogus":          "",
	}
	for in, want := range cases {
		if got := labstore.FileField(in); got != want {
			t.Errorf("FileField(%q): got %q, want %q", in, got, want)
		}
	}
}
