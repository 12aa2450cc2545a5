package recordstore_test

import (
	"errors"
	"testing"

	recordstore "github.com/dalemusser/labhub/internal/app/store/records"
	"github.com/dalemusser/labhub/internal/app/system/indexes"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/labhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) *recordstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return recordstore.New(db)
}

func TestCreateAndGet_PerKindCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	proj, err := store.Create(ctx, models.KindProject, models.WorkRecord{Title: "Smart Grid Pilot"})
	if err != nil {
		t.Fatalf("Create project failed: %v", err)
	}
	pat, err := store.Create(ctx, models.KindPatent, models.WorkRecord{Title: "Sensor Mount"})
	if err != nil {
		t.Fatalf("Create patent failed: %v", err)
	}

	got, err := store.GetByID(ctx, models.KindProject, proj.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Smart Grid Pilot" {
		t.Errorf("title: got %q", got.Title)
	}

	// A record of one kind is invisible through another kind's collection.
	if _, err := store.GetByID(ctx, models.KindProject, pat.ID); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound reading a patent from the projects collection, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	rec, err := store.Create(ctx, models.KindPublication, models.WorkRecord{Title: "Draft"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, models.KindPublication, rec.ID, bson.M{"title": "Final", "journal": "J. Results"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, models.KindPublication, rec.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Final" || got.Journal != "J. Results" {
		t.Errorf("update not applied: %+v", got)
	}

	err = store.Update(ctx, models.KindPublication, primitive.NewObjectID(), bson.M{"title": "x"})
	if !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := testutil.TestContext(t)

	rec, err := store.Create(ctx, models.KindCourse, models.WorkRecord{Title: "Embedded Systems"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, models.KindCourse, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, models.KindCourse, rec.ID); err == nil {
		t.Error("deleted record should not be readable")
	}
	err = store.Delete(ctx, models.KindCourse, rec.ID)
	if !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
