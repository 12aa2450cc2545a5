package users_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/labhub/internal/app/features/users"
	"github.com/dalemusser/labhub/internal/app/system/blobstore"
	"github.com/dalemusser/labhub/internal/app/system/indexes"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/labhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	h := users.NewHandler(db, zap.NewNop(), blobstore.NewMemory(), nil)
	return h, testutil.NewFixtures(t, db)
}

func asUser(r *http.Request, u models.User) *http.Request {
	return testutil.WithUser(r, testutil.TestUser{
		ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role,
	})
}

func TestHandleUpdate_SelfEdit(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := fixtures.CreateUser(ctx, "Asha", "asha@example.edu", models.RoleEmployee)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/"+user.ID.Hex(), map[string]string{
		"name": "Asha R.", "about": "Fiber optics researcher",
	})
	req = asUser(testutil.WithChiURLParam(req, "id", user.ID.Hex()), user)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var updated models.User
	rec.DecodeJSON(t, &updated)
	if updated.Name != "Asha R." {
		t.Errorf("name: got %q", updated.Name)
	}
}

func TestHandleUpdate_OtherUserForbidden(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	editor := fixtures.CreateUser(ctx, "Asha", "asha@example.edu", models.RoleEmployee)
	target := fixtures.CreateUser(ctx, "Ben", "ben@example.edu", models.RoleEmployee)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/"+target.ID.Hex(), map[string]string{
		"name": "Hijacked",
	})
	req = asUser(testutil.WithChiURLParam(req, "id", target.ID.Hex()), editor)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleUpdate_RoleChangeAdminOnly(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := fixtures.CreateUser(ctx, "Asha", "asha@example.edu", models.RoleEmployee)
	admin := fixtures.CreateAdmin(ctx, "Root", "root@example.edu")

	// Self-promotion is rejected.
	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/"+user.ID.Hex(), map[string]string{
		"role": "admin",
	})
	req = asUser(testutil.WithChiURLParam(req, "id", user.ID.Hex()), user)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// An admin can promote.
	req = testutil.NewJSONRequest(t, http.MethodPut, "/users/"+user.ID.Hex(), map[string]string{
		"role": "admin",
	})
	req = asUser(testutil.WithChiURLParam(req, "id", user.ID.Hex()), admin)
	rec = testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var updated models.User
	rec.DecodeJSON(t, &updated)
	if updated.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", updated.Role, models.RoleAdmin)
	}
}

func TestHandleUpdate_EmploymentEndAdminOnly(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := fixtures.CreateUser(ctx, "Asha", "asha@example.edu", models.RoleEmployee)
	admin := fixtures.CreateAdmin(ctx, "Root", "root@example.edu")

	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/"+user.ID.Hex(), map[string]string{
		"employment_to": "2026-08-31",
	})
	req = asUser(testutil.WithChiURLParam(req, "id", user.ID.Hex()), user)
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.NewJSONRequest(t, http.MethodPut, "/users/"+user.ID.Hex(), map[string]string{
		"employment_from": "2020-01-15", "employment_to": "2026-08-31",
	})
	req = asUser(testutil.WithChiURLParam(req, "id", user.ID.Hex()), admin)
	rec = testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var updated models.User
	rec.DecodeJSON(t, &updated)
	if updated.Employment.From == nil || updated.Employment.To == nil {
		t.Errorf("employment period not set: %+v", updated.Employment)
	}
}

func TestServeView_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/users/aaaaaaaaaaaaaaaaaaaaaaaa"), "id", "aaaaaaaaaaaaaaaaaaaaaaaa")
	rec := testutil.NewRecorder()
	h.ServeView(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
