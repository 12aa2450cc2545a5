package records_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/labhub/internal/app/features/records"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/app/system/indexes"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/labhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestRouter mounts the projects routes behind the real token middleware
// so the full admin-gated path is exercised, not just the handlers.
func newTestRouter(t *testing.T) (chi.Router, *auth.Manager, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	mgr := auth.NewManager("test-secret-0123456789ABCDEF-0123456789", time.Hour, zap.NewNop())
	h := records.NewHandler(db, zap.NewNop(), nil)

	r := chi.NewRouter()
	r.Use(mgr.LoadTokenUser)
	r.Mount("/projects", records.Routes(h, models.KindProject))
	return r, mgr, testutil.NewFixtures(t, db)
}

func adminToken(t *testing.T, mgr *auth.Manager) string {
	t.Helper()
	tok, err := mgr.Mint(auth.TokenUser{ID: "adm", Name: "Admin", Role: "admin"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	return tok
}

func TestCreateRequiresAdmin(t *testing.T) {
	router, mgr, _ := newTestRouter(t)
	body := map[string]string{"title": "Smart Grid Pilot"}

	// Anonymous.
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/projects/", body))
	rec.AssertStatus(t, http.StatusUnauthorized)

	// Signed in without the admin role.
	empTok, err := mgr.Mint(auth.TokenUser{ID: "emp", Role: "employee"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/projects/", body)
	req.Header.Set("Authorization", "Bearer "+empTok)
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// Admin succeeds.
	req = testutil.NewJSONRequest(t, http.MethodPost, "/projects/", body)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestCreate_RequiresTitle(t *testing.T) {
	router, mgr, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/projects/", map[string]string{
		"description": "no title here",
	})
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "title is required")
}

func TestCreate_RejectsBadDates(t *testing.T) {
	router, mgr, _ := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/projects/", map[string]string{
		"title": "Smart Grid Pilot", "start_date": "next tuesday",
	})
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "start_date")
}

func TestPublicReads(t *testing.T) {
	router, _, fixtures := newTestRouter(t)
	ctx := testutil.TestContext(t)

	rec := fixtures.CreateWorkRecord(ctx, models.KindProject, "Smart Grid Pilot")

	// List without any token.
	res := testutil.NewRecorder()
	router.ServeHTTP(res.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/projects/"))
	res.AssertStatus(t, http.StatusOK)
	res.AssertContains(t, "Smart Grid Pilot")

	res = testutil.NewRecorder()
	router.ServeHTTP(res.ResponseRecorder, testutil.NewRequest(http.MethodGet, "/projects/"+rec.ID.Hex()))
	res.AssertStatus(t, http.StatusOK)
}

func TestUpdateAndDelete(t *testing.T) {
	router, mgr, fixtures := newTestRouter(t)
	ctx := testutil.TestContext(t)

	rec := fixtures.CreateWorkRecord(ctx, models.KindProject, "Smart Grid Pilot")
	tok := adminToken(t, mgr)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/projects/"+rec.ID.Hex(), map[string]string{
		"status": "completed", "end_date": "2026-08-31",
	})
	req.Header.Set("Authorization", "Bearer "+tok)
	res := testutil.NewRecorder()
	router.ServeHTTP(res.ResponseRecorder, req)
	res.AssertStatus(t, http.StatusOK)
	res.AssertContains(t, "completed")

	del := testutil.NewRequest(http.MethodDelete, "/projects/"+rec.ID.Hex())
	del.Header.Set("Authorization", "Bearer "+tok)
	res = testutil.NewRecorder()
	router.ServeHTTP(res.ResponseRecorder, del)
	res.AssertStatus(t, http.StatusOK)

	del = testutil.NewRequest(http.MethodDelete, "/projects/"+rec.ID.Hex())
	del.Header.Set("Authorization", "Bearer "+tok)
	res = testutil.NewRecorder()
	router.ServeHTTP(res.ResponseRecorder, del)
	res.AssertStatus(t, http.StatusNotFound)
}
