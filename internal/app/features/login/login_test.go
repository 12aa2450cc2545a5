package login_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/labhub/internal/app/features/login"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/app/system/indexes"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/labhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *login.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tokens := auth.NewManager("test-secret-0123456789ABCDEF-0123456789", time.Hour, zap.NewNop())
	return login.NewHandler(db, zap.NewNop(), tokens, nil)
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"name": "Asha Rao", "email": "asha@example.edu", "password": "correct horse",
	})
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var reg authResponse
	rec.DecodeJSON(t, &reg)
	if reg.Token == "" {
		t.Error("expected a bearer token on register")
	}
	if reg.User.Role != models.RoleEmployee {
		t.Errorf("role: got %q, want %q", reg.User.Role, models.RoleEmployee)
	}
	if reg.User.PasswordHash != "" {
		t.Error("password hash must never be serialized")
	}

	req = testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "asha@example.edu", "password": "correct horse",
	})
	rec = testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var logged authResponse
	rec.DecodeJSON(t, &logged)
	if logged.User.ID != reg.User.ID {
		t.Error("login returned a different user")
	}
}

func TestRegister_Validation(t *testing.T) {
	h := newTestHandler(t)

	cases := []map[string]string{
		{"email": "asha@example.edu", "password": "correct horse"},         // no name
		{"name": "Asha", "email": "not-an-email", "password": "longenough"}, // bad email
		{"name": "Asha", "email": "asha@example.edu", "password": "short"},  // short password
	}
	for i, body := range cases {
		rec := testutil.NewRecorder()
		h.HandleRegister(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: got %d, want %d", i, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newTestHandler(t)

	body := map[string]string{"name": "Asha", "email": "asha@example.edu", "password": "correct horse"}
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", body))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", body))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "already exists")
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"name": "Asha", "email": "asha@example.edu", "password": "correct horse",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	// Unknown account and wrong password produce the same response.
	for _, body := range []map[string]string{
		{"email": "nobody@example.edu", "password": "correct horse"},
		{"email": "asha@example.edu", "password": "wrong horse"},
	} {
		rec := testutil.NewRecorder()
		h.HandleLogin(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", body))
		rec.AssertStatus(t, http.StatusUnauthorized)
		rec.AssertContains(t, "invalid email or password")
	}
}

func TestUpdateProfile(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"name": "Asha", "email": "asha@example.edu", "password": "correct horse",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	var reg authResponse
	rec.DecodeJSON(t, &reg)

	req := testutil.NewJSONRequest(t, http.MethodPut, "/auth/update-profile", map[string]string{
		"name": "Asha R.", "password": "even longer password",
	})
	req = testutil.WithUser(req, testutil.TestUser{
		ID: reg.User.ID.Hex(), Name: reg.User.Name, Email: reg.User.Email, Role: reg.User.Role,
	})
	rec = testutil.NewRecorder()
	h.HandleUpdateProfile(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var updated models.User
	rec.DecodeJSON(t, &updated)
	if updated.Name != "Asha R." {
		t.Errorf("name: got %q", updated.Name)
	}

	// The new password works, the old one does not.
	rec = testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "asha@example.edu", "password": "even longer password",
	}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "asha@example.edu", "password": "correct horse",
	}))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestUpdateProfile_Anonymous(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleUpdateProfile(rec.ResponseRecorder, testutil.NewJSONRequest(t, http.MethodPut, "/auth/update-profile", map[string]string{
		"name": "x",
	}))
	rec.AssertStatus(t, http.StatusUnauthorized)
}
