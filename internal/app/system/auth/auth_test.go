package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/labhub/internal/app/system/auth"
	"go.uber.org/zap"
)

const testSecret = "test-secret-0123456789ABCDEF-0123456789"

func TestMintAndVerify(t *testing.T) {
	mgr := auth.NewManager(testSecret, time.Hour, zap.NewNop())

	u := auth.TokenUser{ID: "abc123", Name: "Asha Rao", Email: "asha@example.edu", Role: "admin"}
	tok, err := mgr.Mint(u)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	got, err := mgr.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if *got != u {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", *got, u)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	mgr := auth.NewManager(testSecret, time.Hour, zap.NewNop())
	other := auth.NewManager("another-secret-entirely-0123456789AB", time.Hour, zap.NewNop())

	tok, err := mgr.Mint(auth.TokenUser{ID: "abc123", Role: "employee"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := other.Verify(tok); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	mgr := auth.NewManager(testSecret, -time.Minute, zap.NewNop())

	tok, err := mgr.Mint(auth.TokenUser{ID: "abc123", Role: "employee"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := mgr.Verify(tok); err == nil {
		t.Error("expected verification of an expired token to fail")
	}
}

func TestMint_ZeroTTLDoesNotExpire(t *testing.T) {
	mgr := auth.NewManager(testSecret, 0, zap.NewNop())

	tok, err := mgr.Mint(auth.TokenUser{ID: "abc123", Role: "employee"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := mgr.Verify(tok); err != nil {
		t.Errorf("zero-ttl token should verify, got %v", err)
	}
}

func TestLoadTokenUser(t *testing.T) {
	mgr := auth.NewManager(testSecret, time.Hour, zap.NewNop())
	tok, err := mgr.Mint(auth.TokenUser{ID: "abc123", Name: "Asha", Role: "admin"})
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	var seen *auth.TokenUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	mgr.LoadTokenUser(next).ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil || seen.ID != "abc123" {
		t.Errorf("expected user loaded from bearer token, got %+v", seen)
	}

	// A garbage token is treated as anonymous, not an error.
	seen = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	mgr.LoadTokenUser(next).ServeHTTP(httptest.NewRecorder(), req)
	if seen != nil {
		t.Errorf("expected no user for invalid token, got %+v", seen)
	}
}

func TestRequireSignedIn(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	auth.RequireSignedIn(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = httptest.NewRecorder()
	req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.TokenUser{ID: "abc", Role: "employee"})
	auth.RequireSignedIn(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := auth.RequireRole("admin")

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = httptest.NewRecorder()
	req := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.TokenUser{ID: "abc", Role: "employee"})
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = httptest.NewRecorder()
	req = auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.TokenUser{ID: "abc", Role: "Admin"})
	mw(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("role match is case-insensitive: got %d, want %d", rec.Code, http.StatusOK)
	}
}
