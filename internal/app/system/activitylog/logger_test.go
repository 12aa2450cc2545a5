package activitylog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/labhub/internal/app/store/activity"
	"github.com/dalemusser/labhub/internal/app/system/activitylog"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/testutil"
	"go.uber.org/zap"
)

func TestRecord_ModeDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	store := activity.New(db)
	logger := activitylog.New(store, zap.NewNop(), activitylog.ModeDB)

	req := httptest.NewRequest(http.MethodPost, "/labs", nil)
	req = auth.WithTestUser(req, &auth.TokenUser{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Name: "Root", Role: "admin"})
	logger.Record(ctx, req, "lab.create", map[string]string{"lab_id": "x"})

	entries, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Action != "lab.create" {
		t.Errorf("action: got %q", entries[0].Action)
	}
	if entries[0].UserID == nil || entries[0].UserID.Hex() != "aaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("user id not recorded: %+v", entries[0].UserID)
	}
}

func TestRecord_ModeOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	store := activity.New(db)
	logger := activitylog.New(store, zap.NewNop(), activitylog.ModeOff)

	logger.Record(ctx, httptest.NewRequest(http.MethodPost, "/labs", nil), "lab.create", nil)

	entries, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries in off mode, got %d", len(entries))
	}
}

func TestRecord_NilLogger(t *testing.T) {
	// A nil logger is a no-op, so handlers can call it unconditionally.
	var logger *activitylog.Logger
	logger.Record(nil, nil, "anything", nil)
}

func TestListRecent_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	store := activity.New(db)
	logger := activitylog.New(store, zap.NewNop(), activitylog.ModeDB)
	for _, action := range []string{"first", "second", "third"} {
		logger.Record(ctx, nil, action, nil)
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(entries))
	}
	if entries[0].Action != "third" {
		t.Errorf("expected newest first, got %q", entries[0].Action)
	}
}
