package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/dalemusser/labhub/internal/app/system/blobstore"
)

var keyPattern = regexp.MustCompile(`^labs/notices/\d{4}/\d{2}/[0-9a-f]{8}-[A-Za-z0-9._-]+$`)

func TestKey(t *testing.T) {
	key := blobstore.Key("labs/notices", "Annual Report 2026.pdf")
	if !keyPattern.MatchString(key) {
		t.Errorf("key %q does not match expected layout", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key %q should keep the extension", key)
	}

	// Two keys for the same filename never collide.
	other := blobstore.Key("labs/notices", "Annual Report 2026.pdf")
	if key == other {
		t.Error("expected unique keys for repeated filenames")
	}
}

func TestKey_HostilePaths(t *testing.T) {
	key := blobstore.Key("users/documents", "../../etc/passwd")
	if strings.Contains(key, "..") {
		t.Errorf("key %q should not contain traversal segments", key)
	}

	key = blobstore.Key("users/documents", "")
	if strings.Contains(key, "//") {
		t.Errorf("key %q should not contain empty segments", key)
	}
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	store, err := blobstore.NewLocal(dir, "/files")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	ctx := context.Background()

	key := "labs/notices/2026/01/abcd1234-notice.pdf"
	if err := store.Put(ctx, key, strings.NewReader("hello"), nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("stored content: got %q", data)
	}

	if got := store.URL(key); got != "/files/"+key {
		t.Errorf("URL: got %q", got)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(key))); !os.IsNotExist(err) {
		t.Error("expected file removed")
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key should be a no-op, got %v", err)
	}
}

func TestLocal_KeyCannotEscapeRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := blobstore.NewLocal(dir, "/files")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	outside := filepath.Join(dir, "..", "escape.txt")
	if err := store.Put(context.Background(), "../escape.txt", strings.NewReader("x"), nil); err == nil {
		if _, statErr := os.Stat(outside); statErr == nil {
			t.Error("traversal key wrote outside the storage root")
		}
	}
}

func TestMemory(t *testing.T) {
	store := blobstore.NewMemory()
	ctx := context.Background()

	if err := store.Put(ctx, "a/b", strings.NewReader("x"), nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !store.Has("a/b") || store.Len() != 1 {
		t.Error("expected one stored blob")
	}

	if err := store.Delete(ctx, "a/b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Has("a/b") {
		t.Error("expected blob removed")
	}
}
