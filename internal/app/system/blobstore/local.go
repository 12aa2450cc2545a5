// internal/app/system/blobstore/local.go
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs on the local filesystem under a base directory and
// serves them under a URL prefix (mounted by the router).
type Local struct {
	basePath  string
	urlPrefix string
}

// NewLocal creates a Local store rooted at basePath. The directory is
// created if missing.
func NewLocal(basePath, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{basePath: basePath, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// BasePath returns the root directory, for mounting a file server.
func (l *Local) BasePath() string { return l.basePath }

// URLPrefix returns the prefix files are served under.
func (l *Local) URLPrefix() string { return l.urlPrefix }

func (l *Local) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	full := filepath.Join(l.basePath, clean)
	// Clean above pins the key under basePath; double-check anyway.
	if !strings.HasPrefix(full, filepath.Clean(l.basePath)) {
		return "", fmt.Errorf("key escapes storage root: %s", key)
	}
	return full, nil
}

func (l *Local) Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error {
	full, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return err
	}
	return f.Close()
}

func (l *Local) Delete(ctx context.Context, key string) error {
	full, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Local) URL(key string) string {
	return l.urlPrefix + "/" + strings.TrimLeft(key, "/")
}
