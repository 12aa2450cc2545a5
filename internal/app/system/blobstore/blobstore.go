// internal/app/system/blobstore/blobstore.go
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
}

// Store is the blob-store abstraction the hierarchy code writes through.
// Keys are opaque slash-separated paths; URL turns a key into the
// reference persisted on FileItems and user documents.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Key builds a unique storage key: <area>/YYYY/MM/<uuid8>-<filename>.
// The area separates lab notices from group uploads from user documents
// so operators can reason about the bucket layout.
func Key(area, filename string) string {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("%s/%04d/%02d", area, now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	return dateDir + "/" + uniqueName
}

// sanitizeFilename removes or replaces characters that could be problematic
// in storage keys, preserving the extension on truncation.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
