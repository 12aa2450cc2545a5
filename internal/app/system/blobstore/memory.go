// internal/app/system/blobstore/memory.go
package blobstore

import (
	"context"
	"io"
	"sync"
)

// Memory is an in-memory store for tests.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailPut / FailDelete force errors to exercise partial-failure paths.
	FailPut    error
	FailDelete error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error {
	if m.FailPut != nil {
		return m.FailPut
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if m.FailDelete != nil {
		return m.FailDelete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *Memory) URL(key string) string { return "/files/" + key }

// Has reports whether a blob exists; test helper.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok
}

// Len returns the number of stored blobs; test helper.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
