// Package storage file: storage/memory.go
package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

var _ BlobStore = (*MemoryStorage)(nil)

// Object is a stored blob.
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStorage keeps objects in process memory and serves them under
// <baseURL>/media/<bucket>/<key>. Used for local development and tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]Object
	failure error
}

// NewMemoryStorage creates an empty store whose public URLs start at baseURL.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

func objectKey(bucket Bucket, key string) string {
	return string(bucket) + "/" + key
}

// Upload stores a copy of data.
func (m *MemoryStorage) Upload(ctx context.Context, bucket Bucket, key string, data []byte, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}
	k := objectKey(bucket, key)
	if _, exists := m.objects[k]; exists && !opts.Overwrite {
		return fmt.Errorf("%s: %w", k, ErrObjectExists)
	}
	m.objects[k] = Object{Data: append([]byte(nil), data...), ContentType: opts.ContentType}
	return nil
}

// PublicURL returns the media route for the object.
func (m *MemoryStorage) PublicURL(bucket Bucket, key string) string {
	return m.baseURL + "/media/" + objectKey(bucket, key)
}

// Get returns a stored object.
func (m *MemoryStorage) Get(bucket Bucket, key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[objectKey(bucket, key)]
	return obj, ok
}

// Len returns the number of stored objects.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// FailWith makes every following upload return err; nil restores normal behaviour.
func (m *MemoryStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}
