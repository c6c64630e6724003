package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/culinary/backend/internal/domain/proforma"
)

// ErrObjectNotFound is returned when a key is not stored
var ErrObjectNotFound = errors.New("object not found")

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStorage keeps documents in process memory. Used in development and tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

// NewMemoryStorage creates an empty MemoryStorage; DownloadURL links under baseURL
func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "memory://documents"
	}
	return &MemoryStorage{objects: make(map[string]memoryObject), baseURL: baseURL}
}

// Upload stores a copy of body under key
func (m *MemoryStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	if key == "" {
		return errKeyRequired
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	m.mu.Unlock()
	return nil
}

// Download returns the stored bytes of key
func (m *MemoryStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// Exists reports whether key is stored
func (m *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// DownloadURL returns a pseudo URL carrying the expiry time
func (m *MemoryStorage) DownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if key == "" {
		return "", errKeyRequired
	}
	if ok, _ := m.Exists(ctx, key); !ok {
		return "", ErrObjectNotFound
	}
	return fmt.Sprintf("%s/%s?expires=%d", m.baseURL, url.PathEscape(key), time.Now().Add(expires).Unix()), nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errKeyRequired
	}
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// ContentType returns the content type key was uploaded with
func (m *MemoryStorage) ContentType(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objects[key].contentType
}

var _ proforma.DocumentStorage = (*MemoryStorage)(nil)
