package services

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockObjectStore is an in-memory ObjectStore for testing
type MockObjectStore struct {
	objects map[string]mockObject
	mu      sync.RWMutex

	// Err, when set, is returned by every PutObject call
	Err error
}

type mockObject struct {
	content     []byte
	contentType string
}

// NewMockObjectStore creates an empty mock object store
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		objects: make(map[string]mockObject),
	}
}

// PutObject simulates uploading an object
func (m *MockObjectStore) PutObject(ctx context.Context, key string, body io.Reader, contentType string) error {
	if m.Err != nil {
		return m.Err
	}

	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objects[key]; exists {
		return fmt.Errorf("duplicate key: %s", key)
	}
	m.objects[key] = mockObject{content: content, contentType: contentType}
	return nil
}

// PublicURL returns a deterministic fake URL for key
func (m *MockObjectStore) PublicURL(key string) string {
	return fmt.Sprintf("https://listing-images.s3.us-east-1.amazonaws.com/%s", key)
}

// Object returns the stored content and content type of key
func (m *MockObjectStore) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, exists := m.objects[key]
	return obj.content, obj.contentType, exists
}

// Keys returns every stored key (for testing assertions)
func (m *MockObjectStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes all objects from mock storage
func (m *MockObjectStore) Clear() {
	m.mu.Lock()
	m.objects = make(map[string]mockObject)
	m.mu.Unlock()
}
