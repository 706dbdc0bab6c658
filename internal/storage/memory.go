package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sync"
	"time"
)

// Memory keeps blobs in process. Signed URLs point at a fake host.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory { return &Memory{objects: map[string][]byte{}} }

func (m *Memory) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.objects[objectName] = buf.Bytes()
	m.mu.Unlock()
	return objectName, nil
}

func (m *Memory) SignedGetURL(_ context.Context, objectName string, ttl time.Duration) (string, error) {
	q := url.Values{}
	q.Set("expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	return "https://storage.local/" + url.PathEscape(objectName) + "?" + q.Encode(), nil
}

func (m *Memory) Delete(_ context.Context, objectName string) error {
	m.mu.Lock()
	delete(m.objects, objectName)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Has(objectName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[objectName]
	return ok
}
