package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/JaimeStill/spiral/pkg/lifecycle"
)

type memoryBlob struct {
	data        []byte
	contentType string
}

type memory struct {
	mu     sync.RWMutex
	blobs  map[string]memoryBlob
	logger *slog.Logger
}

// NewMemory creates a process-local storage system. Blobs are lost on exit.
func NewMemory(logger *slog.Logger) System {
	return &memory{
		blobs:  make(map[string]memoryBlob),
		logger: logger.With("system", "storage", "provider", ProviderMemory),
	}
}

func (m *memory) Start(lc *lifecycle.Coordinator) error {
	m.logger.Warn("using in-memory storage, transcripts are not durable")
	return nil
}

func (m *memory) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	m.mu.Lock()
	m.blobs[key] = memoryBlob{data: data, contentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *memory) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	b, ok := m.blobs[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memory) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	m.mu.RLock()
	_, ok := m.blobs[key]
	m.mu.RUnlock()
	return ok, nil
}
