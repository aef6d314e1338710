// Package storage persists the small set of values the client keeps across
// restarts: the auth token, the serialized user identity and the language.
package storage

import (
	"context"
	"errors"
	"sync"
)

// Keys written by the client.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyLanguage = "language"
)

// ErrClosed is returned by a store that can no longer be used.
var ErrClosed = errors.New("storage: closed")

// Store is the persisted key/value collaborator. Get reports ok=false when the
// key is absent. Every method may fail with an I/O error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove implements Store. Removing a missing key is not an error.
func (m *Memory) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Token reads the auth token from store; a missing token is reported as "".
func Token(ctx context.Context, store Store) (string, error) {
	v, _, err := store.Get(ctx, KeyToken)
	return v, err
}
