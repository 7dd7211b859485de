// Package prefs is a small key-value preference store holding string and
// string-list entries. It backs the favourites on targets without the
// embedded relational engine.
package prefs

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has no value of the requested kind.
var ErrNotFound = errors.New("preference not found")

// Store is the preference store contract.
type Store interface {
	GetString(key string) (string, error)
	SetString(key, value string) error
	GetStringList(key string) ([]string, error)
	SetStringList(key string, values []string) error
	Remove(key string) error
}

// MemoryStore keeps preferences in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	strings map[string]string
	lists   map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strings: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

func (m *MemoryStore) GetString(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.strings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) SetString(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.strings[key] = value
	return nil
}

func (m *MemoryStore) GetStringList(key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.lists[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string{}, v...), nil
}

func (m *MemoryStore) SetStringList(key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[key] = append([]string{}, values...)
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.strings, key)
	delete(m.lists, key)
	return nil
}
