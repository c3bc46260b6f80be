// Package persist stores the browser state between sessions.
//
// State is kept as one serialized snapshot under browser.StateKey in a
// key-value store. Three stores are provided: MemoryKV for tests and
// throwaway sessions, FileKV (a JSON document on disk) and SQLiteKV.
// Adapter sits on top of a store and implements browser.Store with the
// shell's failure policy: loading falls back to defaults, saving never
// reports errors.
package persist

import (
	"errors"
	"fmt"
	"sync"
)

// KV is the key-value interface the snapshot is persisted through.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// does not exist.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Close releases the store's resources.
	Close() error
}

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store is closed")

// Backend names a KV implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(name); b {
	case BackendMemory, BackendFile, BackendSQLite:
		return b, nil
	}
	return "", fmt.Errorf("unknown storage backend %q (want memory, file or sqlite)", name)
}

// Open creates the store for backend. path is ignored for the memory backend.
func Open(backend Backend, path string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		return NewFileKV(path)
	case BackendSQLite:
		return NewSQLiteKV(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// MemoryKV is a KV held in process memory.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Close marks the store closed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
