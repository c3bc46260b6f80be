package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileFormatVersion = "1.0"

// FileKV implements KV as a single JSON document on disk:
//
//	{"version": "1.0", "entries": {"shell_state": {...}}}
//
// Values must themselves be JSON so the file stays readable. Writes go to a
// temporary file that is renamed over the original.
type FileKV struct {
	path    string
	data    map[string]json.RawMessage
	mu      sync.RWMutex
	version string

	// loadErr is the reason the file could not be read at startup. Get
	// reports it until the next successful Set rewrites the file.
	loadErr error
}

type fileDocument struct {
	Version string                     `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// NewFileKV opens the store at path. A missing file is an empty store.
// A file that cannot be decoded does not fail construction; see Get.
func NewFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("file store requires a path")
	}

	store := &FileKV{
		path:    path,
		data:    make(map[string]json.RawMessage),
		version: fileFormatVersion,
	}

	if err := store.load(); err != nil {
		store.loadErr = err
	}
	return store, nil
}

func (s *FileKV) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer file.Close()

	var doc fileDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode state file: %w", err)
	}

	if doc.Version != "" {
		s.version = doc.Version
	}
	if doc.Entries != nil {
		s.data = doc.Entries
	}
	return nil
}

// Get returns the value stored under key.
func (s *FileKV) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores value under key and writes the whole document to disk.
func (s *FileKV) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = append(json.RawMessage(nil), value...)

	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	s.loadErr = nil
	return nil
}

func (s *FileKV) write(entries map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fileDocument{Version: s.version, Entries: entries}); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode state file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Close is a no-op; every Set is already on disk.
func (s *FileKV) Close() error {
	return nil
}

// Path returns the file path of the store.
func (s *FileKV) Path() string {
	return s.path
}
