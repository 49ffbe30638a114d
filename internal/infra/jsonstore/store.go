// Package jsonstore provides a JSON file-based implementation of KeyValueStore.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/idraft/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Values map[string]string `json:"values"`
}

// Store implements domain.KeyValueStore using a JSON file.
// Every operation takes an flock on a sibling lock file, and writes go
// through a temp file and rename.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.withLock(func(data *storeData) error {
		value, ok = data.Values[key]
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Values[key] = value
		return nil
	})
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(_ context.Context, key string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Values, key)
		return nil
	})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create lock directory: %w", domain.ErrPersistence, err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open lock file: %w", domain.ErrPersistence, err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("%w: acquire lock: %w", domain.ErrPersistence, err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the store file. A missing file reads as an empty store.
func (s *Store) read() (*storeData, error) {
	data := &storeData{Values: make(map[string]string)}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("%w: read store file: %w", domain.ErrPersistence, err)
	}

	if err := json.Unmarshal(content, data); err != nil {
		return nil, fmt.Errorf("%w: parse store file: %w", domain.ErrPersistence, err)
	}

	if data.Values == nil {
		data.Values = make(map[string]string)
	}

	return data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal store data: %w", domain.ErrPersistence, err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("%w: write temp file: %w", domain.ErrPersistence, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("%w: rename temp file: %w", domain.ErrPersistence, err)
	}

	return nil
}

// Ensure Store implements KeyValueStore.
var _ domain.KeyValueStore = (*Store)(nil)
