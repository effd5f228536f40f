// Package store provides string-keyed persistence for JSON records.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Keys under which records are persisted.
const (
	KeyGoals    = "dailyGoals"
	KeyProgress = "dailyGoalProgress"
	KeyAttempts = "mockTestHistory"
)

// Storage is the minimal key/value contract the trackers depend on.
// Get reports ok=false for a missing key.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Deleter is implemented by storages that can drop a key.
type Deleter interface {
	Delete(key string) error
}

// Stamper is implemented by storages that record when a key was written.
type Stamper interface {
	UpdatedAt(key string) (time.Time, bool, error)
}

// CorruptionError reports a persisted value that could not be decoded.
type CorruptionError struct {
	Key string
	Err error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corrupt value for %q: %v", e.Key, e.Err)
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}

// ErrMissing is returned by ReadJSON when the key is absent.
var ErrMissing = errors.New("key not found")

// ReadJSON decodes the value stored under key into v. A missing key yields
// ErrMissing and an undecodable value yields a *CorruptionError.
func ReadJSON(st Storage, key string, v any) error {
	raw, ok, err := st.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return ErrMissing
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &CorruptionError{Key: key, Err: err}
	}
	return nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(st Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := st.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Clear removes key, falling back to an empty value when st cannot delete.
func Clear(st Storage, key string) error {
	if d, ok := st.(Deleter); ok {
		return d.Delete(key)
	}
	return st.Set(key, "")
}

// Memory is an in-process Storage.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
	// FailWrites makes every Set return this error when non-nil.
	FailWrites error
	// FailReads makes every Get return this error when non-nil.
	FailReads error
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

// Get implements Storage.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return "", false, m.FailReads
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = value
	return nil
}

// Delete implements Deleter.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
