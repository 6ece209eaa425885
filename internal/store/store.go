// Package store owns the persisted tracker state.
//
// The whole state lives in one JSON blob under DataKey. Every mutation reads
// the blob, changes it and writes it back in full. Corrupt or missing blobs
// are replaced by defaults on read, and write failures are logged and dropped.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/verte-zerg/onething/internal/model"
)

// DataKey is the medium key holding the serialized state.
const DataKey = "one-thing-data"

// Store is the single source of truth for model.StorageData.
type Store struct {
	mu     sync.Mutex
	medium Medium
	closer func() error
	logf   func(format string, args ...any)
}

// Option configures a Store.
type Option func(*Store)

// WithLogf sets the function used to report swallowed failures.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Store) {
		if logf != nil {
			s.logf = logf
		}
	}
}

// New wraps an existing medium.
func New(medium Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		logf:   logErrf,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens (or creates) the SQLite-backed store at path.
func Open(path string, opts ...Option) (*Store, error) {
	m, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	s := New(m, opts...)
	s.closer = m.Close
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(opts ...Option) (*Store, error) {
	return Open(memoryPath, opts...)
}

// Close releases the medium if the store opened it.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Read returns the persisted state, or defaults when it is absent or invalid.
func (s *Store) Read() model.StorageData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Write replaces the persisted state. Failures are logged, never returned.
func (s *Store) Write(data model.StorageData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(data)
}

// ResetAllData replaces the persisted state with defaults.
func (s *Store) ResetAllData() {
	s.Write(model.DefaultData())
}

// UpdateUser replaces the stored profile wholesale.
func (s *Store) UpdateUser(profile model.UserProfile) {
	s.update(func(data *model.StorageData) {
		data.User = profile
	})
}

func (s *Store) update(fn func(data *model.StorageData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.read()
	fn(&data)
	s.write(data)
}

func (s *Store) read() model.StorageData {
	raw, ok, err := s.medium.Get(DataKey)
	if err != nil {
		s.logf("failed to read stored data: %v\n", err)
		return model.DefaultData()
	}
	if !ok {
		return model.DefaultData()
	}
	return parse(raw)
}

func (s *Store) write(data model.StorageData) {
	if data.Days == nil {
		data.Days = map[string]model.DayEntry{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		s.logf("failed to encode data: %v\n", err)
		return
	}
	if err := s.medium.Set(DataKey, string(raw)); err != nil {
		s.logf("failed to write data: %v\n", err)
	}
}

// parse decodes a blob, falling back to defaults on any shape problem.
func parse(raw string) model.StorageData {
	if raw == "" {
		return model.DefaultData()
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil || top == nil {
		return model.DefaultData()
	}
	if !present(top["user"]) || !present(top["days"]) {
		return model.DefaultData()
	}
	var data model.StorageData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return model.DefaultData()
	}
	if data.Days == nil {
		data.Days = map[string]model.DayEntry{}
	}
	return data
}

func present(v json.RawMessage) bool {
	return len(v) > 0 && string(v) != "null"
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
