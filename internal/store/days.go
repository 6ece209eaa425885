package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/onething/internal/model"
)

var (
	// ErrEmptyTask is returned when committing a blank task.
	ErrEmptyTask = errors.New("task is empty")
	// ErrNoEntry is returned when a day has no committed task.
	ErrNoEntry = errors.New("no task for day")
)

// GetDayEntry returns the entry stored for key, if any.
func (s *Store) GetDayEntry(key string) (model.DayEntry, bool) {
	data := s.Read()
	entry, ok := data.Days[key]
	return entry, ok
}

// SetDayEntry stores entry under key, replacing any previous entry.
func (s *Store) SetDayEntry(key string, entry model.DayEntry) {
	s.update(func(data *model.StorageData) {
		data.Days[key] = entry
	})
}

// DeleteDayEntry removes the entry stored under key.
func (s *Store) DeleteDayEntry(key string) {
	s.update(func(data *model.StorageData) {
		delete(data.Days, key)
	})
}

// CommitTask records task as the day's one thing, started at now.
// An existing entry for key is replaced.
func (s *Store) CommitTask(key, task string, now time.Time) (model.DayEntry, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return model.DayEntry{}, ErrEmptyTask
	}
	entry := model.DayEntry{
		Task:      task,
		StartedAt: now.UnixMilli(),
		Shipped:   false,
	}
	s.SetDayEntry(key, entry)
	return entry, nil
}

// MarkShipped flips the entry for key to shipped. Shipping is terminal.
func (s *Store) MarkShipped(key string) (model.DayEntry, error) {
	var (
		entry model.DayEntry
		found bool
	)
	s.update(func(data *model.StorageData) {
		entry, found = data.Days[key]
		if !found || entry.Shipped {
			return
		}
		entry.Shipped = true
		data.Days[key] = entry
	})
	if !found {
		return model.DayEntry{}, fmt.Errorf("ship %s: %w", key, ErrNoEntry)
	}
	return entry, nil
}

// NotToday acknowledges that the user is skipping the day's task.
// Persisted state is left untouched; the entry, if any, is returned as is.
func (s *Store) NotToday(key string) (model.DayEntry, bool) {
	return s.GetDayEntry(key)
}
