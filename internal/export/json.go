// Package export writes snapshots of the tracker state for other tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/onething/internal/model"
	"github.com/verte-zerg/onething/internal/streak"
)

// Snapshot is the full state plus the derived reminder signal.
type Snapshot struct {
	ExportedAt string            `json:"exportedAt"`
	Today      string            `json:"today"`
	MissedDays int               `json:"missedDays"`
	Remind     bool              `json:"remind"`
	Data       model.StorageData `json:"data"`
}

// BuildSnapshot derives the reminder fields for data as of now.
func BuildSnapshot(data model.StorageData, now time.Time, lookback, threshold int) (Snapshot, error) {
	missed, err := streak.MissedDayCount(data, now, lookback)
	if err != nil {
		return Snapshot{}, fmt.Errorf("missed days: %w", err)
	}
	if data.Days == nil {
		data.Days = map[string]model.DayEntry{}
	}
	return Snapshot{
		ExportedAt: now.Format(time.RFC3339),
		Today:      streak.TodayKey(now),
		MissedDays: missed,
		Remind:     streak.ShouldRemind(missed, threshold),
		Data:       data,
	}, nil
}

// WriteJSON encodes snap as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ToJSON writes snap to path, replacing any previous file in one rename.
func ToJSON(snap Snapshot, path string) error {
	return writeFileAtomic(path, "snapshot-*.json", func(w io.Writer) error {
		return WriteJSON(w, snap)
	})
}

func writeFileAtomic(path, pattern string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
