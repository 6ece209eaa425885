// Package mirror periodically exports read-only snapshots of the store.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/verte-zerg/onething/internal/export"
	"github.com/verte-zerg/onething/internal/model"
)

// DefaultInterval is the polling interval used when none is configured.
const DefaultInterval = 10 * time.Second

// Reader is the read side of the store.
type Reader interface {
	Read() model.StorageData
}

// Options configures a Mirror.
type Options struct {
	Path      string
	Interval  time.Duration
	Lookback  int
	Threshold int
	Now       func() time.Time
	// OnRemind is called at most once per local day when missed days reach Threshold.
	OnRemind func(missed int)
	Logf     func(format string, args ...any)
}

// Mirror polls a Reader and writes snapshots to a file.
type Mirror struct {
	reader       Reader
	opts         Options
	lastReminded string
}

// New validates opts and returns a Mirror.
func New(reader Reader, opts Options) (*Mirror, error) {
	if reader == nil {
		return nil, errors.New("mirror reader is nil")
	}
	if opts.Path == "" {
		return nil, errors.New("mirror path is empty")
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("mirror interval must be > 0, got %s", opts.Interval)
	}
	if opts.Lookback < 0 {
		return nil, fmt.Errorf("mirror lookback must be >= 0, got %d", opts.Lookback)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logf == nil {
		opts.Logf = logErrf
	}
	return &Mirror{reader: reader, opts: opts}, nil
}

// Sync writes one snapshot and fires the reminder callback when due.
func (m *Mirror) Sync() (export.Snapshot, error) {
	snap, err := export.BuildSnapshot(m.reader.Read(), m.opts.Now(), m.opts.Lookback, m.opts.Threshold)
	if err != nil {
		return export.Snapshot{}, err
	}
	if err := export.ToJSON(snap, m.opts.Path); err != nil {
		return snap, err
	}
	if snap.Remind && snap.Today != m.lastReminded {
		m.lastReminded = snap.Today
		if m.opts.OnRemind != nil {
			m.opts.OnRemind(snap.MissedDays)
		}
	}
	return snap, nil
}

// Run syncs immediately and then on every tick until ctx is done.
func (m *Mirror) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		if _, err := m.Sync(); err != nil {
			m.opts.Logf("mirror sync failed: %v\n", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
