// Package streak derives calendar views and streak counts from stored days.
//
// Every function here is pure: the reference instant is passed in by the
// caller and all calendar arithmetic happens in that instant's location.
package streak

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/onething/internal/model"
)

// KeyLayout is the time layout of a date key.
const KeyLayout = "2006-01-02"

var (
	// ErrInvalidKey is returned for date keys not in YYYY-MM-DD form.
	ErrInvalidKey = errors.New("invalid date key")
	// ErrInvalidWindow is returned for non-positive or unknown window sizes.
	ErrInvalidWindow = errors.New("invalid window size")
	// ErrInvalidLookback is returned for negative lookback limits.
	ErrInvalidLookback = errors.New("invalid lookback limit")
)

// TodayKey formats ref's calendar date in ref's own location.
func TodayKey(ref time.Time) string {
	y, m, d := ref.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseKey parses a date key as midnight in loc.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(key) != len(KeyLayout) {
		return time.Time{}, fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	t, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return t, nil
}

// ClassifyDay reports the state of the day stored under key.
func ClassifyDay(data model.StorageData, key string) (model.DayState, error) {
	if _, err := ParseKey(key, time.UTC); err != nil {
		return model.StateNone, err
	}
	return classify(data, key), nil
}

func classify(data model.StorageData, key string) model.DayState {
	entry, ok := data.Days[key]
	if !ok {
		return model.StateNone
	}
	if entry.Shipped {
		return model.StateShipped
	}
	return model.StateNotShipped
}

// WindowDays returns size consecutive days ending at ref's day, oldest first.
// Streak counts consecutive shipped days up to and including each day.
func WindowDays(data model.StorageData, size int, ref time.Time) ([]model.DayView, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%d: %w", size, ErrInvalidWindow)
	}
	views := make([]model.DayView, 0, size)
	streak := 0
	for offset := size - 1; offset >= 0; offset-- {
		key := TodayKey(dayAt(ref, -offset))
		state := classify(data, key)
		if state == model.StateShipped {
			streak++
		} else {
			streak = 0
		}
		views = append(views, model.DayView{Date: key, State: state, Streak: streak})
	}
	return views, nil
}

// MissedDayCount counts non-shipped days walking back from the day before ref.
// The scan stops at the first shipped day or after lookback days.
func MissedDayCount(data model.StorageData, ref time.Time, lookback int) (int, error) {
	if lookback < 0 {
		return 0, fmt.Errorf("%d: %w", lookback, ErrInvalidLookback)
	}
	missed := 0
	for offset := 1; offset <= lookback; offset++ {
		if classify(data, TodayKey(dayAt(ref, -offset))) == model.StateShipped {
			break
		}
		missed++
	}
	return missed, nil
}

// ShouldRemind reports whether missed days warrant a re-engagement reminder.
func ShouldRemind(missed, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	return missed >= threshold
}

// dayAt returns midnight of the calendar day offset days from ref's day.
func dayAt(ref time.Time, offset int) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d+offset, 0, 0, 0, 0, ref.Location())
}
