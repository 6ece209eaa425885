// Package model defines shared data structures.
package model

import "time"

// Default profile values used when no profile has been saved yet.
const (
	DefaultDayStart = "09:00"
	DefaultDayEnd   = "17:00"
)

// UserProfile holds the user's name and working-day bounds.
type UserProfile struct {
	Name     string `json:"name"`
	DayStart string `json:"dayStart"`
	DayEnd   string `json:"dayEnd"`
}

// DayEntry is the single task recorded for one calendar day.
type DayEntry struct {
	Task      string `json:"task"`
	StartedAt int64  `json:"startedAt"` // epoch milliseconds
	Shipped   bool   `json:"shipped"`
}

// Started returns StartedAt as a time in loc.
func (e DayEntry) Started(loc *time.Location) time.Time {
	return time.UnixMilli(e.StartedAt).In(loc)
}

// StorageData is the entire persisted state.
type StorageData struct {
	User UserProfile         `json:"user"`
	Days map[string]DayEntry `json:"days"`
}

// DefaultProfile returns a profile with default day bounds.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:     "",
		DayStart: DefaultDayStart,
		DayEnd:   DefaultDayEnd,
	}
}

// DefaultData returns a freshly defaulted state with an empty day map.
func DefaultData() StorageData {
	return StorageData{
		User: DefaultProfile(),
		Days: map[string]DayEntry{},
	}
}

// Clone returns a deep copy so callers can mutate the day map freely.
func (d StorageData) Clone() StorageData {
	days := make(map[string]DayEntry, len(d.Days))
	for k, v := range d.Days {
		days[k] = v
	}
	return StorageData{User: d.User, Days: days}
}

// DayState classifies a single calendar day.
type DayState int

// Day states.
const (
	StateNone DayState = iota
	StateNotShipped
	StateShipped
)

// String returns the persisted/display form of the state.
func (s DayState) String() string {
	switch s {
	case StateShipped:
		return "shipped"
	case StateNotShipped:
		return "not-shipped"
	default:
		return "none"
	}
}

// DayView is the derived, non-persisted view of one day.
type DayView struct {
	Date   string
	State  DayState
	Streak int
}

// Summary aggregates a window of day views.
type Summary struct {
	Days          int
	CurrentStreak int
	BestStreak    int
	Shipped       int
	NotShipped    int
	Empty         int
}
