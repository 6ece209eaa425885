package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/onething/internal/model"
)

// ErrInvalidTime is returned for day bounds not in 24h HH:MM form.
var ErrInvalidTime = errors.New("invalid time of day")

const clockLayout = "15:04"

// ValidateProfile checks that both day bounds are valid HH:MM values.
func ValidateProfile(p model.UserProfile) error {
	if err := ValidateClock(p.DayStart); err != nil {
		return fmt.Errorf("day start: %w", err)
	}
	if err := ValidateClock(p.DayEnd); err != nil {
		return fmt.Errorf("day end: %w", err)
	}
	return nil
}

// ValidateClock checks a single HH:MM value.
func ValidateClock(v string) error {
	if len(v) != len(clockLayout) {
		return fmt.Errorf("%q: %w", v, ErrInvalidTime)
	}
	if _, err := time.Parse(clockLayout, v); err != nil {
		return fmt.Errorf("%q: %w", v, ErrInvalidTime)
	}
	return nil
}
