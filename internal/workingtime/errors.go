package workingtime

import "errors"

var (
	// ErrMissingInstant is returned when a required instant is the zero time
	ErrMissingInstant = errors.New("instant must not be zero")

	// ErrNegativeDuration is returned for negative working time
	ErrNegativeDuration = errors.New("duration must not be negative")

	// ErrInvalidSchedule marks a broken weekly schedule (overlapping or malformed slots)
	ErrInvalidSchedule = errors.New("invalid working time schedule")

	// ErrEmptySchedule is returned when no weekday has any work slot
	ErrEmptySchedule = errors.New("working time schedule has no work slots")

	// ErrNoWorkSlot is returned when no work slot exists within the search horizon,
	// e.g. because every date is configured as a holiday
	ErrNoWorkSlot = errors.New("no work slot found within search horizon")
)
