package workingtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LocalTime is a wall-clock time of day, stored as the offset from midnight
type LocalTime time.Duration

// MaxLocalTime is the last representable time of day (23:59:59.999999999).
// An interval ending at MaxLocalTime lasts until the start of the next day.
const MaxLocalTime = LocalTime(24*time.Hour - time.Nanosecond)

// NewLocalTime builds a time of day from its components
func NewLocalTime(hour, minute, second int) (LocalTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	return LocalTime(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second), nil
}

// MustLocalTime is like NewLocalTime but panics on invalid input.
// Intended for static schedules.
func MustLocalTime(hour, minute, second int) LocalTime {
	lt, err := NewLocalTime(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return lt
}

// LocalTimeOf returns the wall-clock time of day of t in t's location
func LocalTimeOf(t time.Time) LocalTime {
	return LocalTime(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond()))
}

// ParseLocalTime parses "HH:MM" or "HH:MM:SS". "24:00" means MaxLocalTime.
func ParseLocalTime(s string) (LocalTime, error) {
	if s == "24:00" || s == "24:00:00" {
		return MaxLocalTime, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}

	values := make([]int, 3)
	for i, part := range parts {
		if len(part) != 2 {
			return 0, fmt.Errorf("invalid time format: %s", s)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("invalid time format: %s", s)
		}
		values[i] = v
	}

	return NewLocalTime(values[0], values[1], values[2])
}

// On returns the instant at which this wall-clock time occurs on the given
// calendar date in loc. Times skipped by a DST gap move forward by the gap.
// MaxLocalTime maps to the start of the following day.
func (lt LocalTime) On(date time.Time, loc *time.Location) time.Time {
	if lt == MaxLocalTime {
		return time.Date(date.Year(), date.Month(), date.Day()+1, 0, 0, 0, 0, loc)
	}
	d := time.Duration(lt)
	hour := int(d / time.Hour)
	minute := int(d % time.Hour / time.Minute)
	second := int(d % time.Minute / time.Second)
	nsec := int(d % time.Second)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, second, nsec, loc)
}

// String formats as HH:MM or HH:MM:SS; MaxLocalTime prints as 24:00
func (lt LocalTime) String() string {
	if lt == MaxLocalTime {
		return "24:00"
	}
	d := time.Duration(lt)
	hour := d / time.Hour
	minute := d % time.Hour / time.Minute
	second := d % time.Minute / time.Second
	if second == 0 && d%time.Second == 0 {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// LocalTimeInterval is one contiguous work slot within a day
type LocalTimeInterval struct {
	Begin LocalTime
	End   LocalTime
}

// NewLocalTimeInterval validates begin <= end
func NewLocalTimeInterval(begin, end LocalTime) (LocalTimeInterval, error) {
	if begin < 0 || end > MaxLocalTime {
		return LocalTimeInterval{}, fmt.Errorf("interval %s-%s out of day range", begin, end)
	}
	if begin > end {
		return LocalTimeInterval{}, fmt.Errorf("interval begin %s is after end %s", begin, end)
	}
	return LocalTimeInterval{Begin: begin, End: end}, nil
}

// AllDay is the interval covering a whole day
var AllDay = LocalTimeInterval{Begin: 0, End: MaxLocalTime}

// ParseLocalTimeInterval parses "HH:MM-HH:MM"
func ParseLocalTimeInterval(s string) (LocalTimeInterval, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return LocalTimeInterval{}, fmt.Errorf("invalid interval %q, expected HH:MM-HH:MM", s)
	}
	begin, err := ParseLocalTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return LocalTimeInterval{}, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	end, err := ParseLocalTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return LocalTimeInterval{}, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	return NewLocalTimeInterval(begin, end)
}

// Overlaps reports whether two intervals share any time. Touching intervals
// (one ends where the other begins) do not overlap.
func (i LocalTimeInterval) Overlaps(other LocalTimeInterval) bool {
	return i.Begin < other.End && other.Begin < i.End
}

// Contains reports whether lt lies in [Begin, End)
func (i LocalTimeInterval) Contains(lt LocalTime) bool {
	return lt >= i.Begin && (lt < i.End || i.End == MaxLocalTime)
}

// String formats as "HH:MM-HH:MM"
func (i LocalTimeInterval) String() string {
	return i.Begin.String() + "-" + i.End.String()
}
