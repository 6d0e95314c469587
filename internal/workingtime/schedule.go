package workingtime

import (
	"fmt"
	"sort"
	"time"
)

// WorkSlots is a read-only, ordered view of the work slots of one weekday
type WorkSlots struct {
	slots []LocalTimeInterval
}

// Len returns the number of slots
func (ws WorkSlots) Len() int {
	return len(ws.slots)
}

// At returns the i-th slot
func (ws WorkSlots) At(i int) LocalTimeInterval {
	return ws.slots[i]
}

// Slice returns a copy of the slots. Changing it does not affect the schedule.
func (ws WorkSlots) Slice() []LocalTimeInterval {
	return append([]LocalTimeInterval(nil), ws.slots...)
}

// Schedule maps each weekday to its validated, non-overlapping work slots.
// It is immutable after construction.
type Schedule struct {
	ascending  [7][]LocalTimeInterval
	descending [7][]LocalTimeInterval
}

// NewSchedule validates and copies the weekly slot map. Weekdays missing from
// the map have no work slots.
func NewSchedule(slots map[time.Weekday][]LocalTimeInterval) (*Schedule, error) {
	s := &Schedule{}

	for day, intervals := range slots {
		if day < time.Sunday || day > time.Saturday {
			return nil, fmt.Errorf("%w: invalid weekday %d", ErrInvalidSchedule, day)
		}

		for _, iv := range intervals {
			if iv.Begin < 0 || iv.End > MaxLocalTime || iv.Begin > iv.End {
				return nil, fmt.Errorf("%w: invalid interval %s on %s", ErrInvalidSchedule, iv, day)
			}
		}

		// Pairwise: every two intervals of the same weekday must be disjoint
		for i := 0; i < len(intervals); i++ {
			for j := i + 1; j < len(intervals); j++ {
				if intervals[i].Overlaps(intervals[j]) {
					return nil, fmt.Errorf("%w: intervals %s and %s overlap on %s",
						ErrInvalidSchedule, intervals[i], intervals[j], day)
				}
			}
		}

		asc := append([]LocalTimeInterval(nil), intervals...)
		sort.Slice(asc, func(i, j int) bool {
			if asc[i].Begin == asc[j].Begin {
				return asc[i].End < asc[j].End
			}
			return asc[i].Begin < asc[j].Begin
		})

		desc := make([]LocalTimeInterval, len(asc))
		for i, iv := range asc {
			desc[len(asc)-1-i] = iv
		}

		s.ascending[day] = asc
		s.descending[day] = desc
	}

	return s, nil
}

// WorkSlotsFor returns the slots of day ordered by begin time
func (s *Schedule) WorkSlotsFor(day time.Weekday) WorkSlots {
	return WorkSlots{slots: s.ascending[day]}
}

// WorkSlotsForReversed returns the slots of day in descending begin order
func (s *Schedule) WorkSlotsForReversed(day time.Weekday) WorkSlots {
	return WorkSlots{slots: s.descending[day]}
}

// HasSlots reports whether day has at least one non-empty work slot
func (s *Schedule) HasSlots(day time.Weekday) bool {
	return hasWorkTime(s.ascending[day])
}

// IsEmpty reports whether no weekday has a non-empty work slot
func (s *Schedule) IsEmpty() bool {
	for day := range s.ascending {
		if hasWorkTime(s.ascending[day]) {
			return false
		}
	}
	return true
}

func hasWorkTime(intervals []LocalTimeInterval) bool {
	for _, iv := range intervals {
		if iv.Begin < iv.End {
			return true
		}
	}
	return false
}

// WorkingTimeOn returns the nominal wall-clock work time of day.
// All-day slots count as 24h.
func (s *Schedule) WorkingTimeOn(day time.Weekday) time.Duration {
	var total time.Duration
	for _, iv := range s.ascending[day] {
		end := time.Duration(iv.End)
		if iv.End == MaxLocalTime {
			end = 24 * time.Hour
		}
		total += end - time.Duration(iv.Begin)
	}
	return total
}
