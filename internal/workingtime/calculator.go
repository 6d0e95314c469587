package workingtime

import (
	"fmt"
	"time"

	"github.com/username/workcal/pkg/dateutil"
	"go.uber.org/zap"
)

// maxIdleDays bounds the search for the next usable work slot. A schedule
// with at least one slot per week only hits it when holidays cover every
// working weekday for years.
const maxIdleDays = 3660

// HolidayChecker decides whether a calendar date is a holiday.
// Only the year, month and day of the argument are significant.
type HolidayChecker interface {
	IsHoliday(date time.Time) bool
}

type noHolidays struct{}

func (noHolidays) IsHoliday(time.Time) bool { return false }

// workSlot is a LocalTimeInterval placed on a concrete date
type workSlot struct {
	start time.Time
	end   time.Time
}

func (s workSlot) isEmpty() bool {
	return !s.start.Before(s.end)
}

// Calculator computes due dates and elapsed working time over a weekly
// work-slot schedule, skipping holidays. All wall-clock lookups happen in the
// configured zone. It is immutable and safe for concurrent use.
type Calculator struct {
	schedule *Schedule
	holidays HolidayChecker
	location *time.Location
	logger   *zap.Logger
}

// NewCalculator validates the weekly slots and resolves the IANA zone id.
// A nil holidays checker observes no holidays; a nil logger logs nothing.
func NewCalculator(
	holidays HolidayChecker,
	slots map[time.Weekday][]LocalTimeInterval,
	zoneID string,
	logger *zap.Logger,
) (*Calculator, error) {
	schedule, err := NewSchedule(slots)
	if err != nil {
		return nil, err
	}
	return NewCalculatorFromSchedule(holidays, schedule, zoneID, logger)
}

// NewCalculatorFromSchedule creates a calculator from an already validated schedule
func NewCalculatorFromSchedule(
	holidays HolidayChecker,
	schedule *Schedule,
	zoneID string,
	logger *zap.Logger,
) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule is nil", ErrInvalidSchedule)
	}
	if schedule.IsEmpty() {
		return nil, ErrEmptySchedule
	}
	if holidays == nil {
		holidays = noHolidays{}
	}

	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", zoneID, err)
	}

	logger.Info("Working time calculator created",
		zap.String("zone", loc.String()))

	return &Calculator{
		schedule: schedule,
		holidays: holidays,
		location: loc,
		logger:   logger,
	}, nil
}

// Location returns the configured time zone
func (c *Calculator) Location() *time.Location {
	return c.location
}

// Schedule returns the weekly work-slot schedule
func (c *Calculator) Schedule() *Schedule {
	return c.schedule
}

// IsWorkingDay reports whether t falls, in the configured zone, on a weekday
// with work slots that is not a holiday
func (c *Calculator) IsWorkingDay(t time.Time) (bool, error) {
	if t.IsZero() {
		return false, fmt.Errorf("is working day: %w", ErrMissingInstant)
	}
	return c.isWorkingDate(c.dateOf(t)), nil
}

// IsWeekend reports whether t falls on a weekday without work slots
func (c *Calculator) IsWeekend(t time.Time) (bool, error) {
	if t.IsZero() {
		return false, fmt.Errorf("is weekend: %w", ErrMissingInstant)
	}
	return !c.schedule.HasSlots(c.dateOf(t).Weekday()), nil
}

// IsHoliday reports whether t falls on a holiday in the configured zone
func (c *Calculator) IsHoliday(t time.Time) (bool, error) {
	if t.IsZero() {
		return false, fmt.Errorf("is holiday: %w", ErrMissingInstant)
	}
	return c.holidays.IsHoliday(c.dateOf(t)), nil
}

// AddWorkingTime returns the instant reached after working d starting at start.
//
// An instant outside every work slot first snaps forward to the start of the
// next available slot; with d == 0 that snapped instant is the result. Time is
// then consumed slot by slot until d is exhausted. The result is in start's
// location.
func (c *Calculator) AddWorkingTime(start time.Time, d time.Duration) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("add working time: %w", ErrMissingInstant)
	}
	if d < 0 {
		return time.Time{}, fmt.Errorf("add working time %s: %w", d, ErrNegativeDuration)
	}

	cursor := start
	remaining := d
	for {
		slot, err := c.slotOrNext(cursor)
		if err != nil {
			return time.Time{}, fmt.Errorf("add working time: %w", err)
		}

		from := latest(cursor, slot.start)
		available := slot.end.Sub(from)
		if remaining <= available {
			result := from.Add(remaining).In(start.Location())
			c.logger.Debug("Working time added",
				zap.Time("start", start),
				zap.Duration("duration", d),
				zap.Time("result", result))
			return result, nil
		}

		remaining -= available
		cursor = slot.end
	}
}

// SubtractWorkingTime walks backwards from start until d working time has been
// consumed. An instant outside every work slot first snaps back to the end of
// the previous available slot. Walking backwards a slot covers (begin, end],
// so a start exactly at a slot's begin belongs to the previous slot.
func (c *Calculator) SubtractWorkingTime(start time.Time, d time.Duration) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("subtract working time: %w", ErrMissingInstant)
	}
	if d < 0 {
		return time.Time{}, fmt.Errorf("subtract working time %s: %w", d, ErrNegativeDuration)
	}

	cursor := start
	remaining := d
	for {
		slot, err := c.slotOrPrevious(cursor)
		if err != nil {
			return time.Time{}, fmt.Errorf("subtract working time: %w", err)
		}

		to := earliest(cursor, slot.end)
		available := to.Sub(slot.start)
		if remaining <= available {
			result := to.Add(-remaining).In(start.Location())
			c.logger.Debug("Working time subtracted",
				zap.Time("start", start),
				zap.Duration("duration", d),
				zap.Time("result", result))
			return result, nil
		}

		remaining -= available
		cursor = slot.start
	}
}

// WorkingTimeBetween sums the work-slot time between a and b. The arguments
// may come in any order; the result is never negative.
func (c *Calculator) WorkingTimeBetween(a, b time.Time) (time.Duration, error) {
	if a.IsZero() || b.IsZero() {
		return 0, fmt.Errorf("working time between: %w", ErrMissingInstant)
	}

	from, to := a, b
	if from.After(to) {
		from, to = to, from
	}

	var total time.Duration
	cursor := from
	for cursor.Before(to) {
		slot, err := c.slotOrNext(cursor)
		if err != nil {
			return 0, fmt.Errorf("working time between: %w", err)
		}

		begin := latest(cursor, slot.start)
		if !begin.Before(to) {
			break
		}
		total += earliest(slot.end, to).Sub(begin)
		cursor = slot.end
	}

	return total, nil
}

// slotOrNext returns the work slot containing t, or the first one after it
func (c *Calculator) slotOrNext(t time.Time) (workSlot, error) {
	date := c.dateOf(t)
	for i := 0; i < maxIdleDays; i++ {
		if !c.holidays.IsHoliday(date) {
			for _, iv := range c.schedule.ascending[date.Weekday()] {
				slot := c.slotOn(date, iv)
				if slot.isEmpty() {
					continue
				}
				if t.Before(slot.end) {
					return slot, nil
				}
			}
		}
		date = dateutil.AddDays(date, 1)
	}
	return workSlot{}, ErrNoWorkSlot
}

// slotOrPrevious returns the work slot containing t, or the last one before it
func (c *Calculator) slotOrPrevious(t time.Time) (workSlot, error) {
	date := c.dateOf(t)
	for i := 0; i < maxIdleDays; i++ {
		if !c.holidays.IsHoliday(date) {
			for _, iv := range c.schedule.descending[date.Weekday()] {
				slot := c.slotOn(date, iv)
				if slot.isEmpty() {
					continue
				}
				if t.After(slot.start) {
					return slot, nil
				}
			}
		}
		date = dateutil.AddDays(date, -1)
	}
	return workSlot{}, ErrNoWorkSlot
}

func (c *Calculator) slotOn(date time.Time, iv LocalTimeInterval) workSlot {
	slot := workSlot{
		start: iv.Begin.On(date, c.location),
		end:   iv.End.On(date, c.location),
	}
	// A begin inside a DST gap can be pushed past the end
	if slot.end.Before(slot.start) {
		slot.end = slot.start
	}
	return slot
}

func (c *Calculator) isWorkingDate(date time.Time) bool {
	return c.schedule.HasSlots(date.Weekday()) && !c.holidays.IsHoliday(date)
}

// dateOf returns the calendar date of t in the configured zone
func (c *Calculator) dateOf(t time.Time) time.Time {
	return dateutil.DateOf(t.In(c.location))
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
