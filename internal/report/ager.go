package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/username/workcal/pkg/dateutil"
)

// maxSearchDays bounds the search for a working day
const maxSearchDays = 3660

// ErrNoWorkingDay is returned when no working day exists within the search horizon
var ErrNoWorkingDay = errors.New("no working day found within search horizon")

// WorkdayCalendar decides working days in its own time zone
type WorkdayCalendar interface {
	IsWorkingDay(t time.Time) (bool, error)
	Location() *time.Location
}

// Ager measures the distance between dates in working days
type Ager struct {
	cal WorkdayCalendar
}

// NewAger creates a new ager
func NewAger(cal WorkdayCalendar) *Ager {
	return &Ager{cal: cal}
}

// AgeInWorkingDays returns the signed number of working days from the date
// of reference to the date of t. The same date is 0 and later dates are
// positive. A non-working day has the age of the next working day.
func (a *Ager) AgeInWorkingDays(reference, t time.Time) (int, error) {
	if reference.IsZero() || t.IsZero() {
		return 0, fmt.Errorf("age in working days: zero instant")
	}

	from, to := a.dateOf(reference), a.dateOf(t)
	if dateutil.IsSameDay(from, to) {
		return 0, nil
	}
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}

	// working days in [from, to)
	count := 0
	days := dateutil.DaysBetween(from, to)
	for i := 0; i < days; i++ {
		working, err := a.isWorkingDate(dateutil.AddDays(from, i))
		if err != nil {
			return 0, err
		}
		if working {
			count++
		}
	}
	return sign * count, nil
}

// Interval returns the instants whose age relative to reference fits header
func (a *Ager) Interval(reference time.Time, header ColumnHeader) (TimeInterval, error) {
	var interval TimeInterval

	if header.LowerAgeLimit != math.MinInt {
		day, err := a.workingDayAt(reference, header.LowerAgeLimit-1)
		if err != nil {
			return TimeInterval{}, err
		}
		interval.Begin = a.startOf(dateutil.AddDays(day, 1))
	}
	if header.UpperAgeLimit != math.MaxInt {
		day, err := a.workingDayAt(reference, header.UpperAgeLimit)
		if err != nil {
			return TimeInterval{}, err
		}
		interval.End = a.startOf(dateutil.AddDays(day, 1))
	}

	return interval, nil
}

// workingDayAt returns the working date with the given age
func (a *Ager) workingDayAt(reference time.Time, age int) (time.Time, error) {
	day, err := a.nextWorkingDate(a.dateOf(reference))
	if err != nil {
		return time.Time{}, err
	}

	step := 1
	if age < 0 {
		step = -1
		age = -age
	}
	for age > 0 {
		day, err = a.stepWorkingDate(day, step)
		if err != nil {
			return time.Time{}, err
		}
		age--
	}
	return day, nil
}

func (a *Ager) nextWorkingDate(date time.Time) (time.Time, error) {
	for i := 0; i < maxSearchDays; i++ {
		working, err := a.isWorkingDate(date)
		if err != nil {
			return time.Time{}, err
		}
		if working {
			return date, nil
		}
		date = dateutil.AddDays(date, 1)
	}
	return time.Time{}, ErrNoWorkingDay
}

func (a *Ager) stepWorkingDate(date time.Time, step int) (time.Time, error) {
	for i := 0; i < maxSearchDays; i++ {
		date = dateutil.AddDays(date, step)
		working, err := a.isWorkingDate(date)
		if err != nil {
			return time.Time{}, err
		}
		if working {
			return date, nil
		}
	}
	return time.Time{}, ErrNoWorkingDay
}

// isWorkingDate checks a civil date (UTC midnight) in the calendar's zone
func (a *Ager) isWorkingDate(date time.Time) (bool, error) {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, a.cal.Location())
	return a.cal.IsWorkingDay(noon)
}

func (a *Ager) dateOf(t time.Time) time.Time {
	return dateutil.DateOf(t.In(a.cal.Location()))
}

func (a *Ager) startOf(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, a.cal.Location())
}
