package workingtime

import (
	"time"

	"github.com/username/workcal/internal/calendar"
	"github.com/username/workcal/pkg/dateutil"
)

var _ calendar.Calendar = (*Calculator)(nil)

// holidayNamer is implemented by holiday checkers that know holiday names
type holidayNamer interface {
	HolidayName(date time.Time) (string, bool)
}

// GetDayInfo describes the calendar date of date (its year, month and day as
// given, not converted to the configured zone). WorkingTime is real elapsed
// time, so a DST day with all-day slots reports 23h or 25h.
func (c *Calculator) GetDayInfo(date time.Time) *calendar.DayInfo {
	day := dateutil.DateOf(date)

	info := &calendar.DayInfo{
		Date: day,
	}

	holiday := c.holidays.IsHoliday(day)
	if holiday {
		if namer, ok := c.holidays.(holidayNamer); ok {
			info.Note, _ = namer.HolidayName(day)
		}
	}

	switch {
	case !c.schedule.HasSlots(day.Weekday()):
		info.Type = calendar.DayTypeWeekend
	case holiday:
		info.Type = calendar.DayTypeHoliday
	default:
		info.Type = calendar.DayTypeWorkday
		info.IsWorkday = true
		for _, iv := range c.schedule.ascending[day.Weekday()] {
			slot := c.slotOn(day, iv)
			info.WorkingTime += slot.end.Sub(slot.start)
		}
	}

	return info
}

// GetMonthInfo returns calendar info for the entire month
func (c *Calculator) GetMonthInfo(year int, month time.Month) *calendar.MonthInfo {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	monthInfo := &calendar.MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]calendar.DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		info := c.GetDayInfo(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))

		switch info.Type {
		case calendar.DayTypeWorkday:
			monthInfo.WorkDays++
		case calendar.DayTypeWeekend:
			monthInfo.Weekends++
		case calendar.DayTypeHoliday:
			monthInfo.Holidays++
		}
		monthInfo.WorkingTime += info.WorkingTime
		monthInfo.Days = append(monthInfo.Days, *info)
	}

	return monthInfo
}

// IsWorkday checks if the given date is a working day and returns its work time
func (c *Calculator) IsWorkday(date time.Time) (bool, time.Duration) {
	info := c.GetDayInfo(date)
	return info.IsWorkday, info.WorkingTime
}
