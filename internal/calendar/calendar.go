package calendar

import "time"

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

// String returns the lower-case name used in CLI output
func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// MarshalText renders the day type by name
func (t DayType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date        time.Time     `yaml:"date"`
	Type        DayType       `yaml:"type"`
	WorkingTime time.Duration `yaml:"working_time"`
	IsWorkday   bool          `yaml:"is_workday"`
	Note        string        `yaml:"note,omitempty"`
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year        int           `yaml:"year"`
	Month       time.Month    `yaml:"month"`
	WorkingTime time.Duration `yaml:"working_time"` // Total working time in the month
	WorkDays    int           `yaml:"work_days"`
	Weekends    int           `yaml:"weekends"`
	Holidays    int           `yaml:"holidays"`
	Days        []DayInfo     `yaml:"days"`
}

// Calendar interface for checking working days
type Calendar interface {
	// IsWorkday checks if the given date is a working day and how much work time it has
	IsWorkday(date time.Time) (bool, time.Duration)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) *MonthInfo

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) *DayInfo
}
