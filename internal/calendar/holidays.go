package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Offsets of the moving holidays from Easter Sunday, in days
const (
	goodFridayOffset    = -2
	easterMondayOffset  = 1
	ascensionOffset     = 39
	whitMondayOffset    = 50
	corpusChristiOffset = 60
	corpusChristiName   = "Fronleichnam"
)

// CustomHoliday is a holiday recurring every year on the same month and day
type CustomHoliday struct {
	Month time.Month
	Day   int
	Name  string
}

// NewCustomHoliday validates month and day. February 29 is accepted and only
// matches in leap years.
func NewCustomHoliday(month time.Month, day int, name string) (CustomHoliday, error) {
	if month < time.January || month > time.December {
		return CustomHoliday{}, fmt.Errorf("invalid month %d", month)
	}
	// 2024 is a leap year, so this accepts Feb 29
	if day < 1 || day > time.Date(2024, month+1, 0, 0, 0, 0, 0, time.UTC).Day() {
		return CustomHoliday{}, fmt.Errorf("invalid day %d for %s", day, month)
	}
	return CustomHoliday{Month: month, Day: day, Name: name}, nil
}

// ParseCustomHoliday parses "MM-DD"
func ParseCustomHoliday(value, name string) (CustomHoliday, error) {
	var month, day int
	if _, err := fmt.Sscanf(value, "%d-%d", &month, &day); err != nil {
		return CustomHoliday{}, fmt.Errorf("invalid holiday %q, expected MM-DD: %w", value, err)
	}
	if len(value) != 5 {
		return CustomHoliday{}, fmt.Errorf("invalid holiday %q, expected MM-DD", value)
	}
	return NewCustomHoliday(time.Month(month), day, name)
}

// String returns the "MM-DD" form
func (h CustomHoliday) String() string {
	return fmt.Sprintf("%02d-%02d", int(h.Month), h.Day)
}

func (h CustomHoliday) matches(date time.Time) bool {
	return date.Month() == h.Month && date.Day() == h.Day
}

// germanHolidays are the fixed-date national holidays
var germanHolidays = []CustomHoliday{
	{Month: time.January, Day: 1, Name: "Neujahr"},
	{Month: time.May, Day: 1, Name: "Tag der Arbeit"},
	{Month: time.October, Day: 3, Name: "Tag der Deutschen Einheit"},
	{Month: time.December, Day: 25, Name: "1. Weihnachtstag"},
	{Month: time.December, Day: 26, Name: "2. Weihnachtstag"},
}

type easterHoliday struct {
	offset int
	name   string
}

var easterHolidays = []easterHoliday{
	{goodFridayOffset, "Karfreitag"},
	{easterMondayOffset, "Ostermontag"},
	{ascensionOffset, "Christi Himmelfahrt"},
	{whitMondayOffset, "Pfingstmontag"},
}

// Holiday is a concrete holiday date
type Holiday struct {
	Date time.Time `yaml:"date"`
	Name string    `yaml:"name"`
}

// HolidaySchedule decides whether a date is a non-working holiday.
// It is immutable and safe for concurrent use.
type HolidaySchedule struct {
	enabled       bool
	corpusChristi bool
	custom        []CustomHoliday
}

// NewHolidaySchedule creates a holiday schedule. With holidays disabled no
// date is ever a holiday.
func NewHolidaySchedule(holidaysEnabled, corpusChristiEnabled bool, custom ...CustomHoliday) *HolidaySchedule {
	return &HolidaySchedule{
		enabled:       holidaysEnabled,
		corpusChristi: corpusChristiEnabled,
		custom:        append([]CustomHoliday(nil), custom...),
	}
}

// IsHoliday reports whether the calendar date of date is a holiday.
// Only year, month and day in date's own location are considered.
func (hs *HolidaySchedule) IsHoliday(date time.Time) bool {
	_, ok := hs.HolidayName(date)
	return ok
}

// HolidayName returns the name of the holiday falling on date
func (hs *HolidaySchedule) HolidayName(date time.Time) (string, bool) {
	if date.IsZero() {
		panic("calendar: holiday lookup for zero date")
	}
	if !hs.enabled {
		return "", false
	}

	for _, h := range germanHolidays {
		if h.matches(date) {
			return h.Name, true
		}
	}

	if name, ok := hs.easterHolidayName(date); ok {
		return name, true
	}

	for _, h := range hs.custom {
		if h.matches(date) {
			return h.Name, true
		}
	}

	return "", false
}

func (hs *HolidaySchedule) easterHolidayName(date time.Time) (string, bool) {
	// Moving holidays fall between late March and late June
	if date.Month() < time.March || date.Month() > time.June {
		return "", false
	}

	easter := EasterSunday(date.Year())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(day.Sub(easter) / (24 * time.Hour))

	for _, h := range easterHolidays {
		if offset == h.offset {
			return h.name, true
		}
	}
	if hs.corpusChristi && offset == corpusChristiOffset {
		return corpusChristiName, true
	}
	return "", false
}

// HolidaysIn lists every holiday of year, sorted by date
func (hs *HolidaySchedule) HolidaysIn(year int) []Holiday {
	if !hs.enabled {
		return nil
	}

	var holidays []Holiday
	seen := make(map[time.Time]bool)
	add := func(date time.Time, name string) {
		if seen[date] {
			return
		}
		seen[date] = true
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}

	for _, h := range germanHolidays {
		add(time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC), h.Name)
	}

	easter := EasterSunday(year)
	for _, h := range easterHolidays {
		add(easter.AddDate(0, 0, h.offset), h.name)
	}
	if hs.corpusChristi {
		add(easter.AddDate(0, 0, corpusChristiOffset), corpusChristiName)
	}

	for _, h := range hs.custom {
		date := time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC)
		// Feb 29 outside leap years normalizes to Mar 1
		if date.Month() != h.Month {
			continue
		}
		add(date, h.Name)
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// Enabled reports whether holidays are observed at all
func (hs *HolidaySchedule) Enabled() bool {
	return hs.enabled
}
