package calendar

import (
	"testing"
	"time"
)

// d is a test helper to construct dates.
func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestHolidaySchedule_IsHoliday(t *testing.T) {
	hs := NewHolidaySchedule(true, false)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"New Years Day", d(2024, time.January, 1), true},
		{"Good Friday", d(2024, time.March, 29), true},
		{"Easter Sunday is not listed", d(2024, time.March, 31), false},
		{"Easter Monday", d(2024, time.April, 1), true},
		{"Labour Day", d(2024, time.May, 1), true},
		{"Ascension", d(2024, time.May, 9), true},
		{"Whit Monday", d(2024, time.May, 20), true},
		{"Corpus Christi disabled", d(2024, time.May, 30), false},
		{"German Unity Day", d(2024, time.October, 3), true},
		{"Christmas Day", d(2024, time.December, 25), true},
		{"Boxing Day", d(2024, time.December, 26), true},
		{"Christmas Eve", d(2024, time.December, 24), false},
		{"Holy Thursday", d(2024, time.March, 28), false},
		{"Regular weekday", d(2024, time.June, 12), false},
		{"Good Friday 2025", d(2025, time.April, 18), true},
		{"Whit Monday 2025", d(2025, time.June, 9), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hs.IsHoliday(tt.date); got != tt.want {
				t.Errorf("IsHoliday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestHolidaySchedule_CorpusChristi(t *testing.T) {
	corpusChristi := d(2025, time.June, 19) // Easter 2025-04-20 + 60

	if NewHolidaySchedule(true, false).IsHoliday(corpusChristi) {
		t.Error("Corpus Christi must not be a holiday when disabled")
	}
	if !NewHolidaySchedule(true, true).IsHoliday(corpusChristi) {
		t.Error("Corpus Christi must be a holiday when enabled")
	}
	if NewHolidaySchedule(false, true).IsHoliday(corpusChristi) {
		t.Error("Corpus Christi must not be a holiday when holidays are disabled")
	}
}

func TestHolidaySchedule_Disabled(t *testing.T) {
	custom := CustomHoliday{Month: time.December, Day: 24}
	hs := NewHolidaySchedule(false, true, custom)

	// Every day of a year, including all the built-in and custom holidays
	for date := d(2024, time.January, 1); date.Year() == 2024; date = date.AddDate(0, 0, 1) {
		if hs.IsHoliday(date) {
			t.Fatalf("IsHoliday(%s) = true with holidays disabled", date.Format("2006-01-02"))
		}
	}
	if got := hs.HolidaysIn(2024); len(got) != 0 {
		t.Errorf("HolidaysIn with holidays disabled = %v, want none", got)
	}
}

func TestHolidaySchedule_CustomHolidays(t *testing.T) {
	hs := NewHolidaySchedule(true, false,
		CustomHoliday{Month: time.December, Day: 24, Name: "Heiligabend"},
		CustomHoliday{Month: time.February, Day: 29, Name: "Leap day"},
	)

	tests := []struct {
		name     string
		date     time.Time
		want     bool
		wantName string
	}{
		{"Christmas Eve every year", d(2031, time.December, 24), true, "Heiligabend"},
		{"Leap day", d(2028, time.February, 29), true, "Leap day"},
		{"March 1 in common year", d(2027, time.March, 1), false, ""},
		{"Built-in still applies", d(2031, time.January, 1), true, "Neujahr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := hs.HolidayName(tt.date)
			if ok != tt.want || name != tt.wantName {
				t.Errorf("HolidayName(%v) = (%q, %v), want (%q, %v)",
					tt.date.Format("2006-01-02"), name, ok, tt.wantName, tt.want)
			}
		})
	}
}

func TestHolidaySchedule_IgnoresTimeOfDay(t *testing.T) {
	hs := NewHolidaySchedule(true, false)
	berlin := time.FixedZone("CET", 60*60)

	late := time.Date(2024, time.December, 25, 23, 59, 59, 0, berlin)
	if !hs.IsHoliday(late) {
		t.Error("IsHoliday should ignore time-of-day")
	}
}

func TestHolidaySchedule_ZeroDatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IsHoliday(zero) did not panic")
		}
	}()
	NewHolidaySchedule(true, false).IsHoliday(time.Time{})
}

func TestHolidaySchedule_HolidaysIn(t *testing.T) {
	hs := NewHolidaySchedule(true, true, CustomHoliday{Month: time.December, Day: 31, Name: "Silvester"})

	got := hs.HolidaysIn(2024)
	want := []Holiday{
		{d(2024, time.January, 1), "Neujahr"},
		{d(2024, time.March, 29), "Karfreitag"},
		{d(2024, time.April, 1), "Ostermontag"},
		{d(2024, time.May, 1), "Tag der Arbeit"},
		{d(2024, time.May, 9), "Christi Himmelfahrt"},
		{d(2024, time.May, 20), "Pfingstmontag"},
		{d(2024, time.May, 30), "Fronleichnam"},
		{d(2024, time.October, 3), "Tag der Deutschen Einheit"},
		{d(2024, time.December, 25), "1. Weihnachtstag"},
		{d(2024, time.December, 26), "2. Weihnachtstag"},
		{d(2024, time.December, 31), "Silvester"},
	}

	if len(got) != len(want) {
		t.Fatalf("HolidaysIn(2024) returned %d holidays, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date) || got[i].Name != want[i].Name {
			t.Errorf("holiday %d = %v %q, want %v %q", i,
				got[i].Date.Format("2006-01-02"), got[i].Name,
				want[i].Date.Format("2006-01-02"), want[i].Name)
		}
	}
}

func TestParseCustomHoliday(t *testing.T) {
	tests := []struct {
		input   string
		want    CustomHoliday
		wantErr bool
	}{
		{"12-24", CustomHoliday{Month: time.December, Day: 24}, false},
		{"02-29", CustomHoliday{Month: time.February, Day: 29}, false},
		{"02-30", CustomHoliday{}, true},
		{"13-01", CustomHoliday{}, true},
		{"1-5", CustomHoliday{}, true},
		{"12/24", CustomHoliday{}, true},
		{"", CustomHoliday{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCustomHoliday(tt.input, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCustomHoliday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCustomHoliday(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
