package report

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/username/workcal/internal/calendar"
	"github.com/username/workcal/internal/workingtime"
)

func newTestAger(t *testing.T) *Ager {
	t.Helper()
	slots := make(map[time.Weekday][]workingtime.LocalTimeInterval)
	for day := time.Monday; day <= time.Friday; day++ {
		slots[day] = []workingtime.LocalTimeInterval{workingtime.AllDay}
	}
	calc, err := workingtime.NewCalculator(calendar.NewHolidaySchedule(true, false), slots, "Europe/Berlin", nil)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	return NewAger(calc)
}

func berlin(t *testing.T, year int, month time.Month, day, hour int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	return time.Date(year, month, day, hour, 0, 0, 0, loc)
}

func TestAgeInWorkingDays(t *testing.T) {
	ager := newTestAger(t)
	// Wednesday before Easter 2024
	reference := berlin(t, 2024, 3, 27, 10)

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"same day", berlin(t, 2024, 3, 27, 23), 0},
		{"next day", berlin(t, 2024, 3, 28, 1), 1},
		{"Good Friday collapses onto Tuesday", berlin(t, 2024, 3, 29, 12), 2},
		{"Easter Monday collapses onto Tuesday", berlin(t, 2024, 4, 1, 12), 2},
		{"Tuesday after Easter", berlin(t, 2024, 4, 2, 12), 2},
		{"Wednesday after Easter", berlin(t, 2024, 4, 3, 12), 3},
		{"day before", berlin(t, 2024, 3, 26, 12), -1},
		{"previous sunday collapses onto monday", berlin(t, 2024, 3, 24, 12), -2},
		{"previous friday", berlin(t, 2024, 3, 22, 12), -3},
		{"zone conversion", time.Date(2024, 3, 27, 23, 30, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ager.AgeInWorkingDays(reference, tt.t)
			if err != nil {
				t.Fatalf("AgeInWorkingDays() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AgeInWorkingDays(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}

func TestInterval(t *testing.T) {
	ager := newTestAger(t)
	reference := berlin(t, 2024, 3, 27, 10)

	tests := []struct {
		name      string
		header    ColumnHeader
		wantBegin time.Time
		wantEnd   time.Time
	}{
		{"today", NewColumnHeader(0, 0), berlin(t, 2024, 3, 27, 0), berlin(t, 2024, 3, 28, 0)},
		{"across Easter", NewColumnHeader(2, 2), berlin(t, 2024, 3, 29, 0), berlin(t, 2024, 4, 3, 0)},
		{"yesterday", NewColumnHeader(-1, -1), berlin(t, 2024, 3, 26, 0), berlin(t, 2024, 3, 27, 0)},
		{"open lower", ColumnHeader{LowerAgeLimit: math.MinInt, UpperAgeLimit: -1}, time.Time{}, berlin(t, 2024, 3, 27, 0)},
		{"open upper", ColumnHeader{LowerAgeLimit: 1, UpperAgeLimit: math.MaxInt}, berlin(t, 2024, 3, 28, 0), time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ager.Interval(reference, tt.header)
			if err != nil {
				t.Fatalf("Interval() error = %v", err)
			}
			if !got.Begin.Equal(tt.wantBegin) {
				t.Errorf("Begin = %v, want %v", got.Begin, tt.wantBegin)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestInterval_MatchesAge(t *testing.T) {
	ager := newTestAger(t)
	reference := berlin(t, 2024, 3, 27, 10)

	for age := -6; age <= 6; age++ {
		header := NewColumnHeader(age, age)
		interval, err := ager.Interval(reference, header)
		if err != nil {
			t.Fatalf("Interval(%d) error = %v", age, err)
		}
		for instant := interval.Begin; instant.Before(interval.End); instant = instant.Add(5 * time.Hour) {
			got, err := ager.AgeInWorkingDays(reference, instant)
			if err != nil {
				t.Fatalf("AgeInWorkingDays() error = %v", err)
			}
			if got != age {
				t.Errorf("AgeInWorkingDays(%v) = %d, want %d (inside interval for %s)", instant, got, age, header)
			}
		}
	}
}

func TestParseHeaders(t *testing.T) {
	headers, err := ParseHeaders("<-5, -5...-1, 0, 1...5, >5")
	if err != nil {
		t.Fatalf("ParseHeaders() error = %v", err)
	}

	want := []ColumnHeader{
		{LowerAgeLimit: math.MinInt, UpperAgeLimit: -6},
		{LowerAgeLimit: -5, UpperAgeLimit: -1},
		{LowerAgeLimit: 0, UpperAgeLimit: 0},
		{LowerAgeLimit: 1, UpperAgeLimit: 5},
		{LowerAgeLimit: 6, UpperAgeLimit: math.MaxInt},
	}
	if len(headers) != len(want) {
		t.Fatalf("len(headers) = %d, want %d", len(headers), len(want))
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Errorf("headers[%d] = %+v, want %+v", i, headers[i], want[i])
		}
	}

	names := []string{"<-5", "-5...-1", "0", "1...5", ">5"}
	for i, name := range names {
		if got := headers[i].DisplayName(); got != name {
			t.Errorf("headers[%d].DisplayName() = %q, want %q", i, got, name)
		}
	}

	invalid := []string{"", "x", "<", "1...", "1..2",
		">" + strconv.Itoa(math.MaxInt),
		"<" + strconv.Itoa(math.MinInt),
	}
	for _, bad := range invalid {
		if _, err := ParseHeaders(bad); err == nil {
			t.Errorf("ParseHeaders(%q) expected error, got nil", bad)
		}
	}
}

func TestBuild(t *testing.T) {
	ager := newTestAger(t)
	reference := berlin(t, 2024, 3, 27, 10)
	headers, err := ParseHeaders("-1,0,1...2")
	if err != nil {
		t.Fatalf("ParseHeaders() error = %v", err)
	}

	dues := []time.Time{
		berlin(t, 2024, 3, 26, 9),  // -1
		berlin(t, 2024, 3, 27, 9),  // 0
		berlin(t, 2024, 3, 27, 17), // 0
		berlin(t, 2024, 3, 30, 9),  // 2
		berlin(t, 2024, 4, 10, 9),  // unassigned
	}

	report, err := Build(ager, reference, headers, dues)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	wantCounts := []int{1, 2, 1}
	for i, want := range wantCounts {
		if report.Rows[i].Count != want {
			t.Errorf("Rows[%d] (%s) = %d, want %d", i, report.Rows[i].Header, report.Rows[i].Count, want)
		}
	}
	if report.Total != 5 {
		t.Errorf("Total = %d, want 5", report.Total)
	}
	if report.Unassigned != 1 {
		t.Errorf("Unassigned = %d, want 1", report.Unassigned)
	}
}
