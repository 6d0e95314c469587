package servicelevel

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/username/workcal/internal/calendar"
	"github.com/username/workcal/internal/workingtime"
	"go.uber.org/zap/zaptest"
)

func newTestHandler(t *testing.T, defaultLevel time.Duration) *Handler {
	t.Helper()

	slots := make(map[time.Weekday][]workingtime.LocalTimeInterval)
	for day := time.Monday; day <= time.Friday; day++ {
		for _, s := range []string{"06:00-12:00", "13:00-18:00"} {
			iv, err := workingtime.ParseLocalTimeInterval(s)
			if err != nil {
				t.Fatalf("ParseLocalTimeInterval(%q) error = %v", s, err)
			}
			slots[day] = append(slots[day], iv)
		}
	}

	logger := zaptest.NewLogger(t)
	calc, err := workingtime.NewCalculator(calendar.NewHolidaySchedule(true, false), slots, "UTC", logger)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	return NewHandler(calc, defaultLevel, logger)
}

func TestApply(t *testing.T) {
	h := newTestHandler(t, 11*time.Hour)

	tests := []struct {
		name        string
		task        Task
		wantPlanned time.Time
		wantDue     time.Time
	}{
		{
			name:        "due from planned",
			task:        Task{ID: "a", Planned: time.Date(2024, 3, 28, 9, 0, 0, 0, time.UTC)},
			wantPlanned: time.Date(2024, 3, 28, 9, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name:        "planned from due",
			task:        Task{ID: "b", Due: time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC)},
			wantPlanned: time.Date(2024, 3, 22, 9, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC),
		},
		{
			name:        "task service level",
			task:        Task{ID: "c", Planned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), ServiceLevel: "PT2H"},
			wantPlanned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2024, 3, 20, 11, 0, 0, 0, time.UTC),
		},
		{
			name:        "planned wins over due",
			task:        Task{ID: "d", Planned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), Due: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), ServiceLevel: "PT1H"},
			wantPlanned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
			wantDue:     time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			if err := h.Apply(&task); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !task.Planned.Equal(tt.wantPlanned) {
				t.Errorf("Planned = %v, want %v", task.Planned, tt.wantPlanned)
			}
			if !task.Due.Equal(tt.wantDue) {
				t.Errorf("Due = %v, want %v", task.Due, tt.wantDue)
			}
		})
	}
}

func TestApply_RoundTrip(t *testing.T) {
	h := newTestHandler(t, 0)

	planned := time.Date(2024, 3, 27, 15, 30, 0, 0, time.UTC)
	for _, level := range []string{"PT1M", "PT5H", "P1D", "P1W"} {
		t.Run(level, func(t *testing.T) {
			forward := Task{Planned: planned, ServiceLevel: level}
			if err := h.Apply(&forward); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			backward := Task{Due: forward.Due, ServiceLevel: level}
			if err := h.Apply(&backward); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !backward.Planned.Equal(planned) {
				t.Errorf("round trip over %s: planned = %v, want %v", level, backward.Planned, planned)
			}
		})
	}
}

func TestApply_Errors(t *testing.T) {
	h := newTestHandler(t, time.Hour)

	if err := h.Apply(&Task{ID: "x"}); !errors.Is(err, ErrUnschedulable) {
		t.Errorf("Apply() error = %v, want ErrUnschedulable", err)
	}

	task := Task{ID: "y", Planned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), ServiceLevel: "1 hour"}
	if err := h.Apply(&task); err == nil {
		t.Error("Apply() with invalid service level: expected error, got nil")
	}

	task = Task{ID: "z", Planned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), ServiceLevel: "-PT1H"}
	if err := h.Apply(&task); !errors.Is(err, workingtime.ErrNegativeDuration) {
		t.Errorf("Apply() error = %v, want ErrNegativeDuration", err)
	}
}

func TestApply_AssignsID(t *testing.T) {
	h := newTestHandler(t, time.Hour)

	task := Task{Planned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)}
	if err := h.Apply(&task); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := uuid.Parse(task.ID); err != nil {
		t.Errorf("ID = %q is not a UUID: %v", task.ID, err)
	}
}

func TestApplyAll(t *testing.T) {
	h := newTestHandler(t, time.Hour)

	tasks := []Task{
		{ID: "first", Planned: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)},
		{ID: "second", Due: time.Date(2024, 3, 20, 13, 30, 0, 0, time.UTC)},
	}

	got, err := h.ApplyAll(tasks)
	if err != nil {
		t.Fatalf("ApplyAll() error = %v", err)
	}
	if !got[0].Due.Equal(time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("first Due = %v", got[0].Due)
	}
	if !got[1].Planned.Equal(time.Date(2024, 3, 20, 11, 30, 0, 0, time.UTC)) {
		t.Errorf("second Planned = %v", got[1].Planned)
	}
	if !tasks[0].Due.IsZero() || !tasks[1].Planned.IsZero() {
		t.Error("ApplyAll() modified its input")
	}

	_, err = h.ApplyAll([]Task{tasks[0], {ID: "broken"}})
	if !errors.Is(err, ErrUnschedulable) {
		t.Errorf("ApplyAll() error = %v, want ErrUnschedulable", err)
	}
}
