package servicelevel

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/workcal/pkg/isoduration"
	"go.uber.org/zap"
)

// ErrUnschedulable is returned for a task with neither planned nor due instant
var ErrUnschedulable = errors.New("task has neither planned nor due instant")

// Calculator is the working time arithmetic the handler needs
type Calculator interface {
	AddWorkingTime(start time.Time, d time.Duration) (time.Time, error)
	SubtractWorkingTime(start time.Time, d time.Duration) (time.Time, error)
}

// Task is a unit of work with a service level measured in working time
type Task struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name,omitempty"`
	Planned      time.Time `yaml:"planned,omitempty"`
	Due          time.Time `yaml:"due,omitempty"`
	ServiceLevel string    `yaml:"service_level,omitempty"` // ISO-8601 duration, default level if empty
}

// Handler fills in planned and due instants of tasks
type Handler struct {
	calc         Calculator
	defaultLevel time.Duration
	logger       *zap.Logger
}

// NewHandler creates a new service-level handler
func NewHandler(calc Calculator, defaultLevel time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		calc:         calc,
		defaultLevel: defaultLevel,
		logger:       logger,
	}
}

// Apply sets the due instant from the planned one, or the planned instant
// from the due one when only that is known. A task without an ID gets one.
func (h *Handler) Apply(task *Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	level, err := h.levelOf(task)
	if err != nil {
		return err
	}

	switch {
	case !task.Planned.IsZero():
		due, err := h.calc.AddWorkingTime(task.Planned, level)
		if err != nil {
			return fmt.Errorf("failed to compute due date: %w", err)
		}
		task.Due = due
	case !task.Due.IsZero():
		planned, err := h.calc.SubtractWorkingTime(task.Due, level)
		if err != nil {
			return fmt.Errorf("failed to compute planned date: %w", err)
		}
		task.Planned = planned
	default:
		return ErrUnschedulable
	}

	h.logger.Debug("Service level applied",
		zap.String("task", task.ID),
		zap.Duration("level", level),
		zap.Time("planned", task.Planned),
		zap.Time("due", task.Due))

	return nil
}

// ApplyAll applies service levels to copies of tasks and stops at the first
// failing task
func (h *Handler) ApplyAll(tasks []Task) ([]Task, error) {
	result := make([]Task, len(tasks))
	copy(result, tasks)

	for i := range result {
		if err := h.Apply(&result[i]); err != nil {
			return nil, fmt.Errorf("task %q: %w", result[i].ID, err)
		}
	}

	h.logger.Info("Service levels applied",
		zap.Int("tasks", len(result)))

	return result, nil
}

func (h *Handler) levelOf(task *Task) (time.Duration, error) {
	if task.ServiceLevel == "" {
		return h.defaultLevel, nil
	}
	level, err := isoduration.Parse(task.ServiceLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid service level: %w", err)
	}
	return level, nil
}
