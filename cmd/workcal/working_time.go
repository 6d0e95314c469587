package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workcal/internal/config"
	"github.com/username/workcal/pkg/dateutil"
	"github.com/username/workcal/pkg/isoduration"
	"go.uber.org/zap"
)

func dueCmd() *cobra.Command {
	var fromStr string
	var durationStr string

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Add working time to an instant",
		Long:  "Compute the instant reached after working the given ISO-8601 duration (default: service_level.default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, calc, _, err := loadEngine()
			if err != nil {
				return err
			}

			from, err := parseInstantOrNow(fromStr, calc.Location())
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			d, err := parseDurationOrDefault(durationStr, cfg)
			if err != nil {
				return err
			}

			due, err := calc.AddWorkingTime(from, d)
			if err != nil {
				return err
			}

			logger.Info("Due date computed",
				zap.Time("from", from),
				zap.Duration("duration", d),
				zap.Time("due", due))

			outPrintln(dateutil.FormatISO8601(due))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start instant (default: now)")
	cmd.Flags().StringVarP(&durationStr, "duration", "d", "", "ISO-8601 working time, e.g. PT4H or P2D")

	return cmd
}

func plannedCmd() *cobra.Command {
	var dueStr string
	var durationStr string

	cmd := &cobra.Command{
		Use:   "planned",
		Short: "Subtract working time from an instant",
		Long:  "Compute the latest start instant that still meets the due instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, calc, _, err := loadEngine()
			if err != nil {
				return err
			}

			if dueStr == "" {
				return fmt.Errorf("--due is required")
			}
			due, err := dateutil.ParseInstant(dueStr, calc.Location())
			if err != nil {
				return fmt.Errorf("invalid --due: %w", err)
			}
			d, err := parseDurationOrDefault(durationStr, cfg)
			if err != nil {
				return err
			}

			planned, err := calc.SubtractWorkingTime(due, d)
			if err != nil {
				return err
			}

			logger.Info("Planned date computed",
				zap.Time("due", due),
				zap.Duration("duration", d),
				zap.Time("planned", planned))

			outPrintln(dateutil.FormatISO8601(planned))
			return nil
		},
	}

	cmd.Flags().StringVar(&dueStr, "due", "", "Due instant")
	cmd.Flags().StringVarP(&durationStr, "duration", "d", "", "ISO-8601 working time, e.g. PT4H or P2D")

	return cmd
}

func betweenCmd() *cobra.Command {
	var fromStr string
	var toStr string

	cmd := &cobra.Command{
		Use:   "between",
		Short: "Working time between two instants",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, calc, _, err := loadEngine()
			if err != nil {
				return err
			}

			if fromStr == "" {
				return fmt.Errorf("--from is required")
			}
			from, err := dateutil.ParseInstant(fromStr, calc.Location())
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			to, err := parseInstantOrNow(toStr, calc.Location())
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			worked, err := calc.WorkingTimeBetween(from, to)
			if err != nil {
				return err
			}

			outPrintf("%s (%s)\n", isoduration.Format(worked), worked)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "First instant")
	cmd.Flags().StringVar(&toStr, "to", "", "Second instant (default: now)")

	return cmd
}

func workdayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workday [date]",
		Short: "Check whether a date is a working day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, calc, _, err := loadEngine()
			if err != nil {
				return err
			}

			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			t, err := parseDateOrInstant(value, calc.Location())
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			working, err := calc.IsWorkingDay(t)
			if err != nil {
				return err
			}

			info := calc.GetDayInfo(t.In(calc.Location()))
			outPrintf("%s %s %s", info.Date.Format("2006-01-02"), info.Date.Weekday(), info.Type)
			if info.Note != "" {
				outPrintf(" (%s)", info.Note)
			}
			if working {
				outPrintf(", %s working time", info.WorkingTime)
			}
			outPrintln()
			return nil
		},
	}

	return cmd
}

func parseInstantOrNow(value string, loc *time.Location) (time.Time, error) {
	if value == "" || value == "now" {
		return time.Now().In(loc), nil
	}
	return dateutil.ParseInstant(value, loc)
}

// parseDateOrInstant reads a calendar date (2006-01-02 or 02.01.2006) as noon
// of that date in loc, anything else as an instant
func parseDateOrInstant(value string, loc *time.Location) (time.Time, error) {
	if date, err := dateutil.ParseDate(value); err == nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc), nil
	}
	return parseInstantOrNow(value, loc)
}

func parseDurationOrDefault(value string, cfg *config.Config) (time.Duration, error) {
	if value == "" {
		return cfg.ServiceLevel.GetDefault()
	}
	d, err := isoduration.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --duration: %w", err)
	}
	return d, nil
}
