package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workcal/internal/calendar"
	"github.com/username/workcal/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

func easterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "easter [year...]",
		Short: "Print the date of Easter Sunday",
		RunE: func(cmd *cobra.Command, args []string) error {
			years := []int{time.Now().Year()}
			if len(args) > 0 {
				years = years[:0]
				for _, arg := range args {
					year, err := strconv.Atoi(arg)
					if err != nil {
						return fmt.Errorf("invalid year %q: %w", arg, err)
					}
					years = append(years, year)
				}
			}

			for _, year := range years {
				outPrintf("%d %s\n", year, calendar.EasterSunday(year).Format("2006-01-02"))
			}
			return nil
		},
	}

	return cmd
}

func holidaysCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, holidays, err := loadEngine()
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}

			list := holidays.HolidaysIn(year)
			if len(list) == 0 {
				outPrintln("No holidays")
				return nil
			}
			for _, h := range list {
				outPrintf("%s %-10s %s\n", h.Date.Format("2006-01-02"), h.Date.Weekday(), h.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current year)")

	return cmd
}

func monthCmd() *cobra.Command {
	var year int
	var month int
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "month [date]",
		Short: "Show working days and working time of a month",
		Long:  "Show the month of the given date (2006-01-02 or 02.01.2006), or the one selected by --year and --month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, calc, _, err := loadEngine()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				date, err := dateutil.ParseDate(args[0])
				if err != nil {
					return err
				}
				year, month = date.Year(), int(date.Month())
			}

			now := time.Now().In(calc.Location())
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid --month %d", month)
			}

			info := calc.GetMonthInfo(year, time.Month(month))

			if asYAML {
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(info)
			}

			outPrintf("📅 %s %d\n", info.Month, info.Year)
			outPrintln("═══════════════════════════════════════════════════════")
			outPrintln("  Date         | Day       | Type    | Working time")
			outPrintln("---------------+-----------+---------+----------------")
			for _, day := range info.Days {
				line := fmt.Sprintf("  %s   | %-9s | %-7s | %s",
					day.Date.Format("2006-01-02"),
					day.Date.Weekday(),
					day.Type,
					day.WorkingTime)
				if day.Note != "" {
					line += "  " + day.Note
				}
				outPrintln(line)
			}
			outPrintln("═══════════════════════════════════════════════════════")
			outPrintf("  Working days: %d, weekends: %d, holidays: %d\n", info.WorkDays, info.Weekends, info.Holidays)
			outPrintf("  Working time: %s\n", info.WorkingTime)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current month)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	return cmd
}
