package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/workcal/internal/report"
	"github.com/username/workcal/internal/servicelevel"
	"github.com/username/workcal/pkg/dateutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func planCmd() *cobra.Command {
	var tasksFile string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Fill in planned and due instants of tasks",
		Long:  "Read a YAML list of tasks and compute the due instant from planned (or planned from due) using each task's service level",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tasksFile == "" {
				return fmt.Errorf("--tasks is required")
			}

			cfg, calc, _, err := loadEngine()
			if err != nil {
				return err
			}
			level, err := cfg.ServiceLevel.GetDefault()
			if err != nil {
				return err
			}

			tasks, err := loadTasks(tasksFile)
			if err != nil {
				return err
			}

			handler := servicelevel.NewHandler(calc, level, logger)
			planned, err := handler.ApplyAll(tasks)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(planned)
		},
	}

	cmd.Flags().StringVar(&tasksFile, "tasks", "", "YAML file with a list of tasks")

	return cmd
}

func loadTasks(path string) ([]servicelevel.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	var tasks []servicelevel.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse tasks: %w", err)
	}

	logger.Debug("Tasks loaded",
		zap.String("file", path),
		zap.Int("tasks", len(tasks)))

	return tasks, nil
}

func reportCmd() *cobra.Command {
	var referenceStr string
	var duesFile string
	var headersStr string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Count due instants by age in working days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if duesFile == "" {
				return fmt.Errorf("--dues is required")
			}

			_, calc, _, err := loadEngine()
			if err != nil {
				return err
			}

			reference, err := parseInstantOrNow(referenceStr, calc.Location())
			if err != nil {
				return fmt.Errorf("invalid --reference: %w", err)
			}
			headers, err := report.ParseHeaders(headersStr)
			if err != nil {
				return err
			}
			dues, err := loadInstants(duesFile, calc.Location())
			if err != nil {
				return err
			}

			result, err := report.Build(report.NewAger(calc), reference, headers, dues)
			if err != nil {
				return err
			}

			if asYAML {
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(result)
			}

			outPrintf("📊 Due dates by working-day age (reference %s)\n", reference.Format("2006-01-02"))
			outPrintln("═══════════════════════════════════════════════════════")
			for _, row := range result.Rows {
				outPrintf("  %-10s | %d\n", row.Header, row.Count)
			}
			outPrintln("═══════════════════════════════════════════════════════")
			outPrintf("  Total: %d, unassigned: %d\n", result.Total, result.Unassigned)
			return nil
		},
	}

	cmd.Flags().StringVar(&referenceStr, "reference", "", "Reference instant (default: now)")
	cmd.Flags().StringVar(&duesFile, "dues", "", "File with one due instant per line")
	cmd.Flags().StringVar(&headersStr, "headers", "<-5,-5...-1,0,1...5,>5", "Comma separated column headers")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	return cmd
}

// loadInstants reads one instant per line, skipping empty lines and '#' comments
func loadInstants(path string, loc *time.Location) ([]time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dues file: %w", err)
	}
	defer file.Close()

	var instants []time.Time
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := dateutil.ParseInstant(line, loc)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		instants = append(instants, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dues file: %w", err)
	}
	return instants, nil
}
