package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LoadCustomHolidays reads recurring holidays from a text file.
//
// Format: one holiday per line, "MM-DD [name]". Empty lines and lines
// starting with '#' are ignored. Malformed lines are logged and skipped.
// Example: 12-24 Heiligabend
func LoadCustomHolidays(filePath string, logger *zap.Logger) ([]CustomHoliday, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	var holidays []CustomHoliday
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		name := ""
		if len(parts) == 2 {
			name = strings.TrimSpace(parts[1])
		}

		holiday, err := ParseCustomHoliday(parts[0], name)
		if err != nil {
			logger.Warn("Invalid holiday line",
				zap.String("file", filePath),
				zap.Int("line", lineNo),
				zap.String("content", line),
				zap.Error(err))
			continue
		}

		key := holiday.String()
		if seen[key] {
			logger.Debug("Duplicate holiday ignored",
				zap.String("holiday", key),
				zap.Int("line", lineNo))
			continue
		}
		seen[key] = true

		holidays = append(holidays, holiday)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holiday file: %w", err)
	}

	logger.Info("Custom holidays loaded",
		zap.String("file", filePath),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}
