package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/workcal/internal/calendar"
	"github.com/username/workcal/internal/workingtime"
	"github.com/username/workcal/pkg/isoduration"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents application configuration
type Config struct {
	Calendar     CalendarConfig      `mapstructure:"calendar"`
	Schedule     map[string][]string `mapstructure:"schedule"`
	ServiceLevel ServiceLevelConfig  `mapstructure:"service_level"`
	Log          LogConfig           `mapstructure:"log"`
}

// CalendarConfig represents zone and holiday configuration
type CalendarConfig struct {
	Zone                 string   `mapstructure:"zone"`
	HolidaysEnabled      bool     `mapstructure:"holidays_enabled"`
	CorpusChristiEnabled bool     `mapstructure:"corpus_christi_enabled"`
	CustomHolidays       []string `mapstructure:"custom_holidays"`      // "MM-DD [name]"
	CustomHolidaysFile   string   `mapstructure:"custom_holidays_file"` // one "MM-DD [name]" per line
}

// ServiceLevelConfig represents the default service level of tasks
type ServiceLevelConfig struct {
	Default string `mapstructure:"default"` // ISO-8601 duration, e.g. P1D or PT4H
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// defaultSlots is used Monday to Friday when no schedule is configured
var defaultSlots = []string{"06:00-12:00", "13:00-18:00"}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load loads configuration from file. With an empty path a missing config
// file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("calendar.zone", "UTC")
	v.SetDefault("calendar.holidays_enabled", true)
	v.SetDefault("calendar.corpus_christi_enabled", false)
	v.SetDefault("calendar.custom_holidays", []string{})
	v.SetDefault("calendar.custom_holidays_file", "")
	v.SetDefault("service_level.default", "P1D")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workcal")
		v.AddConfigPath("/etc/workcal")
	}

	// Read environment variables, e.g. WORKCAL_CALENDAR_ZONE
	v.SetEnvPrefix("WORKCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.Schedule) == 0 {
		config.Schedule = DefaultSchedule()
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// DefaultSchedule returns Monday to Friday 06:00-12:00 and 13:00-18:00
func DefaultSchedule() map[string][]string {
	schedule := make(map[string][]string, 5)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		schedule[day] = append([]string(nil), defaultSlots...)
	}
	return schedule
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.Zone == "" {
		return fmt.Errorf("calendar.zone is required")
	}
	if _, err := time.LoadLocation(c.Calendar.Zone); err != nil {
		return fmt.Errorf("calendar.zone %q is not a known time zone: %w", c.Calendar.Zone, err)
	}

	if _, err := c.Calendar.CustomHolidayList(); err != nil {
		return err
	}

	slots, err := c.WeeklySlots()
	if err != nil {
		return err
	}
	schedule, err := workingtime.NewSchedule(slots)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if schedule.IsEmpty() {
		return fmt.Errorf("schedule: %w", workingtime.ErrEmptySchedule)
	}

	if _, err := c.ServiceLevel.GetDefault(); err != nil {
		return err
	}

	if c.Log.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log.level %q is invalid: %w", c.Log.Level, err)
		}
	}

	return nil
}

// CustomHolidayList parses the inline custom holidays
func (c *CalendarConfig) CustomHolidayList() ([]calendar.CustomHoliday, error) {
	holidays := make([]calendar.CustomHoliday, 0, len(c.CustomHolidays))
	for _, entry := range c.CustomHolidays {
		value, name, _ := strings.Cut(strings.TrimSpace(entry), " ")
		holiday, err := calendar.ParseCustomHoliday(value, strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("calendar.custom_holidays: %w", err)
		}
		holidays = append(holidays, holiday)
	}
	return holidays, nil
}

// WeeklySlots parses the schedule section into work slots per weekday
func (c *Config) WeeklySlots() (map[time.Weekday][]workingtime.LocalTimeInterval, error) {
	// Sorted for deterministic error messages
	names := make([]string, 0, len(c.Schedule))
	for name := range c.Schedule {
		names = append(names, name)
	}
	sort.Strings(names)

	slots := make(map[time.Weekday][]workingtime.LocalTimeInterval, len(c.Schedule))
	for _, name := range names {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("schedule: unknown weekday %q", name)
		}
		for _, value := range c.Schedule[name] {
			iv, err := workingtime.ParseLocalTimeInterval(value)
			if err != nil {
				return nil, fmt.Errorf("schedule.%s: %w", name, err)
			}
			slots[day] = append(slots[day], iv)
		}
	}
	return slots, nil
}

// GetDefault returns the default service level, one day if unset
func (s *ServiceLevelConfig) GetDefault() (time.Duration, error) {
	if s.Default == "" {
		return 24 * time.Hour, nil
	}
	d, err := isoduration.Parse(s.Default)
	if err != nil {
		return 0, fmt.Errorf("service_level.default: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("service_level.default must not be negative, got %s", s.Default)
	}
	return d, nil
}

// ExpandEnvVars expands environment variables in file paths
func (c *Config) ExpandEnvVars() {
	c.Calendar.CustomHolidaysFile = os.ExpandEnv(c.Calendar.CustomHolidaysFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

// BuildCalculator wires holidays, schedule and zone into a calculator
func BuildCalculator(c *Config, logger *zap.Logger) (*workingtime.Calculator, *calendar.HolidaySchedule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	custom, err := c.Calendar.CustomHolidayList()
	if err != nil {
		return nil, nil, err
	}
	if c.Calendar.CustomHolidaysFile != "" {
		fromFile, err := calendar.LoadCustomHolidays(c.Calendar.CustomHolidaysFile, logger)
		if err != nil {
			return nil, nil, err
		}
		custom = append(custom, fromFile...)
	}

	holidays := calendar.NewHolidaySchedule(c.Calendar.HolidaysEnabled, c.Calendar.CorpusChristiEnabled, custom...)

	slots, err := c.WeeklySlots()
	if err != nil {
		return nil, nil, err
	}

	calc, err := workingtime.NewCalculator(holidays, slots, c.Calendar.Zone, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create calculator: %w", err)
	}

	return calc, holidays, nil
}
