package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/lsf/internal/display"
	"github.com/harrison/lsf/internal/logger"
	"github.com/harrison/lsf/internal/order"
	"github.com/harrison/lsf/internal/record"
)

// DefaultFields is the display field list used when none is configured.
const DefaultFields = "MNugsmnt"

// Config represents lsf configuration options
type Config struct {
	// All includes hidden entries
	All bool `yaml:"all"`

	// Recursive descends into subdirectories
	Recursive bool `yaml:"recursive"`

	// Directory lists directory arguments themselves instead of their contents
	Directory bool `yaml:"directory"`

	// Merge pools every group into one before sorting
	Merge bool `yaml:"merge"`

	// Quiet prints one line per entry with no headers or totals
	Quiet bool `yaml:"quiet"`

	// Debug logs why each entry was excluded
	Debug bool `yaml:"debug"`

	// LongTimes always shows the year and time of day
	LongTimes bool `yaml:"long_times"`

	// Fields is the display field list (letters or comma-separated names)
	Fields string `yaml:"fields"`

	// Time replaces the mtime column with these time fields
	Time string `yaml:"time"`

	// Sort is the sort key list, '+' prefix for descending
	Sort string `yaml:"sort"`

	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, receives a copy of every diagnostic line
	LogFile string `yaml:"log_file"`

	// Color is auto, always or never
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Sort:     "n",
		LogLevel: "warn",
		Color:    "auto",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Booleans can only be switched on from the file
	cfg.All = cfg.All || fileCfg.All
	cfg.Recursive = cfg.Recursive || fileCfg.Recursive
	cfg.Directory = cfg.Directory || fileCfg.Directory
	cfg.Merge = cfg.Merge || fileCfg.Merge
	cfg.Quiet = cfg.Quiet || fileCfg.Quiet
	cfg.Debug = cfg.Debug || fileCfg.Debug
	cfg.LongTimes = cfg.LongTimes || fileCfg.LongTimes

	if fileCfg.Fields != "" {
		cfg.Fields = fileCfg.Fields
	}
	if fileCfg.Time != "" {
		cfg.Time = fileCfg.Time
	}
	if fileCfg.Sort != "" {
		cfg.Sort = fileCfg.Sort
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFile != "" {
		cfg.LogFile = fileCfg.LogFile
	}
	if fileCfg.Color != "" {
		cfg.Color = fileCfg.Color
	}

	return cfg, nil
}

// Flags carries command-line overrides. Nil fields were not given.
type Flags struct {
	All       *bool
	Recursive *bool
	Directory *bool
	Merge     *bool
	Quiet     *bool
	Debug     *bool
	LongTimes *bool
	Fields    *string
	Time      *string
	Sort      *string
	LogLevel  *string
	LogFile   *string
	Color     *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f Flags) {
	mergeBool(&c.All, f.All)
	mergeBool(&c.Recursive, f.Recursive)
	mergeBool(&c.Directory, f.Directory)
	mergeBool(&c.Merge, f.Merge)
	mergeBool(&c.Quiet, f.Quiet)
	mergeBool(&c.Debug, f.Debug)
	mergeBool(&c.LongTimes, f.LongTimes)
	mergeString(&c.Fields, f.Fields)
	mergeString(&c.Time, f.Time)
	mergeString(&c.Sort, f.Sort)
	mergeString(&c.LogLevel, f.LogLevel)
	mergeString(&c.LogFile, f.LogFile)
	mergeString(&c.Color, f.Color)
}

func mergeBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func mergeString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	if _, err := display.ParseColorMode(c.Color); err != nil {
		return err
	}
	if c.Fields != "" {
		if _, err := record.ParseFields(c.Fields); err != nil {
			return fmt.Errorf("invalid fields %q: %w", c.Fields, err)
		}
	}
	if c.Time != "" {
		if _, err := timeLetters(c.Time); err != nil {
			return fmt.Errorf("invalid time %q: %w", c.Time, err)
		}
	}
	if _, err := order.ParseSpec(c.Sort); err != nil {
		return fmt.Errorf("invalid sort %q: %w", c.Sort, err)
	}
	return nil
}

// EffectiveQuiet reports whether headers and totals are suppressed.
// Listing directories themselves always implies quiet.
func (c *Config) EffectiveQuiet() bool {
	return c.Quiet || c.Directory
}

// SortSpec parses the configured sort keys.
func (c *Config) SortSpec() (order.Spec, error) {
	return order.ParseSpec(c.Sort)
}

// DisplayFields resolves the fields to print. An explicit field list is used
// as given. Otherwise the default list shows full paths when directory
// headers are absent, and swaps the mtime column for the requested time
// fields, or for the sort field when sorting by atime or ctime.
func (c *Config) DisplayFields() ([]record.Field, error) {
	if c.Fields != "" {
		return record.ParseFields(c.Fields)
	}
	fields := DefaultFields
	if c.EffectiveQuiet() || c.Merge {
		fields = strings.ReplaceAll(fields, "n", "f")
	}
	if c.Time != "" {
		letters, err := timeLetters(c.Time)
		if err != nil {
			return nil, err
		}
		fields = strings.ReplaceAll(fields, "m", letters)
	} else if c.Sort != "" && strings.Contains("ac", c.Sort) {
		fields = strings.ReplaceAll(fields, "m", c.Sort)
	}
	return record.ParseFields(fields)
}

func timeLetters(text string) (string, error) {
	words := make([]string, len(record.TimeFields))
	for i, f := range record.TimeFields {
		words[i] = f.Word()
	}
	return record.ParseValueList(text, words)
}
