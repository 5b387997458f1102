package figsync

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the tunable settings of a sync run. Zero values mean
// "use the default"; DefaultConfig lists what those are.
type Config struct {
	// SheetName is the worksheet the schedule is read from.
	SheetName string `yaml:"sheet_name"`
	// KeyColumn and NameColumn are the identity column headers.
	KeyColumn  string `yaml:"key_column"`
	NameColumn string `yaml:"name_column"`
	// FieldColumns optionally restricts which field columns are loaded,
	// in the declared order. Empty means every non-identity column on
	// the sheet.
	FieldColumns []string `yaml:"field_columns"`
	// CurrencySymbol only affects display output such as the info
	// command; format specs carry their own symbols.
	CurrencySymbol string `yaml:"currency_symbol"`
	// AuditFile is the default audit path for sync runs.
	AuditFile string `yaml:"audit_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is console or json.
	LogFormat string `yaml:"log_format"`
}

// ConfigFileName is looked for in the working directory when no config
// path is given.
const ConfigFileName = "figsync.yaml"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SheetName:      ScheduleSheetName,
		KeyColumn:      ColumnAssetID,
		NameColumn:     ColumnAssetName,
		CurrencySymbol: "£",
		AuditFile:      "audit.json",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// LoadConfig builds a configuration from defaults, an optional YAML file,
// and FIGSYNC_* environment variables, in that precedence order. An
// empty path means "use ConfigFileName if it exists"; a non-empty path
// must exist.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, NewConfigError(path, "not valid YAML: "+err.Error())
		}
	case explicit:
		return nil, NewConfigError(path, "cannot read config file: "+err.Error())
	}

	config.applyEnvironment()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ScheduleOptions maps the configuration onto loader options.
func (c *Config) ScheduleOptions() ScheduleOptions {
	return ScheduleOptions{
		SheetName:    c.SheetName,
		KeyColumn:    c.KeyColumn,
		NameColumn:   c.NameColumn,
		FieldColumns: c.FieldColumns,
	}
}

// applyEnvironment overlays FIGSYNC_* environment variables.
func (c *Config) applyEnvironment() {
	if val := os.Getenv("FIGSYNC_SHEET_NAME"); val != "" {
		c.SheetName = val
	}
	if val := os.Getenv("FIGSYNC_KEY_COLUMN"); val != "" {
		c.KeyColumn = val
	}
	if val := os.Getenv("FIGSYNC_NAME_COLUMN"); val != "" {
		c.NameColumn = val
	}
	if val := os.Getenv("FIGSYNC_FIELD_COLUMNS"); val != "" {
		fields := strings.Split(val, ",")
		c.FieldColumns = c.FieldColumns[:0]
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				c.FieldColumns = append(c.FieldColumns, f)
			}
		}
	}
	if val := os.Getenv("FIGSYNC_CURRENCY_SYMBOL"); val != "" {
		c.CurrencySymbol = val
	}
	if val := os.Getenv("FIGSYNC_AUDIT_FILE"); val != "" {
		c.AuditFile = val
	}
	if val := os.Getenv("FIGSYNC_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("FIGSYNC_LOG_FORMAT"); val != "" {
		c.LogFormat = val
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for values no run could work with.
func (c *Config) Validate() error {
	if c.SheetName == "" {
		return NewConfigError("sheet_name", "must not be empty")
	}
	if c.KeyColumn == "" {
		return NewConfigError("key_column", "must not be empty")
	}
	if c.NameColumn == "" {
		return NewConfigError("name_column", "must not be empty")
	}
	if strings.EqualFold(c.KeyColumn, c.NameColumn) {
		return NewConfigError("name_column", "must differ from key_column")
	}
	if c.FieldColumns != nil && len(c.FieldColumns) == 0 {
		return NewConfigError("field_columns", "must not be an empty list")
	}
	for _, f := range c.FieldColumns {
		if strings.TrimSpace(f) == "" {
			return NewConfigError("field_columns", "must not contain blank names")
		}
	}
	if !validLogLevels[c.LogLevel] {
		return NewConfigError("log_level", fmt.Sprintf("unknown level %q", c.LogLevel))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return NewConfigError("log_format", fmt.Sprintf("unknown format %q", c.LogFormat))
	}
	return nil
}
