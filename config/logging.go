package config

import "fmt"

// LoggingConfig selects the logging backend and minimum level.
type LoggingConfig struct {
	// Backend selects the logger implementation: "zerolog" or "logrus".
	Backend string `json:"backend"`
	// Level is the minimum severity: "debug", "info", "warn" or "error".
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "zerolog"
	}
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	if c.Backend != "zerolog" && c.Backend != "logrus" {
		return fmt.Errorf("unknown logging backend %s", c.Backend)
	}
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown logging level %s", c.Level)
	}
}
