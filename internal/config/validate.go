// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.SPA.Strategy {
	case StrategyStudent, StrategyLecturer:
	default:
		return fmt.Errorf("spa.strategy must be %q or %q, got %q", StrategyStudent, StrategyLecturer, c.SPA.Strategy)
	}
	switch c.Output.Format {
	case FormatAuto, FormatTable, FormatText:
	default:
		return fmt.Errorf("output.format must be one of auto, table, text; got %q", c.Output.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
