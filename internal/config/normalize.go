// SPDX-License-Identifier: MIT

package config

import "strings"

func (c *Config) normalize() {
	c.SPA.Strategy = lowerOr(c.SPA.Strategy, defaultSPAStrategy)
	c.Output.Format = lowerOr(c.Output.Format, defaultFormat)
	c.Logging.Level = lowerOr(c.Logging.Level, defaultLogLevel)
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
}

func lowerOr(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
