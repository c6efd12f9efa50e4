// SPDX-License-Identifier: MIT

package config

const (
	defaultConfigPath  = "~/.config/algmatch/config.toml"
	projectConfigName  = "algmatch.toml"
	defaultSPAStrategy = StrategyStudent
	defaultFormat      = FormatAuto
	defaultLogLevel    = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		SPA:     SPA{Strategy: defaultSPAStrategy},
		Output:  Output{Format: defaultFormat},
		Logging: Logging{Level: defaultLogLevel},
	}
}
