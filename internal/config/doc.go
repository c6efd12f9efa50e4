// SPDX-License-Identifier: MIT

// Package config loads, normalizes, and validates algmatch CLI settings.
//
// Settings come from a TOML file (by default ~/.config/algmatch/config.toml,
// then ./algmatch.toml); a missing file yields the repository defaults.
// Command-line flags override whatever Load returns.
package config
