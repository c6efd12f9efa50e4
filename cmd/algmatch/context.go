// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/algmatch/internal/config"
)

type globalFlags struct {
	config  string
	format  string
	verbose bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags.format != "" {
			cfg.Output.Format = strings.ToLower(strings.TrimSpace(c.flags.format))
		}
		if c.flags.verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes text records to w at the configured level.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// useTable resolves the output format for w.
func (c *commandContext) useTable(w io.Writer) (bool, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return false, err
	}
	switch cfg.Output.Format {
	case config.FormatTable:
		return true, nil
	case config.FormatText:
		return false, nil
	case config.FormatAuto:
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
