// SPDX-License-Identifier: MIT

package smp

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/katalvlaran/algmatch/preference"
)

var (
	// ErrNilInstance indicates that a strategy was run on a nil instance.
	ErrNilInstance = errors.New("smp: instance is nil")

	// ErrNoStrategy indicates that a nil proposal strategy was supplied.
	ErrNoStrategy = errors.New("smp: proposal strategy is nil")

	// ErrNilResult indicates that Reduce received a nil run result.
	ErrNilResult = errors.New("smp: run result is nil")

	// ErrOverlappingRoles indicates that an agent key is used by both roles.
	ErrOverlappingRoles = errors.New("smp: agent appears in both roles")

	// ErrMismatchedRuns indicates that two run results cover different agents.
	ErrMismatchedRuns = errors.New("smp: runs cover different agent sets")
)

// Unmatched is the partner recorded for an agent without a partner.
const Unmatched = ""

// Matching maps every man and woman to a partner, or Unmatched.
type Matching map[string]string

// Lists maps an agent key to an ordered list of partner keys.
type Lists map[string][]string

// clone deep-copies l.
func (l Lists) clone() Lists {
	out := make(Lists, len(l))
	for k, v := range l {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}

	return out
}

// Strategy is one orientation of the proposal process.
type Strategy interface {
	// Name identifies the orientation in logs.
	Name() string

	// Run solves inst without mutating it.
	Run(inst *preference.SMInstance) (*Result, error)
}

// Result is the output of one completed proposal run. Accessors return
// copies, so repeated reads are identical.
type Result struct {
	strategy string
	matching Matching
	lists    Lists
}

// Strategy returns the name of the orientation that produced r.
func (r *Result) Strategy() string { return r.strategy }

// Matching returns the stable matching found by the run.
func (r *Result) Matching() Matching { return maps.Clone(r.matching) }

// Lists returns the pruned list of every man and woman.
func (r *Result) Lists() Lists { return r.lists.clone() }

// Option configures a StableMarriage.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

func defaultOptions() options {
	return options{logger: slog.New(slog.DiscardHandler)}
}

// WithLogger routes session logs to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("smp: WithLogger(nil)")
	}
	return func(o *options) {
		o.logger = l
	}
}
