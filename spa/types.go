// SPDX-License-Identifier: MIT

package spa

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/algmatch/preference"
)

var (
	// ErrNoStrategy indicates that a nil proposal strategy was supplied.
	ErrNoStrategy = errors.New("spa: proposal strategy is nil")

	// ErrNilInstance indicates that a nil instance was supplied.
	ErrNilInstance = errors.New("spa: instance is nil")

	// ErrNilMatching indicates that a strategy returned a nil matching.
	ErrNilMatching = errors.New("spa: strategy returned no matching")

	// ErrForeignMatching indicates a matching built for a different instance.
	ErrForeignMatching = errors.New("spa: matching belongs to another instance")

	// ErrSessionUsed indicates a second Run on a single-use Session.
	ErrSessionUsed = errors.New("spa: session already run")

	// ErrUnknownAgent indicates a student or project id not in the instance.
	ErrUnknownAgent = errors.New("spa: unknown agent")

	// ErrNotAcceptable indicates a student assigned to a project it does not list.
	ErrNotAcceptable = errors.New("spa: project not acceptable to student")

	// ErrAlreadyAssigned indicates an assignment for an already assigned student.
	ErrAlreadyAssigned = errors.New("spa: student already assigned")

	// ErrCapacityExceeded indicates occupancy above a project or lecturer quota.
	ErrCapacityExceeded = errors.New("spa: capacity exceeded")
)

// Strategy produces a provisional matching for an instance. Implementations
// must not mutate inst.
type Strategy interface {
	Name() string
	Propose(inst *preference.SPAInstance) (*Matching, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(inst *preference.SPAInstance) (*Matching, error)

// Name implements Strategy.
func (StrategyFunc) Name() string { return "custom" }

// Propose implements Strategy.
func (f StrategyFunc) Propose(inst *preference.SPAInstance) (*Matching, error) { return f(inst) }

// Kind classifies a blocking pair by the capacity state that admits it.
type Kind int

const (
	// Type1bi: project and lecturer are both under-subscribed.
	Type1bi Kind = iota + 1
	// Type1bii: project under-subscribed, lecturer full.
	Type1bii
	// Type1biii: project full.
	Type1biii
)

// String returns the textbook label of k.
func (k Kind) String() string {
	switch k {
	case Type1bi:
		return "1(b)(i)"
	case Type1bii:
		return "1(b)(ii)"
	case Type1biii:
		return "1(b)(iii)"
	default:
		return "unknown"
	}
}

// BlockingPair is the first student–project pair found to block a matching.
type BlockingPair struct {
	Student  string
	Project  string
	Lecturer string
	Kind     Kind
}

// State is the lifecycle position of a Session.
type State int

const (
	// StateCreated: preferences loaded, no matching yet.
	StateCreated State = iota
	// StateMatched: the strategy produced a provisional matching.
	StateMatched
	// StateChecked: the blocking-pair search finished.
	StateChecked
	// StateReported: the report is available. Terminal.
	StateReported
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateMatched:
		return "matched"
	case StateChecked:
		return "checked"
	case StateReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Option configures a Session.
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
		panic("spa: WithLogger(nil)")
	}
	return func(o *options) {
		o.logger = l
	}
}
