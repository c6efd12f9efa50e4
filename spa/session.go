// SPDX-License-Identifier: MIT

package spa

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/algmatch/preference"
)

// Session is a single-use SPA run: load, propose, check, report.
//
// Lifecycle: Created → Matched → Checked → Reported. Run may be called
// once; it never transitions backwards.
type Session struct {
	id       uuid.UUID
	inst     *preference.SPAInstance
	strategy Strategy
	log      *slog.Logger

	state  State
	ran    bool
	m      *Matching
	report *Report
}

// New validates its arguments and loads src. Strategy and source errors are
// returned before any matching state exists.
func New(src preference.Source[preference.SPADictionary], strategy Strategy, opts ...Option) (*Session, error) {
	if strategy == nil {
		return nil, ErrNoStrategy
	}
	inst, err := preference.LoadSPA(src)
	if err != nil {
		return nil, err
	}

	return NewFromInstance(inst, strategy, opts...)
}

// NewFromInstance starts a session over an already loaded instance.
func NewFromInstance(inst *preference.SPAInstance, strategy Strategy, opts ...Option) (*Session, error) {
	if strategy == nil {
		return nil, ErrNoStrategy
	}
	if inst == nil {
		return nil, ErrNilInstance
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.New()

	return &Session{
		id:       id,
		inst:     inst,
		strategy: strategy,
		log:      cfg.logger.With("session", id.String(), "problem", "spa", "strategy", strategy.Name()),
		state:    StateCreated,
	}, nil
}

// Run executes the session and returns its report.
//
// Steps:
//  1. the strategy proposes a matching, which must belong to this instance
//     and respect every quota;
//  2. FindBlockingPair searches for the first blocking pair;
//  3. the report is assembled from the matching and the verdict.
//
// A blocking pair is reported through Report.Stable, not as an error.
func (s *Session) Run() (*Report, error) {
	if s.ran {
		return nil, ErrSessionUsed
	}
	s.ran = true

	m, err := s.strategy.Propose(s.inst)
	if err != nil {
		return nil, fmt.Errorf("spa: %s proposals: %w", s.strategy.Name(), err)
	}
	if m == nil {
		return nil, ErrNilMatching
	}
	if m.inst != s.inst {
		return nil, ErrForeignMatching
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	s.m = m
	s.state = StateMatched
	s.log.Debug("provisional matching ready", "assigned", m.Size(), "students", s.inst.Students().Len())

	bp, blocked := FindBlockingPair(s.inst, m)
	s.state = StateChecked

	s.report = &Report{
		Stable:         !blocked,
		StableMatching: m.StableMatching(),
		Blocking:       bp,
		order:          s.inst.Students().Keys(),
	}
	s.state = StateReported
	if blocked {
		s.log.Info("unstable matching", "student", bp.Student, "project", bp.Project, "kind", bp.Kind.String())
	} else {
		s.log.Info("stable matching", "assigned", m.Size())
	}

	return s.report, nil
}

// ID returns the session identifier used in log records.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Instance returns the loaded instance.
func (s *Session) Instance() *preference.SPAInstance { return s.inst }

// Matching returns the provisional matching, or nil before StateMatched.
func (s *Session) Matching() *Matching { return s.m }

// Report returns the stored report, or nil before StateReported.
func (s *Session) Report() *Report { return s.report }

// Report is the outcome of a Session. Stable is the verdict; Blocking is the
// first blocking pair found when Stable is false.
type Report struct {
	Stable         bool
	StableMatching map[string]string
	Blocking       *BlockingPair

	order []string
}

// Verdict returns "stable matching" or "unstable matching".
func (r *Report) Verdict() string {
	if r.Stable {
		return "stable matching"
	}

	return "unstable matching"
}

// String formats the verdict and the allocation in student declaration
// order, e.g. `stable matching: {s1: p1, s2: ""}`.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(r.Verdict())
	b.WriteString(": {")
	for i, s := range r.order {
		if i > 0 {
			b.WriteString(", ")
		}
		p := r.StableMatching[s]
		if p == "" {
			p = `""`
		}
		fmt.Fprintf(&b, "%s: %s", s, p)
	}
	b.WriteString("}")

	return b.String()
}
