// SPDX-License-Identifier: MIT

package smp

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/algmatch/preference"
)

// StableMarriage runs both proposal orientations over one instance and keeps
// their matchings and GS-lists for the lifetime of the value. Every getter
// is available as soon as New returns.
type StableMarriage struct {
	id    uuid.UUID
	inst  *preference.SMInstance
	man   *Result
	woman *Result
	lists *GSLists
}

// New loads src, runs ManOriented and WomanOriented, and reduces the two
// runs. Source errors are returned before any proposal work starts.
func New(src preference.Source[preference.SMDictionary], opts ...Option) (*StableMarriage, error) {
	inst, err := preference.LoadSM(src)
	if err != nil {
		return nil, err
	}

	return Solve(inst, ManOriented{}, WomanOriented{}, opts...)
}

// Solve runs the given orientations over an already loaded instance.
// man must produce man-proposing lists and woman woman-proposing lists.
func Solve(inst *preference.SMInstance, man, woman Strategy, opts ...Option) (*StableMarriage, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if man == nil || woman == nil {
		return nil, ErrNoStrategy
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New()
	log := cfg.logger.With("session", id.String(), "problem", "smp")

	mres, err := man.Run(inst)
	if err != nil {
		return nil, fmt.Errorf("smp: %s run: %w", man.Name(), err)
	}
	if mres == nil {
		return nil, ErrNilResult
	}
	log.Debug("proposal run complete", "strategy", mres.Strategy(), "agents", len(mres.lists))

	wres, err := woman.Run(inst)
	if err != nil {
		return nil, fmt.Errorf("smp: %s run: %w", woman.Name(), err)
	}
	if wres == nil {
		return nil, ErrNilResult
	}
	log.Debug("proposal run complete", "strategy", wres.Strategy(), "agents", len(wres.lists))

	lists, err := Reduce(mres, wres)
	if err != nil {
		return nil, err
	}
	log.Info("gs-lists computed", "men", inst.Men().Len(), "women", inst.Women().Len())

	return &StableMarriage{id: id, inst: inst, man: mres, woman: wres, lists: lists}, nil
}

// ID returns the session identifier used in log records.
func (s *StableMarriage) ID() uuid.UUID { return s.id }

// Instance returns the loaded instance.
func (s *StableMarriage) Instance() *preference.SMInstance { return s.inst }

// M0 returns the man-optimal stable matching.
func (s *StableMarriage) M0() Matching { return s.man.Matching() }

// Mz returns the woman-optimal stable matching.
func (s *StableMarriage) Mz() Matching { return s.woman.Matching() }

// MGSLists returns the undeleted lists of the man-oriented run.
func (s *StableMarriage) MGSLists() Lists { return s.lists.MGS() }

// WGSLists returns the undeleted lists of the woman-oriented run.
func (s *StableMarriage) WGSLists() Lists { return s.lists.WGS() }

// GSLists returns the intersection of the MGS- and WGS-lists.
func (s *StableMarriage) GSLists() Lists { return s.lists.GS() }
