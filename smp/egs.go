// SPDX-License-Identifier: MIT

package smp

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/algmatch/preference"
)

// ManOriented runs the extended Gale–Shapley algorithm with men proposing.
// It yields the man-optimal stable matching M_0 and the MGS-lists.
type ManOriented struct{}

// Name implements Strategy.
func (ManOriented) Name() string { return "man-oriented" }

// Run implements Strategy.
func (s ManOriented) Run(inst *preference.SMInstance) (*Result, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}

	return extendedGaleShapley(s.Name(), inst.Men(), inst.Women())
}

// WomanOriented runs the extended Gale–Shapley algorithm with women proposing.
// It yields the woman-optimal stable matching M_z and the WGS-lists.
type WomanOriented struct{}

// Name implements Strategy.
func (WomanOriented) Name() string { return "woman-oriented" }

// Run implements Strategy.
func (s WomanOriented) Run(inst *preference.SMInstance) (*Result, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}

	return extendedGaleShapley(s.Name(), inst.Women(), inst.Men())
}

// registry builds the combined agent registry of both roles as private,
// prunable copies of their lists. Role key-spaces must be disjoint.
func registry(roles ...*preference.Registry[*preference.Agent]) (Lists, error) {
	n := 0
	for _, r := range roles {
		n += r.Len()
	}
	lists := make(Lists, n)
	for _, r := range roles {
		for _, id := range r.Keys() {
			if _, dup := lists[id]; dup {
				return nil, fmt.Errorf("%w: %q", ErrOverlappingRoles, id)
			}
			a, _ := r.Get(id)
			lists[id] = a.List()
		}
	}

	return lists, nil
}

// extendedGaleShapley runs proposals from proposers to receivers.
//
// Steps:
//  1. Copy every list; the instance is never written.
//  2. Queue all proposers in declaration order.
//  3. A free proposer p proposes to the first receiver r on its list.
//     r's current partner, if any, becomes free again.
//  4. p and r become engaged; every successor q of p on r's list loses r
//     and r's list is truncated after p.
//  5. A proposer whose list is empty stays unmatched.
//
// On termination the engaged pairs form the proposer-optimal stable matching
// and the lists are the proposer-oriented GS-lists.
//
// Complexity: O(n·m) time, O(n·m) space.
func extendedGaleShapley(name string, proposers, receivers *preference.Registry[*preference.Agent]) (*Result, error) {
	lists, err := registry(proposers, receivers)
	if err != nil {
		return nil, err
	}

	partner := make(map[string]string, len(lists))
	free := proposers.Keys()

	var p, r string
	for len(free) > 0 {
		p, free = free[0], free[1:]
		if len(lists[p]) == 0 {
			continue
		}
		r = lists[p][0]

		pos := slices.Index(lists[r], p)
		if pos < 0 {
			// r already deleted p; drop r and let p try again.
			lists[p] = lists[p][1:]
			free = append(free, p)
			continue
		}

		if cur, engaged := partner[r]; engaged {
			delete(partner, cur)
			free = append(free, cur)
		}
		partner[p] = r
		partner[r] = p

		for _, q := range lists[r][pos+1:] {
			lists[q] = without(lists[q], r)
		}
		lists[r] = slices.Clip(lists[r][:pos+1])
	}

	matching := make(Matching, len(lists))
	for id := range lists {
		matching[id] = partner[id]
	}

	return &Result{strategy: name, matching: matching, lists: lists}, nil
}

// without returns a new slice holding list minus x.
func without(list []string, x string) []string {
	out := make([]string, 0, len(list))
	for _, y := range list {
		if y != x {
			out = append(out, y)
		}
	}

	return out
}
