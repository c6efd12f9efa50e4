// SPDX-License-Identifier: MIT

package smp

import (
	"fmt"
)

// GSLists holds the three derived views of a pair of completed runs.
// Accessors return copies.
type GSLists struct {
	mgs Lists
	wgs Lists
	gs  Lists
}

// MGS returns the man-oriented GS-lists.
func (g *GSLists) MGS() Lists { return g.mgs.clone() }

// WGS returns the woman-oriented GS-lists.
func (g *GSLists) WGS() Lists { return g.wgs.clone() }

// GS returns the intersection of MGS and WGS, in MGS order.
func (g *GSLists) GS() Lists { return g.gs.clone() }

// Reduce derives MGS, WGS and GS from a man-oriented and a woman-oriented
// run over the same instance.
//
// GS[k] keeps the elements of MGS[k], in MGS[k]'s order, that occur anywhere
// in WGS[k]. Membership decides, positions in WGS[k] do not.
//
// Neither run is modified.
// Complexity: O(Σ|MGS[k]| + Σ|WGS[k]|) time and space.
func Reduce(man, woman *Result) (*GSLists, error) {
	if man == nil || woman == nil {
		return nil, ErrNilResult
	}
	if len(man.lists) != len(woman.lists) {
		return nil, fmt.Errorf("%w: %d vs %d agents", ErrMismatchedRuns, len(man.lists), len(woman.lists))
	}
	for k := range man.lists {
		if _, ok := woman.lists[k]; !ok {
			return nil, fmt.Errorf("%w: %q missing from %s run", ErrMismatchedRuns, k, woman.strategy)
		}
	}

	gs := make(Lists, len(man.lists))
	for k, ml := range man.lists {
		in := make(map[string]struct{}, len(woman.lists[k]))
		for _, x := range woman.lists[k] {
			in[x] = struct{}{}
		}
		kept := make([]string, 0, len(ml))
		for _, x := range ml {
			if _, ok := in[x]; ok {
				kept = append(kept, x)
			}
		}
		gs[k] = kept
	}

	return &GSLists{
		mgs: man.lists.clone(),
		wgs: woman.lists.clone(),
		gs:  gs,
	}, nil
}
