// SPDX-License-Identifier: MIT

// Package smp solves the Stable Marriage Problem with both proposal
// orientations and derives the GS-lists of an instance.
//
// Overview:
//
//   - ManOriented and WomanOriented run the extended Gale–Shapley algorithm:
//     whenever a receiver r accepts a proposer p, every successor of p on r's
//     list is deleted from both lists. The run yields the proposer-optimal
//     stable matching together with every agent's pruned list.
//   - Reduce combines a man-oriented and a woman-oriented Result into the
//     MGS-lists (pruned lists of the man-oriented run), WGS-lists (pruned
//     lists of the woman-oriented run) and GS-lists: MGS[k] filtered to the
//     partners that also occur in WGS[k], in MGS[k]'s order.
//   - StableMarriage loads an instance, runs both orientations once,
//     reduces them and answers M0, Mz, MGSLists, WGSLists and GSLists.
//
// The GS order is taken from the man-oriented side only; GS[k] is always a
// subsequence of MGS[k] and every MGS key has a (possibly empty) GS entry.
//
// Complexity:
//
//   - Each orientation: O(n·m) proposals and deletions for n men, m women.
//   - Reduce: O(Σ|MGS[k]| + Σ|WGS[k]|).
//
// Errors (sentinel):
//
//   - ErrNilInstance:      a strategy received a nil instance.
//   - ErrNoStrategy:       a nil strategy was supplied.
//   - ErrNilResult:        a strategy returned, or Reduce received, no result.
//   - ErrOverlappingRoles: a man and a woman share a key.
//   - ErrMismatchedRuns:   the two results cover different agents.
//
// Example:
//
//	sm, err := smp.New(preference.FromFile[preference.SMDictionary]("sm.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sm.M0(), sm.GSLists())
package smp
