// SPDX-License-Identifier: MIT

// Package spa allocates students to projects offered by capacity-bounded
// lecturers and certifies the stability of an allocation.
//
// Overview:
//
//   - A Strategy produces a provisional Matching for an instance.
//     StudentOriented implements SPA-student (student-optimal) and
//     LecturerOriented implements SPA-lecturer (lecturer-optimal).
//     StrategyFunc adapts any function, e.g. a fixed allocation.
//   - FindBlockingPair scans students in declaration order and returns the
//     first blocking pair of the three capacity-driven kinds:
//
//     1(b)(i)   p_j and l_k are both under-subscribed;
//     1(b)(ii)  p_j is under-subscribed, l_k is full, and s_i is already
//     assigned to l_k or l_k prefers s_i to a student in M(l_k);
//     1(b)(iii) p_j is full and l_k prefers s_i to a student in M(p_j).
//
//     An unmatched student is tested against its whole list, a matched one
//     only against projects ranked strictly ahead of its assignment.
//   - Session ties loading, proposing, checking and reporting together and
//     walks the states Created → Matched → Checked → Reported exactly once.
//
// A blocking pair is a reportable outcome, not an error: Report carries the
// verdict, the student → project allocation (empty for unmatched students)
// and the witness.
//
// Complexity:
//
//   - FindBlockingPair: O(Σ_i |A_i| · max(c_j, d_k)).
//   - StudentOriented, LecturerOriented: polynomial in the total length of
//     all preference lists; intended for textbook-scale instances.
//
// Errors (sentinel):
//
//   - ErrNoStrategy:       a nil Strategy was supplied.
//   - ErrNilInstance:      a strategy or matching was given a nil instance.
//   - ErrNilMatching:      a strategy returned no matching.
//   - ErrForeignMatching:  a strategy returned a matching of another instance.
//   - ErrSessionUsed:      Run was called twice on one Session.
//   - ErrUnknownAgent, ErrNotAcceptable, ErrAlreadyAssigned,
//     ErrCapacityExceeded: Matching construction and invariant checks.
package spa
