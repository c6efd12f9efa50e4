// SPDX-License-Identifier: MIT

package spa

import (
	"github.com/katalvlaran/algmatch/preference"
)

// FindBlockingPair returns the first blocking pair of m, or false when m is
// stable. m is only read.
//
// Search order:
//  1. students in declaration order;
//  2. for each student, candidate projects in preference order: the whole
//     list when unmatched, otherwise the projects ranked strictly ahead of
//     the assigned one;
//  3. for each candidate, the kinds 1(b)(i), 1(b)(ii), 1(b)(iii) in turn.
//
// The first hit ends the search.
func FindBlockingPair(inst *preference.SPAInstance, m *Matching) (*BlockingPair, bool) {
	if inst == nil || m == nil {
		return nil, false
	}
	for _, sid := range inst.Students().Keys() {
		for _, pid := range candidates(inst.Student(sid), m) {
			p := inst.Project(pid)
			l := inst.Lecturer(p.Lecturer())
			if kind, ok := blocks(m, sid, p, l); ok {
				return &BlockingPair{Student: sid, Project: pid, Lecturer: p.Lecturer(), Kind: kind}, true
			}
		}
	}

	return nil, false
}

// candidates lists the projects student could block with.
func candidates(student *preference.Agent, m *Matching) []string {
	list := student.List()
	if cur, ok := m.ProjectOf(student.ID()); ok {
		r, _ := student.RankOf(cur)
		return list[:r]
	}

	return list
}

func blocks(m *Matching, student string, p *preference.Project, l *preference.Lecturer) (Kind, bool) {
	switch {
	case blocking1bi(m, p, l):
		return Type1bi, true
	case blocking1bii(m, student, p, l):
		return Type1bii, true
	case blocking1biii(m, student, p):
		return Type1biii, true
	}

	return 0, false
}

// blocking1bi: p_j and l_k are both under-subscribed.
func blocking1bi(m *Matching, p *preference.Project, l *preference.Lecturer) bool {
	return m.ProjectOccupancy(p.ID()) < p.Capacity() && m.LecturerOccupancy(l.ID()) < l.Capacity()
}

// blocking1bii: p_j is under-subscribed, l_k is full, and either s_i is in
// M(l_k) or l_k prefers s_i to some student in M(l_k).
func blocking1bii(m *Matching, student string, p *preference.Project, l *preference.Lecturer) bool {
	if m.ProjectOccupancy(p.ID()) >= p.Capacity() || m.LecturerOccupancy(l.ID()) != l.Capacity() {
		return false
	}
	if m.holdsLecturer(l.ID(), student) {
		return true
	}

	return prefersToAny(l.Agent, student, m.lecturers[l.ID()])
}

// blocking1biii: p_j is full and l_k prefers s_i to some student in M(p_j).
func blocking1biii(m *Matching, student string, p *preference.Project) bool {
	if m.ProjectOccupancy(p.ID()) != p.Capacity() {
		return false
	}

	return prefersToAny(p.Agent, student, m.projects[p.ID()])
}

// prefersToAny reports whether ranker puts student strictly ahead of at
// least one of assigned; that is, ahead of the worst of them.
func prefersToAny(ranker *preference.Agent, student string, assigned []string) bool {
	for _, s := range assigned {
		if ranker.Prefers(student, s) {
			return true
		}
	}

	return false
}
