// SPDX-License-Identifier: MIT

package spa

import (
	"github.com/katalvlaran/algmatch/preference"
)

// LecturerOriented runs SPA-lecturer, producing the lecturer-optimal stable
// matching.
type LecturerOriented struct{}

// Name implements Strategy.
func (LecturerOriented) Name() string { return "lecturer-oriented" }

// Propose implements Strategy.
//
// While some under-subscribed lecturer l_k can still offer:
//  1. take the first student s_i on L_k that still lists some
//     under-subscribed project of l_k it is not assigned to;
//  2. take p_j, the first such project on s_i's list;
//  3. move s_i from its current project (if any) to p_j;
//  4. delete every successor of p_j from s_i's list.
//
// Each offer strictly improves the student's assignment, so the loop ends.
func (LecturerOriented) Propose(inst *preference.SPAInstance) (*Matching, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	w := newWorkingLists(inst)
	m := newMatching(inst)
	lecturers := inst.Lecturers().Keys()

	for {
		s, pid, ok := nextOffer(inst, m, w, lecturers)
		if !ok {
			break
		}
		m.unassign(s)
		m.assign(s, pid)

		st := inst.Student(s)
		for _, t := range successors(w.student[s], pid, st) {
			w.delete(s, t)
		}
	}

	return m, nil
}

// nextOffer finds the next (student, project) offer in lecturer declaration
// order.
func nextOffer(inst *preference.SPAInstance, m *Matching, w *workingLists, lecturers []string) (string, string, bool) {
	for _, lid := range lecturers {
		l := inst.Lecturer(lid)
		if m.LecturerOccupancy(lid) >= l.Capacity() {
			continue
		}
		for _, s := range l.List() {
			cur, _ := m.ProjectOf(s)
			for _, pid := range w.student[s] {
				p := inst.Project(pid)
				if p.Lecturer() != lid || pid == cur {
					continue
				}
				if m.ProjectOccupancy(pid) < p.Capacity() {
					return s, pid, true
				}
			}
		}
	}

	return "", "", false
}
