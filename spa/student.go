// SPDX-License-Identifier: MIT

package spa

import (
	"github.com/katalvlaran/algmatch/preference"
)

// workingLists are the prunable copies of student lists and project lists
// (L_k^j) owned by one proposal run.
type workingLists struct {
	student map[string][]string
	project map[string][]string
}

func newWorkingLists(inst *preference.SPAInstance) *workingLists {
	w := &workingLists{
		student: make(map[string][]string, inst.Students().Len()),
		project: make(map[string][]string, inst.Projects().Len()),
	}
	for _, s := range inst.Students().Keys() {
		w.student[s] = inst.Student(s).List()
	}
	for _, p := range inst.Projects().Keys() {
		w.project[p] = inst.Project(p).List()
	}

	return w
}

// delete removes the pair (s, p) from both sides.
func (w *workingLists) delete(s, p string) {
	w.student[s] = remove(w.student[s], p)
	w.project[p] = remove(w.project[p], s)
}

// lists reports whether (s, p) is still present.
func (w *workingLists) lists(s, p string) bool {
	for _, x := range w.student[s] {
		if x == p {
			return true
		}
	}

	return false
}

// successors returns the entries of list ranked after x by ranker.
func successors(list []string, x string, ranker *preference.Agent) []string {
	rx, _ := ranker.RankOf(x)
	var out []string
	for _, y := range list {
		if ry, _ := ranker.RankOf(y); ry > rx {
			out = append(out, y)
		}
	}

	return out
}

// StudentOriented runs SPA-student, producing the student-optimal stable
// matching.
type StudentOriented struct{}

// Name implements Strategy.
func (StudentOriented) Name() string { return "student-oriented" }

// Propose implements Strategy.
//
// While some student s_i is free with a non-empty list:
//  1. s_i applies to the first project p_j on its list (lecturer l_k) and is
//     provisionally assigned;
//  2. if p_j is over-subscribed its worst assignee is freed, otherwise if
//     l_k is over-subscribed its worst assignee is freed;
//  3. if p_j is full, every successor of M(p_j)'s worst on L_k^j loses p_j;
//  4. if l_k is full, every successor s_t of M(l_k)'s worst on L_k loses
//     every project of l_k.
//
// Each (student, project) pair is applied to at most once.
func (StudentOriented) Propose(inst *preference.SPAInstance) (*Matching, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	w := newWorkingLists(inst)
	m := newMatching(inst)
	free := inst.Students().Keys()

	var s string
	for len(free) > 0 {
		s, free = free[0], free[1:]
		if len(w.student[s]) == 0 {
			continue
		}
		pid := w.student[s][0]
		p := inst.Project(pid)
		l := inst.Lecturer(p.Lecturer())

		m.assign(s, pid)
		switch {
		case m.ProjectOccupancy(pid) > p.Capacity():
			r := worst(m.projects[pid], p.Agent)
			m.unassign(r)
			free = append(free, r)
		case m.LecturerOccupancy(l.ID()) > l.Capacity():
			r := worst(m.lecturers[l.ID()], l.Agent)
			m.unassign(r)
			free = append(free, r)
		}

		if m.ProjectOccupancy(pid) == p.Capacity() {
			r := worst(m.projects[pid], p.Agent)
			for _, t := range successors(w.project[pid], r, p.Agent) {
				w.delete(t, pid)
			}
		}
		if m.LecturerOccupancy(l.ID()) == l.Capacity() {
			r := worst(m.lecturers[l.ID()], l.Agent)
			for _, t := range successors(l.List(), r, l.Agent) {
				for _, u := range l.Projects() {
					if w.lists(t, u) {
						w.delete(t, u)
					}
				}
			}
		}
	}

	return m, nil
}
