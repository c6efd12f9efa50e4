// SPDX-License-Identifier: MIT

package spa

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/algmatch/preference"
)

// Matching is the mutable allocation state of one instance: student →
// project, project → assigned students and lecturer → assigned students.
// Assigned sets keep assignment order.
//
// A student counts towards the occupancy of its project and of that
// project's lecturer; the two views are updated together.
type Matching struct {
	inst      *preference.SPAInstance
	student   map[string]string
	projects  map[string][]string
	lecturers map[string][]string
}

// NewMatching returns an empty matching for inst.
func NewMatching(inst *preference.SPAInstance) (*Matching, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}

	return newMatching(inst), nil
}

func newMatching(inst *preference.SPAInstance) *Matching {
	m := &Matching{
		inst:      inst,
		student:   make(map[string]string, inst.Students().Len()),
		projects:  make(map[string][]string, inst.Projects().Len()),
		lecturers: make(map[string][]string, inst.Lecturers().Len()),
	}
	for _, p := range inst.Projects().Keys() {
		m.projects[p] = nil
	}
	for _, l := range inst.Lecturers().Keys() {
		m.lecturers[l] = nil
	}

	return m
}

// Assign allocates project to student, refusing anything that would break
// the matching invariants.
func (m *Matching) Assign(student, project string) error {
	st := m.inst.Student(student)
	if st == nil {
		return fmt.Errorf("%w: student %q", ErrUnknownAgent, student)
	}
	p := m.inst.Project(project)
	if p == nil {
		return fmt.Errorf("%w: project %q", ErrUnknownAgent, project)
	}
	if !st.Accepts(project) {
		return fmt.Errorf("%w: %s does not list %s", ErrNotAcceptable, student, project)
	}
	if cur, ok := m.student[student]; ok {
		return fmt.Errorf("%w: %s holds %s", ErrAlreadyAssigned, student, cur)
	}
	if len(m.projects[project]) >= p.Capacity() {
		return fmt.Errorf("%w: project %s has quota %d", ErrCapacityExceeded, project, p.Capacity())
	}
	if len(m.lecturers[p.Lecturer()]) >= m.inst.Lecturer(p.Lecturer()).Capacity() {
		return fmt.Errorf("%w: lecturer %s is full", ErrCapacityExceeded, p.Lecturer())
	}
	m.assign(student, project)

	return nil
}

// Unassign frees student; it is a no-op for an unassigned student.
func (m *Matching) Unassign(student string) { m.unassign(student) }

// assign records (student, project) without any checks.
func (m *Matching) assign(student, project string) {
	lec := m.inst.Project(project).Lecturer()
	m.student[student] = project
	m.projects[project] = append(m.projects[project], student)
	m.lecturers[lec] = append(m.lecturers[lec], student)
}

func (m *Matching) unassign(student string) {
	project, ok := m.student[student]
	if !ok {
		return
	}
	lec := m.inst.Project(project).Lecturer()
	delete(m.student, student)
	m.projects[project] = remove(m.projects[project], student)
	m.lecturers[lec] = remove(m.lecturers[lec], student)
}

// ProjectOf returns the project assigned to student.
func (m *Matching) ProjectOf(student string) (string, bool) {
	p, ok := m.student[student]

	return p, ok
}

// ProjectAssigned returns M(p_j) in assignment order.
func (m *Matching) ProjectAssigned(project string) []string { return slices.Clone(m.projects[project]) }

// LecturerAssigned returns M(l_k) in assignment order.
func (m *Matching) LecturerAssigned(lecturer string) []string {
	return slices.Clone(m.lecturers[lecturer])
}

// ProjectOccupancy returns |M(p_j)|.
func (m *Matching) ProjectOccupancy(project string) int { return len(m.projects[project]) }

// LecturerOccupancy returns |M(l_k)|.
func (m *Matching) LecturerOccupancy(lecturer string) int { return len(m.lecturers[lecturer]) }

// holdsLecturer reports whether student is in M(l_k).
func (m *Matching) holdsLecturer(lecturer, student string) bool {
	return slices.Contains(m.lecturers[lecturer], student)
}

// StableMatching maps every student to its project, or "" when unmatched.
func (m *Matching) StableMatching() map[string]string {
	out := make(map[string]string, m.inst.Students().Len())
	for _, s := range m.inst.Students().Keys() {
		out[s] = m.student[s]
	}

	return out
}

// Size returns the number of assigned students.
func (m *Matching) Size() int { return len(m.student) }

// Validate checks 0 ≤ occupancy ≤ quota for every project and lecturer.
func (m *Matching) Validate() error {
	for _, pid := range m.inst.Projects().Keys() {
		p := m.inst.Project(pid)
		if n := len(m.projects[pid]); n > p.Capacity() {
			return fmt.Errorf("%w: project %s holds %d of %d", ErrCapacityExceeded, pid, n, p.Capacity())
		}
	}
	for _, lid := range m.inst.Lecturers().Keys() {
		l := m.inst.Lecturer(lid)
		if n := len(m.lecturers[lid]); n > l.Capacity() {
			return fmt.Errorf("%w: lecturer %s holds %d of %d", ErrCapacityExceeded, lid, n, l.Capacity())
		}
	}

	return nil
}

// worst returns the student of assigned ranked last by ranker.
func worst(assigned []string, ranker *preference.Agent) string {
	var (
		out  string
		best = -1
	)
	for _, s := range assigned {
		if r, _ := ranker.RankOf(s); r > best {
			best, out = r, s
		}
	}

	return out
}

func remove(list []string, x string) []string {
	out := make([]string, 0, len(list))
	for _, y := range list {
		if y != x {
			out = append(out, y)
		}
	}

	return out
}
