// SPDX-License-Identifier: MIT

package preference

import (
	"os"
)

// ProjectEntry declares a project, its upper quota and owning lecturer.
type ProjectEntry struct {
	ID       string `yaml:"id" toml:"id" validate:"required"`
	Capacity int    `yaml:"capacity" toml:"capacity" validate:"gt=0"`
	Lecturer string `yaml:"lecturer" toml:"lecturer" validate:"required"`
}

// LecturerEntry declares a lecturer, its upper quota and its ranking of students.
type LecturerEntry struct {
	ID       string   `yaml:"id" toml:"id" validate:"required"`
	Capacity int      `yaml:"capacity" toml:"capacity" validate:"gt=0"`
	Prefs    []string `yaml:"prefs" toml:"prefs" validate:"dive,required"`
}

// SPADictionary is the structured form of a Student Project Allocation instance.
type SPADictionary struct {
	Students  []Entry         `yaml:"students" toml:"students" validate:"required,min=1,dive"`
	Projects  []ProjectEntry  `yaml:"projects" toml:"projects" validate:"required,min=1,dive"`
	Lecturers []LecturerEntry `yaml:"lecturers" toml:"lecturers" validate:"required,min=1,dive"`
}

// Project is a project with upper quota c_j. Its embedded Agent ranks the
// students who find the project acceptable, in the owning lecturer's order
// (the list L_k^j).
type Project struct {
	*Agent
	capacity int
	lecturer string
}

// Capacity returns the upper quota c_j.
func (p *Project) Capacity() int { return p.capacity }

// Lecturer returns the id of the lecturer offering the project.
func (p *Project) Lecturer() string { return p.lecturer }

// Lecturer is a lecturer with upper quota d_k. The embedded Agent holds the
// lecturer's ranking of students.
type Lecturer struct {
	*Agent
	capacity int
	projects []string
}

// Capacity returns the upper quota d_k.
func (l *Lecturer) Capacity() int { return l.capacity }

// Projects returns the projects offered by the lecturer in declaration order.
func (l *Lecturer) Projects() []string {
	out := make([]string, len(l.projects))
	copy(out, l.projects)

	return out
}

// SPAInstance is a validated, immutable Student Project Allocation instance.
type SPAInstance struct {
	students  *Registry[*Agent]
	projects  *Registry[*Project]
	lecturers *Registry[*Lecturer]
}

// Students returns the students in declaration order.
func (in *SPAInstance) Students() *Registry[*Agent] { return in.students }

// Projects returns the projects in declaration order.
func (in *SPAInstance) Projects() *Registry[*Project] { return in.projects }

// Lecturers returns the lecturers in declaration order.
func (in *SPAInstance) Lecturers() *Registry[*Lecturer] { return in.lecturers }

// Student returns the student id, or nil.
func (in *SPAInstance) Student(id string) *Agent { return in.students.items[id] }

// Project returns the project id, or nil.
func (in *SPAInstance) Project(id string) *Project { return in.projects.items[id] }

// Lecturer returns the lecturer id, or nil.
func (in *SPAInstance) Lecturer(id string) *Lecturer { return in.lecturers.items[id] }

// LoadSPA resolves src and builds the instance.
func LoadSPA(src Source[SPADictionary]) (*SPAInstance, error) {
	if err := src.Check(); err != nil {
		return nil, err
	}
	if src.Dictionary != nil {
		return BuildSPA(*src.Dictionary)
	}
	d, err := ReadSPAFile(src.Filename)
	if err != nil {
		return nil, err
	}

	return BuildSPA(d)
}

// ReadSPAFile decodes name into a dictionary without validating it.
func ReadSPAFile(name string) (SPADictionary, error) {
	var d SPADictionary
	err := decodeFile(name, &d, func(f *os.File) error {
		var perr error
		d, perr = ParseSPAText(f)
		return perr
	})

	return d, err
}

// BuildSPA validates d and freezes it into an SPAInstance.
//
// Validation (in order):
//  1. struct tags: every role non-empty, quotas positive;
//  2. ids unique across students, projects and lecturers;
//  3. students list known projects, lecturers list known students, each once;
//  4. every project names a known lecturer;
//  5. a student listing a project of l_k appears in l_k's list.
//
// The project list L_k^j is derived as l_k's list restricted to students who
// list p_j, so project and lecturer rankings never disagree.
func BuildSPA(d SPADictionary) (*SPAInstance, error) {
	if err := validateStruct(d); err != nil {
		return nil, err
	}

	taken := make(map[string]string, len(d.Students)+len(d.Projects)+len(d.Lecturers))
	if err := ids("student", entryIDs(d.Students), taken); err != nil {
		return nil, err
	}
	projectIDs := make([]string, len(d.Projects))
	for i, p := range d.Projects {
		projectIDs[i] = p.ID
	}
	if err := ids("project", projectIDs, taken); err != nil {
		return nil, err
	}
	lecturerIDs := make([]string, len(d.Lecturers))
	for i, l := range d.Lecturers {
		lecturerIDs[i] = l.ID
	}
	if err := ids("lecturer", lecturerIDs, taken); err != nil {
		return nil, err
	}
	isRole := func(role string) func(string) bool {
		return func(id string) bool { return taken[id] == role }
	}

	in := &SPAInstance{
		students:  newRegistry[*Agent](len(d.Students)),
		projects:  newRegistry[*Project](len(d.Projects)),
		lecturers: newRegistry[*Lecturer](len(d.Lecturers)),
	}

	for _, e := range d.Students {
		if err := checkList(e.ID, e.Prefs, isRole("project")); err != nil {
			return nil, err
		}
		in.students.add(e.ID, newAgent(e.ID, e.Prefs))
	}
	for _, e := range d.Lecturers {
		if err := checkList(e.ID, e.Prefs, isRole("student")); err != nil {
			return nil, err
		}
		in.lecturers.add(e.ID, &Lecturer{Agent: newAgent(e.ID, e.Prefs), capacity: e.Capacity})
	}
	for _, e := range d.Projects {
		lec, ok := in.lecturers.items[e.Lecturer]
		if !ok {
			return nil, invalidf("project %s names unknown lecturer %q", e.ID, e.Lecturer)
		}
		lec.projects = append(lec.projects, e.ID)

		var ranked []string
		for _, s := range lec.list {
			if in.students.items[s].Accepts(e.ID) {
				ranked = append(ranked, s)
			}
		}
		in.projects.add(e.ID, &Project{Agent: newAgent(e.ID, ranked), capacity: e.Capacity, lecturer: e.Lecturer})
	}

	for _, sid := range in.students.order {
		for _, pid := range in.students.items[sid].list {
			p := in.projects.items[pid]
			if !p.Accepts(sid) {
				return nil, invalidf("%s lists %s but lecturer %s does not rank %s", sid, pid, p.lecturer, sid)
			}
		}
	}

	return in, nil
}
