package spa_test

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/algmatch/preference"
	"github.com/katalvlaran/algmatch/spa"
)

// build freezes d or fails the test.
func build(t *testing.T, d preference.SPADictionary) *preference.SPAInstance {
	t.Helper()
	inst, err := preference.BuildSPA(d)
	require.NoError(t, err)

	return inst
}

// fixed returns a strategy assigning the given student → project pairs.
func fixed(pairs ...[2]string) spa.Strategy {
	return spa.StrategyFunc(func(inst *preference.SPAInstance) (*spa.Matching, error) {
		m, err := spa.NewMatching(inst)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if err = m.Assign(p[0], p[1]); err != nil {
				return nil, err
			}
		}
		return m, nil
	})
}

// single is one student, one project (quota 1), one lecturer (quota 1).
func single() preference.SPADictionary {
	return preference.SPADictionary{
		Students:  []preference.Entry{{ID: "s1", Prefs: []string{"p1"}}},
		Projects:  []preference.ProjectEntry{{ID: "p1", Capacity: 1, Lecturer: "l1"}},
		Lecturers: []preference.LecturerEntry{{ID: "l1", Capacity: 1, Prefs: []string{"s1"}}},
	}
}

// lecturerFull: l1 offers p1 and p2 (quota 1 each) but can take one student.
// lecturerPrefs decides whether s2 outranks s1.
func lecturerFull(lecturerPrefs ...string) preference.SPADictionary {
	return preference.SPADictionary{
		Students: []preference.Entry{
			{ID: "s1", Prefs: []string{"p1"}},
			{ID: "s2", Prefs: []string{"p2"}},
		},
		Projects: []preference.ProjectEntry{
			{ID: "p1", Capacity: 1, Lecturer: "l1"},
			{ID: "p2", Capacity: 1, Lecturer: "l1"},
		},
		Lecturers: []preference.LecturerEntry{{ID: "l1", Capacity: 1, Prefs: lecturerPrefs}},
	}
}

// fourStudents has a unique stable matching in which s4 stays unmatched.
func fourStudents() preference.SPADictionary {
	return preference.SPADictionary{
		Students: []preference.Entry{
			{ID: "s1", Prefs: []string{"p1", "p2"}},
			{ID: "s2", Prefs: []string{"p1", "p3"}},
			{ID: "s3", Prefs: []string{"p2", "p1"}},
			{ID: "s4", Prefs: []string{"p3"}},
		},
		Projects: []preference.ProjectEntry{
			{ID: "p1", Capacity: 1, Lecturer: "l1"},
			{ID: "p2", Capacity: 1, Lecturer: "l1"},
			{ID: "p3", Capacity: 1, Lecturer: "l2"},
		},
		Lecturers: []preference.LecturerEntry{
			{ID: "l1", Capacity: 2, Prefs: []string{"s3", "s1", "s2"}},
			{ID: "l2", Capacity: 1, Prefs: []string{"s2", "s4"}},
		},
	}
}

// crossed has two stable matchings: students and lecturers disagree.
func crossed() preference.SPADictionary {
	return preference.SPADictionary{
		Students: []preference.Entry{
			{ID: "s1", Prefs: []string{"p1", "p2"}},
			{ID: "s2", Prefs: []string{"p2", "p1"}},
		},
		Projects: []preference.ProjectEntry{
			{ID: "p1", Capacity: 1, Lecturer: "l1"},
			{ID: "p2", Capacity: 1, Lecturer: "l2"},
		},
		Lecturers: []preference.LecturerEntry{
			{ID: "l1", Capacity: 1, Prefs: []string{"s2", "s1"}},
			{ID: "l2", Capacity: 1, Prefs: []string{"s1", "s2"}},
		},
	}
}

// ------------------------------------------------------------------------
// 1. Blocking-pair kinds
// ------------------------------------------------------------------------

type VerifierSuite struct {
	suite.Suite
}

// TestType1bi: an empty matching is blocked by any acceptable pair.
func (s *VerifierSuite) TestType1bi() {
	inst := build(s.T(), single())
	m, err := spa.NewMatching(inst)
	require.NoError(s.T(), err)

	bp, blocked := spa.FindBlockingPair(inst, m)
	require.True(s.T(), blocked)
	require.Equal(s.T(), spa.BlockingPair{Student: "s1", Project: "p1", Lecturer: "l1", Kind: spa.Type1bi}, *bp)
	require.Equal(s.T(), "1(b)(i)", bp.Kind.String())
}

// TestType1biiLecturerPrefersStudent: p2 has room, l1 is full with s1 and
// ranks s2 higher.
func (s *VerifierSuite) TestType1biiLecturerPrefersStudent() {
	sess, err := spa.New(preference.FromDictionary(lecturerFull("s2", "s1")), fixed([2]string{"s1", "p1"}))
	require.NoError(s.T(), err)

	rep, err := sess.Run()
	require.NoError(s.T(), err)
	require.False(s.T(), rep.Stable)
	require.Equal(s.T(), "unstable matching", rep.Verdict())
	require.NotNil(s.T(), rep.Blocking)
	require.Equal(s.T(), "s2", rep.Blocking.Student)
	require.Equal(s.T(), "p2", rep.Blocking.Project)
	require.Equal(s.T(), spa.Type1bii, rep.Blocking.Kind)
	require.Equal(s.T(), map[string]string{"s1": "p1", "s2": ""}, rep.StableMatching)
	require.Equal(s.T(), `unstable matching: {s1: p1, s2: ""}`, rep.String())
}

// TestType1biiRejected: the same state is stable when l1 ranks s1 first.
func (s *VerifierSuite) TestType1biiRejected() {
	sess, err := spa.New(preference.FromDictionary(lecturerFull("s1", "s2")), fixed([2]string{"s1", "p1"}))
	require.NoError(s.T(), err)

	rep, err := sess.Run()
	require.NoError(s.T(), err)
	require.True(s.T(), rep.Stable)
	require.Nil(s.T(), rep.Blocking)
	require.Equal(s.T(), `stable matching: {s1: p1, s2: ""}`, rep.String())
}

// TestType1biiStudentAlreadyWithLecturer: s1 can move inside l1 without
// raising l1's load.
func (s *VerifierSuite) TestType1biiStudentAlreadyWithLecturer() {
	d := preference.SPADictionary{
		Students: []preference.Entry{{ID: "s1", Prefs: []string{"p2", "p1"}}},
		Projects: []preference.ProjectEntry{
			{ID: "p1", Capacity: 1, Lecturer: "l1"},
			{ID: "p2", Capacity: 1, Lecturer: "l1"},
		},
		Lecturers: []preference.LecturerEntry{{ID: "l1", Capacity: 1, Prefs: []string{"s1"}}},
	}
	inst := build(s.T(), d)
	m, err := spa.NewMatching(inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Assign("s1", "p1"))

	bp, blocked := spa.FindBlockingPair(inst, m)
	require.True(s.T(), blocked)
	require.Equal(s.T(), "p2", bp.Project)
	require.Equal(s.T(), spa.Type1bii, bp.Kind)
}

// TestType1biii: p1 is full with s1 and its ranking puts s2 ahead.
func (s *VerifierSuite) TestType1biii() {
	d := preference.SPADictionary{
		Students: []preference.Entry{
			{ID: "s1", Prefs: []string{"p1"}},
			{ID: "s2", Prefs: []string{"p1"}},
		},
		Projects:  []preference.ProjectEntry{{ID: "p1", Capacity: 1, Lecturer: "l1"}},
		Lecturers: []preference.LecturerEntry{{ID: "l1", Capacity: 2, Prefs: []string{"s2", "s1"}}},
	}
	inst := build(s.T(), d)
	m, err := spa.NewMatching(inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Assign("s1", "p1"))

	bp, blocked := spa.FindBlockingPair(inst, m)
	require.True(s.T(), blocked)
	require.Equal(s.T(), spa.BlockingPair{Student: "s2", Project: "p1", Lecturer: "l1", Kind: spa.Type1biii}, *bp)
}

// TestOnlyBetterProjectsAreCandidates: projects behind the assigned one never block.
func (s *VerifierSuite) TestOnlyBetterProjectsAreCandidates() {
	d := preference.SPADictionary{
		Students: []preference.Entry{{ID: "s1", Prefs: []string{"p1", "p2"}}},
		Projects: []preference.ProjectEntry{
			{ID: "p1", Capacity: 1, Lecturer: "l1"},
			{ID: "p2", Capacity: 1, Lecturer: "l2"},
		},
		Lecturers: []preference.LecturerEntry{
			{ID: "l1", Capacity: 1, Prefs: []string{"s1"}},
			{ID: "l2", Capacity: 1, Prefs: []string{"s1"}},
		},
	}
	inst := build(s.T(), d)
	m, err := spa.NewMatching(inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Assign("s1", "p1"))

	_, blocked := spa.FindBlockingPair(inst, m)
	require.False(s.T(), blocked, "p2 is empty but ranked behind p1")
}

// TestVerificationDoesNotMutate: occupancy is identical before and after.
func (s *VerifierSuite) TestVerificationDoesNotMutate() {
	inst := build(s.T(), lecturerFull("s2", "s1"))
	m, err := spa.NewMatching(inst)
	require.NoError(s.T(), err)
	require.NoError(s.T(), m.Assign("s1", "p1"))

	before := m.StableMatching()
	spa.FindBlockingPair(inst, m)
	require.Equal(s.T(), before, m.StableMatching())
	require.Equal(s.T(), 1, m.LecturerOccupancy("l1"))
	require.Equal(s.T(), []string{"s1"}, m.ProjectAssigned("p1"))
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

// ------------------------------------------------------------------------
// 2. Proposal strategies
// ------------------------------------------------------------------------

func TestSingleStudentStable(t *testing.T) {
	for _, strategy := range []spa.Strategy{spa.StudentOriented{}, spa.LecturerOriented{}} {
		t.Run(strategy.Name(), func(t *testing.T) {
			sess, err := spa.New(preference.FromDictionary(single()), strategy)
			require.NoError(t, err)

			rep, err := sess.Run()
			require.NoError(t, err)
			assert.True(t, rep.Stable)
			assert.Equal(t, "stable matching", rep.Verdict())
			assert.Equal(t, map[string]string{"s1": "p1"}, rep.StableMatching)
			assert.Equal(t, "stable matching: {s1: p1}", rep.String())
		})
	}
}

func TestStudentOriented_FourStudents(t *testing.T) {
	inst := build(t, fourStudents())
	m, err := spa.StudentOriented{}.Propose(inst)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"s1": "p1", "s2": "p3", "s3": "p2", "s4": ""}, m.StableMatching())
	assert.Equal(t, 2, m.LecturerOccupancy("l1"))
	assert.ElementsMatch(t, []string{"s1", "s3"}, m.LecturerAssigned("l1"))
	_, blocked := spa.FindBlockingPair(inst, m)
	assert.False(t, blocked)
}

func TestLecturerOriented_FourStudents(t *testing.T) {
	inst := build(t, fourStudents())
	m, err := spa.LecturerOriented{}.Propose(inst)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"s1": "p1", "s2": "p3", "s3": "p2", "s4": ""}, m.StableMatching())
	_, blocked := spa.FindBlockingPair(inst, m)
	assert.False(t, blocked)
}

func TestOrientationsDiffer(t *testing.T) {
	inst := build(t, crossed())

	sm, err := spa.StudentOriented{}.Propose(inst)
	require.NoError(t, err)
	lm, err := spa.LecturerOriented{}.Propose(inst)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"s1": "p1", "s2": "p2"}, sm.StableMatching())
	assert.Equal(t, map[string]string{"s1": "p2", "s2": "p1"}, lm.StableMatching())
	for _, m := range []*spa.Matching{sm, lm} {
		_, blocked := spa.FindBlockingPair(inst, m)
		assert.False(t, blocked)
	}
}

func TestStrategies_DoNotMutateInstance(t *testing.T) {
	inst := build(t, fourStudents())
	before := inst.Student("s2").List()
	beforeProject := inst.Project("p1").List()

	_, err := spa.StudentOriented{}.Propose(inst)
	require.NoError(t, err)
	_, err = spa.LecturerOriented{}.Propose(inst)
	require.NoError(t, err)

	assert.Equal(t, before, inst.Student("s2").List())
	assert.Equal(t, beforeProject, inst.Project("p1").List())
}

// randomSPA builds a valid random instance: lecturers rank every student
// who lists one of their projects.
func randomSPA(rng *rand.Rand) preference.SPADictionary {
	nS, nP, nL := 2+rng.Intn(7), 1+rng.Intn(5), 1+rng.Intn(3)
	var d preference.SPADictionary

	for j := 1; j <= nP; j++ {
		d.Projects = append(d.Projects, preference.ProjectEntry{
			ID:       fmt.Sprintf("p%d", j),
			Capacity: 1 + rng.Intn(2),
			Lecturer: fmt.Sprintf("l%d", 1+rng.Intn(nL)),
		})
	}
	owner := make(map[string]string, nP)
	for _, p := range d.Projects {
		owner[p.ID] = p.Lecturer
	}

	ranked := make(map[string]map[string]bool, nL)
	for i := 1; i <= nS; i++ {
		sid := fmt.Sprintf("s%d", i)
		perm := rng.Perm(nP)
		prefs := make([]string, 0, nP)
		for _, j := range perm[:rng.Intn(nP+1)] {
			pid := d.Projects[j].ID
			prefs = append(prefs, pid)
			if ranked[owner[pid]] == nil {
				ranked[owner[pid]] = map[string]bool{}
			}
			ranked[owner[pid]][sid] = true
		}
		d.Students = append(d.Students, preference.Entry{ID: sid, Prefs: prefs})
	}

	for k := 1; k <= nL; k++ {
		lid := fmt.Sprintf("l%d", k)
		var prefs []string
		for _, i := range rng.Perm(nS) {
			if sid := fmt.Sprintf("s%d", i+1); ranked[lid][sid] {
				prefs = append(prefs, sid)
			}
		}
		d.Lecturers = append(d.Lecturers, preference.LecturerEntry{ID: lid, Capacity: 1 + rng.Intn(3), Prefs: prefs})
	}

	return d
}

func TestStrategies_RandomInstancesAreStable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		inst := build(t, randomSPA(rng))
		for _, strategy := range []spa.Strategy{spa.StudentOriented{}, spa.LecturerOriented{}} {
			sess, err := spa.NewFromInstance(inst, strategy)
			require.NoError(t, err)
			rep, err := sess.Run()
			require.NoError(t, err, "trial %d %s", trial, strategy.Name())
			require.True(t, rep.Stable, "trial %d %s: %+v", trial, strategy.Name(), rep.Blocking)

			m := sess.Matching()
			require.NoError(t, m.Validate())
			for _, pid := range inst.Projects().Keys() {
				require.LessOrEqual(t, m.ProjectOccupancy(pid), inst.Project(pid).Capacity())
			}
			for _, lid := range inst.Lecturers().Keys() {
				require.LessOrEqual(t, m.LecturerOccupancy(lid), inst.Lecturer(lid).Capacity())
			}
		}
	}
}

// oracleBlockingPair recomputes the first blocking pair straight from the
// dictionary and the student → project allocation, with no help from the
// Matching bookkeeping.
func oracleBlockingPair(d preference.SPADictionary, alloc map[string]string) (spa.BlockingPair, bool) {
	owner := map[string]string{}
	projectCap := map[string]int{}
	for _, p := range d.Projects {
		owner[p.ID], projectCap[p.ID] = p.Lecturer, p.Capacity
	}
	lecturerCap := map[string]int{}
	rank := map[string]map[string]int{}
	for _, l := range d.Lecturers {
		lecturerCap[l.ID] = l.Capacity
		rank[l.ID] = map[string]int{}
		for i, s := range l.Prefs {
			rank[l.ID][s] = i
		}
	}
	inProject := map[string][]string{}
	inLecturer := map[string][]string{}
	for _, st := range d.Students {
		if p := alloc[st.ID]; p != "" {
			inProject[p] = append(inProject[p], st.ID)
			inLecturer[owner[p]] = append(inLecturer[owner[p]], st.ID)
		}
	}
	prefersToSome := func(l, s string, group []string) bool {
		for _, t := range group {
			if rank[l][s] < rank[l][t] {
				return true
			}
		}
		return false
	}

	for _, st := range d.Students {
		preferred := st.Prefs
		if cur := alloc[st.ID]; cur != "" {
			for i, p := range st.Prefs {
				if p == cur {
					preferred = st.Prefs[:i]
					break
				}
			}
		}
		for _, p := range preferred {
			l := owner[p]
			projectUnder := len(inProject[p]) < projectCap[p]
			lecturerUnder := len(inLecturer[l]) < lecturerCap[l]
			held := false
			for _, t := range inLecturer[l] {
				held = held || t == st.ID
			}
			switch {
			case projectUnder && lecturerUnder:
				return spa.BlockingPair{Student: st.ID, Project: p, Lecturer: l, Kind: spa.Type1bi}, true
			case projectUnder && len(inLecturer[l]) == lecturerCap[l] && (held || prefersToSome(l, st.ID, inLecturer[l])):
				return spa.BlockingPair{Student: st.ID, Project: p, Lecturer: l, Kind: spa.Type1bii}, true
			case len(inProject[p]) == projectCap[p] && prefersToSome(l, st.ID, inProject[p]):
				return spa.BlockingPair{Student: st.ID, Project: p, Lecturer: l, Kind: spa.Type1biii}, true
			}
		}
	}

	return spa.BlockingPair{}, false
}

// randomAllocation assigns students in random order to random listed
// projects, skipping whatever Assign refuses.
func randomAllocation(t *testing.T, rng *rand.Rand, inst *preference.SPAInstance) *spa.Matching {
	t.Helper()
	m, err := spa.NewMatching(inst)
	require.NoError(t, err)

	students := inst.Students().Keys()
	rng.Shuffle(len(students), func(i, j int) { students[i], students[j] = students[j], students[i] })
	for _, sid := range students {
		list := inst.Student(sid).List()
		if len(list) == 0 || rng.Intn(4) == 0 {
			continue
		}
		_ = m.Assign(sid, list[rng.Intn(len(list))])
	}
	require.NoError(t, m.Validate())

	return m
}

func TestFindBlockingPair_AgreesWithDirectCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var blocked, stable int
	for trial := 0; trial < 2000; trial++ {
		d := randomSPA(rng)
		inst := build(t, d)
		m := randomAllocation(t, rng, inst)

		want, wantBlocked := oracleBlockingPair(d, m.StableMatching())
		got, gotBlocked := spa.FindBlockingPair(inst, m)
		require.Equal(t, wantBlocked, gotBlocked, "trial %d: %v", trial, m.StableMatching())
		if !wantBlocked {
			stable++
			continue
		}
		blocked++
		require.Equal(t, want, *got, "trial %d: %v", trial, m.StableMatching())
	}
	// Both outcomes must be exercised for the comparison to mean anything.
	assert.Positive(t, blocked)
	assert.Positive(t, stable)
}

// ------------------------------------------------------------------------
// 3. Session contract
// ------------------------------------------------------------------------

func TestSession_Lifecycle(t *testing.T) {
	sess, err := spa.New(preference.FromDictionary(single()), spa.StudentOriented{})
	require.NoError(t, err)
	assert.Equal(t, spa.StateCreated, sess.State())
	assert.Nil(t, sess.Matching())
	assert.Nil(t, sess.Report())

	rep, err := sess.Run()
	require.NoError(t, err)
	assert.Equal(t, spa.StateReported, sess.State())
	assert.Equal(t, "reported", sess.State().String())
	assert.Same(t, rep, sess.Report())
	assert.Equal(t, 1, sess.Matching().ProjectOccupancy("p1"))

	_, err = sess.Run()
	assert.ErrorIs(t, err, spa.ErrSessionUsed)
	assert.Equal(t, spa.StateReported, sess.State())
}

func TestSession_ConstructionErrors(t *testing.T) {
	d := single()

	_, err := spa.New(preference.Source[preference.SPADictionary]{}, spa.StudentOriented{})
	assert.ErrorIs(t, err, preference.ErrNoSource)

	_, err = spa.New(preference.Source[preference.SPADictionary]{Filename: "spa.txt", Dictionary: &d}, spa.StudentOriented{})
	assert.ErrorIs(t, err, preference.ErrAmbiguousSource)

	_, err = spa.New(preference.FromFile[preference.SPADictionary](filepath.Join(t.TempDir(), "nope.txt")), spa.StudentOriented{})
	assert.ErrorIs(t, err, preference.ErrFileNotFound)

	_, err = spa.New(preference.FromDictionary(d), nil)
	assert.ErrorIs(t, err, spa.ErrNoStrategy)

	_, err = spa.NewFromInstance(nil, spa.StudentOriented{})
	assert.ErrorIs(t, err, spa.ErrNilInstance)
}

func TestSession_StrategyFailures(t *testing.T) {
	inst := build(t, single())
	other := build(t, single())
	boom := errors.New("boom")

	cases := map[string]struct {
		strategy spa.Strategy
		want     error
	}{
		"error": {spa.StrategyFunc(func(*preference.SPAInstance) (*spa.Matching, error) { return nil, boom }), boom},
		"nil":   {spa.StrategyFunc(func(*preference.SPAInstance) (*spa.Matching, error) { return nil, nil }), spa.ErrNilMatching},
		"foreign": {spa.StrategyFunc(func(*preference.SPAInstance) (*spa.Matching, error) {
			return spa.NewMatching(other)
		}), spa.ErrForeignMatching},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			sess, err := spa.NewFromInstance(inst, tc.strategy)
			require.NoError(t, err)
			_, err = sess.Run()
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, sess.Report())
			assert.Equal(t, spa.StateCreated, sess.State())
		})
	}
}

func TestSession_FromTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crossed.txt")
	body := "2 2 2\n1 1 2\n2 2 1\n1 1 1\n2 1 2\n1 1 2 1\n2 1 1 2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	sess, err := spa.New(preference.FromFile[preference.SPADictionary](path), spa.LecturerOriented{})
	require.NoError(t, err)
	rep, err := sess.Run()
	require.NoError(t, err)
	assert.True(t, rep.Stable)
	assert.Equal(t, "stable matching: {s1: p2, s2: p1}", rep.String())
}

// ------------------------------------------------------------------------
// 4. Matching invariants
// ------------------------------------------------------------------------

func TestMatching_AssignGuards(t *testing.T) {
	inst := build(t, lecturerFull("s2", "s1"))
	m, err := spa.NewMatching(inst)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Assign("s9", "p1"), spa.ErrUnknownAgent)
	assert.ErrorIs(t, m.Assign("s1", "p9"), spa.ErrUnknownAgent)
	assert.ErrorIs(t, m.Assign("s1", "p2"), spa.ErrNotAcceptable)

	require.NoError(t, m.Assign("s1", "p1"))
	assert.ErrorIs(t, m.Assign("s1", "p1"), spa.ErrAlreadyAssigned)
	// l1 has quota 1 and already holds s1.
	assert.ErrorIs(t, m.Assign("s2", "p2"), spa.ErrCapacityExceeded)

	m.Unassign("s1")
	assert.Equal(t, 0, m.LecturerOccupancy("l1"))
	require.NoError(t, m.Assign("s2", "p2"))
	p, ok := m.ProjectOf("s2")
	assert.True(t, ok)
	assert.Equal(t, "p2", p)
	assert.NoError(t, m.Validate())

	_, err = spa.NewMatching(nil)
	assert.ErrorIs(t, err, spa.ErrNilInstance)
}
