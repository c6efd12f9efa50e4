// SPDX-License-Identifier: MIT

package preference

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Key prefixes used by the plain-text record format.
const (
	ManPrefix      = "m"
	WomanPrefix    = "w"
	StudentPrefix  = "s"
	ProjectPrefix  = "p"
	LecturerPrefix = "l"
)

// record is one non-empty, non-comment line split into fields.
type record struct {
	line   int
	fields []string
}

// scanRecords splits r into records, skipping blank lines and '#' comments.
func scanRecords(r io.Reader) ([]record, error) {
	var (
		out  []record
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, record{line: line, fields: strings.Fields(text)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return out, nil
}

// atoi parses a non-negative integer field.
func (rec record) atoi(i int) (int, error) {
	if i >= len(rec.fields) {
		return 0, fmt.Errorf("%w: line %d: missing field %d", ErrMalformed, rec.line, i+1)
	}
	n, err := strconv.Atoi(rec.fields[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: line %d: %q is not a non-negative integer", ErrMalformed, rec.line, rec.fields[i])
	}

	return n, nil
}

// keys converts fields[from:] to prefixed keys.
func (rec record) keys(from int, prefix string) ([]string, error) {
	out := make([]string, 0, len(rec.fields))
	for i := from; i < len(rec.fields); i++ {
		n, err := rec.atoi(i)
		if err != nil {
			return nil, err
		}
		out = append(out, prefix+strconv.Itoa(n))
	}

	return out, nil
}

// header reads the counts from the first record.
func header(recs []record, want int) ([]int, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if len(recs[0].fields) != want {
		return nil, fmt.Errorf("%w: line %d: header needs %d counts, got %d",
			ErrMalformed, recs[0].line, want, len(recs[0].fields))
	}
	counts := make([]int, want)
	total := 0
	for i := range counts {
		n, err := recs[0].atoi(i)
		if err != nil {
			return nil, err
		}
		if n > len(recs)-1-total {
			return nil, fmt.Errorf("%w: line %d: header count %d exceeds the %d records present",
				ErrMalformed, recs[0].line, n, len(recs)-1)
		}
		counts[i] = n
		total += n
	}
	if len(recs)-1 != total {
		return nil, fmt.Errorf("%w: header announces %d records, found %d", ErrMalformed, total, len(recs)-1)
	}

	return counts, nil
}

// entries converts consecutive agent records to Entries.
func entries(recs []record, selfPrefix, partnerPrefix string) ([]Entry, error) {
	out := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		id, err := rec.atoi(0)
		if err != nil {
			return nil, err
		}
		prefs, err := rec.keys(1, partnerPrefix)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{ID: selfPrefix + strconv.Itoa(id), Prefs: prefs})
	}

	return out, nil
}

// ParseSMText reads the plain-text Stable Marriage format.
func ParseSMText(r io.Reader) (SMDictionary, error) {
	recs, err := scanRecords(r)
	if err != nil {
		return SMDictionary{}, err
	}
	counts, err := header(recs, 2)
	if err != nil {
		return SMDictionary{}, err
	}
	n := counts[0]

	men, err := entries(recs[1:1+n], ManPrefix, WomanPrefix)
	if err != nil {
		return SMDictionary{}, err
	}
	women, err := entries(recs[1+n:], WomanPrefix, ManPrefix)
	if err != nil {
		return SMDictionary{}, err
	}

	return SMDictionary{Men: men, Women: women}, nil
}

// ParseSPAText reads the plain-text Student Project Allocation format.
func ParseSPAText(r io.Reader) (SPADictionary, error) {
	recs, err := scanRecords(r)
	if err != nil {
		return SPADictionary{}, err
	}
	counts, err := header(recs, 3)
	if err != nil {
		return SPADictionary{}, err
	}
	nS, nP := counts[0], counts[1]
	body := recs[1:]

	students, err := entries(body[:nS], StudentPrefix, ProjectPrefix)
	if err != nil {
		return SPADictionary{}, err
	}

	projects := make([]ProjectEntry, 0, nP)
	for _, rec := range body[nS : nS+nP] {
		if len(rec.fields) != 3 {
			return SPADictionary{}, fmt.Errorf("%w: line %d: project record needs 3 fields", ErrMalformed, rec.line)
		}
		vals := make([]int, 3)
		for i := range vals {
			if vals[i], err = rec.atoi(i); err != nil {
				return SPADictionary{}, err
			}
		}
		projects = append(projects, ProjectEntry{
			ID:       ProjectPrefix + strconv.Itoa(vals[0]),
			Capacity: vals[1],
			Lecturer: LecturerPrefix + strconv.Itoa(vals[2]),
		})
	}

	lecturers := make([]LecturerEntry, 0, counts[2])
	for _, rec := range body[nS+nP:] {
		id, err := rec.atoi(0)
		if err != nil {
			return SPADictionary{}, err
		}
		capacity, err := rec.atoi(1)
		if err != nil {
			return SPADictionary{}, err
		}
		prefs, err := rec.keys(2, StudentPrefix)
		if err != nil {
			return SPADictionary{}, err
		}
		lecturers = append(lecturers, LecturerEntry{
			ID:       LecturerPrefix + strconv.Itoa(id),
			Capacity: capacity,
			Prefs:    prefs,
		})
	}

	return SPADictionary{Students: students, Projects: projects, Lecturers: lecturers}, nil
}
