// SPDX-License-Identifier: MIT

package preference

import (
	"os"
)

// Entry is one agent and its preference list in a dictionary.
type Entry struct {
	ID    string   `yaml:"id" toml:"id" validate:"required"`
	Prefs []string `yaml:"prefs" toml:"prefs" validate:"dive,required"`
}

// SMDictionary is the structured form of a Stable Marriage instance.
type SMDictionary struct {
	Men   []Entry `yaml:"men" toml:"men" validate:"required,min=1,dive"`
	Women []Entry `yaml:"women" toml:"women" validate:"required,min=1,dive"`
}

// SMInstance is a validated, immutable Stable Marriage instance.
type SMInstance struct {
	men   *Registry[*Agent]
	women *Registry[*Agent]
}

// Men returns the men in declaration order.
func (in *SMInstance) Men() *Registry[*Agent] { return in.men }

// Women returns the women in declaration order.
func (in *SMInstance) Women() *Registry[*Agent] { return in.women }

// Agent looks id up among men and women.
func (in *SMInstance) Agent(id string) (*Agent, bool) {
	if a, ok := in.men.Get(id); ok {
		return a, true
	}

	return in.women.Get(id)
}

// LoadSM resolves src and builds the instance.
func LoadSM(src Source[SMDictionary]) (*SMInstance, error) {
	if err := src.Check(); err != nil {
		return nil, err
	}
	if src.Dictionary != nil {
		return BuildSM(*src.Dictionary)
	}
	d, err := ReadSMFile(src.Filename)
	if err != nil {
		return nil, err
	}

	return BuildSM(d)
}

// ReadSMFile decodes name into a dictionary without validating it.
func ReadSMFile(name string) (SMDictionary, error) {
	var d SMDictionary
	err := decodeFile(name, &d, func(f *os.File) error {
		var perr error
		d, perr = ParseSMText(f)
		return perr
	})

	return d, err
}

// BuildSM validates d and freezes it into an SMInstance.
//
// Validation (in order):
//  1. struct tags: both sides non-empty, ids and list entries non-empty;
//  2. ids unique across both sides (the combined registry is disjoint);
//  3. every list entry names an agent of the other side, at most once;
//  4. acceptability is mutual: m lists w iff w lists m.
//
// Complexity: O(n·m) for n men and m women.
func BuildSM(d SMDictionary) (*SMInstance, error) {
	if err := validateStruct(d); err != nil {
		return nil, err
	}

	taken := make(map[string]string, len(d.Men)+len(d.Women))
	if err := ids("man", entryIDs(d.Men), taken); err != nil {
		return nil, err
	}
	if err := ids("woman", entryIDs(d.Women), taken); err != nil {
		return nil, err
	}

	in := &SMInstance{
		men:   newRegistry[*Agent](len(d.Men)),
		women: newRegistry[*Agent](len(d.Women)),
	}
	isRole := func(role string) func(string) bool {
		return func(id string) bool { return taken[id] == role }
	}
	for _, e := range d.Men {
		if err := checkList(e.ID, e.Prefs, isRole("woman")); err != nil {
			return nil, err
		}
		in.men.add(e.ID, newAgent(e.ID, e.Prefs))
	}
	for _, e := range d.Women {
		if err := checkList(e.ID, e.Prefs, isRole("man")); err != nil {
			return nil, err
		}
		in.women.add(e.ID, newAgent(e.ID, e.Prefs))
	}

	if err := checkMutual(in.men, in.women); err != nil {
		return nil, err
	}
	if err := checkMutual(in.women, in.men); err != nil {
		return nil, err
	}

	return in, nil
}

func checkMutual(side, other *Registry[*Agent]) error {
	for _, id := range side.order {
		a := side.items[id]
		for _, p := range a.list {
			if !other.items[p].Accepts(id) {
				return invalidf("%s lists %s but %s does not list %s", id, p, p, id)
			}
		}
	}

	return nil
}

func entryIDs(es []Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}

	return out
}
