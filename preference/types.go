// SPDX-License-Identifier: MIT
// Package: algmatch/preference
//
// types.go — sentinel errors, Agent and Registry.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context (file names, agent ids) is attached with %w at the call site.

package preference

import (
	"errors"
)

var (
	// ErrNoSource indicates that neither a file name nor a dictionary was given.
	ErrNoSource = errors.New("preference: either a filename or a dictionary must be provided")

	// ErrAmbiguousSource indicates that both a file name and a dictionary were given.
	ErrAmbiguousSource = errors.New("preference: only one of filename or dictionary must be provided")

	// ErrFileNotFound indicates that the file name does not reference a regular file.
	ErrFileNotFound = errors.New("preference: file does not exist")

	// ErrMalformed indicates a syntax error in the plain-text record format.
	ErrMalformed = errors.New("preference: malformed preference file")

	// ErrInvalidInstance indicates that the preference data failed validation.
	ErrInvalidInstance = errors.New("preference: invalid instance")
)

// Agent is a participant with a ranked list of acceptable partners.
// The list and rank table are fixed at construction.
type Agent struct {
	id   string
	list []string
	rank map[string]int
}

// newAgent copies list and derives the rank table.
func newAgent(id string, list []string) *Agent {
	a := &Agent{
		id:   id,
		list: make([]string, len(list)),
		rank: make(map[string]int, len(list)),
	}
	copy(a.list, list)
	for i, p := range a.list {
		a.rank[p] = i
	}

	return a
}

// ID returns the agent key.
func (a *Agent) ID() string { return a.id }

// Len returns the length of the preference list.
func (a *Agent) Len() int { return len(a.list) }

// List returns a copy of the preference list, most preferred first.
func (a *Agent) List() []string {
	out := make([]string, len(a.list))
	copy(out, a.list)

	return out
}

// RankOf returns the zero-based position of partner, or false if partner
// is not acceptable to a.
func (a *Agent) RankOf(partner string) (int, bool) {
	r, ok := a.rank[partner]

	return r, ok
}

// Accepts reports whether partner appears in a's list.
func (a *Agent) Accepts(partner string) bool {
	_, ok := a.rank[partner]

	return ok
}

// Prefers reports whether a strictly prefers x to y. An acceptable partner is
// preferred to an unacceptable one; two unacceptable partners tie.
// Complexity: O(1).
func (a *Agent) Prefers(x, y string) bool {
	rx, okx := a.rank[x]
	if !okx {
		return false
	}
	ry, oky := a.rank[y]
	if !oky {
		return true
	}

	return rx < ry
}

// Registry is an ordered, read-only collection keyed by id. Keys come back in
// declaration order.
type Registry[T any] struct {
	order []string
	items map[string]T
}

func newRegistry[T any](capacity int) *Registry[T] {
	return &Registry[T]{
		order: make([]string, 0, capacity),
		items: make(map[string]T, capacity),
	}
}

// add inserts v under id; it reports false when id is taken.
func (r *Registry[T]) add(id string, v T) bool {
	if _, dup := r.items[id]; dup {
		return false
	}
	r.order = append(r.order, id)
	r.items[id] = v

	return true
}

// Get returns the item stored under id.
func (r *Registry[T]) Get(id string) (T, bool) {
	v, ok := r.items[id]

	return v, ok
}

// Has reports whether id is present.
func (r *Registry[T]) Has(id string) bool {
	_, ok := r.items[id]

	return ok
}

// Keys returns a copy of the ids in declaration order.
func (r *Registry[T]) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Len returns the number of items.
func (r *Registry[T]) Len() int { return len(r.order) }
