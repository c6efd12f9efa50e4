// SPDX-License-Identifier: MIT

// Package preference loads, validates and freezes the preference data that
// every matching algorithm in algmatch consumes.
//
// Overview:
//
//   - An Agent owns an ordered preference list (most preferred first) and a
//     rank lookup giving O(1) answers to "does a prefer x to y?".
//   - A Registry keeps agents of one role in declaration order; iteration
//     order everywhere in algmatch is declaration order.
//   - SMInstance holds men and women for the Stable Marriage Problem.
//   - SPAInstance holds students, projects (upper quota c_j, owning lecturer,
//     derived ranking L_k^j) and lecturers (upper quota d_k) for Student
//     Project Allocation.
//
// Instances are immutable after Build*/Load*: accessors hand out copies of
// lists, so proposal engines prune private working copies and can never
// alias what an agent wants with what an agent currently has.
//
// Sources:
//
// A Source selects exactly one of a file name or an in-memory dictionary.
// Supplying both (ErrAmbiguousSource) or neither (ErrNoSource) fails before
// any parsing happens; a file name that does not name a regular file fails
// with ErrFileNotFound.
//
// File formats are chosen by extension:
//
//	.yaml, .yml   YAML dictionary (gopkg.in/yaml.v3)
//	.toml         TOML dictionary (github.com/pelletier/go-toml/v2)
//	anything else plain-text record format
//
// The plain-text SM format is a header "n m" followed by n man records
// "i w1 w2 ..." and m woman records "j m1 m2 ...". Keys become "m<i>" and
// "w<j>". The SPA format is a header "S P L" followed by S student records
// "i p1 p2 ...", P project records "j c_j k" and L lecturer records
// "k d_k s1 s2 ...". Keys become "s<i>", "p<j>" and "l<k>". Blank lines and
// lines starting with '#' are ignored.
//
// Errors (sentinel):
//
//   - ErrNoSource, ErrAmbiguousSource, ErrFileNotFound: caller contract.
//   - ErrMalformed: the plain-text record format could not be parsed.
//   - ErrInvalidInstance: the dictionary failed struct or semantic validation.
package preference
