// SPDX-License-Identifier: MIT

// Package algmatch is a small toolkit for two-sided matching under
// preferences: Stable Marriage reduction and Student–Project Allocation
// with stability certification.
//
// What is inside?
//
//	preference/ — loading and validating instances from text, YAML or TOML
//	              files or in-memory dictionaries; rank maps and derived lists
//	smp/        — extended Gale–Shapley in both orientations, the
//	              man-optimal M0, the woman-optimal Mz, and the GS-lists
//	spa/        — SPA-student and SPA-lecturer proposal strategies, the
//	              blocking-pair search and the single-use Session
//	cmd/algmatch — command-line front end for both problems
//
// Quick start:
//
//	sm, err := smp.New(preference.FromFile[preference.SMDictionary]("sm.txt"))
//	if err != nil { … }
//	fmt.Println(sm.GSLists())
//
//	sess, err := spa.New(preference.FromFile[preference.SPADictionary]("spa.yaml"), spa.StudentOriented{})
//	if err != nil { … }
//	rep, err := sess.Run()
//	fmt.Println(rep) // stable matching: {s1: p1, s2: ""}
//
// All solvers are deterministic: agents are visited in declaration order and
// ties are broken by list position. Instances are read-only once built;
// every run prunes its own copy of the lists.
//
// See examples/ for runnable scenarios.
package algmatch
