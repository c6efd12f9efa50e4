// SPDX-License-Identifier: MIT

// Command algmatch solves matching instances from preference files.
//
//	algmatch smp --file sm.txt
//	algmatch spa --file spa.yaml --strategy lecturer --format text
//
// smp prints the man- and woman-optimal matchings and the GS-lists of every
// agent. spa allocates students, checks the allocation for a blocking pair
// and prints the verdict. Tables are drawn when stdout is a terminal;
// --format forces one mode.
package main
