// SPDX-License-Identifier: MIT

package smp

import (
	"github.com/katalvlaran/algmatch/preference"
)

// BlockingPair is a man and a woman who are not matched together and who
// each prefer the other to their assignment in some matching.
type BlockingPair struct {
	Man   string
	Woman string
}

// FindBlockingPair returns the first blocking pair of m, scanning men in
// declaration order and, for each man, the women he strictly prefers to his
// partner (his whole list when unmatched). A woman blocks with him when she
// is unmatched or prefers him to her partner.
//
// Complexity: O(n·m).
func FindBlockingPair(inst *preference.SMInstance, m Matching) (BlockingPair, bool) {
	if inst == nil {
		return BlockingPair{}, false
	}
	for _, man := range inst.Men().Keys() {
		a, _ := inst.Agent(man)
		partner := m[man]
		for _, w := range a.List() {
			if w == partner {
				break
			}
			wa, _ := inst.Agent(w)
			if cur := m[w]; cur == Unmatched || wa.Prefers(man, cur) {
				return BlockingPair{Man: man, Woman: w}, true
			}
		}
	}

	return BlockingPair{}, false
}
