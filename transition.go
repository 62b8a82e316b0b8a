// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

// A Transition is a pair of consecutive states of a sequence.
//
type Transition struct {
	Present int
	Next    int
}

// Transitions returns the transitions of s in sequence order, one per
// position, the last one going back to the first state.
//
// A state that appears more than once in s must always be followed by the
// same state, otherwise a *ConflictingTransitionError is returned.
//
func Transitions(s Sequence) ([]Transition, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	trs := make([]Transition, len(s))
	seen := make(map[int]int, len(s)) // state -> position of first occurrence
	for i, v := range s {
		tr := Transition{Present: v, Next: s[(i+1)%len(s)]}
		if p, ok := seen[v]; ok {
			if n := trs[p].Next; n != tr.Next {
				return nil, &ConflictingTransitionError{State: v, Next: [2]int{n, tr.Next}, Pos: [2]int{p, i}}
			}
		} else {
			seen[v] = i
		}
		trs[i] = tr
	}
	return trs, nil
}
