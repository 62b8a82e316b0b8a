// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"fmt"

	"github.com/db47h/seqsynth/logic"
)

// A ParseError reports malformed sequence text. Pos is the 0-based byte
// offset of the offending token in Input.
//
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("in %q at pos %d: %s", e.Input, e.Pos+1, e.Msg)
}

// An InvalidSequenceError reports a sequence that cannot be synthesized.
// Index is the position of the offending state in the sequence, or -1 if the
// error is about the sequence as a whole.
//
type InvalidSequenceError struct {
	Index int
	Value int
	Msg   string
}

func (e *InvalidSequenceError) Error() string {
	if e.Index < 0 {
		return "invalid sequence: " + e.Msg
	}
	return fmt.Sprintf("invalid sequence: state %d at index %d: %s", e.Value, e.Index, e.Msg)
}

// A ConflictingTransitionError reports a state that is followed by two
// different states in a sequence. Pos holds the sequence positions of both
// occurrences of State and Next their respective successors.
//
type ConflictingTransitionError struct {
	State int
	Next  [2]int
	Pos   [2]int
}

func (e *ConflictingTransitionError) Error() string {
	return fmt.Sprintf("conflicting transitions: state %d goes to %d at index %d and to %d at index %d",
		e.State, e.Next[0], e.Pos[0], e.Next[1], e.Pos[1])
}

// An InvalidExcitationError reports a transition that a flip-flop type
// cannot realize, or that would require a forbidden input combination.
//
type InvalidExcitationError struct {
	FlipFlop string
	Bit      int
	Q, Next  bool
}

func (e *InvalidExcitationError) Error() string {
	return fmt.Sprintf("%s flip-flop %d: no valid excitation for transition %s -> %s",
		e.FlipFlop, e.Bit, bit(e.Q), bit(e.Next))
}

// A MinimizationError reports a failure of the Boolean minimizer.
//
type MinimizationError = logic.MinimizationError

// A VerificationError reports a synthesized design that does not perform
// the transitions it was derived from. It denotes a bug in the synthesizer.
//
type VerificationError struct {
	Stage string // "formal", "machine" or "simulation"
	Msg   string
}

func (e *VerificationError) Error() string {
	return "verification failed (" + e.Stage + "): " + e.Msg
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
