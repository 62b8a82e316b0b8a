// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"strings"

	"github.com/db47h/seqsynth/logic"
	"github.com/pkg/errors"
)

// A FlipFlop is a clocked flip-flop type. The set of flip-flop types is
// closed: D, T, JK and SR.
//
type FlipFlop interface {
	// Name returns the type name: "D", "T", "JK" or "SR".
	Name() string
	// Inputs returns the names of the control inputs.
	Inputs() []string
	// Excite returns the values of the control inputs that take the
	// flip-flop from state q to state next. ok is false if no valid
	// combination exists.
	Excite(q, next bool) (in []logic.Value, ok bool)
	// Next returns the state following q given the control inputs in.
	Next(q bool, in []bool) bool
	// Characteristic returns the characteristic table of the flip-flop.
	Characteristic() []CharRow

	// forbid returns the forbidden input combination, nil if there is none.
	forbid() []bool
	// update returns the Verilog expression of the next state of register
	// bit q driven by the signals in.
	update(q string, in []string) string
}

// A CharRow is a row of the characteristic table of a flip-flop. Valid is
// false for forbidden input combinations.
//
type CharRow struct {
	Q     bool
	In    []bool
	Next  bool
	Valid bool
}

type flipFlop struct {
	name   string
	inputs []string
	excite [2][2][]logic.Value // indexed by [q][next]
	next   func(q bool, in []bool) bool
	// forbidden input combination, if any.
	forbidden []bool
	upd       func(q string, in []string) string
}

const (
	v0 = logic.Zero
	v1 = logic.One
	vx = logic.DontCare
)

// Flip-flop types.
//
var (
	D FlipFlop = &flipFlop{
		name:   "D",
		inputs: []string{"D"},
		excite: [2][2][]logic.Value{{{v0}, {v1}}, {{v0}, {v1}}},
		next:   func(_ bool, in []bool) bool { return in[0] },
		upd:    func(_ string, in []string) string { return in[0] },
	}
	T FlipFlop = &flipFlop{
		name:   "T",
		inputs: []string{"T"},
		excite: [2][2][]logic.Value{{{v0}, {v1}}, {{v1}, {v0}}},
		next:   func(q bool, in []bool) bool { return q != in[0] },
		upd:    func(q string, in []string) string { return q + " ^ " + in[0] },
	}
	JK FlipFlop = &flipFlop{
		name:   "JK",
		inputs: []string{"J", "K"},
		excite: [2][2][]logic.Value{{{v0, vx}, {v1, vx}}, {{vx, v1}, {vx, v0}}},
		next: func(q bool, in []bool) bool {
			j, k := in[0], in[1]
			return j && !q || !k && q
		},
		upd: func(q string, in []string) string {
			return "(" + in[0] + " & ~" + q + ") | (~" + in[1] + " & " + q + ")"
		},
	}
	SR FlipFlop = &flipFlop{
		name:      "SR",
		inputs:    []string{"S", "R"},
		excite:    [2][2][]logic.Value{{{v0, vx}, {v1, v0}}, {{v0, v1}, {vx, v0}}},
		forbidden: []bool{true, true},
		next: func(q bool, in []bool) bool {
			s, r := in[0], in[1]
			return s || !r && q
		},
		upd: func(q string, in []string) string {
			return in[0] + " | (~" + in[1] + " & " + q + ")"
		},
	}
)

// FlipFlops returns all flip-flop types.
//
func FlipFlops() []FlipFlop {
	return []FlipFlop{D, T, JK, SR}
}

// ParseFlipFlop returns the flip-flop type with the given name, ignoring
// case.
//
func ParseFlipFlop(name string) (FlipFlop, error) {
	for _, ff := range FlipFlops() {
		if strings.EqualFold(ff.Name(), name) {
			return ff, nil
		}
	}
	return nil, errors.Errorf("unknown flip-flop type %q", name)
}

func (f *flipFlop) Name() string     { return f.name }
func (f *flipFlop) String() string   { return f.name }
func (f *flipFlop) Inputs() []string { return append([]string(nil), f.inputs...) }

func (f *flipFlop) Next(q bool, in []bool) bool { return f.next(q, in) }

func (f *flipFlop) update(q string, in []string) string { return f.upd(q, in) }

func (f *flipFlop) forbid() []bool { return f.forbidden }

func (f *flipFlop) valid(in []bool) bool {
	if f.forbidden == nil {
		return true
	}
	for i, v := range in {
		if v != f.forbidden[i] {
			return true
		}
	}
	return false
}

// Excite also checks that every input combination matching the entry,
// don't-cares resolved either way, is valid and performs the transition.
func (f *flipFlop) Excite(q, next bool) ([]logic.Value, bool) {
	e := f.excite[b2i(q)][b2i(next)]
	if len(e) != len(f.inputs) {
		return nil, false
	}
	in := make([]bool, len(e))
	for r := 0; r < 1<<uint(len(e)); r++ {
		match := true
		for i, v := range e {
			in[i] = r&(1<<uint(i)) != 0
			if v != logic.DontCare && in[i] != (v == logic.One) {
				match = false
			}
		}
		if !match {
			continue
		}
		if !f.valid(in) || f.next(q, in) != next {
			return nil, false
		}
	}
	return append([]logic.Value(nil), e...), true
}

func (f *flipFlop) Characteristic() []CharRow {
	n := len(f.inputs)
	rows := make([]CharRow, 0, 2<<uint(n))
	for _, q := range []bool{false, true} {
		for r := 0; r < 1<<uint(n); r++ {
			in := make([]bool, n)
			for i := range in {
				// first input is the most significant
				in[i] = r&(1<<uint(n-1-i)) != 0
			}
			row := CharRow{Q: q, In: in, Valid: f.valid(in)}
			if row.Valid {
				row.Next = f.next(q, in)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
