// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"strconv"

	"github.com/db47h/seqsynth/logic"
)

// A Signal is a control input of the flip-flop holding state bit Bit.
//
type Signal struct {
	Input string // input name of the flip-flop type: "D", "J", ...
	Bit   int
}

// Name returns the signal name, like J1 for input J of flip-flop 1.
//
func (s Signal) Name() string { return s.Input + strconv.Itoa(s.Bit) }

func (s Signal) String() string { return s.Name() }

// Signals returns the control signals of width flip-flops of type ff: bits
// from the most significant down, inputs of a flip-flop in declaration
// order.
//
func Signals(ff FlipFlop, width int) []Signal {
	ins := ff.Inputs()
	ss := make([]Signal, 0, width*len(ins))
	for b := width - 1; b >= 0; b-- {
		for _, in := range ins {
			ss = append(ss, Signal{Input: in, Bit: b})
		}
	}
	return ss
}

// An ExcitationEntry holds the control values driving flip-flop Bit
// through a transition, Q and Next being the present and next values of
// that bit.
//
type ExcitationEntry struct {
	Transition Transition
	Bit        int
	Q, Next    bool
	Values     []logic.Value
}

// An ExcitationTable is the truth table of a control signal over the
// present-state bits. Row r gives the value of the signal when the machine
// is in state r. Rows of states that are never reached are don't-cares.
//
type ExcitationTable struct {
	Signal Signal
	Rows   logic.Table
}

// Excitation derives the control values of width flip-flops of type ff
// performing the transitions trs. It returns one entry per transition and
// bit, in transition order and from the most significant bit down, and one
// table per signal, in the order of Signals.
//
func Excitation(trs []Transition, width int, ff FlipFlop) ([]ExcitationEntry, []ExcitationTable, error) {
	ss := Signals(ff, width)
	n := len(ff.Inputs())
	tables := make([]ExcitationTable, len(ss))
	for i, s := range ss {
		tables[i] = ExcitationTable{Signal: s, Rows: logic.NewTable(width)}
	}
	entries := make([]ExcitationEntry, 0, len(trs)*width)
	for _, tr := range trs {
		for b := width - 1; b >= 0; b-- {
			q, next := tr.Present&(1<<uint(b)) != 0, tr.Next&(1<<uint(b)) != 0
			vs, ok := ff.Excite(q, next)
			if !ok {
				return nil, nil, &InvalidExcitationError{FlipFlop: ff.Name(), Bit: b, Q: q, Next: next}
			}
			entries = append(entries, ExcitationEntry{Transition: tr, Bit: b, Q: q, Next: next, Values: vs})
			base := (width - 1 - b) * n
			for j, v := range vs {
				tables[base+j].Rows[tr.Present] = v
			}
		}
	}
	return entries, tables, nil
}
