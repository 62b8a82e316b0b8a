// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"strconv"

	"github.com/db47h/seqsynth/gates"
	"github.com/db47h/seqsynth/hwsim"
	"github.com/pkg/errors"
)

// simulation steps per clock cycle. Half a cycle must be enough for the
// deepest gate network: inverter, AND, OR.
const simSPC = 16

func stateWire(bit int) string { return "Q" + strconv.Itoa(bit) }

// Parts returns the simulator parts of the gate-level circuit of d: one
// flip-flop per state bit, holding the corresponding bit of the first state
// of the sequence after reset, and the gate networks of all equations.
// Flip-flop i drives wire Q<i>, the gate network of a signal drives the
// wire named after the signal.
//
func (d *Design) Parts() hwsim.Parts {
	w := d.Width()
	ff := d.FlipFlop
	ins := ff.Inputs()
	var ps hwsim.Parts
	for bit := w - 1; bit >= 0; bit-- {
		c := hwsim.W{"q": stateWire(bit)}
		for _, in := range ins {
			c[in] = Signal{Input: in, Bit: bit}.Name()
		}
		init := d.Sequence[0]&(1<<uint(bit)) != 0
		ps = append(ps, hwsim.FlipFlop(ff.Name(), ins, init, ff.Next)(c))
	}
	for _, eq := range d.Equations {
		c := hwsim.W{"out": eq.Signal.Name()}
		for v := 0; v < w; v++ {
			c[hwsim.BusPinName("in", v)] = stateWire(v)
		}
		ps = append(ps, gates.Build(eq.Signal.Name(), eq.Expr).Spec().NewPart(c))
	}
	return ps
}

// Simulate runs the gate-level circuit of d for the given number of clock
// cycles and returns the state observed during each cycle, the first one
// being the reset state. workers is the number of simulator goroutines; if
// less or equal to 0, GOMAXPROCS is used.
//
func (d *Design) Simulate(workers, cycles int) ([]int, error) {
	w := d.Width()
	var state uint64
	probe := hwsim.W{}
	for v := 0; v < w; v++ {
		probe[hwsim.BusPinName("in", v)] = stateWire(v)
	}
	ps := append(d.Parts(), hwsim.OutputN(w, func(v uint64) { state = v })(probe))
	c, err := hwsim.NewCircuit(workers, simSPC, ps...)
	if err != nil {
		return nil, errors.Wrap(err, "build circuit")
	}
	defer c.Dispose()

	states := make([]int, 0, cycles)
	for i := 0; i < cycles; i++ {
		c.TickTock()
		states = append(states, int(state))
	}
	return states, nil
}
