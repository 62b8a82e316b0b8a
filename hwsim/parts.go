// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
)

// common pin names
const (
	pIn  = "in"
	pOut = "out"
	pQ   = "q"
)

var notGate = &PartSpec{Name: "NOT", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *Socket) []Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []Component{
			func(c *Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w W) Part { return notGate.NewPart(w) }

var buffer = &PartSpec{Name: "BUF", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *Socket) []Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []Component{
			func(c *Circuit) { c.Set(out, c.Get(in)) },
		}
	},
}

// Buffer returns a buffer. It is mostly useful to give another name to a
// wire.
//
//	Inputs: in
//	Outputs: out
//	Function: out = in
//
func Buffer(w W) Part { return buffer.NewPart(w) }

func gateN(name string, n int, and bool) *PartSpec {
	return &PartSpec{
		Name:    name + strconv.Itoa(n),
		Inputs:  Bus(pIn, n),
		Outputs: []string{pOut},
		Mount: func(s *Socket) []Component {
			ins, out := s.Bus(pIn, n), s.Pin(pOut)
			return []Component{func(c *Circuit) {
				// and: out is false as soon as one input is false.
				// or: out is true as soon as one input is true.
				for _, in := range ins {
					if c.Get(in) != and {
						c.Set(out, !and)
						return
					}
				}
				c.Set(out, and)
			}}
		}}
}

// And returns a n inputs AND gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] && in[1] && ... && in[n-1]
//
func And(n int) NewPartFn { return gateN("AND", n, true).NewPart }

// Or returns a n inputs OR gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] || in[1] || ... || in[n-1]
//
func Or(n int) NewPartFn { return gateN("OR", n, false).NewPart }

// Input returns a 1 bit input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) NewPartFn {
	return (&PartSpec{
		Name:    "IN",
		Outputs: []string{pOut},
		Mount: func(s *Socket) []Component {
			out := s.Pin(pOut)
			return []Component{func(c *Circuit) { c.Set(out, f()) }}
		}}).NewPart
}

// Output returns a 1 bit output. f is called with the state of the input pin
// on every simulation step.
//
//	Inputs: in
//
func Output(f func(value bool)) NewPartFn {
	return (&PartSpec{
		Name:   "OUT",
		Inputs: []string{pIn},
		Mount: func(s *Socket) []Component {
			in := s.Pin(pIn)
			return []Component{func(c *Circuit) { f(c.Get(in)) }}
		}}).NewPart
}

// OutputN returns an output bus of the given bits size. in[0] is the least
// significant bit of the value passed to f.
//
//	Inputs: in[bits]
//
func OutputN(bits int, f func(uint64)) NewPartFn {
	return (&PartSpec{
		Name:   "OUT" + strconv.Itoa(bits),
		Inputs: Bus(pIn, bits),
		Mount: func(s *Socket) []Component {
			ins := s.Bus(pIn, bits)
			return []Component{func(c *Circuit) {
				var v uint64
				for i, in := range ins {
					if c.Get(in) {
						v |= 1 << uint(i)
					}
				}
				f(v)
			}}
		}}).NewPart
}

// FlipFlop returns a clocked flip-flop with the given control inputs.
// On every raising edge of the clock but the first, the state of the
// flip-flop is updated to next(q, in) where q is its current state and in
// holds the states of the input pins, in order. The initial state is init.
//
//	Inputs: inputs...
//	Outputs: q
//	Function: q(t) = next(q(t-1), in(t-1)) // where t is the current clock cycle.
//
func FlipFlop(name string, inputs []string, init bool, next func(q bool, in []bool) bool) NewPartFn {
	return (&PartSpec{
		Name:    name + "FF",
		Inputs:  inputs,
		Outputs: []string{pQ},
		Mount: func(s *Socket) []Component {
			ins := make([]int, len(inputs))
			for i, n := range inputs {
				ins[i] = s.Pin(n)
			}
			q := s.Pin(pQ)
			state := init
			vals := make([]bool, len(ins))
			return []Component{func(c *Circuit) {
				// raising edge?
				if c.AtTick() && c.Steps() > 0 {
					for i, in := range ins {
						vals[i] = c.Get(in)
					}
					state = next(state, vals)
				}
				c.Set(q, state)
			}}
		}}).NewPart
}

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: q
//	Function: q(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(w W) Part {
	return FlipFlop("D", []string{pIn}, false, func(_ bool, in []bool) bool { return in[0] })(w)
}
