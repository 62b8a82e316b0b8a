// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "NOT",
//		Inputs: []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func (s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func (c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Bus pins are named with BusPinName.
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string

	// Mount function (see MountFn).
	Mount MountFn
}

// W is a set of wires, connecting a part's I/O pins (the map key) to wires in
// its container (the map value).
//
// Unconnected input pins are connected to False. Unconnected output pins are
// connected to a new wire that nothing else can read.
//
type W map[string]string

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
//
func (p *PartSpec) NewPart(w W) Part {
	return Part{p, w}
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part.
//
type NewPartFn func(w W) Part

// A Part wraps a part specification together with its connections within a
// circuit or a host part.
//
type Part struct {
	*PartSpec
	W W
}

// Parts is a convenience wrapper for []Part.
//
type Parts []Part

func (p *PartSpec) isInput(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) isOutput(name string) bool {
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}

// check validates the connections of p. drivers maps each wire to the pin
// driving it, so that a wire cannot be driven by two outputs.
//
func (p Part) check(drivers map[string]string) error {
	for k, v := range p.W {
		if !p.isInput(k) && !p.isOutput(k) {
			return errors.New("invalid pin name " + k + " for part " + p.Name)
		}
		if v == "" {
			return errors.New("invalid pin mapping " + k + ":" + v)
		}
	}
	for _, o := range p.Outputs {
		v, ok := p.W[o]
		if !ok {
			continue
		}
		switch v {
		case Clk:
			return errors.New(p.Name + "." + o + ":" + v + ": output pin connected to clock signal")
		case True, False:
			return errors.New(p.Name + "." + o + ":" + v + ": output pin connected to constant " + v + " input")
		}
		if d, ok := drivers[v]; ok {
			return errors.New(p.Name + "." + o + ":" + v + ": wire already driven by " + d)
		}
		drivers[v] = p.Name + "." + o
	}
	return nil
}

// BusPinName returns the pin name for the n-th bit of the given bus name.
//
func BusPinName(bus string, bit int) string {
	return bus + "[" + strconv.Itoa(bit) + "]"
}

// Bus returns the pin names of a bits wide bus.
//
func Bus(bus string, bits int) []string {
	names := make([]string, bits)
	for i := range names {
		names[i] = BusPinName(bus, i)
	}
	return names
}
