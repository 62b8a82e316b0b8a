// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gates builds two-level AND-OR networks out of sum-of-products
// expressions, renders them as diagrams and turns them into parts for the
// hwsim simulator.
//
package gates

import (
	"strconv"

	"github.com/db47h/seqsynth/hwsim"
	"github.com/db47h/seqsynth/logic"
)

// Kind is the kind of a network node.
//
type Kind int

// Node kinds.
//
const (
	Input Kind = iota
	Const
	Not
	And
	Or
)

var kindNames = [...]string{"IN", "CONST", "NOT", "AND", "OR"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// A Node is a source or a gate in a Network.
//
type Node struct {
	ID     int
	Kind   Kind
	Var    int   // variable of an Input or Not node
	Value  bool  // value of a Const node
	Inputs []int // IDs of the nodes feeding a gate
}

// A Network is a two-level gate network computing a single output from the
// present-state variables. Nodes are stored in topological order and a
// node's ID is its index in Nodes.
//
type Network struct {
	Name   string
	Vars   int
	Nodes  []Node
	Output int
}

// Build returns the gate network realizing e. Inputs are created for the
// variables used in e, most significant first. Each complemented variable
// gets a single inverter shared by all terms. A term of one literal is wired
// straight to the OR gate, and the OR gate is omitted for a single term.
//
// Build is a pure function of its arguments.
//
func Build(name string, e logic.Expr) *Network {
	n := &Network{Name: name, Vars: e.Vars()}
	if v, ok := e.IsConst(); ok {
		n.Output = n.add(Node{Kind: Const, Value: v})
		return n
	}

	terms := e.Terms()
	var used, neg uint32
	for _, t := range terms {
		used |= t.Care
		neg |= t.Care &^ t.Value
	}
	in := make(map[int]int)
	inv := make(map[int]int)
	for i := e.Vars() - 1; i >= 0; i-- {
		if used&(1<<uint(i)) != 0 {
			in[i] = n.add(Node{Kind: Input, Var: i})
		}
	}
	for i := e.Vars() - 1; i >= 0; i-- {
		if neg&(1<<uint(i)) != 0 {
			inv[i] = n.add(Node{Kind: Not, Var: i, Inputs: []int{in[i]}})
		}
	}

	lit := func(l logic.Literal) int {
		if l.Neg {
			return inv[l.Var]
		}
		return in[l.Var]
	}
	outs := make([]int, 0, len(terms))
	for _, t := range terms {
		lits := t.Literals()
		if len(lits) == 1 {
			outs = append(outs, lit(lits[0]))
			continue
		}
		ins := make([]int, len(lits))
		for i, l := range lits {
			ins[i] = lit(l)
		}
		outs = append(outs, n.add(Node{Kind: And, Inputs: ins}))
	}
	if len(outs) == 1 {
		n.Output = outs[0]
		return n
	}
	n.Output = n.add(Node{Kind: Or, Inputs: outs})
	return n
}

func (n *Network) add(nd Node) int {
	nd.ID = len(n.Nodes)
	n.Nodes = append(n.Nodes, nd)
	return nd.ID
}

// Count returns the number of nodes of the given kind.
//
func (n *Network) Count(k Kind) int {
	c := 0
	for i := range n.Nodes {
		if n.Nodes[i].Kind == k {
			c++
		}
	}
	return c
}

// Eval returns the output of the network when variable i equals bit i of
// code.
//
func (n *Network) Eval(code uint32) bool {
	v := make([]bool, len(n.Nodes))
	for i, nd := range n.Nodes {
		switch nd.Kind {
		case Input:
			v[i] = code&(1<<uint(nd.Var)) != 0
		case Const:
			v[i] = nd.Value
		case Not:
			v[i] = !v[nd.Inputs[0]]
		case And:
			v[i] = true
			for _, in := range nd.Inputs {
				v[i] = v[i] && v[in]
			}
		case Or:
			for _, in := range nd.Inputs {
				v[i] = v[i] || v[in]
			}
		}
	}
	return v[n.Output]
}

// Label returns the display label of node id: the variable name for inputs,
// the gate kind otherwise.
//
func (n *Network) Label(id int) string {
	nd := &n.Nodes[id]
	switch nd.Kind {
	case Input:
		return "Q" + strconv.Itoa(nd.Var)
	case Const:
		if nd.Value {
			return "1"
		}
		return "0"
	}
	return nd.Kind.String()
}

// Spec returns a part specification simulating the network. Variable i is
// read from input pin in[i] and the result is written to pin out.
//
//	Inputs: in[Vars]
//	Outputs: out
//
func (n *Network) Spec() *hwsim.PartSpec {
	return &hwsim.PartSpec{
		Name:    n.Name,
		Inputs:  hwsim.Bus("in", n.Vars),
		Outputs: []string{"out"},
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			var cs []hwsim.Component
			for _, p := range n.parts() {
				cs = append(cs, s.Mount(p)...)
			}
			return cs
		}}
}

// wire returns the name of the wire carrying the output of node id inside
// the part returned by Spec.
func (n *Network) wire(id int) string {
	nd := &n.Nodes[id]
	switch nd.Kind {
	case Input:
		return hwsim.BusPinName("in", nd.Var)
	case Const:
		if nd.Value {
			return hwsim.True
		}
		return hwsim.False
	}
	if id == n.Output {
		return "out"
	}
	return "n" + strconv.Itoa(id)
}

func (n *Network) parts() hwsim.Parts {
	var ps hwsim.Parts
	for _, nd := range n.Nodes {
		switch nd.Kind {
		case Not:
			ps = append(ps, hwsim.Not(hwsim.W{"in": n.wire(nd.Inputs[0]), "out": n.wire(nd.ID)}))
		case And, Or:
			w := hwsim.W{"out": n.wire(nd.ID)}
			for i, in := range nd.Inputs {
				w[hwsim.BusPinName("in", i)] = n.wire(in)
			}
			if nd.Kind == And {
				ps = append(ps, hwsim.And(len(nd.Inputs))(w))
			} else {
				ps = append(ps, hwsim.Or(len(nd.Inputs))(w))
			}
		}
	}
	if k := n.Nodes[n.Output].Kind; k == Input || k == Const {
		ps = append(ps, hwsim.Buffer(hwsim.W{"in": n.wire(n.Output), "out": "out"}))
	}
	return ps
}
