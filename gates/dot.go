// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

import (
	"bytes"
	"fmt"
	"io"
)

// DOT renders networks as Graphviz dot graphs.
//
type DOT struct{}

// Ext implements Renderer.
//
func (DOT) Ext() string { return "dot" }

// Render implements Renderer.
//
func (DOT) Render(w io.Writer, n *Network) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "digraph %q\n{\n", n.Name)
	fmt.Fprintf(&b, "  rankdir=LR;\n")
	fmt.Fprintf(&b, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(&b, "  {\n    node [shape=plaintext];\n")
	for _, nd := range n.Nodes {
		if column(nd.Kind) == 0 {
			fmt.Fprintf(&b, "    n%d\t[label=%q];\n", nd.ID, n.Label(nd.ID))
		}
	}
	fmt.Fprintf(&b, "    out\t[label=%q];\n", n.Name)
	fmt.Fprintf(&b, "  }\n")

	fmt.Fprintf(&b, "  {\n    node [shape=box];\n")
	for _, nd := range n.Nodes {
		if column(nd.Kind) > 0 {
			fmt.Fprintf(&b, "    n%d\t[label=%q];\n", nd.ID, n.Label(nd.ID))
		}
	}
	fmt.Fprintf(&b, "  }\n")

	for c := 0; c < 4; c++ {
		var ids []int
		for _, nd := range n.Nodes {
			if column(nd.Kind) == c {
				ids = append(ids, nd.ID)
			}
		}
		if len(ids) < 2 {
			continue
		}
		fmt.Fprintf(&b, "  {  rank=same")
		for _, id := range ids {
			fmt.Fprintf(&b, "; n%d", id)
		}
		fmt.Fprintf(&b, ";}\n")
	}

	for _, nd := range n.Nodes {
		for _, in := range nd.Inputs {
			fmt.Fprintf(&b, "  n%d -> n%d;\n", in, nd.ID)
		}
	}
	fmt.Fprintf(&b, "  n%d -> out;\n", n.Output)
	fmt.Fprintf(&b, "}\n")

	_, err := w.Write(b.Bytes())
	return err
}
