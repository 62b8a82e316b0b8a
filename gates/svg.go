// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gates

import (
	"bytes"
	"fmt"
	"html"
	"io"
)

const (
	colWidth   = 100
	rowHeight  = 50
	gateWidth  = 40
	gateHeight = 30
	margin     = 20
	labelWidth = 60
)

// SVG renders networks as SVG images: sources on the left, then inverters,
// AND gates, the OR gate and the output label.
//
type SVG struct{}

// Ext implements Renderer.
//
func (SVG) Ext() string { return "svg" }

type point struct{ x, y int }

// layout returns the position of the center of the left edge of every node.
func layout(n *Network) (pos []point, rows int) {
	var cnt [4]int
	pos = make([]point, len(n.Nodes))
	for i, nd := range n.Nodes {
		c := column(nd.Kind)
		pos[i] = point{margin + c*colWidth, margin + gateHeight/2 + cnt[c]*rowHeight}
		cnt[c]++
		if cnt[c] > rows {
			rows = cnt[c]
		}
	}
	// center columns vertically
	for i, nd := range n.Nodes {
		c := column(nd.Kind)
		pos[i].y += (rows - cnt[c]) * rowHeight / 2
	}
	return pos, rows
}

// outPin returns the position of the output pin of node id.
func outPin(n *Network, pos []point, id int) point {
	p := pos[id]
	if column(n.Nodes[id].Kind) == 0 {
		return point{p.x + labelWidth/2, p.y}
	}
	return point{p.x + gateWidth, p.y}
}

// inPin returns the position of the i-th of k input pins of a gate at p.
func inPin(p point, i, k int) point {
	return point{p.x, p.y - gateHeight/2 + (i+1)*gateHeight/(k+1)}
}

// Render implements Renderer.
//
func (SVG) Render(w io.Writer, n *Network) error {
	pos, rows := layout(n)
	width := 2*margin + 4*colWidth + labelWidth
	height := 2*margin + rows*rowHeight

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="Helvetica" font-size="12">
  <title>%s</title>
  <g fill="none" stroke="#000" stroke-width="1">
`, width, height, html.EscapeString(n.Name))

	for _, nd := range n.Nodes {
		p := pos[nd.ID]
		switch nd.Kind {
		case Input, Const:
			fmt.Fprintf(&b, "    <text x=\"%d\" y=\"%d\" fill=\"#000\" stroke=\"none\">%s</text>\n", p.x, p.y+4, n.Label(nd.ID))
		case Not:
			fmt.Fprintf(&b, "    <path d=\"M %d %d L %d %d L %d %d z\"/>\n", p.x, p.y-gateHeight/2, p.x+gateWidth-8, p.y, p.x, p.y+gateHeight/2)
			fmt.Fprintf(&b, "    <circle cx=\"%d\" cy=\"%d\" r=\"4\"/>\n", p.x+gateWidth-4, p.y)
		case And:
			fmt.Fprintf(&b, "    <path d=\"M %d %d h %d a %d %d 0 0 1 0 %d h %d z\"/>\n",
				p.x, p.y-gateHeight/2, gateWidth-gateHeight/2, gateHeight/2, gateHeight/2, gateHeight, -(gateWidth - gateHeight/2))
		case Or:
			fmt.Fprintf(&b, "    <path d=\"M %d %d Q %d %d %d %d Q %d %d %d %d Q %d %d %d %d z\"/>\n",
				p.x, p.y-gateHeight/2,
				p.x+gateWidth*3/4, p.y-gateHeight/2, p.x+gateWidth, p.y,
				p.x+gateWidth*3/4, p.y+gateHeight/2, p.x, p.y+gateHeight/2,
				p.x+gateWidth/4, p.y, p.x, p.y-gateHeight/2)
		}
		for i, in := range nd.Inputs {
			from, to := outPin(n, pos, in), inPin(p, i, len(nd.Inputs))
			mid := (from.x + to.x) / 2
			fmt.Fprintf(&b, "    <polyline points=\"%d,%d %d,%d %d,%d %d,%d\"/>\n", from.x, from.y, mid, from.y, mid, to.y, to.x, to.y)
		}
	}

	// output
	from := outPin(n, pos, n.Output)
	x := margin + 4*colWidth
	fmt.Fprintf(&b, "    <polyline points=\"%d,%d %d,%d\"/>\n", from.x, from.y, x, from.y)
	fmt.Fprintf(&b, "    <text x=\"%d\" y=\"%d\" fill=\"#000\" stroke=\"none\">%s</text>\n", x+4, from.y+4, html.EscapeString(n.Name))
	fmt.Fprintln(&b, "  </g>\n</svg>")

	_, err := w.Write(b.Bytes())
	return err
}
