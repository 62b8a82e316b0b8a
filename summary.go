// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteSummary writes a human readable report of d to w: sequence, state
// encoding, transitions with their excitation values and equations.
//
func (d *Design) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Sequence:\t%s\n", d.Sequence)
	fmt.Fprintf(tw, "States:\t%d\n", len(d.Sequence))
	fmt.Fprintf(tw, "Flip-flops:\t%d x %s\n", d.Width(), d.FlipFlop.Name())
	fmt.Fprintln(tw)

	// header
	fmt.Fprint(tw, "STATE\tCODE\tNEXT")
	for _, eq := range d.Equations {
		fmt.Fprint(tw, "\t", eq.Signal.Name())
	}
	fmt.Fprintln(tw)
	for i, tr := range d.Transitions {
		fmt.Fprintf(tw, "%d\t%s\t%s", tr.Present, d.Encoding.Code(tr.Present), d.Encoding.Code(tr.Next))
		// entries of transition i, most significant bit first, match the
		// order of equations.
		for _, e := range d.Excitation[i*d.Width() : (i+1)*d.Width()] {
			for _, v := range e.Values {
				fmt.Fprint(tw, "\t", v)
			}
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw)
	for _, eq := range d.Equations {
		fmt.Fprintf(tw, "%s\t= %s\n", eq.Signal.Name(), eq.Expr)
	}
	return tw.Flush()
}

// WriteCharacteristic writes the characteristic table of ff to w.
//
func WriteCharacteristic(w io.Writer, ff FlipFlop) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "Q\t%s\tQ(next)\n", strings.Join(ff.Inputs(), "\t"))
	for _, r := range ff.Characteristic() {
		fmt.Fprint(tw, bit(r.Q))
		for _, in := range r.In {
			fmt.Fprint(tw, "\t", bit(in))
		}
		if r.Valid {
			fmt.Fprintf(tw, "\t%s\n", bit(r.Next))
		} else {
			fmt.Fprint(tw, "\tinvalid\n")
		}
	}
	return tw.Flush()
}
