// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/seqsynth/hwsim"
)

// maxExhaustive is the largest number of inputs for which all input
// combinations are tried.
const maxExhaustive = 12

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

// CompareFunc simulates a combinational part and compares its outputs with
// those of the reference function f given the same inputs. f receives the
// input values in the order of the part's Inputs and must return the
// expected output values in the order of its Outputs.
//
// All input combinations are tried for parts with up to 12 inputs. Larger
// parts are fed random inputs.
//
func CompareFunc(t *testing.T, tpc uint, part hwsim.NewPartFn, f func(in []bool) []bool) {
	t.Helper()

	ps := part(nil)
	w := make(hwsim.W, len(ps.Inputs)+len(ps.Outputs))
	for _, n := range ps.Inputs {
		w[n] = n
	}
	for _, n := range ps.Outputs {
		w[n] = n
	}

	inputs := make([]bool, len(ps.Inputs))
	outputs := make([]bool, len(ps.Outputs))

	parts := hwsim.Parts{part(w)}
	for i, n := range ps.Inputs {
		k := i
		parts = append(parts, hwsim.Input(func() bool { return inputs[k] })(hwsim.W{"out": n}))
	}
	for i, n := range ps.Outputs {
		k := i
		parts = append(parts, hwsim.Output(func(b bool) { outputs[k] = b })(hwsim.W{"in": n}))
	}

	c, err := hwsim.NewCircuit(0, tpc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", n, inputs[i])
		}
		return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
	}

	check := func() {
		c.TickTock()
		exp := f(inputs)
		for o, out := range outputs {
			if exp[o] != out {
				t.Fatal(errString(ps.Outputs[o], exp[o], out))
			}
		}
	}

	start := time.Now()

	if len(inputs) <= maxExhaustive {
		for i := 0; i < 1<<uint(len(inputs)); i++ {
			for in := range inputs {
				inputs[in] = i&(1<<uint(in)) != 0
			}
			check()
		}
	} else {
		rand.Seed(time.Now().UnixNano())
		for i := 0; i < 1<<maxExhaustive; i++ {
			for in := range inputs {
				inputs[in] = randBool()
			}
			check()
		}
	}

	elapsed := time.Since(start)
	ticks := c.Steps() / c.SPC()
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, ticks, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}
