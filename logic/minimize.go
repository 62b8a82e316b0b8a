// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// exactVars is the largest number of variables for which Minimize searches
// for an exact minimum cover. Above it, the cover is selected greedily.
const exactVars = 6

// A MinimizationError reports a malformed table or a broken invariant of the
// minimizer.
//
type MinimizationError struct {
	Vars int
	Msg  string
}

func (e *MinimizationError) Error() string {
	return "minimize " + strconv.Itoa(e.Vars) + " variables: " + e.Msg
}

// Minimize returns a minimal sum-of-products expression over vars variables
// that is true on every One row of t and false on every Zero row. DontCare
// rows are used to enlarge terms.
//
// Prime implicants are generated by iterated merging of adjacent cubes
// (Quine-McCluskey). Essential primes are selected first, the remaining One
// rows are covered by an exact search for the cheapest cover, or greedily
// above 6 variables. Covers are ranked by number of terms, then number of
// literals, then term by term in sorted term order (variables from the most significant down, complemented literal
// first, absent variable last), so that equal inputs always yield equal
// outputs.
//
func Minimize(vars int, t Table) (Expr, error) {
	if vars < 0 || vars > MaxVars {
		return Expr{}, &MinimizationError{vars, "unsupported number of variables"}
	}
	if len(t) != 1<<uint(vars) {
		return Expr{}, &MinimizationError{vars, "table has " + strconv.Itoa(len(t)) + " rows"}
	}
	var ones, dcs []uint32
	for code, v := range t {
		switch v {
		case One:
			ones = append(ones, uint32(code))
		case DontCare:
			dcs = append(dcs, uint32(code))
		case Zero:
		default:
			return Expr{}, &MinimizationError{vars, "invalid value " + v.String() + " at row " + strconv.Itoa(code)}
		}
	}
	if len(ones) == 0 {
		return Const(vars, false), nil
	}

	primes := primeImplicants(vars, ones, dcs)
	e := NewExpr(vars, selectCover(vars, primes, ones)...)

	for code, v := range t {
		if (v == One && !e.Eval(uint32(code))) || (v == Zero && e.Eval(uint32(code))) {
			return Expr{}, &MinimizationError{vars, "cover " + e.String() + " disagrees with row " + strconv.Itoa(code)}
		}
	}
	return e, nil
}

// primeImplicants returns the prime implicants of the function whose on-set
// is ones and don't-care set is dcs, in term order.
func primeImplicants(vars int, ones, dcs []uint32) []Term {
	// the map value is set once a term has been merged into a larger one.
	cur := make(map[Term]bool, len(ones)+len(dcs))
	for _, m := range ones {
		cur[Minterm(vars, m)] = false
	}
	for _, m := range dcs {
		cur[Minterm(vars, m)] = false
	}

	var primes []Term
	for len(cur) > 0 {
		next := make(map[Term]bool)
		terms := maps.Keys(cur)
		slices.SortFunc(terms, termLess)
		for _, a := range terms {
			for i := 0; i < vars; i++ {
				b := uint32(1) << uint(i)
				if a.Care&b == 0 || a.Value&b != 0 {
					continue
				}
				// a has the complemented literal; look for its twin.
				twin := Term{Care: a.Care, Value: a.Value | b}
				if _, ok := cur[twin]; ok {
					next[Term{Care: a.Care &^ b, Value: a.Value}] = false
					cur[a], cur[twin] = true, true
				}
			}
		}
		for _, a := range terms {
			if !cur[a] {
				primes = append(primes, a)
			}
		}
		cur = next
	}
	slices.SortFunc(primes, termLess)
	return primes
}

type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << uint(i%64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

func (b bitset) union(o bitset) bitset {
	r := make(bitset, len(b))
	for i := range b {
		r[i] = b[i] | o[i]
	}
	return r
}

func (b bitset) count() int {
	n := 0
	for i := range b {
		for w := b[i]; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

// cover holds the state of a cover selection over the on-set rows.
type cover struct {
	primes []Term
	rows   int     // number of on-set rows
	by     [][]int // row -> covering primes, in term order
	covers []bitset
}

func selectCover(vars int, primes []Term, ones []uint32) []Term {
	c := &cover{rows: len(ones), by: make([][]int, len(ones))}
	// keep only primes that cover at least one on-set row.
	for _, p := range primes {
		bs := newBitset(len(ones))
		hit := false
		for r, m := range ones {
			if p.Covers(m) {
				bs.set(r)
				hit = true
			}
		}
		if !hit {
			continue
		}
		for r := range ones {
			if bs.has(r) {
				c.by[r] = append(c.by[r], len(c.primes))
			}
		}
		c.primes = append(c.primes, p)
		c.covers = append(c.covers, bs)
	}

	// essential primes
	var sel []int
	covered := newBitset(c.rows)
	for r := range c.by {
		if len(c.by[r]) == 1 && !covered.has(r) {
			p := c.by[r][0]
			sel = append(sel, p)
			covered = covered.union(c.covers[p])
		}
	}

	if vars <= exactVars {
		sel = c.exact(sel, covered)
	} else {
		sel = c.greedy(sel, covered)
	}

	terms := make([]Term, len(sel))
	for i, p := range sel {
		terms[i] = c.primes[p]
	}
	return terms
}

// exact searches for the cheapest cover that extends sel, branching on the
// uncovered row with the fewest candidate primes.
func (c *cover) exact(sel []int, covered bitset) []int {
	var best []int
	var search func(sel []int, covered bitset)
	search = func(sel []int, covered bitset) {
		if best != nil && len(sel) > len(best) {
			return
		}
		row, n := -1, 0
		for r := 0; r < c.rows; r++ {
			if covered.has(r) {
				continue
			}
			if row < 0 || len(c.by[r]) < n {
				row, n = r, len(c.by[r])
			}
		}
		if row < 0 {
			if best == nil || c.less(sel, best) {
				best = slices.Clone(sel)
			}
			return
		}
		if best != nil && len(sel)+1 > len(best) {
			return
		}
		for _, p := range c.by[row] {
			search(append(sel, p), covered.union(c.covers[p]))
		}
	}
	search(sel[:len(sel):len(sel)], covered)
	return best
}

// greedy repeatedly picks the prime covering the most uncovered rows. Ties go
// to the prime with fewer literals, then to the first in term order.
func (c *cover) greedy(sel []int, covered bitset) []int {
	for covered.count() < c.rows {
		best, gain := -1, 0
		for p, bs := range c.covers {
			g := 0
			for r := 0; r < c.rows; r++ {
				if bs.has(r) && !covered.has(r) {
					g++
				}
			}
			if g > gain || (g == gain && g > 0 && c.primes[p].Len() < c.primes[best].Len()) {
				best, gain = p, g
			}
		}
		sel = append(sel, best)
		covered = covered.union(c.covers[best])
	}
	return sel
}

// less returns true if cover a is cheaper than cover b.
func (c *cover) less(a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	ta, tb := c.terms(a), c.terms(b)
	la, lb := 0, 0
	for i := range ta {
		la += ta[i].Len()
		lb += tb[i].Len()
	}
	if la != lb {
		return la < lb
	}
	for i := range ta {
		if ta[i] != tb[i] {
			return termLess(ta[i], tb[i])
		}
	}
	return false
}

func (c *cover) terms(sel []int) []Term {
	ts := make([]Term, len(sel))
	for i, p := range sel {
		ts[i] = c.primes[p]
	}
	slices.SortFunc(ts, termLess)
	return ts
}
