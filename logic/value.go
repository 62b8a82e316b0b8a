// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logic implements sum-of-products Boolean expressions over a small
// number of variables and their minimization from partially specified truth
// tables.
//
// Variables are numbered from 0 (least significant bit of a row index) to
// vars-1. Row r of a Table holds the function value when variable i equals
// bit i of r.
//
package logic

import "strconv"

// Value is the content of one row of a truth table.
//
type Value uint8

// Truth table values.
//
const (
	Zero Value = iota
	One
	DontCare
)

func (v Value) String() string {
	switch v {
	case Zero:
		return "0"
	case One:
		return "1"
	case DontCare:
		return "X"
	}
	return "Value(" + strconv.Itoa(int(v)) + ")"
}

// A Table is a truth table over some number of variables. Its length is
// always a power of two.
//
type Table []Value

// NewTable returns a table over vars variables where every row is DontCare.
//
func NewTable(vars int) Table {
	t := make(Table, 1<<uint(vars))
	for i := range t {
		t[i] = DontCare
	}
	return t
}

// Vars returns the number of variables of t, or -1 if len(t) is not a power
// of two.
//
func (t Table) Vars() int {
	n := len(t)
	if n == 0 || n&(n-1) != 0 {
		return -1
	}
	v := 0
	for n > 1 {
		n >>= 1
		v++
	}
	return v
}
