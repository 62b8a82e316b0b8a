// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"math/bits"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWidth is the maximum number of state bits of a design. Minimization
// time grows about threefold with every bit over mostly unreached codes.
//
const MaxWidth = 10

// A Sequence is a cycle of states: the state following the last one is the
// first one.
//
type Sequence []int

// ParseSequence parses a list of decimal integers separated by Unicode white
// space.
// Signs are accepted, so that negative states are reported by Validate
// rather than as syntax errors.
//
func ParseSequence(s string) (Sequence, error) {
	var seq Sequence
	pos := 0
	for pos < len(s) {
		if n := spaceLen(s[pos:]); n > 0 {
			pos += n
			continue
		}
		start := pos
		for pos < len(s) && spaceLen(s[pos:]) == 0 {
			_, n := utf8.DecodeRuneInString(s[pos:])
			pos += n
		}
		tok := s[start:pos]
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &ParseError{Input: s, Pos: start + badDigit(tok), Msg: "invalid state " + strconv.Quote(tok)}
		}
		seq = append(seq, v)
	}
	return seq, nil
}

// spaceLen returns the byte length of the leading rune of s if it is a
// Unicode space, 0 otherwise.
func spaceLen(s string) int {
	r, n := utf8.DecodeRuneInString(s)
	if unicode.IsSpace(r) {
		return n
	}
	return 0
}

// badDigit returns the offset of the first character of tok that makes it
// an invalid integer. It returns 0 for out of range values.
func badDigit(tok string) int {
	i := 0
	if strings.HasPrefix(tok, "-") || strings.HasPrefix(tok, "+") {
		i++
	}
	if i == len(tok) {
		return 0
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return i
		}
	}
	return 0
}

// Validate checks that s is a valid state sequence: non-empty, with
// non-negative states that fit in MaxWidth bits.
//
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return &InvalidSequenceError{Index: -1, Msg: "empty sequence"}
	}
	for i, v := range s {
		if v < 0 {
			return &InvalidSequenceError{Index: i, Value: v, Msg: "negative state"}
		}
		if v >= 1<<MaxWidth {
			return &InvalidSequenceError{Index: i, Value: v, Msg: "state needs more than " + strconv.Itoa(MaxWidth) + " bits"}
		}
	}
	return nil
}

func (s Sequence) String() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// An Encoding assigns a fixed width binary code to states. The code of a
// state is its value in standard binary.
//
type Encoding struct {
	Width int
}

// Encode returns the encoding of the states of s: the smallest width, but at
// least 1, that holds every state of s.
//
func Encode(s Sequence) (Encoding, error) {
	if err := s.Validate(); err != nil {
		return Encoding{}, err
	}
	max := 0
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	w := bits.Len(uint(max))
	if w == 0 {
		w = 1
	}
	return Encoding{Width: w}, nil
}

// States returns the number of codes of e.
//
func (e Encoding) States() int { return 1 << uint(e.Width) }

// Code returns the binary code of state, most significant bit first.
//
func (e Encoding) Code(state int) string {
	b := make([]byte, e.Width)
	for i := range b {
		b[i] = '0' + byte(state>>uint(e.Width-1-i)&1)
	}
	return string(b)
}

// Codes returns the binary codes of the states of s in sequence order.
//
func (e Encoding) Codes(s Sequence) []string {
	cs := make([]string, len(s))
	for i, v := range s {
		cs[i] = e.Code(v)
	}
	return cs
}

// Bit returns bit i of state.
//
func (e Encoding) Bit(state, i int) bool {
	return state&(1<<uint(i)) != 0
}
