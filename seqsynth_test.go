package seqsynth_test

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/db47h/seqsynth"
	"github.com/db47h/seqsynth/logic"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func mustParse(t *testing.T, s string) seqsynth.Sequence {
	t.Helper()
	seq, err := seqsynth.ParseSequence(s)
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func mustDerive(t *testing.T, s string, ff seqsynth.FlipFlop) *seqsynth.Design {
	t.Helper()
	d, err := seqsynth.Derive(mustParse(t, s), ff)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseSequence(t *testing.T) {
	td := []struct {
		in  string
		seq seqsynth.Sequence
		pos int // -1 if no error expected
	}{
		{"0 1 3 2", seqsynth.Sequence{0, 1, 3, 2}, -1},
		{"  4\t5\n6  ", seqsynth.Sequence{4, 5, 6}, -1},
		{"1 -2 +3", seqsynth.Sequence{1, -2, 3}, -1},
		{"8\u00a09\u3000\u2003 10", seqsynth.Sequence{8, 9, 10}, -1},
		{"", nil, -1},
		{"0 1 x", nil, 4},
		{"0 12a", nil, 4},
		{"7 - 1", nil, 2},
		{"99999999999999999999999", nil, 0},
		{"3\u00a0é", nil, 3},
	}
	for _, d := range td {
		seq, err := seqsynth.ParseSequence(d.in)
		if d.pos < 0 {
			if err != nil {
				t.Errorf("ParseSequence(%q): unexpected error %v", d.in, err)
			} else if !slices.Equal(seq, d.seq) {
				t.Errorf("ParseSequence(%q) = %v, expected %v", d.in, seq, d.seq)
			}
			continue
		}
		pe, ok := errors.Cause(err).(*seqsynth.ParseError)
		if !ok {
			t.Errorf("ParseSequence(%q): expected a *ParseError, got %v", d.in, err)
			continue
		}
		if pe.Pos != d.pos {
			t.Errorf("ParseSequence(%q): error at pos %d, expected %d", d.in, pe.Pos, d.pos)
		}
	}

	_, err := seqsynth.ParseSequence("0 1 x")
	if exp := `in "0 1 x" at pos 5: invalid state "x"`; err.Error() != exp {
		t.Errorf("got error %q, expected %q", err, exp)
	}
}

func TestEncode(t *testing.T) {
	td := []struct {
		max   int
		width int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {7, 3}, {8, 4}, {255, 8}, {256, 9}, {1<<seqsynth.MaxWidth - 1, seqsynth.MaxWidth},
	}
	for _, d := range td {
		enc, err := seqsynth.Encode(seqsynth.Sequence{0, d.max})
		if err != nil {
			t.Fatal(err)
		}
		if enc.Width != d.width {
			t.Errorf("max state %d: width %d, expected %d", d.max, enc.Width, d.width)
		}
	}

	enc, _ := seqsynth.Encode(seqsynth.Sequence{0, 1, 3, 2})
	if codes := enc.Codes(seqsynth.Sequence{0, 1, 3, 2}); !slices.Equal(codes, []string{"00", "01", "11", "10"}) {
		t.Errorf("unexpected codes %v", codes)
	}
	if c := enc.Code(2); c != "10" {
		t.Errorf("Code(2) = %q", c)
	}
}

func TestEncode_width(t *testing.T) {
	// 2^w exceeds the largest state, 2^(w-1) does not.
	f := func(s []uint16) bool {
		if len(s) == 0 {
			return true
		}
		seq := make(seqsynth.Sequence, len(s))
		max := 0
		for i, v := range s {
			seq[i] = int(v) & (1<<seqsynth.MaxWidth - 1)
			if seq[i] > max {
				max = seq[i]
			}
		}
		enc, err := seqsynth.Encode(seq)
		if err != nil {
			return false
		}
		w := enc.Width
		return w >= 1 && max < 1<<uint(w) && (w == 1 || max >= 1<<uint(w-1))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	td := []struct {
		seq   seqsynth.Sequence
		index int
	}{
		{seqsynth.Sequence{}, -1},
		{seqsynth.Sequence{1, -2}, 1},
		{seqsynth.Sequence{0, 1 << seqsynth.MaxWidth}, 1},
		{seqsynth.Sequence{3, 1<<seqsynth.MaxWidth - 1, 1 << 16}, 2},
	}
	for _, d := range td {
		_, err := seqsynth.Derive(d.seq, seqsynth.D)
		ie, ok := errors.Cause(err).(*seqsynth.InvalidSequenceError)
		if !ok {
			t.Errorf("Derive(%v): expected an *InvalidSequenceError, got %v", d.seq, err)
			continue
		}
		if ie.Index != d.index {
			t.Errorf("Derive(%v): error at index %d, expected %d", d.seq, ie.Index, d.index)
		}
	}
}

func TestTransitions(t *testing.T) {
	trs, err := seqsynth.Transitions(seqsynth.Sequence{0, 1, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	exp := []seqsynth.Transition{{0, 1}, {1, 3}, {3, 2}, {2, 0}}
	if !slices.Equal(trs, exp) {
		t.Fatalf("got %v, expected %v", trs, exp)
	}

	// repeated state with the same successor
	trs, err = seqsynth.Transitions(seqsynth.Sequence{0, 1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(trs) != 4 {
		t.Fatalf("expected one transition per position, got %v", trs)
	}

	// single state
	trs, err = seqsynth.Transitions(seqsynth.Sequence{5})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(trs, []seqsynth.Transition{{5, 5}}) {
		t.Fatalf("got %v", trs)
	}
}

func TestTransitions_conflict(t *testing.T) {
	_, err := seqsynth.Derive(seqsynth.Sequence{0, 1, 0, 2}, seqsynth.JK)
	ce, ok := errors.Cause(err).(*seqsynth.ConflictingTransitionError)
	if !ok {
		t.Fatalf("expected a *ConflictingTransitionError, got %v", err)
	}
	exp := seqsynth.ConflictingTransitionError{State: 0, Next: [2]int{1, 2}, Pos: [2]int{0, 2}}
	if *ce != exp {
		t.Fatalf("got %+v, expected %+v", *ce, exp)
	}
}

func TestFlipFlop_Excite(t *testing.T) {
	X, O, I := logic.DontCare, logic.Zero, logic.One
	td := []struct {
		ff      seqsynth.FlipFlop
		q, next bool
		exp     []logic.Value
	}{
		{seqsynth.D, false, true, []logic.Value{I}},
		{seqsynth.D, true, false, []logic.Value{O}},
		{seqsynth.T, true, false, []logic.Value{I}},
		{seqsynth.T, true, true, []logic.Value{O}},
		{seqsynth.JK, false, false, []logic.Value{O, X}},
		{seqsynth.JK, false, true, []logic.Value{I, X}},
		{seqsynth.JK, true, false, []logic.Value{X, I}},
		{seqsynth.JK, true, true, []logic.Value{X, O}},
		{seqsynth.SR, false, false, []logic.Value{O, X}},
		{seqsynth.SR, false, true, []logic.Value{I, O}},
		{seqsynth.SR, true, false, []logic.Value{O, I}},
		{seqsynth.SR, true, true, []logic.Value{X, O}},
	}
	for _, d := range td {
		vs, ok := d.ff.Excite(d.q, d.next)
		if !ok || !slices.Equal(vs, d.exp) {
			t.Errorf("%s %v -> %v: got %v (%v), expected %v", d.ff.Name(), d.q, d.next, vs, ok, d.exp)
		}
	}
}

func TestFlipFlop_Characteristic(t *testing.T) {
	rows := seqsynth.SR.Characteristic()
	if len(rows) != 8 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, r := range rows {
		forbidden := r.In[0] && r.In[1]
		if r.Valid == forbidden {
			t.Errorf("row %d: valid = %v", i, r.Valid)
		}
		if r.Valid && r.Next != seqsynth.SR.Next(r.Q, r.In) {
			t.Errorf("row %d: next = %v", i, r.Next)
		}
	}
	for _, ff := range seqsynth.FlipFlops() {
		for _, r := range ff.Characteristic() {
			if !r.Valid && ff != seqsynth.SR {
				t.Errorf("%s: unexpected invalid row %+v", ff.Name(), r)
			}
		}
	}
}

func TestParseFlipFlop(t *testing.T) {
	for _, ff := range seqsynth.FlipFlops() {
		got, err := seqsynth.ParseFlipFlop(strings.ToLower(ff.Name()))
		if err != nil || got != ff {
			t.Errorf("ParseFlipFlop(%q) = %v, %v", strings.ToLower(ff.Name()), got, err)
		}
	}
	if _, err := seqsynth.ParseFlipFlop("XY"); err == nil {
		t.Error("expected an error")
	}
}

func TestDerive_D(t *testing.T) {
	d := mustDerive(t, "0 1 3 2", seqsynth.D)
	if d.Width() != 2 {
		t.Fatalf("width = %d", d.Width())
	}
	exp := map[string]string{"D1": "Q0", "D0": "~Q1"}
	if eqs := d.EquationText(); !maps.Equal(eqs, exp) {
		t.Fatalf("got equations %v, expected %v", eqs, exp)
	}
	tm := map[string]string{"00": "01", "01": "11", "11": "10", "10": "00"}
	if m := d.TransitionMap(); !maps.Equal(m, tm) {
		t.Fatalf("got transitions %v, expected %v", m, tm)
	}
	// D1 D0 at every present code yields the next code
	for _, tr := range d.Transitions {
		var got int
		for _, eq := range d.Equations {
			if eq.Expr.Eval(uint32(tr.Present)) {
				got |= 1 << uint(eq.Signal.Bit)
			}
		}
		if got != tr.Next {
			t.Errorf("D(%d) = %d, expected %d", tr.Present, got, tr.Next)
		}
	}
	// no don't-cares on reached states
	for _, tbl := range d.Tables {
		for _, tr := range d.Transitions {
			if tbl.Rows[tr.Present] == logic.DontCare {
				t.Errorf("%s: don't-care at state %d", tbl.Signal.Name(), tr.Present)
			}
		}
	}
}

func TestDerive_JK(t *testing.T) {
	d := mustDerive(t, "0 1 3 2", seqsynth.JK)
	names := make([]string, len(d.Equations))
	for i, eq := range d.Equations {
		names[i] = eq.Signal.Name()
	}
	if exp := []string{"J1", "K1", "J0", "K0"}; !slices.Equal(names, exp) {
		t.Fatalf("got signals %v, expected %v", names, exp)
	}
	exp := map[string]string{"J1": "Q0", "K1": "~Q0", "J0": "~Q1", "K0": "Q1"}
	if eqs := d.EquationText(); !maps.Equal(eqs, exp) {
		t.Fatalf("got equations %v, expected %v", eqs, exp)
	}
	// transition 01 -> 11 keeps bit 0 at 1: J0 = X, K0 = 0
	for _, e := range d.Excitation {
		if e.Transition == (seqsynth.Transition{Present: 1, Next: 3}) && e.Bit == 0 {
			if !e.Q || !e.Next || !slices.Equal(e.Values, []logic.Value{logic.DontCare, logic.Zero}) {
				t.Fatalf("unexpected entry %+v", e)
			}
			return
		}
	}
	t.Fatal("entry not found")
}

func TestDerive_SR(t *testing.T) {
	d := mustDerive(t, "0 1", seqsynth.SR)
	if len(d.Excitation) != 2 {
		t.Fatalf("got %d entries", len(d.Excitation))
	}
	e := d.Excitation[0]
	if e.Q || !e.Next || !slices.Equal(e.Values, []logic.Value{logic.One, logic.Zero}) {
		t.Fatalf("unexpected entry %+v", e)
	}
	exp := map[string]string{"S0": "~Q0", "R0": "Q0"}
	if eqs := d.EquationText(); !maps.Equal(eqs, exp) {
		t.Fatalf("got equations %v, expected %v", eqs, exp)
	}
}

func TestDerive_unreached(t *testing.T) {
	d := mustDerive(t, "0 1 2", seqsynth.D)
	if d.Width() != 2 {
		t.Fatalf("width = %d", d.Width())
	}
	for _, tbl := range d.Tables {
		if tbl.Rows[3] != logic.DontCare {
			t.Errorf("%s: state 3 is %v, expected a don't-care", tbl.Signal.Name(), tbl.Rows[3])
		}
	}
	exp := map[string]string{"D1": "Q0", "D0": "~Q1 & ~Q0"}
	if eqs := d.EquationText(); !maps.Equal(eqs, exp) {
		t.Fatalf("got equations %v, expected %v", eqs, exp)
	}
}

func TestDerive_SRUnreached(t *testing.T) {
	for _, seq := range []string{"0 1 2", "5 2 7", "0 1", "9 3 12 6", "1 6 4"} {
		d := mustDerive(t, seq, seqsynth.SR)
		for code := 0; code < d.Encoding.States(); code++ {
			for b := 0; b < d.Width(); b++ {
				in := d.Inputs(b)
				if in[0].Eval(uint32(code)) && in[1].Eval(uint32(code)) {
					t.Errorf("%s: S%d = R%d = 1 in state %d", seq, b, b, code)
				}
			}
		}
	}

	// R1 = Q1 covers as well, but drives S1 = R1 = 1 in state 3.
	exp := map[string]string{"S1": "Q0", "R1": "~Q0", "S0": "~Q1 & ~Q0", "R0": "Q0"}
	if eqs := mustDerive(t, "0 1 2", seqsynth.SR).EquationText(); !maps.Equal(eqs, exp) {
		t.Fatalf("got equations %v, expected %v", eqs, exp)
	}
}

func TestDerive_maxWidth(t *testing.T) {
	seq := seqsynth.Sequence{0, 1<<seqsynth.MaxWidth - 1}
	d, err := seqsynth.Derive(seq, seqsynth.D)
	if err != nil {
		t.Fatal(err)
	}
	if d.Width() != seqsynth.MaxWidth {
		t.Fatalf("width = %d", d.Width())
	}
	for _, tr := range d.Transitions {
		if d.Next(tr.Present) != tr.Next {
			t.Fatalf("%d -> %d, expected %d", tr.Present, d.Next(tr.Present), tr.Next)
		}
	}
}

// distinct turns random bytes into a sequence of distinct states.
func distinct(bs []byte) seqsynth.Sequence {
	var seq seqsynth.Sequence
	seen := make(map[int]bool)
	for _, b := range bs {
		v := int(b & 31)
		if !seen[v] {
			seen[v] = true
			seq = append(seq, v)
		}
	}
	return seq
}

func TestDerive_roundTrip(t *testing.T) {
	for _, ff := range seqsynth.FlipFlops() {
		ff := ff
		t.Run(ff.Name(), func(t *testing.T) {
			f := func(bs []byte) bool {
				seq := distinct(bs)
				if len(seq) == 0 {
					return true
				}
				d, err := seqsynth.Derive(seq, ff)
				if err != nil {
					t.Log(err)
					return false
				}
				for _, tr := range d.Transitions {
					if d.Next(tr.Present) != tr.Next {
						t.Logf("%v: %d -> %d, expected %d", seq, tr.Present, d.Next(tr.Present), tr.Next)
						return false
					}
				}
				return true
			}
			if err := quick.Check(f, nil); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestDerive_deterministic(t *testing.T) {
	for _, ff := range seqsynth.FlipFlops() {
		d1 := mustDerive(t, "3 6 1 0 7 2", ff)
		d2 := mustDerive(t, "3 6 1 0 7 2", ff)
		if seqsynth.EmitModule(d1, "m") != seqsynth.EmitModule(d2, "m") ||
			seqsynth.EmitTestbench(d1, "m") != seqsynth.EmitTestbench(d2, "m") {
			t.Fatalf("%s: emitted text differs between runs", ff.Name())
		}
		for i := range d1.Equations {
			if !d1.Equations[i].Expr.Equal(d2.Equations[i].Expr) {
				t.Fatalf("%s: %v != %v", ff.Name(), d1.Equations[i], d2.Equations[i])
			}
		}
	}
}

func TestDesign_WriteSummary(t *testing.T) {
	var b strings.Builder
	d := mustDerive(t, "0 1 3 2", seqsynth.JK)
	if err := d.WriteSummary(&b); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	for _, want := range []string{"Sequence:", "0 1 3 2", "2 x JK", "J1", "= ~Q0", "11"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in summary:\n%s", want, s)
		}
	}

	b.Reset()
	if err := seqsynth.WriteCharacteristic(&b, seqsynth.SR); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(b.String(), "invalid"); n != 2 {
		t.Errorf("got %d invalid rows, expected 2:\n%s", n, b.String())
	}
}
