package domain

import (
	"errors"
	"testing"
)

func TestConstructors(t *testing.T) {
	f := NewFactory(Config{})

	tests := []struct {
		d        Domain
		expected string
	}{
		{f.Nil(), "(nil)"},
		{f.Unlimited(), "(unlimited)"},
		{f.NaN(), "(NaN)"},
		{f.Ambiguous(false), "(ambiguous)"},
		{f.Ambiguous(true), "(ambiguous undefined)"},
		{f.EqualTo(Int(5)), "(== 5)"},
		{f.LessThan(Int(5)), "(< 5)"},
		{f.GreaterThan(Int(-5)), "(> -5)"},
		{f.Undefined(f.EqualTo(Int(5))), "(undefined (== 5))"},
		{f.Undefined(f.Undefined(f.EqualTo(Int(5)))), "(undefined (== 5))"},
		{f.Undefined(f.Ambiguous(false)), "(ambiguous undefined)"},
		{f.NotEqualTo(Int(5)), "((< 5) || (> 5))"},
		{f.LessThanOrEqualTo(Int(5)), "(< 6)"},
		{f.GreaterThanOrEqualTo(Int(5)), "(> 4)"},
		{f.LessThanOrEqualTo(Real(2.5)), "((< 2.5) || (== 2.5))"},
		{f.ClosedRange(Int(0), Int(9)), "((< 10) && (> -1))"},
		{f.ClosedRange(Int(3), Int(3)), "(== 3)"},
		{f.ClosedRange(Int(3), Int(4)), "((< 5) && (> 2))"},
		{f.ClosedRange(Int(5), Int(4)), "(nil)"},
		{f.OfTrue(), "(== 1)"},
		{f.OfFalse(), "(== 0)"},
		{f.OfUnlimited(), "(unlimited)"},
		{f.OfNil(), "(nil)"},
	}

	for _, test := range tests {
		if s := test.d.String(); s != test.expected {
			t.Errorf("Got %s, expected %s", s, test.expected)
		} else {
			t.Logf("%s", s)
		}
	}
}

func TestConstructorsRejectAbsentValues(t *testing.T) {
	f := NewFactory(Config{})

	ctors := map[string]func(Value) Domain{
		"EqualTo":     f.EqualTo,
		"LessThan":    f.LessThan,
		"GreaterThan": f.GreaterThan,
	}

	for name, ctor := range ctors {
		func() {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("%s of an absent value panicked with %v, expected %v", name, err, ErrInvalidArgument)
				}
			}()
			ctor(Value{})
		}()
	}
}

func TestPredicates(t *testing.T) {
	f := NewFactory(Config{})

	tests := []struct {
		d                                 Domain
		empty, nan, undefined, ambiguous bool
	}{
		{f.Nil(), true, false, false, false},
		{f.Unlimited(), false, false, false, false},
		{f.NaN(), false, true, false, false},
		{f.EqualTo(Int(1)), false, false, false, false},
		{f.Undefined(f.Nil()), true, false, true, false},
		{f.Undefined(f.NaN()), false, true, true, false},
		{f.Ambiguous(false), false, false, false, true},
		{f.Ambiguous(true), false, false, true, true},
		{f.Union(f.EqualTo(Int(1)), f.Undefined(f.EqualTo(Int(5)))), false, false, true, false},
	}

	for _, test := range tests {
		d := test.d
		if d.IsEmpty() != test.empty || d.IsNaN() != test.nan ||
			d.IsUndefined() != test.undefined || d.IsAmbiguous() != test.ambiguous {
			t.Errorf("%s: empty %v, nan %v, undefined %v, ambiguous %v; expected %v, %v, %v, %v", d,
				d.IsEmpty(), d.IsNaN(), d.IsUndefined(), d.IsAmbiguous(),
				test.empty, test.nan, test.undefined, test.ambiguous)
		}
	}
}

func TestBounds(t *testing.T) {
	f := NewFactory(Config{})

	tests := []struct {
		d              Domain
		min, max       string
		hasMin, hasMax bool
	}{
		{f.EqualTo(Int(3)), "3", "3", true, true},
		{f.LessThan(Int(3)), "", "2", false, true},
		{f.GreaterThan(Int(3)), "4", "", true, false},
		{f.ClosedRange(Int(-2), Int(7)), "-2", "7", true, true},
		{f.NotEqualTo(Int(0)), "", "", false, false},
		{f.Union(f.EqualTo(Int(1)), f.EqualTo(Int(8))), "1", "8", true, true},
		{f.Unlimited(), "", "", false, false},
	}

	for _, test := range tests {
		min, minOk := test.d.Min()
		max, maxOk := test.d.Max()
		if minOk != test.hasMin || maxOk != test.hasMax ||
			(minOk && min.String() != test.min) || (maxOk && max.String() != test.max) {
			t.Errorf("%s: min %v (%v), max %v (%v); expected %s (%v), %s (%v)", test.d,
				min, minOk, max, maxOk, test.min, test.hasMin, test.max, test.hasMax)
		}
	}
}

func TestMemoization(t *testing.T) {
	f := NewFactory(Config{})

	a := f.EqualTo(Int(1))
	if b := f.EqualTo(Int(1)); a != b {
		t.Errorf("Constructing %s twice gave distinct instances", a)
	}

	s := f.Stats()
	if s.Hits == 0 || s.Misses == 0 || s.Entries == 0 {
		t.Errorf("Unexpected statistics after construction: %+v", s)
	}

	f.ClearMemos()
	if s := f.Stats(); s != (Stats{}) {
		t.Errorf("Statistics after clearing are %+v, expected none", s)
	}

	b := f.EqualTo(Int(1))
	if a == b {
		t.Errorf("%s survived clearing the memo tables", a)
	}
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("%s and %s are not equal", a, b)
	}
}

func TestLogicalShr(t *testing.T) {
	f := NewFactory(Config{})
	g := f.WithLogicalShr(true)

	if f.WithLogicalShr(false) != f {
		t.Error("Selecting the configuration of a factory made a new view")
	}

	one, two := f.EqualTo(Int(1)), f.EqualTo(Int(2))
	lone, ltwo := g.EqualTo(Int(1)), g.EqualTo(Int(2))

	tests := []struct {
		name     string
		d        Domain
		expected bool
	}{
		{"arithmetic 1", one, false},
		{"logical 1", lone, true},
		{"logical 1 + logical 2", f.Add(lone, ltwo), true},
		{"logical 1 + arithmetic 2", f.Add(lone, two), false},
		{"arithmetic 1 | logical 2", g.Union(one, ltwo), false},
		{"-logical 1", f.Neg(lone), true},
		{"relabeled logical 1", f.Relabel(lone), false},
		{"relabeled 1", g.Relabel(one), true},
	}

	for _, test := range tests {
		if test.d.LogicalShr() != test.expected {
			t.Errorf("%s: logical right shift is %v, expected %v", test.name, test.d.LogicalShr(), test.expected)
		}
	}
}

func TestMemoKeepsShiftSemantics(t *testing.T) {
	shr := func(f *Factory) Domain {
		g := f.WithLogicalShr(true)
		return f.Shr(f.Intersection(f.EqualTo(Int(-8)), f.LessThan(Int(10))), g.EqualTo(Int(1)))
	}

	clean := shr(NewFactory(Config{}))
	if clean.String() != "(== -4)" {
		t.Fatalf("-8 >> 1 = %s, expected (== -4)", clean)
	}

	f := NewFactory(Config{})
	g := f.WithLogicalShr(true)
	if d := f.Intersection(g.EqualTo(Int(-8)), f.LessThan(Int(10))); d.LogicalShr() {
		t.Errorf("Meet of a logical and an arithmetic domain %s has logical right shifts", d)
	}
	if d := f.Intersection(f.EqualTo(Int(-8)), f.LessThan(Int(10))); d.LogicalShr() {
		t.Errorf("Meet of two arithmetic domains %s has logical right shifts", d)
	}
	if d := shr(f); !d.Equal(clean) {
		t.Errorf("-8 >> 1 = %s after an unrelated meet, expected %s", d, clean)
	}
}

func TestResultsAreLogicalOnlyIfOperandsAre(t *testing.T) {
	f := NewFactory(Config{})
	g := f.WithLogicalShr(true)

	var ds []Domain
	for _, h := range []*Factory{f, g} {
		ds = append(ds,
			h.EqualTo(Int(3)),
			h.ClosedRange(Int(0), Int(9)),
			h.Unlimited(),
			h.Undefined(h.EqualTo(Int(1))),
			h.Ambiguous(false),
		)
	}

	ops := map[string]func(a, b Domain) Domain{
		"∧": f.Intersection,
		"∨": f.Union,
		"+": f.Add,
		"*": f.Mul,
	}
	for name, op := range ops {
		for _, a := range ds {
			for _, b := range ds {
				expected := a.LogicalShr() && b.LogicalShr()
				if res := op(a, b); res.LogicalShr() != expected {
					t.Errorf("%s %s %s = %s has logical right shifts %v, expected %v",
						a, name, b, res, res.LogicalShr(), expected)
				}
			}
		}
	}
}
