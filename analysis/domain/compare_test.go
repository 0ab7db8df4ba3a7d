package domain

import "testing"

func TestComparison(t *testing.T) {
	f := NewFactory(Config{})
	eq := func(i int64) Domain { return f.EqualTo(Int(i)) }
	rng := func(lo, hi int64) Domain { return f.ClosedRange(Int(lo), Int(hi)) }

	tests := []struct {
		op       Operator
		a, b     Domain
		expected string
	}{
		{LT, eq(3), eq(5), "(== 1)"},
		{LT, eq(5), eq(5), "(== 0)"},
		{LT, rng(0, 4), rng(5, 9), "(== 1)"},
		{LT, rng(0, 5), rng(5, 9), "(unlimited)"},
		{LT, rng(5, 9), rng(0, 5), "(== 0)"},
		{LT, f.LessThan(Int(5)), eq(10), "(unlimited)"},
		{GT, eq(5), eq(3), "(== 1)"},
		{EQ, eq(3), eq(3), "(== 1)"},
		{EQ, eq(3), eq(4), "(== 0)"},
		{EQ, rng(0, 9), eq(5), "(unlimited)"},
		{EQ, f.LessThan(Int(0)), f.GreaterThan(Int(0)), "(== 0)"},
		{NE, eq(3), eq(4), "(== 1)"},
		{NE, eq(3), eq(3), "(== 0)"},
		{LE, eq(5), eq(5), "(== 1)"},
		{LE, rng(0, 9), eq(9), "(unlimited)"},
		{LE, rng(0, 9), eq(10), "(== 1)"},
		{GE, eq(3), eq(5), "(== 0)"},
		{LT, f.Union(eq(1), eq(3)), eq(5), "(== 1)"},
		{LT, f.Union(eq(1), eq(7)), eq(5), "(unlimited)"},
		{EQ, f.Nil(), eq(1), "(nil)"},
		{LT, eq(1), f.Nil(), "(nil)"},
		{LT, f.Ambiguous(false), eq(1), "(unlimited)"},
		{LT, f.Unlimited(), eq(1), "(unlimited)"},
		{LT, f.NaN(), eq(1), "(unlimited)"},
		{LT, f.Undefined(eq(3)), eq(5), "(undefined (== 1))"},
		{EQ, eq(3), f.Undefined(eq(3)), "(undefined (== 1))"},
	}

	for _, test := range tests {
		if res := f.Compare(test.op, test.a, test.b); res.String() != test.expected {
			t.Errorf("%s %s %s = %s, expected %s", test.a, test.op, test.b, res, test.expected)
		} else {
			t.Logf("%s %s %s = %s", test.a, test.op, test.b, res)
		}
	}
}

func TestLogical(t *testing.T) {
	f := NewFactory(Config{})
	zero, one, two := f.EqualTo(Int(0)), f.EqualTo(Int(1)), f.EqualTo(Int(2))
	pos := f.GreaterThan(Int(0))
	bit := f.ClosedRange(Int(0), Int(1))

	tests := []struct {
		name     string
		res      Domain
		expected string
	}{
		{"(> 0) && 2", f.LogicalAnd(pos, two), "(== 1)"},
		{"0 && unlimited", f.LogicalAnd(zero, f.Unlimited()), "(== 0)"},
		{"unlimited && 1", f.LogicalAnd(f.Unlimited(), one), "(unlimited)"},
		{"[0, 1] && 1", f.LogicalAnd(bit, one), "(unlimited)"},
		{"unlimited || 1", f.LogicalOr(f.Unlimited(), one), "(== 1)"},
		{"0 || 0", f.LogicalOr(zero, zero), "(== 0)"},
		{"0 || [0, 1]", f.LogicalOr(zero, bit), "(unlimited)"},
		{"nil || 1", f.LogicalOr(f.Nil(), one), "(nil)"},
		{"ambiguous && 0", f.LogicalAnd(f.Ambiguous(false), zero), "(unlimited)"},
		{"(undefined 1) && 2", f.LogicalAnd(f.Undefined(one), two), "(undefined (== 1))"},
		{"!(!= 0)", f.LogicalNot(f.NotEqualTo(Int(0))), "(== 0)"},
		{"!0", f.LogicalNot(zero), "(== 1)"},
		{"!0.0", f.LogicalNot(f.EqualTo(Real(0))), "(== 1)"},
		{"![0, 1]", f.LogicalNot(bit), "(unlimited)"},
		{"!nil", f.LogicalNot(f.Nil()), "(nil)"},
		{"!(undefined 0)", f.LogicalNot(f.Undefined(zero)), "(undefined (== 1))"},
	}

	for _, test := range tests {
		if s := test.res.String(); s != test.expected {
			t.Errorf("%s = %s, expected %s", test.name, s, test.expected)
		} else {
			t.Logf("%s = %s", test.name, s)
		}
	}
}
