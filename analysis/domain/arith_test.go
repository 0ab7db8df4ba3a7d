package domain

import "testing"

func TestArithmetic(t *testing.T) {
	f := NewFactory(Config{})
	eq := func(i int64) Domain { return f.EqualTo(Int(i)) }
	lt := func(i int64) Domain { return f.LessThan(Int(i)) }
	gt := func(i int64) Domain { return f.GreaterThan(Int(i)) }
	rng := func(lo, hi int64) Domain { return f.ClosedRange(Int(lo), Int(hi)) }

	tests := []struct {
		name     string
		res      Domain
		expected string
	}{
		{"1 + 2", f.Add(eq(1), eq(2)), "(== 3)"},
		{"[0, 9] + 1", f.Add(rng(0, 9), eq(1)), "((< 11) && (> 0))"},
		{"(< 5) + (< 3)", f.Add(lt(5), lt(3)), "(< 7)"},
		{"(> 1) + (> 2)", f.Add(gt(1), gt(2)), "(> 4)"},
		{"(< 5) + (> 3)", f.Add(lt(5), gt(3)), "(unlimited)"},
		{"(< 1.5) + (< 1.5)", f.Add(f.LessThan(Real(1.5)), f.LessThan(Real(1.5))), "(< 3.0)"},
		{"1 + {1, 5}", f.Add(eq(1), f.Union(eq(1), eq(5))), "((== 2) || (== 6))"},
		{"5 - 7", f.Sub(eq(5), eq(7)), "(== -2)"},
		{"[0, 9] - [0, 9]", f.Sub(rng(0, 9), rng(0, 9)), "((< 10) && (> -10))"},
		{"3 * 4", f.Mul(eq(3), eq(4)), "(== 12)"},
		{"[-2, 3] * [4, 5]", f.Mul(rng(-2, 3), rng(4, 5)), "((< 16) && (> -11))"},
		{"2 * (< 3)", f.Mul(eq(2), lt(3)), "(< 6)"},
		{"0 * (> 3)", f.Mul(eq(0), gt(3)), "(== 0)"},
		{"(< 0) * (< 0)", f.Mul(lt(0), lt(0)), "(unlimited)"},
		{"7 / 2", f.Div(eq(7), eq(2)), "(== 3)"},
		{"-7 / 2", f.Div(eq(-7), eq(2)), "(== -3)"},
		{"[10, 20] / -5", f.Div(rng(10, 20), eq(-5)), "((< -1) && (> -5))"},
		{"(< 10) / 2", f.Div(lt(10), eq(2)), "(< 5)"},
		{"5 / (> 2)", f.Div(eq(5), gt(2)), "((< 2) && (> -1))"},
		{"6 / 0", f.Div(eq(6), eq(0)), "(NaN)"},
		{"unlimited / 0", f.Div(f.Unlimited(), eq(0)), "(NaN)"},
		{"6 / [-1, 1]", f.Div(eq(6), rng(-1, 1)), "(NaN)"},
		{"7 % 3", f.Rem(eq(7), eq(3)), "(== 1)"},
		{"-7 % 3", f.Rem(eq(-7), eq(3)), "(== -1)"},
		{"7 % 0", f.Rem(eq(7), eq(0)), "(NaN)"},
		{"1.0 / 4.0", f.Div(f.EqualTo(Real(1)), f.EqualTo(Real(4))), "(== 0.25)"},
	}

	for _, test := range tests {
		if s := test.res.String(); s != test.expected {
			t.Errorf("%s = %s, expected %s", test.name, s, test.expected)
		} else {
			t.Logf("%s = %s", test.name, s)
		}
	}
}

func TestArithmeticPropagation(t *testing.T) {
	f := NewFactory(Config{})
	one := f.EqualTo(Int(1))

	ops := map[string]func(a, b Domain) Domain{
		"+": f.Add, "-": f.Sub, "*": f.Mul, "/": f.Div, "%": f.Rem,
		"&": f.And, "|": f.Or, "^": f.Xor, "<<": f.Shl, ">>": f.Shr,
	}

	for name, op := range ops {
		tests := []struct {
			a, b     Domain
			expected string
		}{
			{f.Nil(), one, "(nil)"},
			{one, f.Nil(), "(nil)"},
			{f.NaN(), one, "(NaN)"},
			{one, f.NaN(), "(NaN)"},
			{f.Ambiguous(false), one, "(ambiguous)"},
			{one, f.Ambiguous(false), "(ambiguous)"},
			{f.Ambiguous(false), f.Undefined(one), "(ambiguous undefined)"},
			{f.Nil(), f.Ambiguous(false), "(nil)"},
		}

		for _, test := range tests {
			if res := op(test.a, test.b); res.String() != test.expected {
				t.Errorf("%s %s %s = %s, expected %s", test.a, name, test.b, res, test.expected)
			}
		}

		if res := op(f.Undefined(one), one); !res.IsUndefined() {
			t.Errorf("%s %s %s = %s, expected an undefined domain", f.Undefined(one), name, one, res)
		}
	}

	if res := f.Div(f.Undefined(f.EqualTo(Int(6))), f.EqualTo(Int(0))); res.String() != "(undefined (NaN))" {
		t.Errorf("(undefined (== 6)) / 0 = %s, expected (undefined (NaN))", res)
	}
}

func TestMulAgreesWithIntervalProducts(t *testing.T) {
	f := NewFactory(Config{})

	type rng struct{ lo, hi int64 }
	var rs []rng
	for lo := int64(-3); lo <= 3; lo++ {
		for hi := lo; hi <= 3; hi++ {
			rs = append(rs, rng{lo, hi})
		}
	}

	for _, a := range rs {
		for _, b := range rs {
			lo, hi := a.lo*b.lo, a.lo*b.lo
			for x := a.lo; x <= a.hi; x++ {
				for y := b.lo; y <= b.hi; y++ {
					lo, hi = min(lo, x*y), max(hi, x*y)
				}
			}

			da := f.ClosedRange(Int(a.lo), Int(a.hi))
			db := f.ClosedRange(Int(b.lo), Int(b.hi))
			expected := f.ClosedRange(Int(lo), Int(hi))
			if res := f.Mul(da, db); !res.Equal(expected) {
				t.Errorf("%s * %s = %s, expected %s", da, db, res, expected)
			}
		}
	}
}

func TestDivAgreesWithTruncatedQuotients(t *testing.T) {
	f := NewFactory(Config{})

	type rng struct{ lo, hi int64 }
	var dividends, divisors []rng
	for lo := int64(-6); lo <= 6; lo++ {
		for hi := lo; hi <= 6; hi++ {
			dividends = append(dividends, rng{lo, hi})
		}
	}
	for lo := int64(-3); lo <= 3; lo++ {
		for hi := lo; hi <= 3; hi++ {
			if lo > 0 || hi < 0 {
				divisors = append(divisors, rng{lo, hi})
			}
		}
	}

	for _, a := range dividends {
		for _, b := range divisors {
			lo, hi := a.lo/b.lo, a.lo/b.lo
			for x := a.lo; x <= a.hi; x++ {
				for y := b.lo; y <= b.hi; y++ {
					lo, hi = min(lo, x/y), max(hi, x/y)
				}
			}

			da := f.ClosedRange(Int(a.lo), Int(a.hi))
			db := f.ClosedRange(Int(b.lo), Int(b.hi))
			expected := f.ClosedRange(Int(lo), Int(hi))
			if res := f.Div(da, db); !res.Equal(expected) {
				t.Errorf("%s / %s = %s, expected %s", da, db, res, expected)
			}
		}
	}
}

func TestBitwise(t *testing.T) {
	f := NewFactory(Config{})
	g := f.WithLogicalShr(true)
	eq := func(i int64) Domain { return f.EqualTo(Int(i)) }
	rng := func(lo, hi int64) Domain { return f.ClosedRange(Int(lo), Int(hi)) }

	tests := []struct {
		name     string
		res      Domain
		expected string
	}{
		{"12 & 10", f.And(eq(12), eq(10)), "(== 8)"},
		{"(< 100) & 7", f.And(f.LessThan(Int(100)), eq(7)), "((< 8) && (> -1))"},
		{"unlimited & 7", f.And(f.Unlimited(), eq(7)), "(unlimited)"},
		{"12 | 3", f.Or(eq(12), eq(3)), "(== 15)"},
		{"[0, 1] | 2", f.Or(rng(0, 1), eq(2)), "(unlimited)"},
		{"5 ^ 1", f.Xor(eq(5), eq(1)), "(== 4)"},
		{"5.7 & 3", f.And(f.EqualTo(Real(5.7)), eq(3)), "(== 1)"},
		{"1 << 3", f.Shl(eq(1), eq(3)), "(== 8)"},
		{"[0, 3] << 2", f.Shl(rng(0, 3), eq(2)), "((< 13) && (> -1))"},
		{"[-2, 1] << [0, 1]", f.Shl(rng(-2, 1), rng(0, 1)), "((< 3) && (> -5))"},
		{"1 << -1", f.Shl(eq(1), eq(-1)), "(unlimited)"},
		{"(> 0) << 1", f.Shl(f.GreaterThan(Int(0)), eq(1)), "(unlimited)"},
		{"-8 >> 1", f.Shr(eq(-8), eq(1)), "(== -4)"},
		{"[8, 16] >> [1, 2]", f.Shr(rng(8, 16), rng(1, 2)), "((< 9) && (> 1))"},
		{"-8 >>> 1", g.Shr(g.EqualTo(Int(-8)), g.EqualTo(Int(1))), "(unlimited)"},
		{"8 >>> 1", g.Shr(g.EqualTo(Int(8)), g.EqualTo(Int(1))), "(== 4)"},
		{"-8 >>> arithmetic 1", g.Shr(g.EqualTo(Int(-8)), eq(1)), "(== -4)"},
	}

	for _, test := range tests {
		if s := test.res.String(); s != test.expected {
			t.Errorf("%s = %s, expected %s", test.name, s, test.expected)
		} else {
			t.Logf("%s = %s", test.name, s)
		}
	}
}

func TestUnary(t *testing.T) {
	f := NewFactory(Config{})

	tests := []struct {
		name     string
		res      Domain
		expected string
	}{
		{"-5", f.Neg(f.EqualTo(Int(5))), "(== -5)"},
		{"-(< 5)", f.Neg(f.LessThan(Int(5))), "(> -5)"},
		{"-[0, 9]", f.Neg(f.ClosedRange(Int(0), Int(9))), "((< 1) && (> -10))"},
		{"-(undefined (== 1))", f.Neg(f.Undefined(f.EqualTo(Int(1)))), "(undefined (== -1))"},
		{"-NaN", f.Neg(f.NaN()), "(NaN)"},
		{"+(< 5)", f.Pos(f.LessThan(Int(5))), "(< 5)"},
		{"~0", f.Not(f.EqualTo(Int(0))), "(== -1)"},
		{"~(< 5)", f.Not(f.LessThan(Int(5))), "(> -6)"},
		{"~[0, 9]", f.Not(f.ClosedRange(Int(0), Int(9))), "((< 0) && (> -11))"},
		{"int 2.7", f.ToInteger(f.EqualTo(Real(2.7))), "(== 2)"},
		{"int -2.7", f.ToInteger(f.EqualTo(Real(-2.7))), "(== -2)"},
		{"int (< 2.5)", f.ToInteger(f.LessThan(Real(2.5))), "(< 3)"},
		{"int (< -2.5)", f.ToInteger(f.LessThan(Real(-2.5))), "(< -1)"},
		{"int (> 2.5)", f.ToInteger(f.GreaterThan(Real(2.5))), "(> 1)"},
		{"int (> -2.5)", f.ToInteger(f.GreaterThan(Real(-2.5))), "(> -3)"},
		{"int (< 4)", f.ToInteger(f.LessThan(Int(4))), "(< 4)"},
		{"real 2", f.ToReal(f.EqualTo(Int(2))), "(== 2.0)"},
		{"real (> 2)", f.ToReal(f.GreaterThan(Int(2))), "(> 2.0)"},
	}

	for _, test := range tests {
		if s := test.res.String(); s != test.expected {
			t.Errorf("%s = %s, expected %s", test.name, s, test.expected)
		} else {
			t.Logf("%s = %s", test.name, s)
		}
	}
}
