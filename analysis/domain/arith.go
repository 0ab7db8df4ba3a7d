package domain

// maxShift bounds the shift amounts for which a range is computed.
// Shifting a C scalar by its width or more is undefined.
const maxShift = 128

// Add computes a + b.
func (f *Factory) Add(a, b Domain) Domain { return f.binary(opAdd, a, b) }

// Sub computes a - b as a + (-b).
func (f *Factory) Sub(a, b Domain) Domain { return f.Add(a, f.Neg(b)) }

// Mul computes a * b.
func (f *Factory) Mul(a, b Domain) Domain { return f.binary(opMul, a, b) }

// Div computes a / b. Dividing by a domain that may be zero yields NaN.
func (f *Factory) Div(a, b Domain) Domain { return f.binary(opDiv, a, b) }

// Rem computes a % b as a - ToInteger(a / b) * b.
func (f *Factory) Rem(a, b Domain) Domain {
	return f.Sub(a, f.Mul(f.ToInteger(f.Div(a, b)), b))
}

// And, Or, Xor and Shl compute the bitwise operations of C on the integer
// parts of a and b.
func (f *Factory) And(a, b Domain) Domain { return f.binary(opAnd, a, b) }
func (f *Factory) Or(a, b Domain) Domain  { return f.binary(opOr, a, b) }
func (f *Factory) Xor(a, b Domain) Domain { return f.binary(opXor, a, b) }
func (f *Factory) Shl(a, b Domain) Domain { return f.binary(opShl, a, b) }

// Shr computes a >> b. The shift is logical if both operands have logical
// right shift semantics, and arithmetic otherwise.
func (f *Factory) Shr(a, b Domain) Domain { return f.binary(opShr, a, b) }

// Pos computes +a.
func (f *Factory) Pos(a Domain) Domain { return a }

// Neg computes -a.
func (f *Factory) Neg(a Domain) Domain { return f.unary(opNeg, a) }

// Not computes the bitwise complement ~a of the integer part of a.
func (f *Factory) Not(a Domain) Domain { return f.unary(opNot, a) }

// ToInteger truncates every value of a toward zero.
func (f *Factory) ToInteger(a Domain) Domain { return f.unary(opToInteger, a) }

// ToReal converts every value of a to a real.
func (f *Factory) ToReal(a Domain) Domain { return f.unary(opToReal, a) }

func (f *Factory) binary(op opcode, a, b Domain) Domain {
	g := f.combined(a, b)
	return f.cached(memoKey{op: op, lshr: g.lshr, lhs: a, rhs: b}, func() Domain {
		return g.arith(op, a, b)
	})
}

func (f *Factory) arith(op opcode, a, b Domain) Domain {
	switch a.(type) {
	case *Nil:
		return f.Nil()
	}
	switch b.(type) {
	case *Nil:
		return f.Nil()
	}

	if x, ok := a.(*Ambiguous); ok {
		return absorb(f, x, b)
	}
	if x, ok := b.(*Ambiguous); ok {
		return absorb(f, x, a)
	}

	if u, ok := a.(*Undefined); ok {
		return f.Undefined(f.binary(op, u.payload, unwrap(b)))
	}
	if u, ok := b.(*Undefined); ok {
		return f.Undefined(f.binary(op, a, u.payload))
	}

	switch {
	case a.IsNaN(), b.IsNaN():
		return f.NaN()
	case op == opDiv && f.Intersects(b, f.zero()):
		return f.NaN()
	}

	switch op {
	case opAnd, opOr, opXor, opShl, opShr:
		a, b = f.ToInteger(a), f.ToInteger(b)
	}

	if op == opShl || op == opShr {
		return f.shift(op, a, b)
	}

	switch a.(type) {
	case *Unlimited:
		return a
	}
	switch b.(type) {
	case *Unlimited:
		return b
	}

	switch b := b.(type) {
	case *Union:
		return f.Union(f.binary(op, a, b.lhs), f.binary(op, a, b.rhs))
	}
	switch a := a.(type) {
	case *Union:
		return f.Union(f.binary(op, a.lhs, b), f.binary(op, a.rhs, b))
	}

	switch op {
	case opMul:
		if d, ok := f.mulRanges(a, b); ok {
			return d
		}
	case opDiv:
		if d, ok := f.divRanges(a, b); ok {
			return d
		}
	}

	switch a := a.(type) {
	case *Intersection:
		return f.Intersection(f.binary(op, a.lhs, b), f.binary(op, a.rhs, b))
	}
	switch b := b.(type) {
	case *Intersection:
		return f.Intersection(f.binary(op, a, b.lhs), f.binary(op, a, b.rhs))
	}

	switch op {
	case opAdd:
		return f.add(a, b)
	case opMul:
		return f.mul(a, b)
	case opDiv:
		return f.div(a, b)
	case opAnd:
		return f.and(a, b)
	case opOr:
		if x, y, ok := points(a, b); ok {
			return f.EqualTo(x.Or(y))
		}
		return f.Unlimited()
	case opXor:
		if x, y, ok := points(a, b); ok {
			return f.EqualTo(x.Xor(y))
		}
		return f.Unlimited()
	}
	panic(errPatternMatch("arith", op, a, b))
}

func points(a, b Domain) (Value, Value, bool) {
	x, xok := a.(*EqualTo)
	y, yok := b.(*EqualTo)
	if xok && yok {
		return x.value, y.value, true
	}
	return Value{}, Value{}, false
}

// add combines two leaves:
//
//	(== x) + (== y) = (== x+y)
//	(== x) + (< y)  = (< x+y)
//	(== x) + (> y)  = (> x+y)
//	(< x)  + (< y)  = (< x+y-1) for integers, (< x+y) otherwise
//	(> x)  + (> y)  = (> x+y+1) for integers, (> x+y) otherwise
//	(< x)  + (> y)  = (unlimited)
func (f *Factory) add(a, b Domain) Domain {
	switch a := a.(type) {
	case *EqualTo:
		switch b := b.(type) {
		case *EqualTo:
			return f.EqualTo(a.value.Add(b.value))
		case *LessThan:
			return f.LessThan(a.value.Add(b.value))
		case *GreaterThan:
			return f.GreaterThan(a.value.Add(b.value))
		}
	case *LessThan:
		switch b := b.(type) {
		case *EqualTo:
			return f.LessThan(a.value.Add(b.value))
		case *LessThan:
			v := a.value.Add(b.value)
			if a.value.IsInteger() && b.value.IsInteger() {
				v = v.Pred()
			}
			return f.LessThan(v)
		case *GreaterThan:
			return f.Unlimited()
		}
	case *GreaterThan:
		switch b := b.(type) {
		case *EqualTo:
			return f.GreaterThan(a.value.Add(b.value))
		case *LessThan:
			return f.Unlimited()
		case *GreaterThan:
			v := a.value.Add(b.value)
			if a.value.IsInteger() && b.value.IsInteger() {
				v = v.Succ()
			}
			return f.GreaterThan(v)
		}
	}
	panic(errPatternMatch("add", a, b))
}

// mul combines two leaves. Scaling a half-line by a point flips it when the
// point is negative. The product of two half-lines is unlimited.
func (f *Factory) mul(a, b Domain) Domain {
	switch a := a.(type) {
	case *EqualTo:
		switch b := b.(type) {
		case *EqualTo:
			return f.EqualTo(a.value.Mul(b.value))
		case *LessThan:
			return f.scale(a.value, b.value, false)
		case *GreaterThan:
			return f.scale(a.value, b.value, true)
		}
	case *LessThan:
		switch b := b.(type) {
		case *EqualTo:
			return f.scale(b.value, a.value, false)
		case *LessThan, *GreaterThan:
			return f.Unlimited()
		}
	case *GreaterThan:
		switch b := b.(type) {
		case *EqualTo:
			return f.scale(b.value, a.value, true)
		case *LessThan, *GreaterThan:
			return f.Unlimited()
		}
	}
	panic(errPatternMatch("mul", a, b))
}

// scale computes k * (< v), or k * (> v) if above is set.
func (f *Factory) scale(k, v Value, above bool) Domain {
	p := k.Mul(v)
	switch k.Sign() {
	case 0:
		return f.EqualTo(p)
	case -1:
		above = !above
	}
	if above {
		return f.GreaterThan(p)
	}
	return f.LessThan(p)
}

// div combines two leaves when the divisor b is a half-line excluding zero.
// Dividing a point by b stays between zero and the point divided by the bound
// of b nearest to zero. Quotients of two half-lines are unlimited.
func (f *Factory) div(a, b Domain) Domain {
	switch a := a.(type) {
	case *EqualTo:
		var near Value
		switch b := b.(type) {
		case *LessThan:
			near, _ = b.Max()
		case *GreaterThan:
			near, _ = b.Min()
		default:
			panic(errPatternMatch("div", a, b))
		}
		r := a.value.Quo(near)
		z := Int(0)
		if r.IsReal() {
			z = Real(0)
		}
		return f.ClosedRange(minOf(z, r), maxOf(z, r))
	case *LessThan, *GreaterThan:
		switch b.(type) {
		case *LessThan, *GreaterThan:
			return f.Unlimited()
		}
	}
	panic(errPatternMatch("div", a, b))
}

// and combines two leaves. Masking with a non-negative point y keeps the
// result in [0, y].
func (f *Factory) and(a, b Domain) Domain {
	if x, y, ok := points(a, b); ok {
		return f.EqualTo(x.And(y))
	}
	for _, d := range [...]Domain{a, b} {
		if p, ok := d.(*EqualTo); ok && p.value.Sign() >= 0 {
			return f.ClosedRange(Int(0), p.value.Trunc())
		}
	}
	return f.Unlimited()
}

// shift computes a << b or a >> b. The operands are integers.
// Corners of the operand ranges bound the result, as shifting is monotone in
// each operand once the sign of the shifted value is fixed.
func (f *Factory) shift(op opcode, a, b Domain) Domain {
	alo, aminok := a.Min()
	ahi, amaxok := a.Max()
	slo, sminok := b.Min()
	shi, smaxok := b.Max()
	switch {
	case !aminok || !amaxok || !sminok || !smaxok:
		return f.Unlimited()
	case slo.Sign() < 0 || shi.Cmp(Int(maxShift)) > 0:
		return f.Unlimited()
	case op == opShr && f.lshr && alo.Sign() < 0:
		return f.Unlimited()
	}

	lo, _ := slo.Int64()
	hi, _ := shi.Int64()
	var corners []Value
	for _, v := range [...]Value{alo, ahi} {
		for _, s := range [...]uint{uint(lo), uint(hi)} {
			if op == opShl {
				corners = append(corners, v.Shl(s))
			} else {
				corners = append(corners, v.Shr(s))
			}
		}
	}
	rlo, rhi := corners[0], corners[0]
	for _, c := range corners[1:] {
		rlo, rhi = minOf(rlo, c), maxOf(rhi, c)
	}
	return f.ClosedRange(rlo, rhi)
}

func (f *Factory) unary(op opcode, a Domain) Domain {
	g := f.WithLogicalShr(a.LogicalShr())
	return f.cached(memoKey{op: op, lshr: g.lshr, lhs: a}, func() Domain {
		return g.unaryOp(op, a)
	})
}

func (f *Factory) unaryOp(op opcode, a Domain) Domain {
	switch a := a.(type) {
	case *Nil, *Ambiguous, *NaN, *Unlimited:
		return a
	case *Undefined:
		return f.Undefined(f.unary(op, a.payload))
	case *Intersection:
		return f.Intersection(f.unary(op, a.lhs), f.unary(op, a.rhs))
	case *Union:
		return f.Union(f.unary(op, a.lhs), f.unary(op, a.rhs))
	}

	switch op {
	case opNeg:
		switch a := a.(type) {
		case *EqualTo:
			return f.EqualTo(a.value.Neg())
		case *LessThan:
			return f.GreaterThan(a.value.Neg())
		case *GreaterThan:
			return f.LessThan(a.value.Neg())
		}
	case opNot:
		// ~x = -x-1 is decreasing.
		switch a := f.ToInteger(a).(type) {
		case *EqualTo:
			return f.EqualTo(a.value.Not())
		case *LessThan:
			return f.GreaterThan(a.value.Not())
		case *GreaterThan:
			return f.LessThan(a.value.Not())
		}
	case opToInteger:
		switch a := a.(type) {
		case *EqualTo:
			return f.EqualTo(a.value.Trunc())
		case *LessThan:
			v := a.value
			if v.IsInteger() {
				return a
			}
			if v.Sign() > 0 {
				return f.LessThan(v.Ceil())
			}
			return f.LessThan(v.Ceil().Add(Int(1)))
		case *GreaterThan:
			v := a.value
			if v.IsInteger() {
				return a
			}
			if v.Sign() < 0 {
				return f.GreaterThan(v.Floor())
			}
			return f.GreaterThan(v.Floor().Sub(Int(1)))
		}
	case opToReal:
		switch a := a.(type) {
		case *EqualTo:
			return f.EqualTo(a.value.ToReal())
		case *LessThan:
			return f.LessThan(a.value.ToReal())
		case *GreaterThan:
			return f.GreaterThan(a.value.ToReal())
		}
	}
	panic(errPatternMatch("unary", op, a))
}
