package domain

// Comparisons and logical connectives evaluate to a domain: OfTrue, OfFalse,
// OfUnlimited when either outcome is possible, or OfNil when an operand is
// empty.

// Lt, Gt, Eq and Ne compare a and b.
func (f *Factory) Lt(a, b Domain) Domain { return f.comparison(opLt, a, b) }
func (f *Factory) Gt(a, b Domain) Domain { return f.Lt(b, a) }
func (f *Factory) Eq(a, b Domain) Domain { return f.comparison(opEq, a, b) }
func (f *Factory) Ne(a, b Domain) Domain { return f.LogicalNot(f.Eq(a, b)) }

// Le computes a <= b as (a < b) || (a == b).
func (f *Factory) Le(a, b Domain) Domain { return f.LogicalOr(f.Lt(a, b), f.Eq(a, b)) }

// Ge computes a >= b as b <= a.
func (f *Factory) Ge(a, b Domain) Domain { return f.Le(b, a) }

// Compare evaluates a op b.
func (f *Factory) Compare(op Operator, a, b Domain) Domain {
	switch op {
	case EQ:
		return f.Eq(a, b)
	case NE:
		return f.Ne(a, b)
	case LT:
		return f.Lt(a, b)
	case GT:
		return f.Gt(a, b)
	case LE:
		return f.Le(a, b)
	case GE:
		return f.Ge(a, b)
	}
	panic(errPatternMatch("Compare", op))
}

func (f *Factory) comparison(op opcode, a, b Domain) Domain {
	g := f.combined(a, b)
	return f.cached(memoKey{op: op, lshr: g.lshr, lhs: a, rhs: b}, func() Domain {
		return g.compare(op, a, b)
	})
}

func (f *Factory) compare(op opcode, a, b Domain) Domain {
	switch {
	case a.IsEmpty() && !a.IsUndefined(), b.IsEmpty() && !b.IsUndefined():
		return f.OfNil()
	case a.IsAmbiguous(), b.IsAmbiguous():
		return f.OfUnlimited()
	}

	if u, ok := a.(*Undefined); ok {
		return f.Undefined(f.comparison(op, u.payload, unwrap(b)))
	}
	if u, ok := b.(*Undefined); ok {
		return f.Undefined(f.comparison(op, a, u.payload))
	}

	if isTop(a) || isTop(b) {
		return f.OfUnlimited()
	}

	// A disjunction compares definitely only if all of its parts agree.
	switch b := b.(type) {
	case *Union:
		return f.agree(f.comparison(op, a, b.lhs), f.comparison(op, a, b.rhs))
	}
	switch a := a.(type) {
	case *Union:
		return f.agree(f.comparison(op, a.lhs, b), f.comparison(op, a.rhs, b))
	}

	switch op {
	case opLt:
		alo, ahi, aok := bounds(a)
		blo, bhi, bok := bounds(b)
		if !aok || !bok {
			return f.OfUnlimited()
		}
		switch {
		case ahi.Cmp(blo) < 0:
			return f.OfTrue()
		case alo.Cmp(bhi) >= 0:
			return f.OfFalse()
		}
		return f.OfUnlimited()
	case opEq:
		x, y, ok := points(a, b)
		switch {
		case ok && x.Cmp(y) == 0:
			return f.OfTrue()
		case !f.Intersects(a, b):
			return f.OfFalse()
		}
		return f.OfUnlimited()
	}
	panic(errPatternMatch("compare", op, a, b))
}

func (f *Factory) agree(x, y Domain) Domain {
	if x.Equal(y) {
		return x
	}
	return f.OfUnlimited()
}

type truth uint8

const (
	maybe truth = iota
	definitelyTrue
	definitelyFalse
)

// truthOf applies C truthiness to a domain: zero is false, anything else is
// true.
func (f *Factory) truthOf(d Domain) truth {
	if lo, hi, ok := bounds(d); ok && lo.Sign() == 0 && hi.Sign() == 0 {
		return definitelyFalse
	}
	if !f.Intersects(d, f.zero()) {
		return definitelyTrue
	}
	return maybe
}

// LogicalAnd and LogicalOr compute the short-circuit operators && and ||.
func (f *Factory) LogicalAnd(a, b Domain) Domain { return f.logical(opLogicalAnd, a, b) }
func (f *Factory) LogicalOr(a, b Domain) Domain  { return f.logical(opLogicalOr, a, b) }

// LogicalNot computes !a.
func (f *Factory) LogicalNot(a Domain) Domain {
	g := f.WithLogicalShr(a.LogicalShr())
	return f.cached(memoKey{op: opLogicalNot, lshr: g.lshr, lhs: a}, func() Domain {
		switch {
		case a.IsEmpty() && !a.IsUndefined():
			return g.OfNil()
		case a.IsAmbiguous():
			return g.OfUnlimited()
		}
		if u, ok := a.(*Undefined); ok {
			return g.Undefined(g.LogicalNot(u.payload))
		}
		switch g.truthOf(a) {
		case definitelyTrue:
			return g.OfFalse()
		case definitelyFalse:
			return g.OfTrue()
		}
		return g.OfUnlimited()
	})
}

func (f *Factory) logical(op opcode, a, b Domain) Domain {
	g := f.combined(a, b)
	return f.cached(memoKey{op: op, lshr: g.lshr, lhs: a, rhs: b}, func() Domain {
		switch {
		case a.IsEmpty() && !a.IsUndefined(), b.IsEmpty() && !b.IsUndefined():
			return g.OfNil()
		case a.IsAmbiguous(), b.IsAmbiguous():
			return g.OfUnlimited()
		}
		if u, ok := a.(*Undefined); ok {
			return g.Undefined(g.logical(op, u.payload, unwrap(b)))
		}
		if u, ok := b.(*Undefined); ok {
			return g.Undefined(g.logical(op, a, u.payload))
		}

		ta, tb := g.truthOf(a), g.truthOf(b)
		switch op {
		case opLogicalAnd:
			switch {
			case ta == definitelyFalse || tb == definitelyFalse:
				return g.OfFalse()
			case ta == definitelyTrue && tb == definitelyTrue:
				return g.OfTrue()
			}
		case opLogicalOr:
			switch {
			case ta == definitelyTrue || tb == definitelyTrue:
				return g.OfTrue()
			case ta == definitelyFalse && tb == definitelyFalse:
				return g.OfFalse()
			}
		}
		return g.OfUnlimited()
	})
}
