package domain

// Narrow refines d given that "d op operand" was found to hold.
// Ambiguous domains are left unchanged, and Undefined domains stay wrapped.
func (f *Factory) Narrow(d Domain, op Operator, operand Domain) Domain {
	g := f.combined(d, operand)
	return f.cached(memoKey{op: opNarrow, lshr: g.lshr, lhs: d, rhs: operand, aux: int(op)}, func() Domain {
		return g.narrow(d, op, operand)
	})
}

func (f *Factory) narrow(d Domain, op Operator, operand Domain) Domain {
	switch d := d.(type) {
	case *Ambiguous:
		return d
	case *Undefined:
		return f.Undefined(f.Narrow(d.payload, op, operand))
	}

	switch operand := unwrap(operand).(type) {
	case *Nil:
		return f.Nil()
	case *Ambiguous, *Unlimited, *NaN:
		return d
	default:
		switch op {
		case EQ:
			return f.Intersection(d, operand)
		case NE:
			if p, ok := operand.(*EqualTo); ok {
				return f.Intersection(d, f.Inversion(p))
			}
			return d
		case LT:
			if m, ok := operand.Max(); ok {
				return f.Intersection(d, f.LessThan(m))
			}
			return d
		case GT:
			if m, ok := operand.Min(); ok {
				return f.Intersection(d, f.GreaterThan(m))
			}
			return d
		case LE:
			return f.Union(f.Narrow(d, LT, operand), f.Narrow(d, EQ, operand))
		case GE:
			return f.Union(f.Narrow(d, GT, operand), f.Narrow(d, EQ, operand))
		}
	}
	panic(errPatternMatch("Narrow", d, op, operand))
}

// Widen grows d toward the constraint "op operand" at a loop back-edge:
// the result is d joined with Unlimited narrowed by the constraint.
func (f *Factory) Widen(d Domain, op Operator, operand Domain) Domain {
	g := f.combined(d, operand)
	return f.cached(memoKey{op: opWiden, lshr: g.lshr, lhs: d, rhs: operand, aux: int(op)}, func() Domain {
		return g.widen(d, op, operand)
	})
}

func (f *Factory) widen(d Domain, op Operator, operand Domain) Domain {
	switch d := d.(type) {
	case *Ambiguous:
		return d
	case *Undefined:
		return f.Undefined(f.Widen(d.payload, op, operand))
	}

	switch op {
	case LE:
		return f.Union(f.Widen(d, LT, operand), f.Widen(d, EQ, operand))
	case GE:
		return f.Union(f.Widen(d, GT, operand), f.Widen(d, EQ, operand))
	}
	return f.Union(d, f.Narrow(f.Unlimited(), op, operand))
}
