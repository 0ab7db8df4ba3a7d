package domain

// isTop holds for the domains containing every value.
func isTop(d Domain) bool {
	switch d.(type) {
	case *Unlimited, *NaN, *Ambiguous:
		return true
	}
	return false
}

// Contains checks that every value of b is a value of a. The flags are
// ordered too: a NaN, Ambiguous or Undefined b is only contained in an a
// carrying the same flag.
func (f *Factory) Contains(a, b Domain) bool {
	if a.Equal(b) {
		return true
	}
	if b.IsUndefined() && !a.IsUndefined() {
		return false
	}

	switch b.(type) {
	case *Nil:
		return true
	case *Ambiguous:
		_, ok := a.(*Ambiguous)
		return ok
	}
	switch a.(type) {
	case *Nil:
		return false
	case *Ambiguous:
		return true
	}

	a, b = unwrap(a), unwrap(b)
	if a.Equal(b) {
		return true
	}
	switch b.(type) {
	case *Nil:
		return true
	case *NaN:
		return false
	}
	switch a.(type) {
	case *Nil:
		return false
	case *Unlimited, *NaN:
		return true
	}
	switch b.(type) {
	case *Unlimited:
		return false
	}

	if ia, ok := intervalOf(a); ok {
		if ib, ok := intervalOf(b); ok {
			return ia.contains(ib)
		}
	}

	switch b := b.(type) {
	case *Union:
		return f.Contains(a, b.lhs) && f.Contains(a, b.rhs)
	case *Intersection:
		if f.Contains(a, b.lhs) || f.Contains(a, b.rhs) {
			return true
		}
	}
	switch a := a.(type) {
	case *Intersection:
		return f.Contains(a.lhs, b) && f.Contains(a.rhs, b)
	case *Union:
		return f.Contains(a.lhs, b) || f.Contains(a.rhs, b)
	}
	return false
}

// Intersects checks that a and b share at least one value.
func (f *Factory) Intersects(a, b Domain) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	a, b = unwrap(a), unwrap(b)
	if isTop(a) || isTop(b) {
		return true
	}

	switch b := b.(type) {
	case *Union:
		return f.Intersects(a, b.lhs) || f.Intersects(a, b.rhs)
	}
	switch a := a.(type) {
	case *Union:
		return f.Intersects(a.lhs, b) || f.Intersects(a.rhs, b)
	}

	if ia, ok := intervalOf(a); ok {
		if ib, ok := intervalOf(b); ok {
			return !ia.meet(ib).isEmpty()
		}
	}

	switch a := a.(type) {
	case *Intersection:
		return f.Intersects(a.lhs, b) && f.Intersects(a.rhs, b)
	}
	switch b := b.(type) {
	case *Intersection:
		return f.Intersects(a, b.lhs) && f.Intersects(a, b.rhs)
	}
	panic(errPatternMatch("Intersects", a, b))
}

// Intersection computes the meet a ∧ b.
func (f *Factory) Intersection(a, b Domain) Domain {
	a, b = ordered(a, b)
	g := f.combined(a, b)
	return f.cached(memoKey{op: opIntersection, lshr: g.lshr, lhs: a, rhs: b}, func() Domain {
		return g.intersection(a, b)
	})
}

func (f *Factory) intersection(a, b Domain) Domain {
	switch a.(type) {
	case *Nil:
		return a
	}
	switch b.(type) {
	case *Nil:
		return b
	}

	if x, ok := a.(*Ambiguous); ok {
		return absorb(f, x, b)
	}
	if x, ok := b.(*Ambiguous); ok {
		return absorb(f, x, a)
	}

	if u, ok := a.(*Undefined); ok {
		return f.Undefined(f.Intersection(u.payload, unwrap(b)))
	}
	if u, ok := b.(*Undefined); ok {
		return f.Undefined(f.Intersection(a, u.payload))
	}

	switch a.(type) {
	case *NaN:
		if _, ok := b.(*Unlimited); ok {
			return a
		}
		return b
	case *Unlimited:
		return b
	}
	switch b.(type) {
	case *NaN:
		if _, ok := a.(*Unlimited); ok {
			return b
		}
		return a
	case *Unlimited:
		return a
	}

	switch {
	case f.Contains(a, b):
		return b
	case f.Contains(b, a):
		return a
	case !f.Intersects(a, b):
		return f.Nil()
	}

	switch b := b.(type) {
	case *Union:
		return f.Union(f.Intersection(a, b.lhs), f.Intersection(a, b.rhs))
	}
	switch a := a.(type) {
	case *Union:
		return f.Union(f.Intersection(a.lhs, b), f.Intersection(a.rhs, b))
	}

	if ia, ok := intervalOf(a); ok {
		if ib, ok := intervalOf(b); ok {
			return f.fromInterval(ia.meet(ib))
		}
	}
	return f.makeIntersection(a, b)
}

// Union computes the join a ∨ b.
func (f *Factory) Union(a, b Domain) Domain {
	a, b = ordered(a, b)
	g := f.combined(a, b)
	return f.cached(memoKey{op: opUnion, lshr: g.lshr, lhs: a, rhs: b}, func() Domain {
		return g.union(a, b)
	})
}

func (f *Factory) union(a, b Domain) Domain {
	switch a.(type) {
	case *Nil:
		return b
	}
	switch b.(type) {
	case *Nil:
		return a
	}

	if x, ok := a.(*Ambiguous); ok {
		return absorb(f, x, b)
	}
	if x, ok := b.(*Ambiguous); ok {
		return absorb(f, x, a)
	}

	if u, ok := a.(*Undefined); ok {
		return f.Undefined(f.Union(u.payload, unwrap(b)))
	}
	if u, ok := b.(*Undefined); ok {
		return f.Undefined(f.Union(a, u.payload))
	}

	switch {
	case a.IsNaN():
		return f.NaN()
	case b.IsNaN():
		return f.NaN()
	}
	switch a.(type) {
	case *Unlimited:
		return a
	}
	switch b.(type) {
	case *Unlimited:
		return b
	}

	switch {
	case f.Contains(a, b):
		return a
	case f.Contains(b, a):
		return b
	}

	if ivs, ok := pieces(a, nil); ok {
		if ivs, ok := pieces(b, ivs); ok {
			return f.joinIntervals(ivs)
		}
	}
	return f.makeUnion(a, b)
}

// absorb combines an Ambiguous domain with another operand: the result is
// Ambiguous, undefined if either side is.
func absorb(f *Factory, x *Ambiguous, other Domain) Domain {
	if x.undefined || !other.IsUndefined() {
		return x
	}
	return f.WithLogicalShr(x.lshr).Ambiguous(true)
}

// Inversion computes the complement of a.
func (f *Factory) Inversion(a Domain) Domain {
	return f.cached(memoKey{op: opInversion, lshr: a.LogicalShr(), lhs: a}, func() Domain {
		return f.WithLogicalShr(a.LogicalShr()).inversion(a)
	})
}

func (f *Factory) inversion(a Domain) Domain {
	switch a := a.(type) {
	case *Nil:
		return f.Unlimited()
	case *Unlimited, *NaN:
		return f.Nil()
	case *EqualTo:
		return f.Union(f.LessThan(a.value), f.GreaterThan(a.value))
	case *LessThan:
		return f.Union(f.GreaterThan(a.value), f.EqualTo(a.value))
	case *GreaterThan:
		return f.Union(f.LessThan(a.value), f.EqualTo(a.value))
	case *Intersection:
		return f.Union(f.Inversion(a.lhs), f.Inversion(a.rhs))
	case *Union:
		return f.Intersection(f.Inversion(a.lhs), f.Inversion(a.rhs))
	case *Undefined:
		return f.Undefined(f.Inversion(a.payload))
	case *Ambiguous:
		return a
	}
	panic(errPatternMatch("Inversion", a))
}
