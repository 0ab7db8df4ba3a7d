package domain

// ComplexityLimit is the complexity at which composite construction gives up
// and produces an Ambiguous domain.
const ComplexityLimit = 16

// Config holds the analysis-wide settings of a Factory.
type Config struct {
	// LogicalShr is the right shift semantics of freshly built domains.
	LogicalShr bool
}

// Factory builds and combines domains. It owns the memo tables of one
// analysis session. Factories are not safe for concurrent use.
type Factory struct {
	lshr bool
	memo *memo
}

// NewFactory creates a factory with empty memo tables.
func NewFactory(cfg Config) *Factory {
	return &Factory{lshr: cfg.LogicalShr, memo: newMemo()}
}

// LogicalShr returns the right shift semantics of domains built by f.
func (f *Factory) LogicalShr() bool {
	return f.lshr
}

// WithLogicalShr returns a view of the factory building domains with the
// given right shift semantics. The view shares the memo tables of f.
func (f *Factory) WithLogicalShr(lshr bool) *Factory {
	if f.lshr == lshr {
		return f
	}
	return &Factory{lshr: lshr, memo: f.memo}
}

// ClearMemos drops every memoized construction and operation result.
func (f *Factory) ClearMemos() {
	f.memo.clear()
}

// Stats reports how the memo tables have been used since the last clear.
func (f *Factory) Stats() Stats {
	s := f.memo.stats
	s.Entries = f.memo.table.Len()
	return s
}

// cached memoizes compute under k. The result always carries the right shift
// semantics of k, even when compute returns one of its operands.
func (f *Factory) cached(k memoKey, compute func() Domain) Domain {
	return f.memo.lookup(k, func() Domain {
		return f.WithLogicalShr(k.lshr).Relabel(compute())
	})
}

// combined returns the factory view for the result of a binary operation.
// A result has logical right shifts only if both operands do.
func (f *Factory) combined(a, b Domain) *Factory {
	return f.WithLogicalShr(a.LogicalShr() && b.LogicalShr())
}

// Nil builds the empty domain.
func (f *Factory) Nil() Domain {
	return f.cached(memoKey{op: opNil, lshr: f.lshr}, func() Domain {
		return &Nil{newBase(f.lshr, "(nil)")}
	})
}

// Unlimited builds the domain of every value.
func (f *Factory) Unlimited() Domain {
	return f.cached(memoKey{op: opUnlimited, lshr: f.lshr}, func() Domain {
		return &Unlimited{newBase(f.lshr, "(unlimited)")}
	})
}

// NaN builds the domain of every value, flagged as the outcome of an invalid
// operation such as a division by zero.
func (f *Factory) NaN() Domain {
	return f.cached(memoKey{op: opNaN, lshr: f.lshr}, func() Domain {
		return &NaN{newBase(f.lshr, "(NaN)")}
	})
}

// EqualTo builds the domain {v}. It panics if v is absent.
func (f *Factory) EqualTo(v Value) Domain {
	mustBeValid(v, "EqualTo")
	return f.cached(memoKey{op: opEqualTo, lshr: f.lshr, val: v}, func() Domain {
		return &EqualTo{newBase(f.lshr, "(== "+v.String()+")"), v}
	})
}

// LessThan builds the domain of values strictly below v. It panics if v is
// absent.
func (f *Factory) LessThan(v Value) Domain {
	mustBeValid(v, "LessThan")
	return f.cached(memoKey{op: opLessThan, lshr: f.lshr, val: v}, func() Domain {
		return &LessThan{newBase(f.lshr, "(< "+v.String()+")"), v}
	})
}

// GreaterThan builds the domain of values strictly above v. It panics if v
// is absent.
func (f *Factory) GreaterThan(v Value) Domain {
	mustBeValid(v, "GreaterThan")
	return f.cached(memoKey{op: opGreaterThan, lshr: f.lshr, val: v}, func() Domain {
		return &GreaterThan{newBase(f.lshr, "(> "+v.String()+")"), v}
	})
}

// Ambiguous builds the absorbing domain of abandoned precision.
func (f *Factory) Ambiguous(undefined bool) Domain {
	aux := 0
	str := "(ambiguous)"
	if undefined {
		aux, str = 1, "(ambiguous undefined)"
	}
	return f.cached(memoKey{op: opAmbiguous, lshr: f.lshr, aux: aux}, func() Domain {
		return &Ambiguous{newBase(f.lshr, str), undefined}
	})
}

// Undefined marks d as possibly uninitialized. Wrapping is idempotent, and an
// Ambiguous payload stays Ambiguous with its undefined flag set.
func (f *Factory) Undefined(d Domain) Domain {
	switch d := d.(type) {
	case *Undefined:
		return d
	case *Ambiguous:
		if d.undefined {
			return d
		}
		return f.WithLogicalShr(d.lshr).Ambiguous(true)
	}
	return f.cached(memoKey{op: opUndefined, lshr: d.LogicalShr(), lhs: d}, func() Domain {
		return &Undefined{newBase(d.LogicalShr(), "(undefined "+d.String()+")"), d}
	})
}

// NotEqualTo builds the domain of all values but v.
func (f *Factory) NotEqualTo(v Value) Domain {
	return f.Inversion(f.EqualTo(v))
}

// LessThanOrEqualTo builds the domain of values not above v.
func (f *Factory) LessThanOrEqualTo(v Value) Domain {
	return f.Union(f.LessThan(v), f.EqualTo(v))
}

// GreaterThanOrEqualTo builds the domain of values not below v.
func (f *Factory) GreaterThanOrEqualTo(v Value) Domain {
	return f.Union(f.GreaterThan(v), f.EqualTo(v))
}

// ClosedRange builds the domain of values in [lo, hi].
func (f *Factory) ClosedRange(lo, hi Value) Domain {
	mustBeValid(lo, "ClosedRange")
	mustBeValid(hi, "ClosedRange")
	return f.fromInterval(interval{closed(lo), closed(hi)})
}

// OfTrue is the boolean result "definitely true".
func (f *Factory) OfTrue() Domain { return f.EqualTo(Int(1)) }

// OfFalse is the boolean result "definitely false".
func (f *Factory) OfFalse() Domain { return f.EqualTo(Int(0)) }

// OfUnlimited is the boolean result "either".
func (f *Factory) OfUnlimited() Domain { return f.Unlimited() }

// OfNil is the boolean result of comparing with an impossible value.
func (f *Factory) OfNil() Domain { return f.Nil() }

func (f *Factory) zero() Domain { return f.EqualTo(Int(0)) }

// makeIntersection builds the conjunction of a and b in canonical order,
// giving up when the complexity ceiling is reached.
func (f *Factory) makeIntersection(a, b Domain) Domain {
	a, b = f.Relabel(a), f.Relabel(b)
	if b.String() < a.String() {
		a, b = b, a
	}
	c := 1 + max(a.Complexity(), b.Complexity())
	if c >= ComplexityLimit {
		return f.Ambiguous(a.IsUndefined() || b.IsUndefined())
	}
	return f.cached(memoKey{op: opMakeIntersection, lshr: f.lshr, lhs: a, rhs: b}, func() Domain {
		return &Intersection{
			base:       newBase(f.lshr, "("+a.String()+" && "+b.String()+")"),
			lhs:        a,
			rhs:        b,
			complexity: c,
		}
	})
}

// makeUnion builds the disjunction of a and b in canonical order,
// giving up when the complexity ceiling is reached.
func (f *Factory) makeUnion(a, b Domain) Domain {
	a, b = f.Relabel(a), f.Relabel(b)
	if b.String() < a.String() {
		a, b = b, a
	}
	c := 1 + max(a.Complexity(), b.Complexity())
	if c >= ComplexityLimit {
		return f.Ambiguous(a.IsUndefined() || b.IsUndefined())
	}
	return f.cached(memoKey{op: opMakeUnion, lshr: f.lshr, lhs: a, rhs: b}, func() Domain {
		return &Union{
			base:       newBase(f.lshr, "("+a.String()+" || "+b.String()+")"),
			lhs:        a,
			rhs:        b,
			complexity: c,
		}
	})
}

// ordered returns the operands of a commutative operation in canonical order.
func ordered(a, b Domain) (Domain, Domain) {
	if b.String() < a.String() {
		return b, a
	}
	return a, b
}

// Relabel rebuilds d with the right shift semantics of f.
func (f *Factory) Relabel(d Domain) Domain {
	if d.LogicalShr() == f.lshr {
		return d
	}
	switch d := d.(type) {
	case *Nil:
		return f.Nil()
	case *Unlimited:
		return f.Unlimited()
	case *NaN:
		return f.NaN()
	case *EqualTo:
		return f.EqualTo(d.value)
	case *LessThan:
		return f.LessThan(d.value)
	case *GreaterThan:
		return f.GreaterThan(d.value)
	case *Intersection:
		return f.makeIntersection(f.Relabel(d.lhs), f.Relabel(d.rhs))
	case *Union:
		return f.makeUnion(f.Relabel(d.lhs), f.Relabel(d.rhs))
	case *Undefined:
		return f.Undefined(f.Relabel(d.payload))
	case *Ambiguous:
		return f.Ambiguous(d.undefined)
	}
	panic(errPatternMatch("Relabel", d))
}
