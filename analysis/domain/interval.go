package domain

import "golang.org/x/exp/slices"

// Interval-shaped domains (==, <, >, unlimited and the conjunction of a >
// and a <) are computed on through a bound representation. Every result is
// mapped back to the unique domain denoting it, so that equal sets render
// identically.
//
// When every finite bound involved in an operation is an integer, closed
// bounds are normalized to open ones:
//
//	[c, ...] = (c-1, ...)
//	[..., c] = (..., c+1)
//
// and (a, b) is empty whenever b - a <= 1.

// bound is one end of an interval.
type bound struct {
	value Value
	inf   bool
	open  bool
}

type interval struct {
	lo, hi bound
}

var unbounded = bound{inf: true}

func closed(v Value) bound { return bound{value: v} }
func open(v Value) bound   { return bound{value: v, open: true} }

// intervalOf computes the interval denoted by an interval-shaped domain.
func intervalOf(d Domain) (interval, bool) {
	switch d := d.(type) {
	case *Unlimited:
		return interval{unbounded, unbounded}, true
	case *EqualTo:
		return interval{closed(d.value), closed(d.value)}, true
	case *LessThan:
		return interval{unbounded, open(d.value)}, true
	case *GreaterThan:
		return interval{open(d.value), unbounded}, true
	case *Intersection:
		l, lok := intervalOf(d.lhs)
		r, rok := intervalOf(d.rhs)
		if lok && rok {
			return l.meet(r), true
		}
	}
	return interval{}, false
}

func (b bound) integral() bool {
	return b.inf || b.value.IsInteger()
}

func integral(ivs ...interval) bool {
	for _, iv := range ivs {
		if !iv.lo.integral() || !iv.hi.integral() {
			return false
		}
	}
	return true
}

// normalize opens the closed bounds of an integral interval.
func (iv interval) normalize() interval {
	if !iv.lo.inf && !iv.lo.open && iv.lo.value.IsInteger() {
		iv.lo = open(iv.lo.value.Pred())
	}
	if !iv.hi.inf && !iv.hi.open && iv.hi.value.IsInteger() {
		iv.hi = open(iv.hi.value.Succ())
	}
	return iv
}

// maxLo returns the tighter of two lower bounds.
func maxLo(a, b bound) bound {
	switch {
	case a.inf:
		return b
	case b.inf:
		return a
	}
	switch c := a.value.Cmp(b.value); {
	case c > 0:
		return a
	case c < 0:
		return b
	case a.open:
		return a
	}
	return b
}

// minLo returns the looser of two lower bounds.
func minLo(a, b bound) bound {
	switch {
	case a.inf:
		return a
	case b.inf:
		return b
	}
	switch c := a.value.Cmp(b.value); {
	case c < 0:
		return a
	case c > 0:
		return b
	case a.open:
		return b
	}
	return a
}

// minHi returns the tighter of two upper bounds.
func minHi(a, b bound) bound {
	switch {
	case a.inf:
		return b
	case b.inf:
		return a
	}
	switch c := a.value.Cmp(b.value); {
	case c < 0:
		return a
	case c > 0:
		return b
	case a.open:
		return a
	}
	return b
}

// maxHi returns the looser of two upper bounds.
func maxHi(a, b bound) bound {
	switch {
	case a.inf:
		return a
	case b.inf:
		return b
	}
	switch c := a.value.Cmp(b.value); {
	case c > 0:
		return a
	case c < 0:
		return b
	case a.open:
		return b
	}
	return a
}

// meet computes the intersection of two intervals.
func (iv interval) meet(o interval) interval {
	if integral(iv, o) {
		iv, o = iv.normalize(), o.normalize()
	}
	return interval{maxLo(iv.lo, o.lo), minHi(iv.hi, o.hi)}
}

// isEmpty checks that no value lies between the bounds.
func (iv interval) isEmpty() bool {
	if iv.lo.inf || iv.hi.inf {
		return false
	}
	if integral(iv) {
		iv = iv.normalize()
		return iv.hi.value.Sub(iv.lo.value).Cmp(Int(1)) <= 0
	}
	switch c := iv.lo.value.Cmp(iv.hi.value); {
	case c > 0:
		return true
	case c == 0:
		return iv.lo.open || iv.hi.open
	}
	return false
}

// point returns the only value of a singleton interval.
func (iv interval) point() (Value, bool) {
	if iv.lo.inf || iv.hi.inf {
		return Value{}, false
	}
	if integral(iv) {
		iv = iv.normalize()
		if iv.hi.value.Sub(iv.lo.value).Cmp(Int(2)) == 0 {
			return iv.lo.value.Succ(), true
		}
		return Value{}, false
	}
	if !iv.lo.open && !iv.hi.open && iv.lo.value.Cmp(iv.hi.value) == 0 {
		return iv.lo.value, true
	}
	return Value{}, false
}

// contains checks that every value of o lies in iv.
func (iv interval) contains(o interval) bool {
	if integral(iv, o) {
		iv, o = iv.normalize(), o.normalize()
	}
	return loLeq(iv.lo, o.lo) && hiGeq(iv.hi, o.hi)
}

func loLeq(a, b bound) bool {
	switch {
	case a.inf:
		return true
	case b.inf:
		return false
	}
	switch c := a.value.Cmp(b.value); {
	case c < 0:
		return true
	case c > 0:
		return false
	}
	return !a.open || b.open
}

func hiGeq(a, b bound) bool {
	switch {
	case a.inf:
		return true
	case b.inf:
		return false
	}
	switch c := a.value.Cmp(b.value); {
	case c > 0:
		return true
	case c < 0:
		return false
	}
	return !a.open || b.open
}

// loLess orders intervals by their lower bound.
func loLess(a, b bound) bool {
	switch {
	case a.inf:
		return !b.inf
	case b.inf:
		return false
	}
	switch c := a.value.Cmp(b.value); {
	case c < 0:
		return true
	case c > 0:
		return false
	}
	return !a.open && b.open
}

// touches checks that the hull of cur and next, where next does not start
// below cur, adds no value outside of them.
func touches(cur, next interval) bool {
	if cur.hi.inf || next.lo.inf {
		return true
	}
	switch c := cur.hi.value.Cmp(next.lo.value); {
	case c > 0:
		return true
	case c == 0:
		return !cur.hi.open && !next.lo.open
	}
	return false
}

// fromInterval builds the canonical domain denoting iv.
func (f *Factory) fromInterval(iv interval) Domain {
	if integral(iv) {
		iv = iv.normalize()
	}
	if iv.isEmpty() {
		return f.Nil()
	}
	if v, ok := iv.point(); ok {
		return f.EqualTo(v)
	}
	switch {
	case iv.lo.inf && iv.hi.inf:
		return f.Unlimited()
	case !iv.lo.inf && !iv.lo.open:
		return f.Union(f.EqualTo(iv.lo.value), f.fromInterval(interval{open(iv.lo.value), iv.hi}))
	case !iv.hi.inf && !iv.hi.open:
		return f.Union(f.EqualTo(iv.hi.value), f.fromInterval(interval{iv.lo, open(iv.hi.value)}))
	case iv.lo.inf:
		return f.LessThan(iv.hi.value)
	case iv.hi.inf:
		return f.GreaterThan(iv.lo.value)
	}
	return f.makeIntersection(f.GreaterThan(iv.lo.value), f.LessThan(iv.hi.value))
}

// pieces flattens a union of interval-shaped domains.
func pieces(d Domain, acc []interval) ([]interval, bool) {
	if u, ok := d.(*Union); ok {
		acc, ok := pieces(u.lhs, acc)
		if !ok {
			return nil, false
		}
		return pieces(u.rhs, acc)
	}
	iv, ok := intervalOf(d)
	if !ok {
		return nil, false
	}
	return append(acc, iv), true
}

// joinIntervals builds the canonical disjunction of the given intervals:
// pieces are sorted by lower bound and overlapping or adjacent pieces merged.
func (f *Factory) joinIntervals(ivs []interval) Domain {
	if integral(ivs...) {
		for i := range ivs {
			ivs[i] = ivs[i].normalize()
		}
	}
	slices.SortFunc(ivs, func(a, b interval) bool {
		return loLess(a.lo, b.lo)
	})

	merged := make([]interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.isEmpty() {
			continue
		}
		if n := len(merged); n > 0 && touches(merged[n-1], iv) {
			merged[n-1].hi = maxHi(merged[n-1].hi, iv.hi)
			continue
		}
		merged = append(merged, iv)
	}

	if len(merged) == 0 {
		return f.Nil()
	}
	acc := f.fromInterval(merged[0])
	for _, iv := range merged[1:] {
		acc = f.makeUnion(acc, f.fromInterval(iv))
		if acc.IsAmbiguous() {
			break
		}
	}
	return acc
}
