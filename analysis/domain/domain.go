package domain

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sjas/adlint-sub000/utils"
)

// Domain is an immutable abstract representation of the set of values a C
// scalar expression may hold. The set of implementations is closed:
//
//	*Nil          no value (bottom)
//	*Unlimited    every value (top)
//	*NaN          every value, flagged as the result of an invalid operation
//	*EqualTo      a single value
//	*LessThan     the open half-line below a value
//	*GreaterThan  the open half-line above a value
//	*Intersection the conjunction of two domains
//	*Union        the disjunction of two domains
//	*Undefined    a domain whose storage may never have been written
//	*Ambiguous    abandoned precision
//
// Domains are created and combined through a Factory.
type Domain interface {
	fmt.Stringer
	utils.HashableEq[Domain]

	// IsEmpty holds for the empty domain only.
	IsEmpty() bool
	// IsNaN reports whether the domain may be the result of an invalid
	// operation.
	IsNaN() bool
	// IsUndefined reports whether the underlying storage may be uninitialized.
	IsUndefined() bool
	// IsAmbiguous holds for domains whose precision has been abandoned.
	IsAmbiguous() bool
	// Min returns the least value of the domain, unless it is unbounded below.
	Min() (Value, bool)
	// Max returns the greatest value of the domain, unless it is unbounded above.
	Max() (Value, bool)
	// Complexity is 1 for leaves and 1+max(children) for composites.
	Complexity() int
	// LogicalShr reports whether right shifts of the domain are logical.
	LogicalShr() bool
	// Includes reports whether the concrete value v is a member of the domain.
	Includes(v Value) bool
	// EachSample yields a finite, deduplicated set of representative values
	// until yield returns false.
	EachSample(yield func(Value) bool)

	domain()
}

// base carries the configuration bit and the canonical rendering shared by
// every variant. Equality and hashing are defined by the rendering.
type base struct {
	lshr bool
	str  string
	hash uint32
}

func newBase(lshr bool, str string) base {
	return base{lshr: lshr, str: str, hash: utils.HashString(str)}
}

func (b *base) String() string    { return b.str }
func (b *base) Hash() uint32      { return b.hash }
func (b *base) LogicalShr() bool  { return b.lshr }
func (b *base) IsEmpty() bool     { return false }
func (b *base) IsNaN() bool       { return false }
func (b *base) IsUndefined() bool { return false }
func (b *base) IsAmbiguous() bool { return false }
func (b *base) Complexity() int   { return 1 }
func (b *base) domain()           {}

func (b *base) Equal(o Domain) bool {
	return o != nil && b.hash == o.Hash() && b.str == o.String()
}

func (b *base) Min() (Value, bool) { return Value{}, false }
func (b *base) Max() (Value, bool) { return Value{}, false }

type (
	// Nil is the empty domain.
	Nil struct{ base }
	// Unlimited is the domain of every value.
	Unlimited struct{ base }
	// NaN is Unlimited, flagged as the result of an invalid operation such
	// as a division by a domain that may be zero.
	NaN struct{ base }
	// EqualTo is the domain of a single value.
	EqualTo struct {
		base
		value Value
	}
	// LessThan is the domain of all values strictly below a bound.
	LessThan struct {
		base
		value Value
	}
	// GreaterThan is the domain of all values strictly above a bound.
	GreaterThan struct {
		base
		value Value
	}
	// Intersection is the conjunction of two domains.
	Intersection struct {
		base
		lhs, rhs   Domain
		complexity int
	}
	// Union is the disjunction of two domains.
	Union struct {
		base
		lhs, rhs   Domain
		complexity int
	}
	// Undefined wraps a domain whose storage may never have been written.
	Undefined struct {
		base
		payload Domain
	}
	// Ambiguous is the absorbing element produced when precision is abandoned.
	Ambiguous struct {
		base
		undefined bool
	}
)

func (*Nil) IsEmpty() bool           { return true }
func (*Nil) Includes(Value) bool     { return false }
func (*Nil) EachSample(func(Value) bool) {}

func (*Unlimited) Includes(Value) bool { return true }
func (*Unlimited) EachSample(yield func(Value) bool) {
	yield(Int(0))
}

func (*NaN) IsNaN() bool                 { return true }
func (*NaN) Includes(Value) bool         { return true }
func (*NaN) EachSample(func(Value) bool) {}

// Value returns the single member of the domain.
func (d *EqualTo) Value() Value            { return d.value }
func (d *EqualTo) Min() (Value, bool)      { return d.value, true }
func (d *EqualTo) Max() (Value, bool)      { return d.value, true }
func (d *EqualTo) Includes(v Value) bool   { return d.value.Cmp(v) == 0 }
func (d *EqualTo) EachSample(yield func(Value) bool) {
	yield(d.value)
}

// Bound returns the excluded upper bound.
func (d *LessThan) Bound() Value          { return d.value }
func (d *LessThan) Max() (Value, bool)    { return d.value.Pred(), true }
func (d *LessThan) Includes(v Value) bool { return v.Cmp(d.value) < 0 }
func (d *LessThan) EachSample(yield func(Value) bool) {
	yield(d.value.Pred())
}

// Bound returns the excluded lower bound.
func (d *GreaterThan) Bound() Value          { return d.value }
func (d *GreaterThan) Min() (Value, bool)    { return d.value.Succ(), true }
func (d *GreaterThan) Includes(v Value) bool { return v.Cmp(d.value) > 0 }
func (d *GreaterThan) EachSample(yield func(Value) bool) {
	yield(d.value.Succ())
}

// Operands returns the canonically ordered pair of conjuncts.
func (d *Intersection) Operands() (Domain, Domain) { return d.lhs, d.rhs }
func (d *Intersection) Complexity() int            { return d.complexity }
func (d *Intersection) IsNaN() bool                { return d.lhs.IsNaN() && d.rhs.IsNaN() }
func (d *Intersection) IsUndefined() bool {
	return d.lhs.IsUndefined() || d.rhs.IsUndefined()
}

func (d *Intersection) Min() (Value, bool) {
	l, lok := d.lhs.Min()
	r, rok := d.rhs.Min()
	switch {
	case lok && rok:
		return maxOf(l, r), true
	case lok:
		return l, true
	}
	return r, rok
}

func (d *Intersection) Max() (Value, bool) {
	l, lok := d.lhs.Max()
	r, rok := d.rhs.Max()
	switch {
	case lok && rok:
		return minOf(l, r), true
	case lok:
		return l, true
	}
	return r, rok
}

func (d *Intersection) Includes(v Value) bool {
	return d.lhs.Includes(v) && d.rhs.Includes(v)
}

func (d *Intersection) EachSample(yield func(Value) bool) {
	var seen []Value
	each := func(v Value) bool {
		if !d.Includes(v) || slices.IndexFunc(seen, v.Equal) >= 0 {
			return true
		}
		seen = append(seen, v)
		return yield(v)
	}
	cont := true
	d.lhs.EachSample(func(v Value) bool {
		cont = each(v)
		return cont
	})
	if cont {
		d.rhs.EachSample(each)
	}
}

// Operands returns the canonically ordered pair of disjuncts.
func (d *Union) Operands() (Domain, Domain) { return d.lhs, d.rhs }
func (d *Union) Complexity() int            { return d.complexity }
func (d *Union) IsNaN() bool                { return d.lhs.IsNaN() || d.rhs.IsNaN() }
func (d *Union) IsUndefined() bool {
	return d.lhs.IsUndefined() || d.rhs.IsUndefined()
}

func (d *Union) Min() (Value, bool) {
	l, lok := d.lhs.Min()
	r, rok := d.rhs.Min()
	if lok && rok {
		return minOf(l, r), true
	}
	return Value{}, false
}

func (d *Union) Max() (Value, bool) {
	l, lok := d.lhs.Max()
	r, rok := d.rhs.Max()
	if lok && rok {
		return maxOf(l, r), true
	}
	return Value{}, false
}

func (d *Union) Includes(v Value) bool {
	return d.lhs.Includes(v) || d.rhs.Includes(v)
}

func (d *Union) EachSample(yield func(Value) bool) {
	var seen []Value
	each := func(v Value) bool {
		if slices.IndexFunc(seen, v.Equal) >= 0 {
			return true
		}
		seen = append(seen, v)
		return yield(v)
	}
	cont := true
	d.lhs.EachSample(func(v Value) bool {
		cont = each(v)
		return cont
	})
	if cont {
		d.rhs.EachSample(each)
	}
}

// Domain returns the wrapped payload.
func (d *Undefined) Domain() Domain                    { return d.payload }
func (d *Undefined) IsUndefined() bool                 { return true }
func (d *Undefined) IsEmpty() bool                     { return d.payload.IsEmpty() }
func (d *Undefined) IsNaN() bool                       { return d.payload.IsNaN() }
func (d *Undefined) Complexity() int                   { return d.payload.Complexity() }
func (d *Undefined) Min() (Value, bool)                { return d.payload.Min() }
func (d *Undefined) Max() (Value, bool)                { return d.payload.Max() }
func (d *Undefined) Includes(v Value) bool             { return d.payload.Includes(v) }
func (d *Undefined) EachSample(yield func(Value) bool) { d.payload.EachSample(yield) }

func (d *Ambiguous) IsAmbiguous() bool           { return true }
func (d *Ambiguous) IsUndefined() bool           { return d.undefined }
func (d *Ambiguous) Includes(Value) bool         { return true }
func (d *Ambiguous) EachSample(func(Value) bool) {}

// unwrap strips an Undefined wrapper.
func unwrap(d Domain) Domain {
	if u, ok := d.(*Undefined); ok {
		return u.payload
	}
	return d
}

// Samples collects the representative values of a domain.
func Samples(d Domain) (vs []Value) {
	d.EachSample(func(v Value) bool {
		vs = append(vs, v)
		return true
	})
	return
}
