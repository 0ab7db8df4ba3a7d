// Package ctype models the C scalar types: their bit widths under a data
// model, their value ranges and the conversions between them.
package ctype

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/sjas/adlint-sub000/analysis/domain"
)

var (
	ErrUnknownType  = errors.New("unknown type")
	ErrUnknownModel = errors.New("unknown data model")
)

// Kind enumerates the C scalar types.
type Kind uint8

const (
	Bool Kind = iota
	Char
	SignedChar
	UnsignedChar
	Short
	UnsignedShort
	Int
	UnsignedInt
	Long
	UnsignedLong
	LongLong
	UnsignedLongLong
	Float
	Double
	LongDouble
)

var kindNames = [...]string{
	Bool:             "_Bool",
	Char:             "char",
	SignedChar:       "signed char",
	UnsignedChar:     "unsigned char",
	Short:            "short",
	UnsignedShort:    "unsigned short",
	Int:              "int",
	UnsignedInt:      "unsigned int",
	Long:             "long",
	UnsignedLong:     "unsigned long",
	LongLong:         "long long",
	UnsignedLongLong: "unsigned long long",
	Float:            "float",
	Double:           "double",
	LongDouble:       "long double",
}

func (k Kind) String() string {
	return kindNames[k]
}

// aliases are the single-identifier spellings accepted besides the C ones.
var aliases = map[string]Kind{
	"bool":       Bool,
	"schar":      SignedChar,
	"uchar":      UnsignedChar,
	"ushort":     UnsignedShort,
	"unsigned":   UnsignedInt,
	"uint":       UnsignedInt,
	"ulong":      UnsignedLong,
	"longlong":   LongLong,
	"ulonglong":  UnsignedLongLong,
	"longdouble": LongDouble,
	"int8":       SignedChar,
	"uint8":      UnsignedChar,
	"int16":      Short,
	"uint16":     UnsignedShort,
	"int32":      Int,
	"uint32":     UnsignedInt,
	"int64":      LongLong,
	"uint64":     UnsignedLongLong,
	"float32":    Float,
	"float64":    Double,
}

// Model is a C data model, fixing the widths of int, long and pointers.
type Model uint8

const (
	ILP32 Model = iota
	LP64
	LLP64
)

var modelNames = [...]string{ILP32: "ILP32", LP64: "LP64", LLP64: "LLP64"}

func (m Model) String() string {
	return modelNames[m]
}

// ParseModel parses a data model name, ignoring case.
func ParseModel(s string) (Model, error) {
	for m, name := range modelNames {
		if strings.EqualFold(name, s) {
			return Model(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// Type is a scalar type under a data model.
type Type struct {
	kind  Kind
	model Model
}

// Of returns the type of the given kind under model m.
func Of(k Kind, m Model) Type {
	return Type{kind: k, model: m}
}

// Lookup resolves a C type name such as "unsigned long", or one of its
// single identifier aliases such as "ulong" or "uint64".
func Lookup(name string, m Model) (Type, error) {
	norm := strings.Join(strings.Fields(name), " ")
	for k, n := range kindNames {
		if n == norm {
			return Of(Kind(k), m), nil
		}
	}
	if k, ok := aliases[norm]; ok {
		return Of(k, m), nil
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func (t Type) Kind() Kind   { return t.kind }
func (t Type) Model() Model { return t.model }

func (t Type) String() string {
	return t.kind.String()
}

// Bits returns the width of the type.
func (t Type) Bits() uint {
	switch t.kind {
	case Bool, Char, SignedChar, UnsignedChar:
		return 8
	case Short, UnsignedShort:
		return 16
	case Int, UnsignedInt, Float:
		return 32
	case Long, UnsignedLong:
		if t.model == LP64 {
			return 64
		}
		return 32
	case LongLong, UnsignedLongLong, Double:
		return 64
	case LongDouble:
		return 128
	}
	panic(fmt.Errorf("invalid kind %d", t.kind))
}

func (t Type) IsReal() bool {
	return t.kind >= Float
}

func (t Type) IsInteger() bool {
	return !t.IsReal()
}

// IsSigned reports whether the type can hold negative values. Plain char is
// signed.
func (t Type) IsSigned() bool {
	switch t.kind {
	case Bool, UnsignedChar, UnsignedShort, UnsignedInt, UnsignedLong, UnsignedLongLong:
		return false
	}
	return true
}

// Rank is the integer conversion rank, extended above the integers to order
// the real types.
func (t Type) Rank() int {
	switch t.kind {
	case Bool:
		return 0
	case Char, SignedChar, UnsignedChar:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt:
		return 3
	case Long, UnsignedLong:
		return 4
	case LongLong, UnsignedLongLong:
		return 5
	case Float:
		return 6
	case Double:
		return 7
	}
	return 8
}

// Min returns the least value of the type.
func (t Type) Min() domain.Value {
	switch {
	case t.kind == Float:
		return domain.Real(-math.MaxFloat32)
	case t.IsReal():
		return domain.Real(-math.MaxFloat64)
	case t.kind == Bool || !t.IsSigned():
		return domain.Int(0)
	}
	return domain.BigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), t.Bits()-1)))
}

// Max returns the greatest value of the type.
func (t Type) Max() domain.Value {
	switch {
	case t.kind == Float:
		return domain.Real(math.MaxFloat32)
	case t.IsReal():
		return domain.Real(math.MaxFloat64)
	case t.kind == Bool:
		return domain.Int(1)
	}
	bits := t.Bits()
	if t.IsSigned() {
		bits--
	}
	one := big.NewInt(1)
	return domain.BigInt(new(big.Int).Sub(new(big.Int).Lsh(one, bits), one))
}

// Range returns the domain of every value of the type. Right shifts of
// unsigned values are logical.
func (t Type) Range(f *domain.Factory) domain.Domain {
	return f.WithLogicalShr(!t.IsSigned()).ClosedRange(t.Min(), t.Max())
}

// Coerce converts the values of d to the type. If some value of d is not
// representable, the result is the whole range of the type, as it is for
// NaN.
func (t Type) Coerce(f *domain.Factory, d domain.Domain) domain.Domain {
	g := f.WithLogicalShr(!t.IsSigned())
	switch {
	case d.IsAmbiguous():
		return d
	case d.IsUndefined():
		if u, ok := d.(*domain.Undefined); ok {
			return g.Undefined(t.Coerce(f, u.Domain()))
		}
	case d.IsEmpty():
		return g.Relabel(d)
	case d.IsNaN():
		return t.Range(f)
	}

	if t.IsReal() {
		d = f.ToReal(d)
	} else {
		d = f.ToInteger(d)
	}
	if t.kind == Bool {
		switch not := f.LogicalNot(d); {
		case not.Equal(f.OfTrue()):
			return g.OfFalse()
		case not.Equal(f.OfFalse()):
			return g.OfTrue()
		}
		return t.Range(f)
	}
	if r := t.Range(f); !f.Contains(r, d) {
		return r
	}
	return g.Relabel(d)
}

// Promote applies the integer promotions: types ranking below int become int.
func (t Type) Promote() Type {
	if t.IsInteger() && t.Rank() < Of(Int, t.model).Rank() {
		return Of(Int, t.model)
	}
	return t
}

// toUnsigned returns the unsigned type of the same rank.
func (t Type) toUnsigned() Type {
	switch t.kind {
	case Char, SignedChar:
		return Of(UnsignedChar, t.model)
	case Short:
		return Of(UnsignedShort, t.model)
	case Int:
		return Of(UnsignedInt, t.model)
	case Long:
		return Of(UnsignedLong, t.model)
	case LongLong:
		return Of(UnsignedLongLong, t.model)
	}
	return t
}

// UsualArithmetic computes the common type of the operands of a binary
// arithmetic operator.
func UsualArithmetic(a, b Type) Type {
	if a.IsReal() || b.IsReal() {
		if a.Rank() >= b.Rank() {
			return a
		}
		return b
	}

	a, b = a.Promote(), b.Promote()
	switch {
	case a.kind == b.kind:
		return a
	case a.IsSigned() == b.IsSigned():
		if a.Rank() >= b.Rank() {
			return a
		}
		return b
	}

	s, u := a, b
	if !s.IsSigned() {
		s, u = u, s
	}
	switch {
	case u.Rank() >= s.Rank():
		return u
	case s.Bits() > u.Bits():
		return s
	}
	return s.toUnsigned()
}
