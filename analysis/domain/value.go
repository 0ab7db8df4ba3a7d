package domain

import (
	"fmt"
	"go/constant"
	"go/token"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/sjas/adlint-sub000/utils"
)

// Value is a concrete scalar held by a point domain or used as the bound of a
// half-line domain. Integers have arbitrary precision; reals follow float64
// semantics. The zero Value is absent and is rejected by every domain
// constructor.
type Value struct {
	c constant.Value
}

// epsilon is the float64 machine epsilon. It is the distance used to turn an
// open real bound into its closed surrogate.
var epsilon = math.Nextafter(1, 2) - 1

// Int creates an integer value.
func Int(i int64) Value {
	return Value{constant.MakeInt64(i)}
}

// Uint creates an integer value from an unsigned machine integer.
func Uint(u uint64) Value {
	return Value{constant.MakeUint64(u)}
}

// BigInt creates an integer value of arbitrary magnitude.
func BigInt(b *big.Int) Value {
	return Value{constant.Make(new(big.Int).Set(b))}
}

// Real creates a real value. Infinities saturate to the largest finite
// float64 of the same sign.
func Real(f float64) Value {
	return Value{makeReal(f)}
}

func makeReal(f float64) constant.Value {
	switch {
	case math.IsNaN(f):
		panic(fmt.Errorf("%w: NaN is not a representable value", ErrInvalidArgument))
	case math.IsInf(f, 1):
		f = math.MaxFloat64
	case math.IsInf(f, -1):
		f = -math.MaxFloat64
	}
	if f == 0 {
		// Drop the sign of negative zero.
		f = 0
	}
	return constant.MakeFloat64(f)
}

// ParseValue parses a C-like integer or floating literal.
func ParseValue(lit string) (Value, error) {
	lit = strings.TrimRight(lit, "uUlL")
	hex := strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X")
	tok := token.INT
	switch {
	case hex && strings.ContainsAny(lit, ".pP"):
		tok = token.FLOAT
	case !hex:
		lit = strings.TrimRight(lit, "fF")
		if strings.ContainsAny(lit, ".eE") {
			tok = token.FLOAT
		}
	}
	c := constant.MakeFromLiteral(lit, tok, 0)
	if c.Kind() == constant.Unknown {
		return Value{}, fmt.Errorf("%w: malformed literal %q", ErrInvalidArgument, lit)
	}
	if tok == token.FLOAT {
		return Value{normalizeReal(c)}, nil
	}
	return Value{c}, nil
}

// IsValid reports whether the value is present.
func (v Value) IsValid() bool {
	return v.c != nil
}

// IsInteger reports whether the value is an integer.
func (v Value) IsInteger() bool {
	return v.c != nil && v.c.Kind() == constant.Int
}

// IsReal reports whether the value is a real.
func (v Value) IsReal() bool {
	return v.c != nil && v.c.Kind() == constant.Float
}

// Float64 returns the nearest float64 to the value.
func (v Value) Float64() float64 {
	f, _ := constant.Float64Val(constant.ToFloat(v.c))
	return f
}

// Int64 returns the value as an int64, if it is an integer that fits.
func (v Value) Int64() (int64, bool) {
	if !v.IsInteger() {
		return 0, false
	}
	return constant.Int64Val(v.c)
}

// Sign returns -1, 0 or 1 depending on the sign of the value.
func (v Value) Sign() int {
	return constant.Sign(v.c)
}

// Cmp compares two values numerically, regardless of their kinds.
func (v Value) Cmp(w Value) int {
	switch {
	case constant.Compare(v.c, token.LSS, w.c):
		return -1
	case constant.Compare(v.c, token.EQL, w.c):
		return 0
	}
	return 1
}

// Equal checks that two values have the same kind and magnitude.
func (v Value) Equal(w Value) bool {
	if !v.IsValid() || !w.IsValid() {
		return v.IsValid() == w.IsValid()
	}
	return v.c.Kind() == w.c.Kind() && v.Cmp(w) == 0
}

func normalizeReal(c constant.Value) constant.Value {
	f, _ := constant.Float64Val(constant.ToFloat(c))
	return makeReal(f)
}

func (v Value) binary(op token.Token, w Value) Value {
	if v.IsReal() || w.IsReal() {
		return Value{normalizeReal(constant.BinaryOp(constant.ToFloat(v.c), op, constant.ToFloat(w.c)))}
	}
	return Value{constant.BinaryOp(v.c, op, w.c)}
}

// Add computes v + w.
func (v Value) Add(w Value) Value { return v.binary(token.ADD, w) }

// Sub computes v - w.
func (v Value) Sub(w Value) Value { return v.binary(token.SUB, w) }

// Mul computes v * w.
func (v Value) Mul(w Value) Value { return v.binary(token.MUL, w) }

// Quo computes v / w. Integer division truncates toward zero.
// The divisor must not be zero.
func (v Value) Quo(w Value) Value {
	if w.Sign() == 0 {
		panic(fmt.Errorf("%w: division of %s by zero", ErrUnreachable, v))
	}
	if v.IsInteger() && w.IsInteger() {
		return Value{constant.BinaryOp(v.c, token.QUO_ASSIGN, w.c)}
	}
	return v.binary(token.QUO, w)
}

// Rem computes the remainder of truncating division. The divisor must not be
// zero.
func (v Value) Rem(w Value) Value {
	if w.Sign() == 0 {
		panic(fmt.Errorf("%w: remainder of %s by zero", ErrUnreachable, v))
	}
	if v.IsInteger() && w.IsInteger() {
		return Value{constant.BinaryOp(v.c, token.REM, w.c)}
	}
	return Real(math.Mod(v.Float64(), w.Float64()))
}

func (v Value) bitwise(op token.Token, w Value) Value {
	return Value{constant.BinaryOp(v.Trunc().c, op, w.Trunc().c)}
}

// And computes the bitwise conjunction of the integer parts.
func (v Value) And(w Value) Value { return v.bitwise(token.AND, w) }

// Or computes the bitwise disjunction of the integer parts.
func (v Value) Or(w Value) Value { return v.bitwise(token.OR, w) }

// Xor computes the bitwise exclusive disjunction of the integer parts.
func (v Value) Xor(w Value) Value { return v.bitwise(token.XOR, w) }

// Shl shifts the integer part of v left by n bits.
func (v Value) Shl(n uint) Value {
	return Value{constant.Shift(v.Trunc().c, token.SHL, n)}
}

// Shr shifts the integer part of v right by n bits, replicating the sign.
func (v Value) Shr(n uint) Value {
	return Value{constant.Shift(v.Trunc().c, token.SHR, n)}
}

// Neg computes -v.
func (v Value) Neg() Value {
	if v.IsReal() {
		return Real(-v.Float64())
	}
	return Value{constant.UnaryOp(token.SUB, v.c, 0)}
}

// Not computes the bitwise complement ~v of the integer part.
func (v Value) Not() Value {
	return Value{constant.UnaryOp(token.XOR, v.Trunc().c, 0)}
}

// Trunc converts the value to an integer, rounding toward zero.
func (v Value) Trunc() Value {
	if !v.IsReal() {
		return v
	}
	return fromFloat(math.Trunc(v.Float64()))
}

// Floor converts the value to the greatest integer not above it.
func (v Value) Floor() Value {
	if !v.IsReal() {
		return v
	}
	return fromFloat(math.Floor(v.Float64()))
}

// Ceil converts the value to the least integer not below it.
func (v Value) Ceil() Value {
	if !v.IsReal() {
		return v
	}
	return fromFloat(math.Ceil(v.Float64()))
}

func fromFloat(f float64) Value {
	i, _ := new(big.Float).SetFloat64(f).Int(nil)
	return BigInt(i)
}

// ToReal converts the value to a real.
func (v Value) ToReal() Value {
	if v.IsReal() {
		return v
	}
	return Real(v.Float64())
}

// Pred returns the closed surrogate below an open upper bound v:
// v-1 for integers and v-ε for reals.
func (v Value) Pred() Value {
	if v.IsInteger() {
		return v.Sub(Int(1))
	}
	return v.Sub(Real(epsilon))
}

// Succ returns the closed surrogate above an open lower bound v:
// v+1 for integers and v+ε for reals.
func (v Value) Succ() Value {
	if v.IsInteger() {
		return v.Add(Int(1))
	}
	return v.Add(Real(epsilon))
}

func (v Value) String() string {
	if !v.IsValid() {
		return "<absent>"
	}
	if v.IsInteger() {
		return v.c.ExactString()
	}
	s := strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

// Hash computes a 32-bit hash of the value.
func (v Value) Hash() uint32 {
	if !v.IsValid() {
		return 0
	}
	return utils.HashString(v.String())
}

func minOf(a, b Value) Value {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxOf(a, b Value) Value {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
