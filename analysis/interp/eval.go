package interp

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/sjas/adlint-sub000/analysis/ctype"
	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/store"
)

var arithmetic = map[token.Token]func(f *domain.Factory, a, b domain.Domain) domain.Domain{
	token.ADD: (*domain.Factory).Add,
	token.SUB: (*domain.Factory).Sub,
	token.MUL: (*domain.Factory).Mul,
	token.QUO: (*domain.Factory).Div,
	token.REM: (*domain.Factory).Rem,
	token.AND: (*domain.Factory).And,
	token.OR:  (*domain.Factory).Or,
	token.XOR: (*domain.Factory).Xor,
	token.SHL: (*domain.Factory).Shl,
	token.SHR: (*domain.Factory).Shr,
}

func (in *Interpreter) intType() ctype.Type {
	return ctype.Of(ctype.Int, in.cfg.Model)
}

// eval computes the domain and the C type of an expression.
func (in *Interpreter) eval(s store.Store, e ast.Expr) (domain.Domain, ctype.Type, error) {
	switch e := astutil.Unparen(e).(type) {
	case *ast.BasicLit:
		return in.literal(e)
	case *ast.Ident:
		b, ok := s.Lookup(e.Name)
		if !ok {
			return nil, ctype.Type{}, in.errorf(e.Pos(), "undeclared variable %s", e.Name)
		}
		if b.Domain.IsUndefined() {
			in.report(e.Pos(), UndefinedUse, "%s may be used before it is set", e.Name)
		}
		return b.Domain, b.Type, nil
	case *ast.UnaryExpr:
		return in.unary(s, e)
	case *ast.BinaryExpr:
		return in.binary(s, e)
	case *ast.CallExpr:
		return in.callExpr(s, e)
	}
	return nil, ctype.Type{}, in.errorf(e.Pos(), "unsupported expression %s", types.ExprString(e))
}

// literal types integer constants with the first of int, long and long long
// that can represent them.
func (in *Interpreter) literal(lit *ast.BasicLit) (domain.Domain, ctype.Type, error) {
	switch lit.Kind {
	case token.INT:
		v, err := domain.ParseValue(lit.Value)
		if err != nil {
			return nil, ctype.Type{}, in.errorf(lit.Pos(), "%v", err)
		}
		for _, k := range []ctype.Kind{ctype.Int, ctype.Long, ctype.LongLong} {
			t := ctype.Of(k, in.cfg.Model)
			if t.Min().Cmp(v) <= 0 && v.Cmp(t.Max()) <= 0 {
				return in.f.EqualTo(v), t, nil
			}
		}
		t := ctype.Of(ctype.UnsignedLongLong, in.cfg.Model)
		return t.Coerce(in.f, in.f.EqualTo(v)), t, nil
	case token.FLOAT:
		v, err := domain.ParseValue(lit.Value)
		if err != nil {
			return nil, ctype.Type{}, in.errorf(lit.Pos(), "%v", err)
		}
		return in.f.EqualTo(v), ctype.Of(ctype.Double, in.cfg.Model), nil
	case token.CHAR:
		c := constant.MakeFromLiteral(lit.Value, token.CHAR, 0)
		n, ok := constant.Int64Val(c)
		if !ok {
			return nil, ctype.Type{}, in.errorf(lit.Pos(), "malformed character %s", lit.Value)
		}
		return in.f.EqualTo(domain.Int(n)), in.intType(), nil
	}
	return nil, ctype.Type{}, in.errorf(lit.Pos(), "unsupported literal %s", lit.Value)
}

func (in *Interpreter) unary(s store.Store, e *ast.UnaryExpr) (domain.Domain, ctype.Type, error) {
	d, t, err := in.eval(s, e.X)
	if err != nil {
		return nil, t, err
	}

	switch e.Op {
	case token.NOT:
		return in.f.LogicalNot(d), in.intType(), nil
	case token.ADD:
		t = t.Promote()
		return t.Coerce(in.f, in.f.Pos(d)), t, nil
	case token.SUB:
		t = t.Promote()
		return t.Coerce(in.f, in.f.Neg(t.Coerce(in.f, d))), t, nil
	case token.XOR:
		if t.IsReal() {
			return nil, t, in.errorf(e.OpPos, "invalid operand to ~: %s", t)
		}
		t = t.Promote()
		return t.Coerce(in.f, in.f.Not(t.Coerce(in.f, d))), t, nil
	}
	return nil, t, in.errorf(e.OpPos, "unsupported operator %s", e.Op)
}

func (in *Interpreter) binary(s store.Store, e *ast.BinaryExpr) (domain.Domain, ctype.Type, error) {
	a, at, err := in.eval(s, e.X)
	if err != nil {
		return nil, at, err
	}
	b, bt, err := in.eval(s, e.Y)
	if err != nil {
		return nil, bt, err
	}

	switch e.Op {
	case token.LAND:
		return in.f.LogicalAnd(a, b), in.intType(), nil
	case token.LOR:
		return in.f.LogicalOr(a, b), in.intType(), nil
	case token.SHL, token.SHR:
		// The operands of a shift are promoted separately, and the result
		// has the type of the left one.
		if at.IsReal() || bt.IsReal() {
			return nil, at, in.errorf(e.OpPos, "invalid operands to %s: %s and %s", e.Op, at, bt)
		}
		t := at.Promote()
		r := arithmetic[e.Op](in.f, t.Coerce(in.f, a), bt.Promote().Coerce(in.f, b))
		return t.Coerce(in.f, r), t, nil
	}

	t := ctype.UsualArithmetic(at, bt)
	a, b = t.Coerce(in.f, a), t.Coerce(in.f, b)

	if op, ok := domain.OperatorOf(e.Op); ok {
		return in.f.Compare(op, a, b), in.intType(), nil
	}

	fn, ok := arithmetic[e.Op]
	if !ok {
		return nil, t, in.errorf(e.OpPos, "unsupported operator %s", e.Op)
	}
	switch e.Op {
	case token.REM, token.AND, token.OR, token.XOR:
		if t.IsReal() {
			return nil, t, in.errorf(e.OpPos, "invalid operands to %s: %s and %s", e.Op, at, bt)
		}
	}

	r := fn(in.f, a, b)
	if (e.Op == token.QUO || e.Op == token.REM) && r.IsNaN() && !a.IsNaN() && !b.IsNaN() {
		in.report(e.OpPos, DivisionByZero, "divisor %s may be zero: %s", types.ExprString(e.Y), b)
	}
	return t.Coerce(in.f, r), t, nil
}

// callExpr evaluates the value builtins rng(lo, hi) and unknown(), and
// conversions to a C type such as uint8(x).
func (in *Interpreter) callExpr(s store.Store, e *ast.CallExpr) (domain.Domain, ctype.Type, error) {
	id, ok := e.Fun.(*ast.Ident)
	if !ok {
		return nil, ctype.Type{}, in.errorf(e.Pos(), "unsupported call %s", types.ExprString(e.Fun))
	}

	arity := func(n int) error {
		if len(e.Args) != n {
			return in.errorf(e.Pos(), "%s expects %d arguments, got %d", id.Name, n, len(e.Args))
		}
		return nil
	}

	switch id.Name {
	case "unknown":
		if err := arity(0); err != nil {
			return nil, ctype.Type{}, err
		}
		return in.f.Unlimited(), in.intType(), nil
	case "rng":
		if err := arity(2); err != nil {
			return nil, ctype.Type{}, err
		}
		lo, lt, err := in.eval(s, e.Args[0])
		if err != nil {
			return nil, lt, err
		}
		hi, ht, err := in.eval(s, e.Args[1])
		if err != nil {
			return nil, ht, err
		}
		t := ctype.UsualArithmetic(lt, ht)
		u := in.f.Unlimited()
		r := in.f.Intersection(
			in.f.Narrow(u, domain.GE, t.Coerce(in.f, lo)),
			in.f.Narrow(u, domain.LE, t.Coerce(in.f, hi)))
		return t.Coerce(in.f, r), t, nil
	case "assume", "print":
		return nil, ctype.Type{}, in.errorf(e.Pos(), "%s used as value", id.Name)
	}

	t, err := ctype.Lookup(id.Name, in.cfg.Model)
	if err != nil {
		return nil, t, in.errorf(e.Pos(), "unknown function %s", id.Name)
	}
	if err := arity(1); err != nil {
		return nil, t, err
	}
	d, _, err := in.eval(s, e.Args[0])
	if err != nil {
		return nil, t, err
	}
	return t.Coerce(in.f, d), t, nil
}
