package interp

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/store"
)

// definite reports whether a boolean domain is a single truth value, and
// which one.
func definite(d domain.Domain) (known, holds bool) {
	if p, ok := d.(*domain.EqualTo); ok {
		return true, p.Value().Sign() != 0
	}
	return false, false
}

// variable returns the name of the variable an expression denotes, if any.
func variable(s store.Store, e ast.Expr) (string, bool) {
	id, ok := astutil.Unparen(e).(*ast.Ident)
	if !ok {
		return "", false
	}
	_, ok = s.Lookup(id.Name)
	return id.Name, ok
}

// branch splits the store into the stores where cond holds and where it
// does not. A store is unreachable if the condition is definitely false or
// definitely true respectively.
func (in *Interpreter) branch(s store.Store, cond ast.Expr) (then, els store.Store, err error) {
	if s.IsUnreachable() {
		return s, s, nil
	}

	switch c := astutil.Unparen(cond).(type) {
	case *ast.UnaryExpr:
		if c.Op == token.NOT {
			els, then, err = in.branch(s, c.X)
			return then, els, err
		}
	case *ast.BinaryExpr:
		switch c.Op {
		case token.LAND:
			t1, e1, err := in.branch(s, c.X)
			if err != nil {
				return s, s, err
			}
			t2, e2, err := in.branch(t1, c.Y)
			if err != nil {
				return s, s, err
			}
			return t2, e1.Join(e2), nil
		case token.LOR:
			t1, e1, err := in.branch(s, c.X)
			if err != nil {
				return s, s, err
			}
			t2, e2, err := in.branch(e1, c.Y)
			if err != nil {
				return s, s, err
			}
			return t1.Join(t2), e2, nil
		}
		if op, ok := domain.OperatorOf(c.Op); ok {
			return in.compare(s, op, c)
		}
	}
	return in.truth(s, cond)
}

// compare narrows the variables on either side of a comparison.
func (in *Interpreter) compare(s store.Store, op domain.Operator, c *ast.BinaryExpr) (then, els store.Store, err error) {
	r, _, err := in.eval(s, c)
	if err != nil {
		return s, s, err
	}
	a, _, err := in.eval(s, c.X)
	if err != nil {
		return s, s, err
	}
	b, _, err := in.eval(s, c.Y)
	if err != nil {
		return s, s, err
	}

	then, els = s, s
	if known, holds := definite(r); known {
		if holds {
			els = s.Unreachable()
		} else {
			then = s.Unreachable()
		}
	} else if r.IsEmpty() {
		return s.Unreachable(), s.Unreachable(), nil
	}

	narrow := func(st store.Store, name string, op domain.Operator, operand domain.Domain) store.Store {
		if st.IsUnreachable() {
			return st
		}
		// The variable is known to be declared.
		st, _ = st.Narrow(name, op, operand)
		return st
	}
	if x, ok := variable(s, c.X); ok {
		then = narrow(then, x, op, b)
		els = narrow(els, x, op.ForComplement(), b)
	}
	if y, ok := variable(s, c.Y); ok {
		op := op.ForCommutation()
		then = narrow(then, y, op, a)
		els = narrow(els, y, op.ForComplement(), a)
	}
	return then, els, nil
}

// truth branches on a scalar condition, which holds when it is not zero.
func (in *Interpreter) truth(s store.Store, cond ast.Expr) (then, els store.Store, err error) {
	d, _, err := in.eval(s, cond)
	if err != nil {
		return s, s, err
	}

	then, els = s, s
	if known, holds := definite(in.f.LogicalNot(d)); known {
		if holds {
			then = s.Unreachable()
		} else {
			els = s.Unreachable()
		}
	}

	if x, ok := variable(s, cond); ok {
		zero := in.f.EqualTo(domain.Int(0))
		if !then.IsUnreachable() {
			then, _ = then.Narrow(x, domain.NE, zero)
		}
		if !els.IsUnreachable() {
			els, _ = els.Narrow(x, domain.EQ, zero)
		}
	}
	return then, els, nil
}

// widen grows the variable compared by the loop condition toward the region
// where the condition holds. Only the left operand is widened when both
// sides are variables.
func (in *Interpreter) widen(s store.Store, cond ast.Expr) (store.Store, error) {
	if cond == nil || s.IsUnreachable() {
		return s, nil
	}

	c, ok := astutil.Unparen(cond).(*ast.BinaryExpr)
	if !ok {
		return s, nil
	}
	if c.Op == token.LAND {
		s, err := in.widen(s, c.X)
		if err != nil {
			return s, err
		}
		return in.widen(s, c.Y)
	}
	op, ok := domain.OperatorOf(c.Op)
	if !ok || op == domain.NE {
		return s, nil
	}

	if x, ok := variable(s, c.X); ok {
		b, _, err := in.eval(s, c.Y)
		if err != nil {
			return s, err
		}
		s, _ = s.Widen(x, op, b)
	} else if y, ok := variable(s, c.Y); ok {
		a, _, err := in.eval(s, c.X)
		if err != nil {
			return s, err
		}
		s, _ = s.Widen(y, op.ForCommutation(), a)
	}
	return s, nil
}
