package domain

import (
	"fmt"
	"go/token"
)

// Operator is a comparison operator of a controlling expression.
type Operator uint8

const (
	EQ Operator = iota
	NE
	LT
	GT
	LE
	GE
)

var operatorTokens = [...]token.Token{
	EQ: token.EQL,
	NE: token.NEQ,
	LT: token.LSS,
	GT: token.GTR,
	LE: token.LEQ,
	GE: token.GEQ,
}

// OperatorOf maps a Go comparison token to an operator.
func OperatorOf(tok token.Token) (Operator, bool) {
	for op, t := range operatorTokens {
		if t == tok {
			return Operator(op), true
		}
	}
	return 0, false
}

// Token returns the Go token of the operator.
func (op Operator) Token() token.Token {
	return operatorTokens[op]
}

func (op Operator) String() string {
	if int(op) < len(operatorTokens) {
		return op.Token().String()
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// ForComplement returns the operator holding exactly when op does not.
// For example, !(x < y) is x >= y.
func (op Operator) ForComplement() Operator {
	switch op {
	case EQ:
		return NE
	case NE:
		return EQ
	case LT:
		return GE
	case GT:
		return LE
	case LE:
		return GT
	case GE:
		return LT
	}
	panic(errPatternMatch("ForComplement", op))
}

// ForCommutation returns the operator obtained by swapping the operands.
// For example, x < y is y > x.
func (op Operator) ForCommutation() Operator {
	switch op {
	case EQ, NE:
		return op
	case LT:
		return GT
	case GT:
		return LT
	case LE:
		return GE
	case GE:
		return LE
	}
	panic(errPatternMatch("ForCommutation", op))
}
