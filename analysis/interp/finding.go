package interp

import (
	"fmt"
	"go/token"
)

// FindingKind classifies the problems reported while interpreting a script.
type FindingKind uint8

const (
	DivisionByZero FindingKind = iota
	UndefinedUse
)

func (k FindingKind) String() string {
	switch k {
	case DivisionByZero:
		return "division-by-zero"
	case UndefinedUse:
		return "undefined-use"
	}
	return fmt.Sprintf("FindingKind(%d)", uint8(k))
}

// Finding is a problem detected at a position of the script.
type Finding struct {
	Pos     token.Position
	Kind    FindingKind
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Pos, f.Kind, f.Message)
}

type findingKey struct {
	pos  token.Pos
	kind FindingKind
}

// report records a finding once per position and kind. Loop bodies are
// interpreted repeatedly and would otherwise report the same problem again.
func (in *Interpreter) report(pos token.Pos, kind FindingKind, format string, args ...interface{}) {
	key := findingKey{pos, kind}
	if in.reported[key] {
		return
	}
	in.reported[key] = true

	f := Finding{
		Pos:     in.fset.Position(pos),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	in.log.WithField("pos", f.Pos.String()).Warn(f.Message)
	in.findings = append(in.findings, f)
}
