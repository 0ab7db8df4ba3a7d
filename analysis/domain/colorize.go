package domain

import (
	"github.com/fatih/color"

	"github.com/sjas/adlint-sub000/utils"
)

var colorize = struct {
	Connective func(...interface{}) string
	Operator   func(...interface{}) string
	Value      func(...interface{}) string
	Special    func(...interface{}) string
	Attr       func(...interface{}) string
}{
	Connective: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgMagenta).SprintFunc())(is...)
	},
	Operator: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Value: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite).SprintFunc())(is...)
	},
	Special: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Attr: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiRed).SprintFunc())(is...)
	},
}

// Pretty renders d in its canonical form, highlighting the structure when
// colorization is enabled.
func Pretty(d Domain) string {
	switch d := d.(type) {
	case *Nil, *Unlimited, *NaN:
		return colorize.Special(d.String())
	case *Ambiguous:
		return colorize.Attr(d.String())
	case *EqualTo:
		return "(" + colorize.Operator("==") + " " + colorize.Value(d.value) + ")"
	case *LessThan:
		return "(" + colorize.Operator("<") + " " + colorize.Value(d.value) + ")"
	case *GreaterThan:
		return "(" + colorize.Operator(">") + " " + colorize.Value(d.value) + ")"
	case *Intersection:
		return "(" + Pretty(d.lhs) + colorize.Connective(" && ") + Pretty(d.rhs) + ")"
	case *Union:
		return "(" + Pretty(d.lhs) + colorize.Connective(" || ") + Pretty(d.rhs) + ")"
	case *Undefined:
		return "(" + colorize.Attr("undefined") + " " + Pretty(d.payload) + ")"
	}
	panic(errPatternMatch("Pretty", d))
}
