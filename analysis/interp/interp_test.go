package interp

import (
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/sjas/adlint-sub000/analysis/ctype"
	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/store"
)

const intRange = "((< 2147483648) && (> -2147483649))"

func run(t *testing.T, cfg Config, src string) Result {
	t.Helper()
	f := domain.NewFactory(domain.Config{})
	cfg.Model = ctype.LP64
	res, err := New(f, cfg).Run("script", []byte(src))
	if err != nil {
		t.Fatalf("Interpreting failed: %v", err)
	}
	return res
}

func variables(s store.Store) map[string]string {
	vars := map[string]string{}
	for _, name := range s.Names() {
		b, _ := s.Lookup(name)
		vars[name] = b.Type.String() + " " + b.Domain.String()
	}
	return vars
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected map[string]string
	}{{
		"straight line",
		`var x int32 = 5
		y := x * 2
		x += 3`,
		map[string]string{"x": "int (== 8)", "y": "int (== 10)"},
	}, {
		"conversions",
		`var f double = 1.5
		g := f * 2
		c := 'A'
		n := ^uint8(5)
		big := 3000000000
		z := uint8(257)
		q, r := 7 / 2, -7 % 2`,
		map[string]string{
			"f":   "double (== 1.5)",
			"g":   "double (== 3.0)",
			"c":   "int (== 65)",
			"n":   "int (== -6)",
			"big": "long (== 3000000000)",
			"z":   "unsigned char ((< 256) && (> -1))",
			"q":   "int (== 3)",
			"r":   "int (== -1)",
		},
	}, {
		"branches",
		`var x int = rng(0, 9)
		var y int
		if x < 5 {
			y = 1
		} else {
			y = 2
		}`,
		map[string]string{"x": "int ((< 10) && (> -1))", "y": "int ((< 3) && (> 0))"},
	}, {
		"unreachable branch",
		`var x int = 1
		if x > 5 {
			x = 100
		} else if x == 1 {
			x = 7
		}`,
		map[string]string{"x": "int (== 7)"},
	}, {
		"assume",
		`var x int = unknown()
		assume(x >= 0 && x < 8)`,
		map[string]string{"x": "int ((< 8) && (> -1))"},
	}, {
		"negated condition",
		`var x int = rng(0, 9)
		if !(x < 5) || x == 0 {
			x = 0
		}`,
		map[string]string{"x": "int ((< 5) && (> -1))"},
	}, {
		"scalar condition",
		`var x int = rng(0, 1)
		var y int = 3
		if x {
			y = x
		}`,
		map[string]string{"x": "int ((< 2) && (> -1))", "y": "int ((== 1) || (== 3))"},
	}, {
		"counting loop",
		`for i := 0; i < 10; i++ {
		}`,
		map[string]string{"i": "int (== 10)"},
	}, {
		"down counting loop",
		`var n int = 10
		for n > 0 {
			n -= 1
		}`,
		map[string]string{"n": "int (== 0)"},
	}, {
		"guarded division",
		`var d int = rng(0, 3)
		var q int
		if d != 0 {
			q = 12 / d
		}`,
		map[string]string{"d": "int ((< 4) && (> -1))", "q": "int (undefined " + intRange + ")"},
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, Config{}, tc.src)
			if res.Store.IsUnreachable() {
				t.Fatalf("The end of the script is unreachable")
			}
			if diff := cmp.Diff(tc.expected, variables(res.Store)); diff != "" {
				t.Errorf("Unexpected final store (-expected +got):\n%s", diff)
			}
			if len(res.Findings) != 0 {
				t.Errorf("Unexpected findings: %v", res.Findings)
			}
		})
	}
}

func TestDeclarationsAreUndefined(t *testing.T) {
	res := run(t, Config{}, "var a, b int\nvar c uint8 = 300")

	expected := map[string]string{
		"a": "int (undefined " + intRange + ")",
		"b": "int (undefined " + intRange + ")",
		"c": "unsigned char ((< 256) && (> -1))",
	}
	if diff := cmp.Diff(expected, variables(res.Store)); diff != "" {
		t.Errorf("Unexpected final store (-expected +got):\n%s", diff)
	}
}

func TestFindings(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{{
		"division by zero",
		`var d int = rng(0, 3)
var q int = 12 / d`,
		[]string{"script:2:16: division-by-zero: divisor d may be zero: ((< 4) && (> -1))"},
	}, {
		"remainder by zero",
		`var z int = 0
r := 5 % z`,
		[]string{"script:2:8: division-by-zero: divisor z may be zero: (== 0)"},
	}, {
		"undefined use",
		`var x int
y := x + 1`,
		[]string{"script:2:6: undefined-use: x may be used before it is set"},
	}, {
		"undefined use in a loop",
		`var x int
for i := 0; i < 3; i++ {
	x = x + 1
}`,
		[]string{"script:3:6: undefined-use: x may be used before it is set"},
	}, {
		"undefined in one branch",
		`var c int = unknown()
var x int
if c > 0 {
	x = 1
}
print(x)`,
		[]string{"script:6:7: undefined-use: x may be used before it is set"},
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, Config{}, tc.src)
			var got []string
			for _, f := range res.Findings {
				got = append(got, f.String())
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Unexpected findings (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestFindingsAreLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	run(t, Config{Logger: logger}, "var x int\ny := 1 / x")

	var warnings []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings = append(warnings, e.Message)
		}
	}
	expected := []string{
		"x may be used before it is set",
		"divisor x may be zero: (undefined " + intRange + ")",
	}
	if diff := cmp.Diff(expected, warnings); diff != "" {
		t.Errorf("Unexpected warnings (-expected +got):\n%s", diff)
	}
}

func TestGiveUp(t *testing.T) {
	logger, hook := test.NewNullLogger()
	src := `var x int = 0
for i := 0; i < 10; i++ {
	x = x + 2
}`

	for _, iters := range []int{3, DefaultMaxIterations} {
		hook.Reset()
		res := run(t, Config{MaxIterations: iters, Logger: logger}, src)
		expected := map[string]string{"i": "int (== 10)", "x": "int (ambiguous)"}
		if diff := cmp.Diff(expected, variables(res.Store)); diff != "" {
			t.Errorf("Unexpected final store with %d iterations (-expected +got):\n%s", iters, diff)
		}
	}

	hook.Reset()
	run(t, Config{MaxIterations: 3, Logger: logger}, src)
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel || e.Message != "no fixpoint after 3 iterations" {
		t.Errorf("Expected a warning about the missing fixpoint, got %v", e)
	}
}

func TestInfiniteLoop(t *testing.T) {
	res := run(t, Config{}, `var x int = 0
for {
	x = 1
}`)
	if !res.Store.IsUnreachable() {
		t.Errorf("The end of an infinite loop is reachable: %s", res.Store)
	}
}

func TestPrints(t *testing.T) {
	res := run(t, Config{}, `var x int = rng(1, 3)
if x < 3 {
	print(x, x * 2)
}`)

	var got []string
	for _, p := range res.Prints {
		got = append(got, p.Pos.String()+" "+p.Expr+" = "+p.Domain.String())
	}
	expected := []string{
		"script:3:8 x = ((< 3) && (> 0))",
		"script:3:11 x * 2 = ((< 5) && (> 1))",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Unexpected prints (-expected +got):\n%s", diff)
	}
}

func TestTrace(t *testing.T) {
	var got []string
	cfg := Config{
		Trace: func(pos token.Position, s store.Store) {
			b, _ := s.Lookup("x")
			got = append(got, pos.String()+" "+b.Domain.String())
		},
	}
	run(t, cfg, `x := 1
if x > 0 {
	x = 2
}`)

	expected := []string{
		"script:1:1 (== 1)",
		"script:3:2 (== 2)",
		"script:2:1 (== 2)",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Unexpected trace (-expected +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name, src, expected string
	}{
		{"syntax", "x = = 1", "parsing script"},
		{"undeclared", "x = 1", "script:1:1: undeclared variable: x"},
		{"undeclared use", "y := x", "script:1:6: undeclared variable x"},
		{"unknown type", "var x pointer", "unknown type"},
		{"untyped declaration", "var x = 1", "declaration of x without a type"},
		{"real remainder", "var f double = 1.5\ng := f % 2", "invalid operands to %"},
		{"real complement", "var f double = 1.5\ng := ^f", "invalid operand to ~"},
		{"real shift", "var f double = 1.5\ng := f << 1", "invalid operands to <<"},
		{"unknown function", "x := sqrt(2)", "unknown function sqrt"},
		{"arity", "x := rng(1)", "rng expects 2 arguments, got 1"},
		{"print as value", "x := print(1)", "print used as value"},
		{"unsupported statement", "switch {}", "unsupported statement *ast.SwitchStmt"},
		{"assignment mismatch", "var a, b int = 1", "assignment mismatch"},
	}

	for _, tc := range tests {
		f := domain.NewFactory(domain.Config{})
		_, err := New(f, Config{}).Run("script", []byte(tc.src))
		switch {
		case err == nil:
			t.Errorf("%s: expected an error containing %q", tc.name, tc.expected)
		case !strings.Contains(err.Error(), tc.expected):
			t.Errorf("%s: error %q does not contain %q", tc.name, err, tc.expected)
		}
	}
}

func TestRunsStartFromEmptyMemos(t *testing.T) {
	src := []byte("var x int = rng(0, 9)\ny := x * 2")

	fresh := domain.NewFactory(domain.Config{})
	if _, err := New(fresh, Config{Model: ctype.LP64}).Run("script", src); err != nil {
		t.Fatal(err)
	}
	expected := fresh.Stats()

	f := domain.NewFactory(domain.Config{})
	in := New(f, Config{Model: ctype.LP64})
	for i := 1; i <= 2; i++ {
		if _, err := in.Run("script", src); err != nil {
			t.Fatal(err)
		}
		if s := f.Stats(); s != expected {
			t.Errorf("Memo statistics after run %d are %+v, expected %+v", i, s, expected)
		}
	}
}
