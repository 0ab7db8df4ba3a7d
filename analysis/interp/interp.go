// Package interp interprets small scripts over the value domain engine.
//
// Scripts are written in Go statement syntax and stand in for the scalar
// parts of a C function body:
//
//	var x int32
//	x = rng(0, 9)
//	if x < 5 {
//		x += 10
//	}
//	print(x)
//
// Variables are declared with C type names, or single identifier aliases
// for the names spelled with several words (ulong, uint64, ...). Go's unary ^
// is C's bitwise complement.
package interp

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sjas/adlint-sub000/analysis/ctype"
	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/store"
)

// DefaultMaxIterations bounds loop fixpoint iteration when Config leaves it
// unset.
const DefaultMaxIterations = 32

type Config struct {
	// Model is the data model giving the widths of the C types.
	Model ctype.Model
	// MaxIterations is the number of loop head joins after which the
	// variables that still change become ambiguous.
	MaxIterations int
	// Logger receives interpretation events. Nothing is logged if nil.
	Logger *logrus.Logger
	// Trace, if set, is called with the store after every statement.
	Trace func(pos token.Position, s store.Store)
}

// Print is the value of an argument of print() at the point of the call.
type Print struct {
	Pos    token.Position
	Expr   string
	Domain domain.Domain
}

// Result is the outcome of interpreting a script.
type Result struct {
	Store    store.Store
	Findings []Finding
	Prints   []Print
}

// Interpreter runs scripts. An interpreter is not safe for concurrent use.
type Interpreter struct {
	f   *domain.Factory
	cfg Config
	log *logrus.Entry

	fset     *token.FileSet
	findings []Finding
	reported map[findingKey]bool
	prints   []Print
}

// New creates an interpreter building its values with f.
func New(f *domain.Factory, cfg Config) *Interpreter {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Interpreter{
		f:   f,
		cfg: cfg,
		log: logrus.NewEntry(logger),
	}
}

// wrap places the script in a function body. The line directive keeps
// positions relative to the script itself.
func wrap(name string, src []byte) []byte {
	head := "package script\nfunc _() {\n//line " + name + ":1\n"
	buf := make([]byte, 0, len(head)+len(src)+3)
	buf = append(buf, head...)
	buf = append(buf, src...)
	return append(buf, "\n}\n"...)
}

// Run interprets the script src. The name is used in positions. Every run
// is an analysis session of its own and starts from empty memo tables.
func (in *Interpreter) Run(name string, src []byte) (Result, error) {
	in.f.ClearMemos()
	in.fset = token.NewFileSet()
	in.findings = nil
	in.prints = nil
	in.reported = map[findingKey]bool{}
	in.log = in.log.WithField("script", name)

	file, err := parser.ParseFile(in.fset, name, wrap(name, src), parser.AllErrors)
	if err != nil {
		return Result{}, errors.Wrap(err, "parsing script")
	}
	if len(file.Decls) != 1 {
		return Result{}, errors.Errorf("%s: declarations outside of the script body", name)
	}
	fun, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		return Result{}, errors.Errorf("%s: malformed script", name)
	}

	s, err := in.execList(store.New(in.f), fun.Body.List)
	if err != nil {
		return Result{}, err
	}
	return Result{Store: s, Findings: in.findings, Prints: in.prints}, nil
}

// errorf builds an error located at pos.
func (in *Interpreter) errorf(pos token.Pos, format string, args ...interface{}) error {
	return errors.Wrap(errors.Errorf(format, args...), in.fset.Position(pos).String())
}

func (in *Interpreter) execList(s store.Store, stmts []ast.Stmt) (store.Store, error) {
	for _, stmt := range stmts {
		if s.IsUnreachable() {
			in.log.WithField("pos", in.fset.Position(stmt.Pos()).String()).Debug("skipping unreachable statement")
			return s, nil
		}

		var err error
		if s, err = in.exec(s, stmt); err != nil {
			return s, err
		}

		if in.cfg.Trace != nil {
			switch stmt.(type) {
			case *ast.BlockStmt, *ast.EmptyStmt:
			default:
				in.cfg.Trace(in.fset.Position(stmt.Pos()), s)
			}
		}
	}
	return s, nil
}

func (in *Interpreter) exec(s store.Store, stmt ast.Stmt) (store.Store, error) {
	switch stmt := stmt.(type) {
	case *ast.EmptyStmt:
		return s, nil
	case *ast.BlockStmt:
		return in.execList(s, stmt.List)
	case *ast.DeclStmt:
		return in.declare(s, stmt)
	case *ast.AssignStmt:
		return in.assign(s, stmt)
	case *ast.IncDecStmt:
		op := token.ADD
		if stmt.Tok == token.DEC {
			op = token.SUB
		}
		one := &ast.BasicLit{ValuePos: stmt.TokPos, Kind: token.INT, Value: "1"}
		return in.update(s, stmt.X, op, one)
	case *ast.ExprStmt:
		return in.call(s, stmt.X)
	case *ast.IfStmt:
		return in.execIf(s, stmt)
	case *ast.ForStmt:
		return in.execFor(s, stmt)
	}
	return s, in.errorf(stmt.Pos(), "unsupported statement %T", stmt)
}

func (in *Interpreter) declare(s store.Store, stmt *ast.DeclStmt) (store.Store, error) {
	decl, ok := stmt.Decl.(*ast.GenDecl)
	if !ok || decl.Tok != token.VAR {
		return s, in.errorf(stmt.Pos(), "only variable declarations are supported")
	}

	for _, spec := range decl.Specs {
		spec := spec.(*ast.ValueSpec)
		if spec.Type == nil {
			return s, in.errorf(spec.Pos(), "declaration of %s without a type", spec.Names[0].Name)
		}
		t, err := ctype.Lookup(types.ExprString(spec.Type), in.cfg.Model)
		if err != nil {
			return s, in.errorf(spec.Type.Pos(), "%v", err)
		}
		if len(spec.Values) != 0 && len(spec.Values) != len(spec.Names) {
			return s, in.errorf(spec.Pos(), "assignment mismatch")
		}

		for i, name := range spec.Names {
			var init domain.Domain
			if len(spec.Values) != 0 {
				if init, _, err = in.eval(s, spec.Values[i]); err != nil {
					return s, err
				}
			}
			s = s.Declare(name.Name, t, init)
		}
	}
	return s, nil
}

var compound = map[token.Token]token.Token{
	token.ADD_ASSIGN: token.ADD,
	token.SUB_ASSIGN: token.SUB,
	token.MUL_ASSIGN: token.MUL,
	token.QUO_ASSIGN: token.QUO,
	token.REM_ASSIGN: token.REM,
	token.AND_ASSIGN: token.AND,
	token.OR_ASSIGN:  token.OR,
	token.XOR_ASSIGN: token.XOR,
	token.SHL_ASSIGN: token.SHL,
	token.SHR_ASSIGN: token.SHR,
}

func (in *Interpreter) assign(s store.Store, stmt *ast.AssignStmt) (store.Store, error) {
	if len(stmt.Lhs) != len(stmt.Rhs) {
		return s, in.errorf(stmt.Pos(), "assignment mismatch")
	}

	if op, ok := compound[stmt.Tok]; ok {
		return in.update(s, stmt.Lhs[0], op, stmt.Rhs[0])
	}

	// Evaluate every right hand side before binding, as in x, y = y, x.
	vals := make([]domain.Domain, len(stmt.Rhs))
	typs := make([]ctype.Type, len(stmt.Rhs))
	for i, rhs := range stmt.Rhs {
		var err error
		if vals[i], typs[i], err = in.eval(s, rhs); err != nil {
			return s, err
		}
	}

	for i, lhs := range stmt.Lhs {
		id, ok := lhs.(*ast.Ident)
		if !ok {
			return s, in.errorf(lhs.Pos(), "cannot assign to %s", types.ExprString(lhs))
		}

		switch stmt.Tok {
		case token.DEFINE:
			s = s.Declare(id.Name, typs[i], vals[i])
		case token.ASSIGN:
			var err error
			if s, err = s.Assign(id.Name, vals[i]); err != nil {
				return s, in.errorf(id.Pos(), "%v", err)
			}
		default:
			return s, in.errorf(stmt.TokPos, "unsupported assignment %s", stmt.Tok)
		}
	}
	return s, nil
}

// update interprets lhs = lhs op rhs.
func (in *Interpreter) update(s store.Store, lhs ast.Expr, op token.Token, rhs ast.Expr) (store.Store, error) {
	id, ok := lhs.(*ast.Ident)
	if !ok {
		return s, in.errorf(lhs.Pos(), "cannot assign to %s", types.ExprString(lhs))
	}
	d, _, err := in.eval(s, &ast.BinaryExpr{X: id, OpPos: id.End(), Op: op, Y: rhs})
	if err != nil {
		return s, err
	}
	if s, err = s.Assign(id.Name, d); err != nil {
		return s, in.errorf(id.Pos(), "%v", err)
	}
	return s, nil
}

// call interprets the statements assume(cond) and print(e...). Other
// expressions are evaluated for their findings only.
func (in *Interpreter) call(s store.Store, e ast.Expr) (store.Store, error) {
	if c, ok := e.(*ast.CallExpr); ok {
		if id, ok := c.Fun.(*ast.Ident); ok {
			switch id.Name {
			case "assume":
				if len(c.Args) != 1 {
					return s, in.errorf(c.Pos(), "assume expects one condition")
				}
				then, _, err := in.branch(s, c.Args[0])
				return then, err
			case "print":
				for _, arg := range c.Args {
					d, _, err := in.eval(s, arg)
					if err != nil {
						return s, err
					}
					p := Print{
						Pos:    in.fset.Position(arg.Pos()),
						Expr:   types.ExprString(arg),
						Domain: d,
					}
					in.log.WithField("pos", p.Pos.String()).Infof("%s = %s", p.Expr, d)
					in.prints = append(in.prints, p)
				}
				return s, nil
			}
		}
	}

	_, _, err := in.eval(s, e)
	return s, err
}

func (in *Interpreter) execIf(s store.Store, stmt *ast.IfStmt) (store.Store, error) {
	var err error
	if stmt.Init != nil {
		if s, err = in.exec(s, stmt.Init); err != nil {
			return s, err
		}
	}

	then, els, err := in.branch(s, stmt.Cond)
	if err != nil {
		return s, err
	}

	pos := in.fset.Position(stmt.Pos()).String()
	if then.IsUnreachable() {
		in.log.WithField("pos", pos).Debug("then branch is unreachable")
	} else if then, err = in.execList(then, stmt.Body.List); err != nil {
		return s, err
	}

	switch {
	case els.IsUnreachable():
		in.log.WithField("pos", pos).Debug("else branch is unreachable")
	case stmt.Else != nil:
		if els, err = in.exec(els, stmt.Else); err != nil {
			return s, err
		}
	}
	return then.Join(els), nil
}

// execFor iterates the loop body from the loop head until the head store is
// stable. The variable compared by the condition is widened at the head.
// Variables still changing after MaxIterations joins become ambiguous.
func (in *Interpreter) execFor(s store.Store, stmt *ast.ForStmt) (store.Store, error) {
	var err error
	if stmt.Init != nil {
		if s, err = in.exec(s, stmt.Init); err != nil {
			return s, err
		}
	}

	log := in.log.WithField("pos", in.fset.Position(stmt.Pos()).String())
	head := s
	for i := 0; ; i++ {
		if head, err = in.widen(head, stmt.Cond); err != nil {
			return s, err
		}

		body := head
		if stmt.Cond != nil {
			if body, _, err = in.branch(head, stmt.Cond); err != nil {
				return s, err
			}
		}
		if !body.IsUnreachable() {
			if body, err = in.execList(body, stmt.Body.List); err != nil {
				return s, err
			}
			if stmt.Post != nil && !body.IsUnreachable() {
				if body, err = in.exec(body, stmt.Post); err != nil {
					return s, err
				}
			}
		}

		next := head.Join(body)
		log.WithField("iteration", i).Debugf("loop head %s", next)
		if next.Equal(head) {
			break
		}
		if i+1 >= in.cfg.MaxIterations {
			log.Warnf("no fixpoint after %d iterations", in.cfg.MaxIterations)
			head = in.giveUp(head, next)
			break
		}
		head = next
	}

	if stmt.Cond == nil {
		// Without a condition the loop never exits.
		return head.Unreachable(), nil
	}
	_, exit, err := in.branch(head, stmt.Cond)
	return exit, err
}

// giveUp makes every variable that differs between the two stores
// ambiguous.
func (in *Interpreter) giveUp(prev, next store.Store) store.Store {
	res := next
	for _, name := range next.Names() {
		b, _ := next.Lookup(name)
		if p, ok := prev.Lookup(name); ok && p.Domain.Equal(b.Domain) {
			continue
		}
		res, _ = res.Set(name, in.f.Ambiguous(b.Domain.IsUndefined()))
	}
	return res
}
