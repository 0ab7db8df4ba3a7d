package main

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/interp"
	"github.com/sjas/adlint-sub000/analysis/store"
	"github.com/sjas/adlint-sub000/utils"
)

// pipeline runs a script through the interpreter and renders the outcome.
type pipeline struct {
	name   string
	src    []byte
	f      *domain.Factory
	cfg    interp.Config
	format string
}

func (p pipeline) interpret(cfg interp.Config) (interp.Result, error) {
	start := time.Now()
	defer opts.OnVerbose(func() {
		utils.TimeTrack(start, "Interpretation")
	})

	return interp.New(p.f, cfg).Run(p.name, p.src)
}

// eval prints the final value of every variable, followed by the values
// printed by the script and the findings.
func (p pipeline) eval(w io.Writer) error {
	res, err := p.interpret(p.cfg)
	if err != nil {
		return err
	}

	r := newReport(res)
	if p.format == "yaml" {
		return writeYAML(w, r)
	}
	return r.writeText(w)
}

// trace prints the value of every variable after each statement.
func (p pipeline) trace(w io.Writer) error {
	var steps []step
	cfg := p.cfg
	cfg.Trace = func(pos token.Position, s store.Store) {
		steps = append(steps, step{
			Pos:         pos.String(),
			Unreachable: s.IsUnreachable(),
			Variables:   variablesOf(s),
		})
	}

	res, err := p.interpret(cfg)
	if err != nil {
		return err
	}

	if p.format == "yaml" {
		return writeYAML(w, struct {
			Steps  []step `yaml:"steps"`
			Result report `yaml:"result"`
		}{steps, newReport(res)})
	}
	for _, st := range steps {
		if err := st.writeText(w); err != nil {
			return err
		}
	}
	return newReport(res).writeText(w)
}

// dot renders the final store as a graph. Without an output file the
// rendering goes to w.
func (p pipeline) dot(w io.Writer, format, output string) error {
	res, err := p.interpret(p.cfg)
	if err != nil {
		return err
	}

	g := res.Store.DotGraph(p.name)
	if output == "" {
		return g.Render(w, format)
	}

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "creating graph output")
	}
	defer out.Close()
	if err := g.Render(out, format); err != nil {
		return errors.Wrapf(err, "rendering %s", output)
	}
	fmt.Fprintln(w, output)
	return nil
}

// stats reports how much the memo tables of the factory were used.
func (p pipeline) stats(w io.Writer) {
	s := p.f.Stats()
	msg := "================ Results =====================\n"
	msg += fmt.Sprintf("Memo entries: %d\n", s.Entries)
	msg += fmt.Sprintf("Memo hits: %d\n", s.Hits)
	msg += fmt.Sprintf("Memo misses: %d\n", s.Misses)
	msg += "================ Results ====================="
	fmt.Fprintln(w, msg)
}
