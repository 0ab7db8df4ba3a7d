package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/interp"
	"github.com/sjas/adlint-sub000/analysis/store"
	"github.com/sjas/adlint-sub000/utils"
)

var heading = func(is ...interface{}) string {
	return utils.CanColorize(color.New(color.FgCyan, color.Bold).SprintFunc())(is...)
}

type variable struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Domain string `yaml:"domain"`

	pretty string
}

type printed struct {
	Pos    string `yaml:"pos"`
	Expr   string `yaml:"expr"`
	Domain string `yaml:"domain"`

	pretty string
}

type finding struct {
	Pos     string `yaml:"pos"`
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

type report struct {
	Unreachable bool       `yaml:"unreachable,omitempty"`
	Variables   []variable `yaml:"variables"`
	Prints      []printed  `yaml:"prints,omitempty"`
	Findings    []finding  `yaml:"findings,omitempty"`
}

type step struct {
	Pos         string     `yaml:"pos"`
	Unreachable bool       `yaml:"unreachable,omitempty"`
	Variables   []variable `yaml:"variables"`
}

func variablesOf(s store.Store) []variable {
	vars := make([]variable, 0, len(s.Names()))
	for _, name := range s.Names() {
		b, _ := s.Lookup(name)
		vars = append(vars, variable{
			Name:   name,
			Type:   b.Type.String(),
			Domain: b.Domain.String(),
			pretty: domain.Pretty(b.Domain),
		})
	}
	return vars
}

func newReport(res interp.Result) report {
	r := report{
		Unreachable: res.Store.IsUnreachable(),
		Variables:   variablesOf(res.Store),
	}
	for _, p := range res.Prints {
		r.Prints = append(r.Prints, printed{
			Pos:    p.Pos.String(),
			Expr:   p.Expr,
			Domain: p.Domain.String(),
			pretty: domain.Pretty(p.Domain),
		})
	}
	for _, f := range res.Findings {
		r.Findings = append(r.Findings, finding{
			Pos:     f.Pos.String(),
			Kind:    f.Kind.String(),
			Message: f.Message,
		})
	}
	return r
}

// table renders rows with every column but the last padded to the widest
// cell of the column.
func table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row[:len(row)-1] {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString("  ")
		for i, cell := range row[:len(row)-1] {
			sb.WriteString(runewidth.FillRight(cell, widths[i]) + "  ")
		}
		sb.WriteString(row[len(row)-1] + "\n")
	}
	return sb.String()
}

func variableRows(vars []variable) (rows [][]string) {
	for _, v := range vars {
		rows = append(rows, []string{v.Name, v.Type, v.pretty})
	}
	return
}

func (r report) writeText(w io.Writer) error {
	var sb strings.Builder

	switch {
	case r.Unreachable:
		sb.WriteString(heading("variables:") + " ⊥\n")
	case len(r.Variables) == 0:
		sb.WriteString(heading("variables:") + " {}\n")
	default:
		sb.WriteString(heading("variables:") + "\n")
		sb.WriteString(table(variableRows(r.Variables)))
	}

	if len(r.Prints) > 0 {
		var rows [][]string
		for _, p := range r.Prints {
			rows = append(rows, []string{p.Pos, p.Expr, p.pretty})
		}
		sb.WriteString(heading("prints:") + "\n")
		sb.WriteString(table(rows))
	}

	if len(r.Findings) > 0 {
		var rows [][]string
		for _, f := range r.Findings {
			rows = append(rows, []string{f.Pos, f.Kind, f.Message})
		}
		sb.WriteString(heading("findings:") + "\n")
		sb.WriteString(table(rows))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (s step) writeText(w io.Writer) error {
	var err error
	switch {
	case s.Unreachable:
		_, err = fmt.Fprintf(w, "%s ⊥\n", heading(s.Pos+":"))
	case len(s.Variables) == 0:
		_, err = fmt.Fprintf(w, "%s {}\n", heading(s.Pos+":"))
	default:
		_, err = fmt.Fprintf(w, "%s\n%s", heading(s.Pos+":"), table(variableRows(s.Variables)))
	}
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
