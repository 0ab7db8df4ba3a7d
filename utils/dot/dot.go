package dot

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"
	"golang.org/x/exp/slices"
)

// Graph is a directed graph whose nodes are grouped in labelled clusters.
type Graph struct {
	Title    string
	Clusters []*Cluster
	Edges    []*Edge
	// RankDir overrides the top to bottom layout, e.g. "LR".
	RankDir string
}

type Cluster struct {
	ID    string
	Label string
	Nodes []*Node
}

type Node struct {
	ID    string
	Attrs Attrs
}

type Edge struct {
	From, To *Node
}

// Attrs are rendered sorted by key.
type Attrs map[string]string

func NewCluster(id, label string) *Cluster {
	return &Cluster{ID: id, Label: label}
}

// Add creates a node in the cluster.
func (c *Cluster) Add(id string) *Node {
	n := &Node{ID: id, Attrs: Attrs{}}
	c.Nodes = append(c.Nodes, n)
	return n
}

func (c *Cluster) String() string {
	return "cluster_" + c.ID
}

func (n *Node) String() string {
	return n.ID
}

func (a Attrs) String() string {
	l := make([]string, 0, len(a))
	for k, v := range a {
		l = append(l, fmt.Sprintf("%s=%q;", k, v))
	}
	slices.Sort(l)
	return strings.Join(l, " ")
}

// Connect adds an edge between two nodes of the graph.
func (g *Graph) Connect(from, to *Node) {
	g.Edges = append(g.Edges, &Edge{From: from, To: to})
}

// NodeCount returns the number of nodes over all clusters.
func (g *Graph) NodeCount() (res int) {
	for _, c := range g.Clusters {
		res += len(c.Nodes)
	}
	return
}

func (g *Graph) Rank() string {
	if g.RankDir == "" {
		return "TB"
	}
	return g.RankDir
}

const tmplGraph = `digraph DomainTree {
	label={{printf "%q" .Title}};
	labelloc="t";
	labeljust="l";
	fontname="Arial";
	rankdir={{printf "%q" .Rank}};
	node [shape="box" style="filled" fillcolor="honeydew" fontname="Verdana" margin="0.05,0.0"];
{{range .Clusters}}
	subgraph {{printf "%q" .String}} {
		label={{printf "%q" .Label}};
		style="rounded";
{{- range .Nodes}}
		{{printf "%q [ %s ]" .ID .Attrs}}
{{- end}}
	}
{{end}}
{{- range .Edges}}
	{{printf "%q -> %q" .From.ID .To.ID}};
{{- end}}
}
`

var graphTemplate = template.Must(template.New("dot").Parse(tmplGraph))

// WriteDot writes the graph source in the DOT language.
func (g *Graph) WriteDot(w io.Writer) error {
	return graphTemplate.Execute(w, g)
}

// Render writes the graph to w. The "dot" format is the graph source itself;
// any other format is laid out and rendered by graphviz.
func (g *Graph) Render(w io.Writer, format string) error {
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		return err
	}
	if format == "dot" {
		_, err := buf.WriteTo(w)
		return err
	}

	gv := graphviz.New()
	defer gv.Close()
	graph, err := graphviz.ParseBytes(buf.Bytes())
	if err != nil {
		return err
	}
	defer graph.Close()
	return gv.Render(graph, graphviz.Format(format), w)
}
