package store

import (
	"fmt"

	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/utils/dot"
)

// DotGraph renders the value of every variable as a tree of its connectives,
// one cluster per variable.
func (s Store) DotGraph(title string) *dot.Graph {
	g := &dot.Graph{Title: title}
	for _, name := range s.Names() {
		b, _ := s.vars.Get(name)
		cluster := dot.NewCluster(name, fmt.Sprintf("%s %s", name, b.Type))
		domainTree(g, cluster, name, b.Domain)
		g.Clusters = append(g.Clusters, cluster)
	}
	return g
}

func domainTree(g *dot.Graph, c *dot.Cluster, id string, d domain.Domain) *dot.Node {
	node := c.Add(id)

	child := func(suffix string, d domain.Domain) {
		g.Connect(node, domainTree(g, c, id+suffix, d))
	}

	switch d := d.(type) {
	case *domain.Intersection:
		node.Attrs["label"] = "&&"
		node.Attrs["shape"] = "circle"
		lhs, rhs := d.Operands()
		child(".l", lhs)
		child(".r", rhs)
	case *domain.Union:
		node.Attrs["label"] = "||"
		node.Attrs["shape"] = "circle"
		lhs, rhs := d.Operands()
		child(".l", lhs)
		child(".r", rhs)
	case *domain.Undefined:
		node.Attrs["label"] = "undefined"
		node.Attrs["fillcolor"] = "lightyellow"
		child(".u", d.Domain())
	case *domain.NaN, *domain.Ambiguous:
		node.Attrs["label"] = d.String()
		node.Attrs["fillcolor"] = "mistyrose"
	default:
		node.Attrs["label"] = d.String()
	}
	return node
}
