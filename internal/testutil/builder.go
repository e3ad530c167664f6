package testutil

import (
	"fmt"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

// GraphBuilder assembles graph.Graph values for tests. Nodes and edges are
// kept in the order they are added.
type GraphBuilder struct {
	g     graph.Graph
	edges int
}

// NewGraph starts an empty builder.
func NewGraph() *GraphBuilder {
	return &GraphBuilder{}
}

// Node adds a node. Its type is taken from the subtype table. props is a
// flat list of name/value pairs.
func (b *GraphBuilder) Node(id string, subtype graph.Subtype, props ...string) *GraphBuilder {
	b.g.Nodes = append(b.g.Nodes, NewNode(id, subtype, props...))
	return b
}

// Edge adds an unlabeled edge with a generated id.
func (b *GraphBuilder) Edge(source, target string) *GraphBuilder {
	return b.Labeled(source, target, "")
}

// Labeled adds a labeled edge with a generated id.
func (b *GraphBuilder) Labeled(source, target, label string) *GraphBuilder {
	b.edges++
	return b.EdgeWithID(fmt.Sprintf("e%d", b.edges), source, target, label)
}

// EdgeWithID adds an edge with an explicit id.
func (b *GraphBuilder) EdgeWithID(id, source, target, label string) *GraphBuilder {
	b.g.Edges = append(b.g.Edges, graph.Edge{ID: id, Source: source, Target: target, Label: label})
	return b
}

// Build returns the assembled graph.
func (b *GraphBuilder) Build() *graph.Graph {
	g := b.g
	return &g
}

// NewNode builds a single node. props is a flat list of name/value pairs; a
// trailing name without a value is ignored.
func NewNode(id string, subtype graph.Subtype, props ...string) graph.Node {
	n := graph.Node{ID: id, Subtype: subtype, Properties: graph.Properties{}}
	if spec, ok := graph.Lookup(subtype); ok {
		n.Type = spec.Type
	}
	for i := 0; i+1 < len(props); i += 2 {
		n.Properties[props[i]] = props[i+1]
	}
	return n
}
