package graph

// Index is a read-only adjacency view over a Graph. Outgoing edges keep
// insertion order. Edges whose endpoints are missing are kept in Dangling
// and left out of the adjacency lists.
type Index struct {
	g        *Graph
	nodes    map[string]int
	outgoing map[string][]Edge
	incoming map[string][]Edge
	Dangling []Edge
}

// NewIndex builds the adjacency view. When node ids repeat, the first node
// wins.
func NewIndex(g *Graph) *Index {
	idx := &Index{
		g:        g,
		nodes:    make(map[string]int),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
	}
	if g == nil {
		return idx
	}
	for i, n := range g.Nodes {
		if _, exists := idx.nodes[n.ID]; !exists {
			idx.nodes[n.ID] = i
		}
	}
	for _, e := range g.Edges {
		if !idx.Has(e.Source) || !idx.Has(e.Target) {
			idx.Dangling = append(idx.Dangling, e)
			continue
		}
		idx.outgoing[e.Source] = append(idx.outgoing[e.Source], e)
		idx.incoming[e.Target] = append(idx.incoming[e.Target], e)
	}
	return idx
}

// Graph returns the indexed snapshot.
func (idx *Index) Graph() *Graph { return idx.g }

// Has reports whether a node with this id exists.
func (idx *Index) Has(id string) bool {
	_, ok := idx.nodes[id]
	return ok
}

// Node returns the node with the given id.
func (idx *Index) Node(id string) (Node, bool) {
	i, ok := idx.nodes[id]
	if !ok {
		return Node{}, false
	}
	return idx.g.Nodes[i], true
}

// Position returns the input position of a node, or -1.
func (idx *Index) Position(id string) int {
	if i, ok := idx.nodes[id]; ok {
		return i
	}
	return -1
}

// DanglingFrom returns the dangling edges leaving an existing node.
func (idx *Index) DanglingFrom(id string) []Edge {
	var out []Edge
	for _, e := range idx.Dangling {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// Outgoing returns the node's outgoing edges in insertion order.
func (idx *Index) Outgoing(id string) []Edge {
	return idx.outgoing[id]
}

// Incoming returns the node's incoming edges in insertion order.
func (idx *Index) Incoming(id string) []Edge {
	return idx.incoming[id]
}

// IsHoisted reports whether the node is a variable with no incoming edge.
// Hoisted variables become class-level fields.
func (idx *Index) IsHoisted(n Node) bool {
	return IsVariable(n) && len(idx.incoming[n.ID]) == 0
}

// Entries returns the nodes that start generation, in input order: every
// trigger and method, plus hoisted variables.
func (idx *Index) Entries() []Node {
	if idx.g == nil {
		return nil
	}
	var out []Node
	for i, n := range idx.g.Nodes {
		if idx.nodes[n.ID] != i {
			continue
		}
		if SpecOf(n).Entry || idx.IsHoisted(n) {
			out = append(out, n)
		}
	}
	return out
}

// Reachable returns the ids reachable from the given roots by following
// outgoing edges. Roots are included.
func (idx *Index) Reachable(roots ...string) map[string]bool {
	seen := make(map[string]bool)
	stack := append([]string(nil), roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] || !idx.Has(id) {
			continue
		}
		seen[id] = true
		out := idx.outgoing[id]
		for i := len(out) - 1; i >= 0; i-- {
			stack = append(stack, out[i].Target)
		}
	}
	return seen
}
