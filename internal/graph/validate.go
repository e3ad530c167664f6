package graph

import "strings"

// Validate checks structural and content well-formedness. It never fails:
// findings come back as diagnostics, grouped by check and then by input
// order. A nil or empty graph yields no diagnostics.
func Validate(g *Graph) Diagnostics {
	if g.IsEmpty() {
		return nil
	}
	idx := NewIndex(g)

	var diags Diagnostics
	diags = append(diags, checkIdentity(g, idx)...)
	diags = append(diags, checkFanOut(g, idx)...)
	diags = append(diags, checkCycles(g, idx)...)
	diags = append(diags, checkReachability(g, idx)...)
	diags = append(diags, checkContent(g)...)
	return diags
}

func checkIdentity(g *Graph, idx *Index) Diagnostics {
	var diags Diagnostics
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			diags = append(diags, Errorf(CodeDuplicateID, "", "", "node with subtype %s has an empty id", n.Subtype))
			continue
		}
		if seen[n.ID] {
			diags = append(diags, Errorf(CodeDuplicateID, n.ID, "", "node id %q is used more than once", n.ID))
			continue
		}
		seen[n.ID] = true
	}
	for _, e := range idx.Dangling {
		diags = append(diags, DanglingEdgeError(idx, e))
	}
	return diags
}

// DanglingEdgeError describes an edge whose endpoints do not all exist.
func DanglingEdgeError(idx *Index, e Edge) Diagnostic {
	var missing []string
	if !idx.Has(e.Source) {
		missing = append(missing, "source "+quoteOrEmpty(e.Source))
	}
	if !idx.Has(e.Target) {
		missing = append(missing, "target "+quoteOrEmpty(e.Target))
	}
	return Errorf(CodeDanglingEdge, "", e.ID, "edge references unknown %s", strings.Join(missing, " and "))
}

// FanOutError describes a node with more successors than its subtype allows.
func FanOutError(n Node, count int) Diagnostic {
	spec := SpecOf(n)
	return Errorf(CodeFanOut, n.ID, "",
		"%s allows at most %d outgoing edge(s), found %d", n.Subtype, spec.MaxOutgoing, count)
}

// CycleError describes an edge that closes an illegal cycle.
func CycleError(e Edge) Diagnostic {
	return Errorf(CodeCycle, e.Target, e.ID,
		"edge %s -> %s closes a cycle that does not pass through a loop", e.Source, e.Target)
}

func checkFanOut(g *Graph, idx *Index) Diagnostics {
	var diags Diagnostics
	for i, n := range g.Nodes {
		if idx.Position(n.ID) != i {
			continue
		}
		if out := idx.Outgoing(n.ID); len(out) > SpecOf(n).MaxOutgoing {
			diags = append(diags, FanOutError(n, len(out)))
		}
	}
	return diags
}

// checkCycles reports cycles that do not pass through a loop head. Edges
// entering a LOGIC_LOOP node are removed first; whatever cycle survives is
// illegal and is reported on the edge that closes it.
func checkCycles(g *Graph, idx *Index) Diagnostics {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.Nodes))
	var diags Diagnostics

	var visit func(id string)
	visit = func(id string) {
		state[id] = onStack
		for _, e := range idx.Outgoing(id) {
			target, _ := idx.Node(e.Target)
			if target.Subtype == LogicLoop {
				continue
			}
			switch state[e.Target] {
			case unvisited:
				visit(e.Target)
			case onStack:
				diags = append(diags, CycleError(e))
			}
		}
		state[id] = done
	}

	for i, n := range g.Nodes {
		if idx.Position(n.ID) != i {
			continue
		}
		if state[n.ID] == unvisited {
			visit(n.ID)
		}
	}
	return diags
}

func checkReachability(g *Graph, idx *Index) Diagnostics {
	var roots []string
	for _, n := range idx.Entries() {
		if SpecOf(n).Entry {
			roots = append(roots, n.ID)
		}
	}
	reachable := idx.Reachable(roots...)

	var diags Diagnostics
	for i, n := range g.Nodes {
		if idx.Position(n.ID) != i {
			continue
		}
		spec := SpecOf(n)
		switch {
		case spec.Entry:
		case idx.IsHoisted(n):
			if len(idx.Outgoing(n.ID)) > 0 {
				diags = append(diags, Warnf(CodeHoistedFlow, n.ID, "",
					"outgoing edges of class-level variable %s are ignored", DisplayName(n)))
			}
		case len(idx.Incoming(n.ID)) == 0:
			diags = append(diags, Warnf(CodeUnreachable, n.ID, "",
				"%s has no incoming edge and is not an entry point", DisplayName(n)))
		case !reachable[n.ID]:
			diags = append(diags, Warnf(CodeUnreachable, n.ID, "",
				"%s cannot be reached from any trigger or method", DisplayName(n)))
		}
	}
	return diags
}

func checkContent(g *Graph) Diagnostics {
	var diags Diagnostics
	for _, n := range g.Nodes {
		spec, ok := Lookup(n.Subtype)
		if !ok {
			diags = append(diags, Warnf(CodeUnknownSubtype, n.ID, "",
				"unknown subtype %q; node is rendered as a comment", n.Subtype))
			continue
		}
		if n.Type != "" && n.Type != spec.Type {
			diags = append(diags, Warnf(CodeTypeMismatch, n.ID, "",
				"subtype %s belongs to type %s, not %s", n.Subtype, spec.Type, n.Type))
		}
		for _, r := range spec.Required {
			if r.SatisfiedBy(n) {
				continue
			}
			diags = append(diags, Warnf(CodeMissingProperty, n.ID, "",
				"%s is missing required property %q", DisplayName(n), r.Property))
		}
	}
	return diags
}

// DisplayName names a node for messages: subtype plus label, or id.
func DisplayName(n Node) string {
	if label := n.Prop(PropLabel); label != "" {
		return string(n.Subtype) + " " + strings.TrimSpace(label)
	}
	return string(n.Subtype) + " " + n.ID
}

func quoteOrEmpty(id string) string {
	if id == "" {
		return "(empty)"
	}
	return `"` + id + `"`
}
