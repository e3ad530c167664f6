package assemble

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/skeletongen/internal/emit"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/labels"
)

// Assembler builds blocks for the entries of one graph snapshot. It is not
// safe for concurrent use; create one per generation run.
type Assembler struct {
	idx   *graph.Index
	vocab labels.Vocabulary
	diags graph.Diagnostics
}

// New prepares an assembler. A zero vocabulary means labels.Default().
func New(g *graph.Graph, vocab labels.Vocabulary) *Assembler {
	if vocab.IsZero() {
		vocab = labels.Default()
	}
	return &Assembler{idx: graph.NewIndex(g), vocab: vocab}
}

// NewWithIndex reuses an index built by the caller.
func NewWithIndex(idx *graph.Index, vocab labels.Vocabulary) *Assembler {
	if vocab.IsZero() {
		vocab = labels.Default()
	}
	return &Assembler{idx: idx, vocab: vocab}
}

// Assemble is a one-shot helper around New and Assembler.Assemble.
func Assemble(g *graph.Graph, entry graph.Node, vocab labels.Vocabulary) (*Block, graph.Diagnostics) {
	return New(g, vocab).Assemble(entry)
}

// Assemble builds the block for one entry node and returns the diagnostics
// raised while walking it.
func (a *Assembler) Assemble(entry graph.Node) (*Block, graph.Diagnostics) {
	a.diags = nil
	block := &Block{}

	if a.idx.IsHoisted(entry) {
		block.add(Item{Fragment: emit.Emit(entry)})
		return block, a.take()
	}

	w := &walk{a: a, path: map[string]bool{}}
	if graph.SpecOf(entry).Kind == graph.KindUnit {
		w.path[entry.ID] = true
		item := Item{Fragment: emit.Emit(entry), Body: &Block{}}
		if next, ok := w.single(entry, item.Body); ok {
			item.Body.add(w.sequence(next, nil)...)
		}
		block.add(item)
		return block, a.take()
	}

	block.add(w.sequence(graph.Edge{Target: entry.ID}, nil)...)
	return block, a.take()
}

func (a *Assembler) take() graph.Diagnostics {
	out := a.diags
	a.diags = nil
	return out
}

func (a *Assembler) report(d graph.Diagnostic) {
	a.diags = append(a.diags, d)
}

type walk struct {
	a    *Assembler
	path map[string]bool
}

// stopSet is the set of node ids at which a section ends silently because
// the enclosing construct continues from there.
type stopSet map[string]bool

func (s stopSet) with(id string) stopSet {
	out := make(stopSet, len(s)+1)
	for k := range s {
		out[k] = true
	}
	if id != "" {
		out[id] = true
	}
	return out
}

// sequence walks from the target of via until the flow ends, a stop node
// is reached, or the path closes on itself.
func (w *walk) sequence(via graph.Edge, stop stopSet) []Item {
	var items []Item
	var added []string
	defer func() {
		for _, id := range added {
			delete(w.path, id)
		}
	}()

	cur := via.Target
	for cur != "" {
		if stop[cur] {
			return items
		}
		n, ok := w.a.idx.Node(cur)
		if !ok {
			return items
		}
		if w.path[cur] {
			if n.Subtype == graph.LogicLoop {
				return items
			}
			w.a.report(graph.CycleError(via))
			items = append(items, note(fmt.Sprintf("cycle through edge %s back to %s removed", via.ID, graph.DisplayName(n))))
			return items
		}
		w.path[cur] = true
		added = append(added, cur)

		var item Item
		var next graph.Edge
		var more bool
		f := emit.Emit(n)
		spec := graph.SpecOf(n)

		switch {
		case spec.Kind == graph.KindUnit:
			items = append(items, note("flow continues in "+f.Header))
			return items
		case spec.Kind == graph.KindConditional, spec.Kind == graph.KindGuarded:
			item, next, more = w.twoWay(n, f, stop)
		case spec.Kind == graph.KindLoop:
			item, next, more = w.loop(n, f, stop)
		case spec.Guardable && w.splits(n):
			item, next, more = w.guarded(n, f, stop)
		default:
			item = Item{Fragment: f}
			var trailing Block
			next, more = w.single(n, &trailing)
			items = append(items, item)
			items = append(items, trailing.Items...)
			if !more {
				return items
			}
			cur, via = next.Target, next
			continue
		}

		items = append(items, item)
		if !more {
			return items
		}
		cur, via = next.Target, next
	}
	return items
}

// single returns the one edge a non-branching node continues along. Extra
// and dangling edges become notes in into.
func (w *walk) single(n graph.Node, into *Block) (graph.Edge, bool) {
	w.noteDangling(n, into)
	out := w.a.idx.Outgoing(n.ID)
	if len(out) == 0 {
		return graph.Edge{}, false
	}
	if len(out) > 1 {
		w.a.report(graph.FanOutError(n, len(out)))
		for _, e := range out[1:] {
			into.add(w.ignoredEdge(e))
		}
	}
	return out[0], true
}

func (w *walk) noteDangling(n graph.Node, into *Block) {
	for _, e := range w.a.idx.DanglingFrom(n.ID) {
		w.a.report(graph.DanglingEdgeError(w.a.idx, e))
		into.add(note(fmt.Sprintf("edge %s points to missing node %q", e.ID, e.Target)))
	}
}

func (w *walk) ignoredEdge(e graph.Edge) Item {
	target := e.Target
	if n, ok := w.a.idx.Node(e.Target); ok {
		target = graph.DisplayName(n)
	}
	return note(fmt.Sprintf("edge %s to %s ignored", e.ID, target))
}

// sections splits the outgoing edges of a branching node into its primary
// and alternative edge. Edges beyond the subtype's limit are returned as
// extras.
func (w *walk) sections(n graph.Node, kind graph.Kind) (primary, alt *graph.Edge, extras []graph.Edge) {
	out := w.a.idx.Outgoing(n.ID)
	limit := graph.SpecOf(n).MaxOutgoing
	if len(out) > limit {
		w.a.report(graph.FanOutError(n, len(out)))
		extras = out[limit:]
		out = out[:limit]
	}

	switch len(out) {
	case 0:
		return nil, nil, extras
	case 1:
		e := out[0]
		role := w.a.vocab.Classify(kind, e.Label)
		if role == labels.RoleAlternative {
			return nil, &e, extras
		}
		if role == labels.RoleNone && kind == graph.KindConditional {
			w.a.report(graph.Warnf(graph.CodeAmbiguousLabel, n.ID, e.ID,
				"label %q on the only edge of %s names no branch; used as the true branch", e.Label, graph.DisplayName(n)))
		}
		return &e, nil, extras
	}

	e1, e2 := out[0], out[1]
	r1 := w.a.vocab.Classify(kind, e1.Label)
	r2 := w.a.vocab.Classify(kind, e2.Label)
	switch {
	case r1 == labels.RoleAlternative && r2 != labels.RoleAlternative,
		r2 == labels.RolePrimary && r1 == labels.RoleNone:
		return &e2, &e1, extras
	case r1 != r2 && (r1 == labels.RolePrimary || r2 == labels.RoleAlternative):
		return &e1, &e2, extras
	}
	w.a.report(graph.Warnf(graph.CodeAmbiguousLabel, n.ID, "",
		"edges %s (%q) and %s (%q) of %s do not name distinct branches; the first is used as the %s",
		e1.ID, e1.Label, e2.ID, e2.Label, graph.DisplayName(n), primaryRoleName(kind)))
	return &e1, &e2, extras
}

func primaryRoleName(kind graph.Kind) string {
	switch kind {
	case graph.KindConditional:
		return "true branch"
	case graph.KindLoop:
		return "loop body"
	default:
		return "protected body"
	}
}

// twoWay handles conditionals and try/catch: both sections are walked
// independently, stopping at their join node if they share one.
func (w *walk) twoWay(n graph.Node, f emit.Fragment, stop stopSet) (Item, graph.Edge, bool) {
	item := Item{Fragment: f, Body: &Block{}}
	w.noteDangling(n, item.Body)
	primary, alt, extras := w.sections(n, f.Kind)

	join := w.join(n.ID, primary, alt, stop)
	inner := stop.with(join)
	if primary != nil {
		item.Body.add(w.sequence(*primary, inner)...)
	}
	for _, e := range extras {
		item.Body.add(w.ignoredEdge(e))
	}

	switch {
	case alt != nil:
		item.Alt = &Block{}
		item.Alt.add(w.sequence(*alt, inner)...)
	case f.Kind == graph.KindGuarded:
		item.Alt = &Block{Items: []Item{note("handle exception")}}
	}

	if join == "" {
		return item, graph.Edge{}, false
	}
	return item, graph.Edge{ID: joinEdgeID(primary, alt), Source: n.ID, Target: join}, true
}

// loop walks the body until it returns to the loop head and continues with
// the exit edge.
func (w *walk) loop(n graph.Node, f emit.Fragment, stop stopSet) (Item, graph.Edge, bool) {
	item := Item{Fragment: f, Body: &Block{}}
	w.noteDangling(n, item.Body)
	body, exit, extras := w.sections(n, graph.KindLoop)

	inner := stop
	if exit != nil {
		inner = stop.with(exit.Target)
	}
	if body != nil {
		item.Body.add(w.sequence(*body, inner)...)
	}
	for _, e := range extras {
		item.Body.add(w.ignoredEdge(e))
	}

	if exit == nil {
		return item, graph.Edge{}, false
	}
	return item, *exit, true
}

// splits reports whether a guardable operation has been given an error
// path: two edges, or a single edge labeled as the error path.
func (w *walk) splits(n graph.Node) bool {
	out := w.a.idx.Outgoing(n.ID)
	switch len(out) {
	case 0:
		return false
	case 1:
		return w.a.vocab.Classify(graph.KindStatement, out[0].Label) == labels.RoleAlternative
	default:
		return true
	}
}

// guarded wraps a DML statement or callout in try/catch, with the success
// path after the statement and the error path in the handler.
func (w *walk) guarded(n graph.Node, f emit.Fragment, stop stopSet) (Item, graph.Edge, bool) {
	item := Item{Fragment: f, Body: &Block{}, Alt: &Block{}, Guard: guardException(n)}
	w.noteDangling(n, item.Body)
	success, failure, extras := w.sections(n, graph.KindStatement)

	join := w.join(n.ID, success, failure, stop)
	inner := stop.with(join)
	if success != nil {
		item.Body.add(w.sequence(*success, inner)...)
	}
	for _, e := range extras {
		item.Body.add(w.ignoredEdge(e))
	}
	if failure != nil {
		item.Alt.add(w.sequence(*failure, inner)...)
	}

	if join == "" {
		return item, graph.Edge{}, false
	}
	return item, graph.Edge{ID: joinEdgeID(success, failure), Source: n.ID, Target: join}, true
}

func guardException(n graph.Node) string {
	if n.Subtype == graph.LogicDML {
		return "DmlException"
	}
	return "CalloutException"
}

// join finds where two sections meet: the first node in the primary
// section's preorder that the alternative section can also reach. Paths
// never pass through the construct itself, nodes on the current path, or
// stop nodes.
func (w *walk) join(self string, primary, alt *graph.Edge, stop stopSet) string {
	if primary == nil || alt == nil {
		return ""
	}
	blocked := func(id string) bool {
		return id == self || w.path[id] || stop[id]
	}

	reach := map[string]bool{}
	stack := []string{alt.Target}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reach[id] || blocked(id) {
			continue
		}
		reach[id] = true
		for _, e := range w.a.idx.Outgoing(id) {
			stack = append(stack, e.Target)
		}
	}

	seen := map[string]bool{}
	var found string
	var visit func(id string) bool
	visit = func(id string) bool {
		if seen[id] || blocked(id) {
			return false
		}
		seen[id] = true
		if reach[id] {
			found = id
			return true
		}
		for _, e := range w.a.idx.Outgoing(id) {
			if visit(e.Target) {
				return true
			}
		}
		return false
	}
	visit(primary.Target)
	return found
}

func joinEdgeID(edges ...*graph.Edge) string {
	var ids []string
	for _, e := range edges {
		if e != nil {
			ids = append(ids, e.ID)
		}
	}
	return strings.Join(ids, "+")
}
