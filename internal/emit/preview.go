package emit

import (
	"github.com/specialistvlad/skeletongen/internal/graph"
)

// Result is rendered text plus findings.
type Result struct {
	SourceText  string            `json:"sourceText"`
	Diagnostics graph.Diagnostics `json:"diagnostics"`
}

// Preview renders a single node on its own. Block openers get a commented
// empty body. It reports one warning per placeholder and never looks at
// other nodes.
func Preview(n graph.Node, indent string) Result {
	if indent == "" {
		indent = "    "
	}
	f := Emit(n)
	w := NewWriter(indent)

	if f.OpensBlock {
		w.Comment(f.CommentLines()...)
		w.Open(f.Header)
		w.Comment(bodyHint(f.Kind))
		if f.Handler != "" {
			w.Section(f.Handler)
			w.Comment(handlerHint(f.Kind))
		}
		w.Close()
	} else {
		w.Fragment(f)
	}

	var diags graph.Diagnostics
	if _, ok := graph.Lookup(n.Subtype); !ok {
		diags = append(diags, graph.Warnf(graph.CodeUnknownSubtype, n.ID, "",
			"unknown subtype %q; node is rendered as a comment", n.Subtype))
	}
	for _, field := range f.Placeholders {
		diags = append(diags, graph.Warnf(graph.CodePlaceholder, n.ID, "",
			"property %q is empty or unusable; a placeholder was generated", field))
	}
	return Result{SourceText: w.String(), Diagnostics: diags}
}

func bodyHint(k graph.Kind) string {
	switch k {
	case graph.KindConditional:
		return "when the condition holds"
	case graph.KindLoop:
		return "for each element"
	case graph.KindGuarded:
		return "guarded statements"
	default:
		return "statements"
	}
}

func handlerHint(k graph.Kind) string {
	if k == graph.KindConditional {
		return "otherwise"
	}
	return "handle the exception"
}
