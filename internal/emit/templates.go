package emit

import (
	"strings"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

// Non-Apex building blocks render as single comment lines. The title
// matches the palette name the editor shows for the subtype.
var commentTemplates = map[graph.Subtype]string{
	graph.LWCComponent:   "LWC Component",
	graph.LWCEventEmit:   "Dispatch Event",
	graph.LWCEventHandle: "Handle Event",
	graph.LWCWire:        "Wire Adapter",
	graph.LWCImperative:  "Imperative Apex",
	graph.ExpPage:        "Site Page",
	graph.ExpAccess:      "Guest Access",
	graph.CloudSales:     "Sales Cloud",
	graph.CloudService:   "Service Cloud",
	graph.CustomGeneric:  "Custom Node",
}

func registerTemplates(r *Registry) {
	for subtype, title := range commentTemplates {
		r.register(subtype, commentTemplate(title))
	}
}

func commentTemplate(title string) Func {
	return func(n graph.Node) Fragment {
		b := newBuilder(n)
		var parts []string
		if v := n.Prop(graph.PropLabel); v != "" {
			parts = append(parts, v)
		}
		if v := n.Prop(graph.PropAPIName); v != "" && v != n.Prop(graph.PropLabel) {
			parts = append(parts, "("+v+")")
		}
		if len(parts) == 0 {
			parts = append(parts, n.ID)
		}
		b.linef("// %s: %s", title, strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
		return b.done()
	}
}
