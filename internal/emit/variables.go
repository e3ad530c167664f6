package emit

import (
	"strings"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

func registerVariables(r *Registry) {
	r.register(graph.VarPrimitive, emitPrimitive)
	r.register(graph.VarCollection, emitCollection)
	r.register(graph.VarSObject, emitSObject)
}

func emitPrimitive(n graph.Node) Fragment {
	b := newBuilder(n)
	typ := "Object " + InlineMarker(graph.PropDataType)
	if dt, ok := b.typeProp(graph.PropDataType); ok {
		typ = dt
	}
	declare(b, typ, defaultFor(typ))
	return b.done()
}

func emitCollection(n graph.Node) Fragment {
	b := newBuilder(n)
	typ := "List<Object> " + InlineMarker(graph.PropDataType)
	init := "new List<Object>()"
	if dt, ok := b.typeProp(graph.PropDataType); ok {
		typ = dt
		if !isCollectionType(typ) {
			typ = "List<" + typ + ">"
		}
		init = "new " + typ + "()"
	}
	declare(b, typ, init)
	return b.done()
}

func emitSObject(n graph.Node) Fragment {
	b := newBuilder(n)
	typ := "SObject " + InlineMarker(graph.PropObjectType)
	init := "null"
	if ot, ok := b.typeProp(graph.PropObjectType, graph.PropDataType); ok {
		typ = ot
		init = "new " + typ + "()"
	}
	declare(b, typ, init)
	return b.done()
}

func declare(b *builder, typ, init string) {
	if v := b.n.Prop(graph.PropDefaultValue); v != "" {
		init = v
	}
	b.frag.Declaration = typ + " " + VariableName(b.n) + " = " + init + ";"
}

func isCollectionType(typ string) bool {
	for _, prefix := range []string{"List<", "Set<", "Map<"} {
		if strings.HasPrefix(typ, prefix) {
			return true
		}
	}
	return strings.HasSuffix(typ, "[]")
}

// defaultFor returns the zero value literal for a declared type.
func defaultFor(typ string) string {
	if isCollectionType(typ) {
		if strings.HasSuffix(typ, "[]") {
			return "new " + typ + "{}"
		}
		return "new " + typ + "()"
	}
	switch strings.ToLower(typ) {
	case "integer", "long", "decimal", "double":
		return "0"
	case "boolean":
		return "false"
	case "string":
		return "''"
	}
	return "null"
}
