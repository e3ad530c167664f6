package emit

import (
	"strings"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

var dmlVerbs = []string{"insert", "update", "upsert", "delete", "undelete", "merge"}

func registerLogic(r *Registry) {
	r.register(graph.LogicAssignment, emitAssignment)
	r.register(graph.LogicIf, emitIf)
	r.register(graph.LogicLoop, emitLoop)
	r.register(graph.LogicSOQL, emitSOQL)
	r.register(graph.LogicDML, emitDML)
	r.register(graph.LogicTryCatch, emitTryCatch)
	r.register(graph.LogicMethod, emitMethod)
	r.register(graph.LogicTrigger, emitTrigger)
	r.register(graph.LogicAsync, emitAsync)
}

func emitAssignment(n graph.Node) Fragment {
	b := newBuilder(n)
	rhs, ok := b.prop(graph.PropCondition)
	if !ok {
		b.linef("%s", LineMarker(graph.PropCondition))
		return b.done()
	}
	b.linef("%s = %s;", VariableName(n), strings.TrimSuffix(rhs, ";"))
	return b.done()
}

func emitIf(n graph.Node) Fragment {
	b := newBuilder(n)
	cond := "true " + InlineMarker(graph.PropCondition)
	if c, ok := b.prop(graph.PropCondition); ok {
		cond = c
	}
	b.frag.Header = "if (" + cond + ")"
	b.frag.Handler = "else"
	return b.done()
}

func emitLoop(n graph.Node) Fragment {
	b := newBuilder(n)
	var elem string
	field := graph.PropDataType
	if ot := n.Prop(graph.PropObjectType); ot != "" {
		field = graph.PropObjectType
		elem = TypeName(ot)
	} else if dt, ok := b.prop(graph.PropDataType); ok {
		elem = TypeName(elementType(dt))
	}
	if elem == "" {
		b.missing(field)
		elem = "Object " + InlineMarker(field)
	}

	item := "item"
	if base := lowerFirst(Identifier(strings.Fields(elem)[0])); base != "" && base != "object" {
		item = strings.ReplaceAll(base, ".", "") + "Item"
	}

	var source string
	switch {
	case n.Prop(graph.PropCondition) != "":
		source = n.Prop(graph.PropCondition)
	case n.Prop(graph.PropAPIName) != "":
		source = Identifier(n.Prop(graph.PropAPIName))
	default:
		b.missing(graph.PropCondition)
		source = "new List<" + strings.Fields(elem)[0] + ">() " + InlineMarker(graph.PropCondition)
	}

	b.frag.Header = "for (" + elem + " " + item + " : " + source + ")"
	return b.done()
}

func emitSOQL(n graph.Node) Fragment {
	b := newBuilder(n)
	obj := b.optionalType(graph.PropObjectType, "SObject")
	name := Identifier(n.Prop(graph.PropAPIName))
	if name == "" {
		name = recordsName(n.Prop(graph.PropObjectType))
	}

	q, ok := b.prop(graph.PropQuery)
	if !ok {
		b.linef("List<%s> %s = new List<%s>(); %s", obj, name, obj, InlineMarker(graph.PropQuery))
		return b.done()
	}
	q = strings.TrimSuffix(q, ";")
	if !(strings.HasPrefix(q, "[") && strings.HasSuffix(q, "]")) {
		q = "[" + q + "]"
	}
	b.linef("List<%s> %s = %s;", obj, name, q)
	return b.done()
}

func emitDML(n graph.Node) Fragment {
	b := newBuilder(n)
	op := dmlOperation(n)

	var target string
	switch {
	case n.Prop(graph.PropAPIName) != "":
		target = Identifier(n.Prop(graph.PropAPIName))
	case n.Prop(graph.PropObjectType) != "":
		target = recordsName(n.Prop(graph.PropObjectType))
	default:
		b.missing(graph.PropObjectType)
		target = "records " + InlineMarker(graph.PropObjectType)
	}
	b.linef("%s %s;", op, target)
	return b.done()
}

// dmlOperation reads the operation property, then a DML verb in the label,
// and falls back to update.
func dmlOperation(n graph.Node) string {
	if op := strings.ToLower(n.Prop(graph.PropOperation)); op != "" {
		for _, v := range dmlVerbs {
			if op == v {
				return v
			}
		}
	}
	words := strings.FieldsFunc(strings.ToLower(n.Prop(graph.PropLabel)), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
	for _, w := range words {
		for _, v := range dmlVerbs {
			if w == v {
				return v
			}
		}
	}
	return "update"
}

func emitTryCatch(n graph.Node) Fragment {
	b := newBuilder(n)
	exc := b.optionalType(graph.PropObjectType, "Exception")
	b.frag.Header = "try"
	b.frag.Handler = "catch (" + exc + " e)"
	return b.done()
}

func emitMethod(n graph.Node) Fragment {
	b := newBuilder(n)
	ret := b.optionalType(graph.PropReturnType, "void")
	name := Identifier(n.Prop(graph.PropMethodName))
	if name == "" {
		name = VariableName(n)
	}
	b.frag.Header = "public static " + ret + " " + name + "(" + n.Prop(graph.PropParameters) + ")"
	return b.done()
}

func emitTrigger(n graph.Node) Fragment {
	b := newBuilder(n)
	obj := "SObject"
	objTag := obj
	if ot, ok := b.typeProp(graph.PropObjectType); ok {
		obj = ot
		objTag = obj
	} else {
		obj += " " + InlineMarker(graph.PropObjectType)
	}

	name := Identifier(n.Prop(graph.PropAPIName))
	if name == "" {
		name = Slug(n.Prop(graph.PropLabel))
	}
	if name == "" {
		name = "handle" + strings.ReplaceAll(upperFirst(Identifier(objTag)), ".", "")
	}

	events := n.Prop(graph.PropTriggerEvents)
	if events == "" {
		events = "before insert"
	}

	b.frag.Header = "public static void " + name + "(List<" + obj + "> newRecords, Map<Id, " + objTag + "> oldMap)"
	b.prependComment("trigger " + upperFirst(name) + " on " + objTag + " (" + strings.ToLower(events) + ")")
	return b.done()
}

func emitAsync(n graph.Node) Fragment {
	b := newBuilder(n)
	api, ok := b.prop(graph.PropAPIName)
	if !ok {
		b.linef("%s", LineMarker(graph.PropAPIName))
		return b.done()
	}
	api = Identifier(api)
	if strings.EqualFold(n.Prop(graph.PropDataType), "future") {
		b.linef("%s();", api)
		return b.done()
	}
	b.linef("System.enqueueJob(new %s());", api)
	return b.done()
}
