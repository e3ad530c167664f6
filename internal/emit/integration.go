package emit

import (
	"strings"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

func registerIntegrations(r *Registry) {
	r.register(graph.IntREST, emitREST)
	r.register(graph.IntSOAP, emitSOAP)
	r.register(graph.IntPlatformEvent, emitPlatformEvent)
}

func emitREST(n graph.Node) Fragment {
	b := newBuilder(n)
	base := Identifier(n.Prop(graph.PropAPIName))
	if base == "" {
		base = Slug(n.Prop(graph.PropLabel))
	}
	if base == "" {
		base = "callout"
	}
	base = strings.ReplaceAll(base, ".", "")
	req, res := base+"Request", base+"Response"

	endpoint := "'' " + InlineMarker(graph.PropEndpoint)
	if ep, ok := b.prop(graph.PropEndpoint); ok {
		endpoint = quote(ep)
	}
	method := strings.ToUpper(n.Prop(graph.PropHTTPMethod))
	if method == "" {
		method = "GET"
	}

	b.lines(
		"HttpRequest "+req+" = new HttpRequest();",
		req+".setEndpoint("+endpoint+");",
		req+".setMethod("+quote(method)+");",
		"HttpResponse "+res+" = new Http().send("+req+");",
	)
	return b.done()
}

func emitSOAP(n graph.Node) Fragment {
	b := newBuilder(n)
	api, ok := b.typeProp(graph.PropAPIName)
	if !ok {
		b.lines(LineMarker(graph.PropAPIName))
		return b.done()
	}
	parts := strings.Split(api, ".")
	stub := lowerFirst(Identifier(parts[len(parts)-1])) + "Stub"

	call := LineMarker(graph.PropMethodName)
	if m, ok := b.prop(graph.PropMethodName); ok {
		call = stub + "." + Identifier(m) + "(" + n.Prop(graph.PropParameters) + ");"
	}
	b.lines(api+" "+stub+" = new "+api+"();", call)
	return b.done()
}

func emitPlatformEvent(n graph.Node) Fragment {
	b := newBuilder(n)
	ev, ok := b.typeProp(graph.PropAPIName, graph.PropObjectType)
	if !ok {
		b.lines(LineMarker(graph.PropAPIName))
		return b.done()
	}
	b.linef("EventBus.publish(new %s());", ev)
	return b.done()
}
