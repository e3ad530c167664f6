package project

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/skeletongen/internal/graph"
)

// ListSeparator joins list-valued properties such as triggerEvents.
const ListSeparator = ", "

// listProperties are written back as lists by FromGraph.
var listProperties = map[string]bool{
	graph.PropTriggerEvents: true,
}

var knownTypes = func() map[graph.NodeType]bool {
	m := make(map[graph.NodeType]bool)
	for _, s := range graph.Subtypes() {
		spec, _ := graph.Lookup(s)
		m[spec.Type] = true
	}
	return m
}()

// Grid spacing used by FromGraph when laying out nodes.
const (
	gridColumns = 4
	gridX       = 280
	gridY       = 160
)

// ToGraph converts the document into a graph snapshot. UI-only fields are
// dropped and missing node or edge ids are filled with UUIDs.
func (d *Document) ToGraph() *graph.Graph {
	g := &graph.Graph{
		Nodes: make([]graph.Node, 0, len(d.Nodes)),
		Edges: make([]graph.Edge, 0, len(d.Edges)),
	}
	for _, nd := range d.Nodes {
		g.Nodes = append(g.Nodes, nd.ToNode())
	}
	for _, ed := range d.Edges {
		e := graph.Edge{
			ID:     ed.ID,
			Source: ed.Source,
			Target: ed.Target,
			Label:  strings.TrimSpace(ed.Label),
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if ed.Style != nil {
			e.ColorTag = ed.Style.Stroke
		}
		g.Edges = append(g.Edges, e)
	}
	return g
}

// ToNode converts one node document; a missing id is filled with a UUID.
func (nd NodeDoc) ToNode() graph.Node {
	n := graph.Node{ID: nd.ID, Properties: graph.Properties{}}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	props := nd.Properties
	if nd.Data != nil {
		n.Type = nd.Data.Type
		n.Subtype = nd.Data.Subtype
		props = nd.Data.Properties
	} else {
		n.Subtype = nd.Subtype
		if t := graph.NodeType(nd.Type); knownTypes[t] {
			n.Type = t
		}
	}
	if n.Type == "" {
		if spec, ok := graph.Lookup(n.Subtype); ok {
			n.Type = spec.Type
		}
	}

	for k, v := range props {
		if s, ok := propertyString(v); ok {
			n.Properties[k] = s
		}
	}
	return n
}

// propertyString flattens an editor property value into the string form
// the generator reads. Lists are joined with ListSeparator.
func propertyString(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case []string:
		return strings.Join(v, ListSeparator), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := propertyString(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ListSeparator), true
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v), true
		}
		return string(out), true
	}
}

// FromGraph builds an editor document for a graph. Nodes are laid out on a
// grid in input order; list properties are split back into lists.
func FromGraph(name string, g *graph.Graph) *Document {
	doc := &Document{Name: name, Nodes: []NodeDoc{}, Edges: []EdgeDoc{}}
	if g == nil {
		return doc
	}
	for i, n := range g.Nodes {
		props := make(map[string]any, len(n.Properties))
		for _, k := range sortedKeys(n.Properties) {
			v := n.Properties[k]
			if listProperties[k] {
				props[k] = splitList(v)
				continue
			}
			props[k] = v
		}
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:       n.ID,
			Type:     "custom",
			Position: &Position{X: float64(i%gridColumns) * gridX, Y: float64(i/gridColumns) * gridY},
			Data:     &NodeData{Type: n.Type, Subtype: n.Subtype, Properties: props},
		})
	}
	for _, e := range g.Edges {
		ed := EdgeDoc{ID: e.ID, Source: e.Source, Target: e.Target, Label: e.Label}
		if e.ColorTag != "" {
			ed.Style = &EdgeStyle{Stroke: e.ColorTag}
		}
		doc.Edges = append(doc.Edges, ed)
	}
	return doc
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func sortedKeys(p graph.Properties) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
