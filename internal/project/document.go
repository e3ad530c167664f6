package project

import "github.com/specialistvlad/skeletongen/internal/graph"

// Document is a project in the editor's persisted shape.
type Document struct {
	ID    string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string    `json:"name" yaml:"name"`
	Nodes []NodeDoc `json:"nodes" yaml:"nodes"`
	Edges []EdgeDoc `json:"edges" yaml:"edges"`
}

// NodeDoc is one canvas node. Editor files carry the building block under
// Data; bare graph snapshots put Subtype and Properties at the top level and
// use Type for the node category. Both are accepted.
type NodeDoc struct {
	ID       string    `json:"id" yaml:"id"`
	Type     string    `json:"type,omitempty" yaml:"type,omitempty"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`
	Data     *NodeData `json:"data,omitempty" yaml:"data,omitempty"`

	Subtype    graph.Subtype  `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Position is the canvas location of a node.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData is the building block carried by an editor node.
type NodeData struct {
	Type       graph.NodeType `json:"type,omitempty" yaml:"type,omitempty"`
	Subtype    graph.Subtype  `json:"subtype" yaml:"subtype"`
	Properties map[string]any `json:"properties" yaml:"properties"`
	Icon       string         `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// EdgeDoc is one canvas connection.
type EdgeDoc struct {
	ID       string     `json:"id" yaml:"id"`
	Source   string     `json:"source" yaml:"source"`
	Target   string     `json:"target" yaml:"target"`
	Label    string     `json:"label,omitempty" yaml:"label,omitempty"`
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Animated bool       `json:"animated,omitempty" yaml:"animated,omitempty"`
	Style    *EdgeStyle `json:"style,omitempty" yaml:"style,omitempty"`
}

// EdgeStyle holds the editor's cosmetic edge attributes.
type EdgeStyle struct {
	Stroke string `json:"stroke,omitempty" yaml:"stroke,omitempty"`
}

// Clone returns a copy that shares no slices or maps with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{ID: d.ID, Name: d.Name}
	if d.Nodes != nil {
		out.Nodes = make([]NodeDoc, len(d.Nodes))
		for i, n := range d.Nodes {
			out.Nodes[i] = n.clone()
		}
	}
	if d.Edges != nil {
		out.Edges = make([]EdgeDoc, len(d.Edges))
		for i, e := range d.Edges {
			if e.Style != nil {
				style := *e.Style
				e.Style = &style
			}
			out.Edges[i] = e
		}
	}
	return out
}

func (n NodeDoc) clone() NodeDoc {
	if n.Position != nil {
		pos := *n.Position
		n.Position = &pos
	}
	if n.Data != nil {
		data := *n.Data
		data.Properties = cloneProps(data.Properties)
		n.Data = &data
	}
	n.Properties = cloneProps(n.Properties)
	return n
}

func cloneProps(p map[string]any) map[string]any {
	if p == nil {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		switch list := v.(type) {
		case []any:
			v = append([]any(nil), list...)
		case []string:
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}
