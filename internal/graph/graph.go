package graph

import "strings"

// NodeType is the coarse category of a building block.
type NodeType string

const (
	TypeVariable    NodeType = "VARIABLE"
	TypeLogic       NodeType = "LOGIC"
	TypeLWC         NodeType = "LWC"
	TypeExperience  NodeType = "EXPERIENCE"
	TypeCloud       NodeType = "CLOUD"
	TypeIntegration NodeType = "INTEGRATION"
	TypeCustom      NodeType = "CUSTOM"
)

// Subtype is the concrete variant of a node. The set is closed; see Spec.
type Subtype string

const (
	// Variables
	VarPrimitive  Subtype = "VAR_PRIMITIVE"
	VarCollection Subtype = "VAR_COLLECTION"
	VarSObject    Subtype = "VAR_SOBJECT"

	// Logic
	LogicAssignment Subtype = "LOGIC_ASSIGNMENT"
	LogicIf         Subtype = "LOGIC_IF"
	LogicLoop       Subtype = "LOGIC_LOOP"
	LogicSOQL       Subtype = "LOGIC_SOQL"
	LogicDML        Subtype = "LOGIC_DML"
	LogicTryCatch   Subtype = "LOGIC_TRY_CATCH"
	LogicMethod     Subtype = "LOGIC_METHOD"
	LogicTrigger    Subtype = "LOGIC_TRIGGER"
	LogicAsync      Subtype = "LOGIC_ASYNC"

	// LWC
	LWCComponent   Subtype = "LWC_COMPONENT"
	LWCEventEmit   Subtype = "LWC_EVENT_EMIT"
	LWCEventHandle Subtype = "LWC_EVENT_HANDLE"
	LWCWire        Subtype = "LWC_WIRE"
	LWCImperative  Subtype = "LWC_IMPERATIVE"

	// Experience
	ExpPage   Subtype = "EXP_PAGE"
	ExpAccess Subtype = "EXP_ACCESS"

	// Integrations
	IntREST          Subtype = "INT_REST"
	IntSOAP          Subtype = "INT_SOAP"
	IntPlatformEvent Subtype = "INT_PLATFORM_EVENT"

	// Clouds
	CloudSales   Subtype = "CLOUD_SALES"
	CloudService Subtype = "CLOUD_SERVICE"

	// Custom
	CustomGeneric Subtype = "CUSTOM_GENERIC"
)

// Well-known property names. Nodes may carry any other string property.
const (
	PropLabel         = "label"
	PropDescription   = "description"
	PropAPIName       = "apiName"
	PropDataType      = "dataType"
	PropObjectType    = "objectType"
	PropQuery         = "query"
	PropCondition     = "condition"
	PropMethodName    = "methodName"
	PropTriggerEvents = "triggerEvents"
	PropEndpoint      = "endpoint"
	PropHTTPMethod    = "httpMethod"
	PropOperation     = "operation"
	PropDefaultValue  = "defaultValue"
	PropReturnType    = "returnType"
	PropParameters    = "parameters"
)

// Properties maps property names to their string values. An absent key and
// an empty value mean the same thing.
type Properties map[string]string

// Get returns the trimmed value of a property, or "" when it is absent.
func (p Properties) Get(name string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p[name])
}

// Has reports whether the property holds a non-blank value.
func (p Properties) Has(name string) bool {
	return p.Get(name) != ""
}

// Node is one typed building block of the design.
type Node struct {
	ID         string     `json:"id" yaml:"id"`
	Type       NodeType   `json:"type" yaml:"type"`
	Subtype    Subtype    `json:"subtype" yaml:"subtype"`
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Prop is shorthand for n.Properties.Get(name).
func (n Node) Prop(name string) string {
	return n.Properties.Get(name)
}

// Edge is a directed, optionally labeled connection. ColorTag is cosmetic
// and never influences generated code.
type Edge struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	ColorTag string `json:"colorTag,omitempty" yaml:"colorTag,omitempty"`
}

// Graph is an immutable snapshot of the design. Slices are kept in input
// order.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Nodes) == 0
}
