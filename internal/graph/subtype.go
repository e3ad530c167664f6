package graph

// Kind is the shape of code a subtype produces.
type Kind int

const (
	// KindStatement is a single statement or comment template.
	KindStatement Kind = iota
	// KindDeclaration is a variable declaration that may be hoisted.
	KindDeclaration
	// KindConditional opens an if/else block.
	KindConditional
	// KindLoop opens an iteration block.
	KindLoop
	// KindGuarded opens a try/catch block.
	KindGuarded
	// KindUnit opens a top-level method declaration.
	KindUnit
)

func (k Kind) String() string {
	switch k {
	case KindStatement:
		return "statement"
	case KindDeclaration:
		return "declaration"
	case KindConditional:
		return "conditional"
	case KindLoop:
		return "loop"
	case KindGuarded:
		return "guarded"
	case KindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// OpensBlock reports whether nodes of this kind wrap nested statements.
func (k Kind) OpensBlock() bool {
	switch k {
	case KindConditional, KindLoop, KindGuarded, KindUnit:
		return true
	}
	return false
}

// Requirement names a property a subtype cannot do without. Alternatives
// lists properties that satisfy the requirement in its place.
type Requirement struct {
	Property     string
	Alternatives []string
}

// SatisfiedBy reports whether the node carries the property or one of its
// alternatives.
func (r Requirement) SatisfiedBy(n Node) bool {
	if n.Properties.Has(r.Property) {
		return true
	}
	for _, alt := range r.Alternatives {
		if n.Properties.Has(alt) {
			return true
		}
	}
	return false
}

// Spec is one row of the subtype table.
type Spec struct {
	Subtype Subtype
	Type    NodeType
	Kind    Kind
	// MaxOutgoing is the largest legal number of outgoing edges.
	MaxOutgoing int
	// Guardable operations may split into success/error paths.
	Guardable bool
	// Entry marks triggers and methods, which start a top-level unit.
	Entry    bool
	Required []Requirement
}

// Branching reports whether the subtype may legally have more than one
// successor.
func (s Spec) Branching() bool {
	return s.MaxOutgoing > 1
}

func req(prop string, alts ...string) Requirement {
	return Requirement{Property: prop, Alternatives: alts}
}

var specs = []Spec{
	{Subtype: VarPrimitive, Type: TypeVariable, Kind: KindDeclaration, MaxOutgoing: 1, Required: []Requirement{req(PropDataType)}},
	{Subtype: VarCollection, Type: TypeVariable, Kind: KindDeclaration, MaxOutgoing: 1, Required: []Requirement{req(PropDataType)}},
	{Subtype: VarSObject, Type: TypeVariable, Kind: KindDeclaration, MaxOutgoing: 1, Required: []Requirement{req(PropObjectType, PropDataType)}},

	{Subtype: LogicAssignment, Type: TypeLogic, Kind: KindStatement, MaxOutgoing: 1, Required: []Requirement{req(PropCondition)}},
	{Subtype: LogicIf, Type: TypeLogic, Kind: KindConditional, MaxOutgoing: 2, Required: []Requirement{req(PropCondition)}},
	{Subtype: LogicLoop, Type: TypeLogic, Kind: KindLoop, MaxOutgoing: 2, Required: []Requirement{req(PropDataType, PropObjectType)}},
	{Subtype: LogicSOQL, Type: TypeLogic, Kind: KindStatement, MaxOutgoing: 1, Required: []Requirement{req(PropQuery)}},
	{Subtype: LogicDML, Type: TypeLogic, Kind: KindStatement, MaxOutgoing: 2, Guardable: true, Required: []Requirement{req(PropObjectType, PropAPIName)}},
	{Subtype: LogicTryCatch, Type: TypeLogic, Kind: KindGuarded, MaxOutgoing: 2},
	{Subtype: LogicMethod, Type: TypeLogic, Kind: KindUnit, MaxOutgoing: 1, Entry: true},
	{Subtype: LogicTrigger, Type: TypeLogic, Kind: KindUnit, MaxOutgoing: 1, Entry: true, Required: []Requirement{req(PropObjectType)}},
	{Subtype: LogicAsync, Type: TypeLogic, Kind: KindStatement, MaxOutgoing: 1, Required: []Requirement{req(PropAPIName)}},

	{Subtype: LWCComponent, Type: TypeLWC, Kind: KindStatement, MaxOutgoing: 1},
	{Subtype: LWCEventEmit, Type: TypeLWC, Kind: KindStatement, MaxOutgoing: 1},
	{Subtype: LWCEventHandle, Type: TypeLWC, Kind: KindStatement, MaxOutgoing: 1},
	{Subtype: LWCWire, Type: TypeLWC, Kind: KindStatement, MaxOutgoing: 1},
	{Subtype: LWCImperative, Type: TypeLWC, Kind: KindStatement, MaxOutgoing: 1},

	{Subtype: ExpPage, Type: TypeExperience, Kind: KindStatement, MaxOutgoing: 1},
	{Subtype: ExpAccess, Type: TypeExperience, Kind: KindStatement, MaxOutgoing: 1},

	{Subtype: IntREST, Type: TypeIntegration, Kind: KindStatement, MaxOutgoing: 2, Guardable: true, Required: []Requirement{req(PropEndpoint)}},
	{Subtype: IntSOAP, Type: TypeIntegration, Kind: KindStatement, MaxOutgoing: 2, Guardable: true, Required: []Requirement{req(PropAPIName)}},
	{Subtype: IntPlatformEvent, Type: TypeIntegration, Kind: KindStatement, MaxOutgoing: 1, Required: []Requirement{req(PropAPIName, PropObjectType)}},

	{Subtype: CloudSales, Type: TypeCloud, Kind: KindStatement, MaxOutgoing: 1},
	{Subtype: CloudService, Type: TypeCloud, Kind: KindStatement, MaxOutgoing: 1},

	{Subtype: CustomGeneric, Type: TypeCustom, Kind: KindStatement, MaxOutgoing: 1},
}

var specIndex = func() map[Subtype]Spec {
	m := make(map[Subtype]Spec, len(specs))
	for _, s := range specs {
		m[s.Subtype] = s
	}
	return m
}()

// Lookup returns the table row for a subtype.
func Lookup(s Subtype) (Spec, bool) {
	spec, ok := specIndex[s]
	return spec, ok
}

// Subtypes lists every known subtype in table order.
func Subtypes() []Subtype {
	out := make([]Subtype, len(specs))
	for i, s := range specs {
		out[i] = s.Subtype
	}
	return out
}

// SpecOf returns the table row for a node. Unknown subtypes get a
// single-successor statement row so generation can continue.
func SpecOf(n Node) Spec {
	if spec, ok := Lookup(n.Subtype); ok {
		return spec
	}
	return Spec{Subtype: n.Subtype, Type: n.Type, Kind: KindStatement, MaxOutgoing: 1}
}

// IsVariable reports whether the node declares a variable.
func IsVariable(n Node) bool {
	spec, ok := Lookup(n.Subtype)
	if ok {
		return spec.Kind == KindDeclaration
	}
	return n.Type == TypeVariable
}
