package emit

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

// PlaceholderPrefix starts every placeholder marker.
const PlaceholderPrefix = "TODO: "

// Fragment is the generated text for one node, before assembly.
type Fragment struct {
	NodeID string `json:"nodeId"`
	// Declaration is set for variables: the text used both for class-level
	// fields and for in-flow local declarations.
	Declaration string `json:"declaration,omitempty"`
	// Statement is one or more newline-separated statement lines.
	Statement string `json:"statement,omitempty"`
	// OpensBlock marks conditionals, loops, try/catch and unit headers.
	OpensBlock bool       `json:"opensBlock"`
	Kind       graph.Kind `json:"-"`
	// Header is the text before "{" of a block opener.
	Header string `json:"header,omitempty"`
	// Handler is the header of a block's second section.
	Handler string `json:"handler,omitempty"`
	// Comment lines rendered before the fragment.
	Comment      string   `json:"comment,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// Line returns the statement text, falling back to the declaration.
func (f Fragment) Line() string {
	if f.Statement != "" {
		return f.Statement
	}
	return f.Declaration
}

// CommentLines splits Comment into lines ready for "// " prefixing.
func (f Fragment) CommentLines() []string {
	if strings.TrimSpace(f.Comment) == "" {
		return nil
	}
	var out []string
	for _, l := range strings.Split(f.Comment, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// HasPlaceholders reports whether any field was substituted.
func (f Fragment) HasPlaceholders() bool {
	return len(f.Placeholders) > 0
}

// InlineMarker is the placeholder used inside an expression.
func InlineMarker(field string) string {
	return "/* " + PlaceholderPrefix + field + " */"
}

// LineMarker is the placeholder used for a whole line.
func LineMarker(field string) string {
	return "// " + PlaceholderPrefix + field
}

// builder accumulates a fragment and its placeholders.
type builder struct {
	n    graph.Node
	frag Fragment
}

func newBuilder(n graph.Node) *builder {
	spec := graph.SpecOf(n)
	return &builder{
		n: n,
		frag: Fragment{
			NodeID:     n.ID,
			Kind:       spec.Kind,
			OpensBlock: spec.Kind.OpensBlock(),
			Comment:    n.Prop(graph.PropDescription),
		},
	}
}

// prop returns the property value, or "" after recording a placeholder.
func (b *builder) prop(name string) (string, bool) {
	v := b.n.Prop(name)
	if v == "" {
		b.missing(name)
		return "", false
	}
	return v, true
}

// typeProp reads the first non-empty property among names as a type name.
// A value that leaves no usable type is recorded as missing, the same as an
// empty one.
func (b *builder) typeProp(names ...string) (string, bool) {
	for _, name := range names {
		if v := b.n.Prop(name); v != "" {
			if t := TypeName(v); t != "" {
				return t, true
			}
			b.missing(name)
			return "", false
		}
	}
	b.missing(names[0])
	return "", false
}

// optionalType is typeProp for a property with a default: an empty value
// gives def, an unusable one gives def followed by a placeholder.
func (b *builder) optionalType(name, def string) string {
	v := b.n.Prop(name)
	if v == "" {
		return def
	}
	if t := TypeName(v); t != "" {
		return t
	}
	b.missing(name)
	return def + " " + InlineMarker(name)
}

func (b *builder) missing(field string) {
	for _, p := range b.frag.Placeholders {
		if p == field {
			return
		}
	}
	b.frag.Placeholders = append(b.frag.Placeholders, field)
}

func (b *builder) lines(lines ...string) {
	b.frag.Statement = strings.Join(lines, "\n")
}

func (b *builder) linef(format string, args ...any) {
	b.frag.Statement = fmt.Sprintf(format, args...)
}

func (b *builder) prependComment(line string) {
	if b.frag.Comment == "" {
		b.frag.Comment = line
		return
	}
	b.frag.Comment = line + "\n" + b.frag.Comment
}

func (b *builder) done() Fragment {
	return b.frag
}
