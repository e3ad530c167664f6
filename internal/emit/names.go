package emit

import (
	"strings"
	"unicode"

	"github.com/specialistvlad/skeletongen/internal/graph"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	output, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return output
}

// Slug turns free text into a lowerCamelCase identifier. Accents are
// stripped, other non-alphanumerics split words, and a leading digit gets a
// "v" prefix. Blank input gives "".
func Slug(s string) string {
	words := strings.FieldsFunc(removeAccents(s), func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			if strings.ToUpper(w) == w {
				w = strings.ToLower(w)
			}
			b.WriteString(lowerFirst(w))
			continue
		}
		b.WriteString(upperFirst(w))
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		out = "v" + upperFirst(out)
	}
	return out
}

// Identifier keeps an identifier-like value as written when it is already
// a valid (possibly dotted) identifier, and slugs it otherwise.
func Identifier(s string) string {
	s = strings.TrimSpace(s)
	if isIdentifier(s) {
		return s
	}
	return Slug(s)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
			case i > 0 && r < unicode.MaxASCII && unicode.IsDigit(r):
			default:
				return false
			}
		}
	}
	return true
}

// TypeName keeps a type expression such as "List<Account>" or
// "Map<Id, Contact>" as written; anything else is reduced to an identifier.
// It returns "" when nothing usable is left, as for "List<>" or "???".
func TypeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<>") {
		if !isTypeExpr(s) {
			return ""
		}
		return s
	}
	if isIdentifier(s) {
		return s
	}
	return upperFirst(Slug(s))
}

// isTypeExpr reports whether s is a well-formed generic type such as
// "Map<Id, List<Contact>>": every name is an identifier and every pair of
// angle brackets holds at least one argument.
func isTypeExpr(s string) bool {
	rest, ok := parseTypeExpr(strings.Join(strings.Fields(s), ""))
	return ok && rest == ""
}

func parseTypeExpr(s string) (string, bool) {
	end := strings.IndexAny(s, "<>,[")
	if end < 0 {
		end = len(s)
	}
	if !isIdentifier(s[:end]) {
		return s, false
	}
	s = s[end:]
	if strings.HasPrefix(s, "<") {
		for {
			var ok bool
			if s, ok = parseTypeExpr(s[1:]); !ok {
				return s, false
			}
			if !strings.HasPrefix(s, ",") {
				break
			}
		}
		if !strings.HasPrefix(s, ">") {
			return s, false
		}
		s = s[1:]
	}
	return strings.TrimPrefix(s, "[]"), true
}

// VariableName picks the name a node declares: apiName, then the slugged
// label, then a name derived from the node id.
func VariableName(n graph.Node) string {
	if v := Identifier(n.Prop(graph.PropAPIName)); v != "" {
		return v
	}
	if v := Slug(n.Prop(graph.PropLabel)); v != "" {
		return v
	}
	return fallbackName(n)
}

func fallbackName(n graph.Node) string {
	if v := Slug("node " + n.ID); v != "" {
		return v
	}
	return "node"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// elementType returns X for List<X> or Set<X>, and the input otherwise.
func elementType(dataType string) string {
	dt := strings.TrimSpace(dataType)
	for _, prefix := range []string{"List<", "Set<", "list<", "set<"} {
		if strings.HasPrefix(dt, prefix) && strings.HasSuffix(dt, ">") {
			return strings.TrimSpace(dt[len(prefix) : len(dt)-1])
		}
	}
	if strings.HasSuffix(dt, "[]") {
		return strings.TrimSpace(strings.TrimSuffix(dt, "[]"))
	}
	return dt
}

// recordsName is the conventional collection name for an SObject type.
func recordsName(objectType string) string {
	base := lowerFirst(Identifier(strings.ReplaceAll(objectType, "__c", "")))
	base = strings.ReplaceAll(base, ".", "")
	if base == "" {
		return "records"
	}
	return base + "Records"
}

// quote renders an Apex single-quoted string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
