package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity grades a Diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "info":
		*s = SeverityInfo
	case "warning", "warn":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// Diagnostic codes.
const (
	CodeDuplicateID     = "duplicate_id"
	CodeDanglingEdge    = "dangling_edge"
	CodeFanOut          = "fan_out"
	CodeCycle           = "cycle"
	CodeUnreachable     = "unreachable"
	CodeHoistedFlow     = "hoisted_flow"
	CodeMissingProperty = "missing_property"
	CodeUnknownSubtype  = "unknown_subtype"
	CodeTypeMismatch    = "type_mismatch"
	CodeAmbiguousLabel  = "ambiguous_label"
	CodeNoEntry         = "no_entry"
	CodePlaceholder     = "placeholder"
)

// Diagnostic is a structured finding about a node or an edge.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	NodeID   string   `json:"nodeId,omitempty"`
	EdgeID   string   `json:"edgeId,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	switch {
	case d.EdgeID != "":
		fmt.Fprintf(&b, " [edge %s]", d.EdgeID)
	case d.NodeID != "":
		fmt.Fprintf(&b, " [node %s]", d.NodeID)
	}
	fmt.Fprintf(&b, " %s: %s", d.Code, d.Message)
	return b.String()
}

// Errorf builds an error-severity diagnostic.
func Errorf(code, nodeID, edgeID, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, NodeID: nodeID, EdgeID: edgeID, Message: fmt.Sprintf(format, args...)}
}

// Warnf builds a warning-severity diagnostic.
func Warnf(code, nodeID, edgeID, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, NodeID: nodeID, EdgeID: edgeID, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an info-severity diagnostic.
func Infof(code, nodeID, edgeID, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, Code: code, NodeID: nodeID, EdgeID: edgeID, Message: fmt.Sprintf(format, args...)}
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics have the given severity.
func (ds Diagnostics) Count(s Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// WithCode returns the diagnostics carrying the given code.
func (ds Diagnostics) WithCode(code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Dedupe drops repeated diagnostics, keeping the first occurrence.
func (ds Diagnostics) Dedupe() Diagnostics {
	if len(ds) == 0 {
		return ds
	}
	type key struct{ code, node, edge, msg string }
	seen := make(map[key]struct{}, len(ds))
	out := make(Diagnostics, 0, len(ds))
	for _, d := range ds {
		k := key{d.Code, d.NodeID, d.EdgeID, d.Message}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}

// MarshalJSON always encodes a list, never null.
func (ds Diagnostics) MarshalJSON() ([]byte, error) {
	if ds == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Diagnostic(ds))
}
