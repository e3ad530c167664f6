// Package labels classifies edge labels into control-flow roles.
//
// A branching node has two sections: a primary one (the "then" branch, the
// loop body, the protected block) and an alternative one (the "else"
// branch, the loop exit, the catch handler). Which edge feeds which section
// is decided only by its label, matched against a Vocabulary of tokens.
package labels

import (
	"strings"
	"unicode"

	"github.com/specialistvlad/skeletongen/internal/graph"
)

// Role is the section an edge leads into.
type Role int

const (
	// RoleNone means the label matched neither token list.
	RoleNone Role = iota
	RolePrimary
	RoleAlternative
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleAlternative:
		return "alternative"
	default:
		return "none"
	}
}

// Vocabulary holds the tokens recognized for each construct.
type Vocabulary struct {
	IfTrue   []string `json:"ifTrue,omitempty"`
	IfFalse  []string `json:"ifFalse,omitempty"`
	LoopBody []string `json:"loopBody,omitempty"`
	LoopExit []string `json:"loopExit,omitempty"`
	TryBody  []string `json:"tryBody,omitempty"`
	TryCatch []string `json:"tryCatch,omitempty"`
}

// Default returns the built-in vocabulary.
func Default() Vocabulary {
	return Vocabulary{
		IfTrue:   []string{"true", "yes", "success", "then", "ok", "pass"},
		IfFalse:  []string{"false", "no", "error", "otherwise", "else", "fail", "failure"},
		LoopBody: []string{"body", "each", "loop", "iterate", "do"},
		LoopExit: []string{"done", "exit", "end", "after", "next", "complete", "finished"},
		TryBody:  []string{"try", "body", "attempt", "success", "ok"},
		TryCatch: []string{"catch", "error", "exception", "fail", "failure", "otherwise"},
	}
}

// Merge returns v with every non-empty list of override replacing its
// counterpart.
func (v Vocabulary) Merge(override Vocabulary) Vocabulary {
	pick := func(base, o []string) []string {
		if len(o) > 0 {
			return normalize(o)
		}
		return base
	}
	return Vocabulary{
		IfTrue:   pick(v.IfTrue, override.IfTrue),
		IfFalse:  pick(v.IfFalse, override.IfFalse),
		LoopBody: pick(v.LoopBody, override.LoopBody),
		LoopExit: pick(v.LoopExit, override.LoopExit),
		TryBody:  pick(v.TryBody, override.TryBody),
		TryCatch: pick(v.TryCatch, override.TryCatch),
	}
}

// IsZero reports whether no list is set.
func (v Vocabulary) IsZero() bool {
	return len(v.IfTrue) == 0 && len(v.IfFalse) == 0 &&
		len(v.LoopBody) == 0 && len(v.LoopExit) == 0 &&
		len(v.TryBody) == 0 && len(v.TryCatch) == 0
}

// Tokens returns the primary and alternative token lists for a construct.
// Guarded operations (DML, callouts) and try/catch share the try lists.
func (v Vocabulary) Tokens(kind graph.Kind) (primary, alternative []string) {
	switch kind {
	case graph.KindConditional:
		return v.IfTrue, v.IfFalse
	case graph.KindLoop:
		return v.LoopBody, v.LoopExit
	default:
		return v.TryBody, v.TryCatch
	}
}

// Classify decides which section a label leads into for the given
// construct kind. A label matching both lists, or neither, is RoleNone.
func (v Vocabulary) Classify(kind graph.Kind, label string) Role {
	primary, alternative := v.Tokens(kind)
	p := Matches(label, primary)
	a := Matches(label, alternative)
	switch {
	case p && !a:
		return RolePrimary
	case a && !p:
		return RoleAlternative
	default:
		return RoleNone
	}
}

// Matches reports whether the trimmed, lower-cased label equals one of the
// tokens, or contains a word that does.
func Matches(label string, tokens []string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return false
	}
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if label == tok {
			return true
		}
		for _, w := range words {
			if w == tok {
				return true
			}
		}
	}
	return false
}

func normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
