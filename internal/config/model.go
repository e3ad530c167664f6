package config

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/skeletongen/internal/labels"
	"github.com/specialistvlad/skeletongen/internal/program"
)

// MaxIndent bounds the indent width accepted from configuration.
const MaxIndent = 16

// Model is the unified configuration of the generator.
type Model struct {
	Class  Class
	Labels labels.Vocabulary
	// Sources lists the files the model was merged from, in order.
	Sources []string
}

// Class configures the generated class shell.
type Class struct {
	Name     string
	Sharing  string
	Indent   int
	Header   string
	NoHeader bool
}

// Default returns the model used when no configuration file exists.
func Default() *Model {
	d := program.DefaultOptions()
	return &Model{
		Class: Class{
			Name:    d.ClassName,
			Sharing: d.Sharing,
			Indent:  d.Indent,
			Header:  d.Header,
		},
		Labels: d.Vocabulary,
	}
}

// Validate checks values that cannot be repaired by falling back to a
// default.
func (m *Model) Validate() error {
	if m.Class.Indent < 0 || m.Class.Indent > MaxIndent {
		return fmt.Errorf("class indent must be between 0 and %d, got %d", MaxIndent, m.Class.Indent)
	}
	switch strings.ToLower(strings.Join(strings.Fields(m.Class.Sharing), " ")) {
	case "", "none", "with", "without", "inherited", "with sharing", "without sharing", "inherited sharing":
	default:
		return fmt.Errorf("unsupported class sharing %q", m.Class.Sharing)
	}
	return nil
}

// Options converts the model into generator options.
func (m *Model) Options() program.Options {
	return program.Options{
		ClassName:  m.Class.Name,
		Sharing:    m.Class.Sharing,
		Indent:     m.Class.Indent,
		Header:     m.Class.Header,
		NoHeader:   m.Class.NoHeader,
		Vocabulary: labels.Default().Merge(m.Labels),
	}
}
