package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrParse indicates malformed JSON or YAML.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates a document that parses but lacks required fields.
	ErrSchema = errors.New("schema error")
)

// ParseError represents a failure to decode a project document.
// Wraps ErrParse for errors.Is() compatibility.
type ParseError struct {
	Format Format
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Format)
	}
	return fmt.Sprintf("%s: %s: %s", ErrParse.Error(), e.Format, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// SchemaError represents a missing or invalid field.
// Wraps ErrSchema for errors.Is() compatibility.
type SchemaError struct {
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", ErrSchema.Error(), e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrSchema.Error(), e.Msg)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
