package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a project file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Extensions lists the file extensions recognized as project files.
var Extensions = []string{".json", ".yaml", ".yml"}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported project file extension %q", filepath.Ext(path))
	}
}

// Parse decodes a project document and checks its required fields.
func Parse(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				return nil, &SchemaError{Field: typeErr.Field, Msg: fmt.Sprintf("invalid field type %s", typeErr.Value)}
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, &ParseError{Format: format, Msg: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), Err: err}
			}
			return nil, &ParseError{Format: format, Msg: err.Error(), Err: err}
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &ParseError{Format: format, Msg: "empty document", Err: err}
			}
			var typeErr *yaml.TypeError
			if errors.As(err, &typeErr) {
				return nil, &SchemaError{Msg: strings.Join(typeErr.Errors, "; ")}
			}
			return nil, &ParseError{Format: format, Msg: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("unsupported project format %q", format)
	}

	if err := validateRequired(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte, format Format) (*Document, error) {
	return Parse(bytes.NewReader(data), format)
}

func validateRequired(doc *Document) error {
	if doc.Nodes == nil {
		return &SchemaError{Field: "nodes", Msg: "required field is missing"}
	}
	if doc.Edges == nil {
		return &SchemaError{Field: "edges", Msg: "required field is missing"}
	}
	for i, e := range doc.Edges {
		if e.Source == "" {
			return &SchemaError{Field: fmt.Sprintf("edges[%d].source", i), Msg: "required field is missing"}
		}
		if e.Target == "" {
			return &SchemaError{Field: fmt.Sprintf("edges[%d].target", i), Msg: "required field is missing"}
		}
	}
	return nil
}

// Marshal encodes a document the way the editor saves it: JSON with a
// two-space indent, or YAML with the same indent.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode project as JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode project as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode project as YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported project format %q", format)
	}
}
