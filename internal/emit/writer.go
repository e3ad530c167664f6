package emit

import (
	"bytes"
	"fmt"
	"strings"
)

// Writer accumulates indented source lines.
type Writer struct {
	buf    bytes.Buffer
	unit   string
	indent int
}

// NewWriter returns a Writer that indents by unit per level.
func NewWriter(unit string) *Writer {
	return &Writer{unit: unit}
}

// Line writes text at the current indentation. Embedded newlines produce
// several lines, each indented; blank lines carry no trailing spaces.
func (w *Writer) Line(text string) {
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			w.buf.WriteByte('\n')
			continue
		}
		for i := 0; i < w.indent; i++ {
			w.buf.WriteString(w.unit)
		}
		w.buf.WriteString(l)
		w.buf.WriteByte('\n')
	}
}

// Linef formats and writes a line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Comment writes each line as a "//" comment.
func (w *Writer) Comment(lines ...string) {
	for _, l := range lines {
		w.Line("// " + l)
	}
}

// Open writes "header {" and indents.
func (w *Writer) Open(header string) {
	w.Line(header + " {")
	w.indent++
}

// Section closes the current section and opens the next one, as in
// "} else {".
func (w *Writer) Section(header string) {
	w.indent--
	w.Line("} " + header + " {")
	w.indent++
}

// Close dedents and writes "}".
func (w *Writer) Close() {
	if w.indent > 0 {
		w.indent--
	}
	w.Line("}")
}

// Fragment writes a non-block fragment with its comment lines.
func (w *Writer) Fragment(f Fragment) {
	w.Comment(f.CommentLines()...)
	if line := f.Line(); line != "" {
		w.Line(line)
	}
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}
