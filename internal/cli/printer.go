package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/specialistvlad/skeletongen/internal/graph"
)

// Printer writes diagnostics for humans, one per line, with the severity
// colored.
type Printer struct {
	w     io.Writer
	error *color.Color
	warn  *color.Color
	info  *color.Color
	ok    *color.Color
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:     w,
		error: color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow),
		info:  color.New(color.FgCyan),
		ok:    color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{p.error, p.warn, p.info, p.ok} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) severity(s graph.Severity) *color.Color {
	switch s {
	case graph.SeverityError:
		return p.error
	case graph.SeverityWarning:
		return p.warn
	default:
		return p.info
	}
}

// Diagnostics prints every finding prefixed with source, usually a file name.
func (p *Printer) Diagnostics(source string, diags graph.Diagnostics) {
	for _, d := range diags {
		fmt.Fprintf(p.w, "%s: %s", source, p.severity(d.Severity).Sprint(d.Severity.String()))
		switch {
		case d.EdgeID != "":
			fmt.Fprintf(p.w, " [edge %s]", d.EdgeID)
		case d.NodeID != "":
			fmt.Fprintf(p.w, " [node %s]", d.NodeID)
		}
		fmt.Fprintf(p.w, " %s: %s\n", d.Code, d.Message)
	}
}

// Summary prints the error and warning counts for source, or "ok" when
// there are none.
func (p *Printer) Summary(source string, diags graph.Diagnostics) {
	errs := diags.Count(graph.SeverityError)
	warns := diags.Count(graph.SeverityWarning)
	if errs == 0 && warns == 0 {
		fmt.Fprintf(p.w, "%s: %s\n", source, p.ok.Sprint("ok"))
		return
	}
	fmt.Fprintf(p.w, "%s: %s, %s\n", source,
		p.error.Sprint(plural(errs, "error")),
		p.warn.Sprint(plural(warns, "warning")))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
