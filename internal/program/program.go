// Package program turns a whole graph into one Apex class.
//
// Hoisted variables become fields, triggers and methods become static
// methods, and everything is wrapped in a single class shell. Generation
// is pure and safe to call concurrently.
package program

import (
	"strings"

	"github.com/specialistvlad/skeletongen/internal/assemble"
	"github.com/specialistvlad/skeletongen/internal/emit"
	"github.com/specialistvlad/skeletongen/internal/graph"
	"github.com/specialistvlad/skeletongen/internal/labels"
)

// Defaults for Options.
const (
	DefaultClassName = "SolutionSkeleton"
	DefaultSharing   = "with sharing"
	DefaultIndent    = 4
	DefaultHeader    = "Generated by skeletongen. Do not edit by hand."
	FileExtension    = ".cls"
)

// Options shape the class shell. Zero values fall back to the defaults.
type Options struct {
	ClassName string
	// Sharing is "with sharing", "without sharing", "inherited sharing" or
	// "none". The short forms "with", "without" and "inherited" work too.
	Sharing string
	Indent  int
	Header  string
	// NoHeader suppresses the header comment entirely.
	NoHeader   bool
	Vocabulary labels.Vocabulary
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ClassName:  DefaultClassName,
		Sharing:    DefaultSharing,
		Indent:     DefaultIndent,
		Header:     DefaultHeader,
		Vocabulary: labels.Default(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if name := emit.TypeName(o.ClassName); name != "" && !strings.ContainsAny(name, "<>") {
		d.ClassName = name
	}
	if o.Sharing != "" {
		d.Sharing = o.Sharing
	}
	if o.Indent > 0 {
		d.Indent = o.Indent
	}
	if o.Header != "" {
		d.Header = o.Header
	}
	d.NoHeader = o.NoHeader
	d.Vocabulary = d.Vocabulary.Merge(o.Vocabulary)
	return d
}

// FileName returns the conventional file name for the generated class.
func (o Options) FileName() string {
	return o.withDefaults().ClassName + FileExtension
}

func sharingKeyword(s string) string {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "with", "with sharing":
		return "with sharing "
	case "without", "without sharing":
		return "without sharing "
	case "inherited", "inherited sharing":
		return "inherited sharing "
	default:
		return ""
	}
}

// Result is the generated class text and every finding about the graph.
type Result struct {
	SourceText  string            `json:"sourceText"`
	Diagnostics graph.Diagnostics `json:"diagnostics"`
	FileName    string            `json:"fileName"`
	Fields      int               `json:"fields"`
	Units       int               `json:"units"`
}

// Generate renders the whole graph as one class. It never fails: structural
// problems show up as placeholder comments in the text and as diagnostics.
func Generate(g *graph.Graph, opts Options) Result {
	opts = opts.withDefaults()
	res := Result{FileName: opts.ClassName + FileExtension}

	w := emit.NewWriter(strings.Repeat(" ", opts.Indent))
	if !opts.NoHeader {
		for _, l := range strings.Split(opts.Header, "\n") {
			w.Line("// " + strings.TrimSpace(l))
		}
	}
	w.Open("public " + sharingKeyword(opts.Sharing) + "class " + opts.ClassName)

	diags := graph.Validate(g)
	idx := graph.NewIndex(g)
	entries := idx.Entries()
	if len(entries) == 0 {
		diags = append(diags, graph.Infof(graph.CodeNoEntry, "", "",
			"the graph has no trigger, method or class-level variable; an empty class was generated"))
		w.Close()
		res.SourceText = w.String()
		res.Diagnostics = diags.Dedupe()
		return res
	}

	asm := assemble.NewWithIndex(idx, opts.Vocabulary)
	var fields, units []*assemble.Block
	for _, n := range entries {
		block, d := asm.Assemble(n)
		diags = append(diags, d...)
		if idx.IsHoisted(n) {
			fields = append(fields, block)
			continue
		}
		units = append(units, block)
	}

	for _, b := range fields {
		for _, it := range b.Items {
			w.Comment(it.Fragment.CommentLines()...)
			w.Line(it.Fragment.Declaration)
		}
	}
	for i, b := range units {
		if i > 0 || len(fields) > 0 {
			w.Blank()
		}
		renderBlock(w, b)
	}
	w.Close()

	res.SourceText = w.String()
	res.Diagnostics = diags.Dedupe()
	res.Fields = len(fields)
	res.Units = len(units)
	return res
}

func renderBlock(w *emit.Writer, b *assemble.Block) {
	if b == nil {
		return
	}
	for _, it := range b.Items {
		renderItem(w, it)
	}
}

func renderItem(w *emit.Writer, it assemble.Item) {
	f := it.Fragment
	switch {
	case it.IsNote():
		w.Line(it.Note)
	case it.IsGuarded():
		w.Comment(f.CommentLines()...)
		w.Open("try")
		w.Line(f.Line())
		renderBlock(w, it.Body)
		w.Section("catch (" + it.Guard + " e)")
		if it.Alt.Len() == 0 {
			w.Line(emit.LineMarker("handle " + it.Guard))
		}
		renderBlock(w, it.Alt)
		w.Close()
	case f.OpensBlock:
		w.Comment(f.CommentLines()...)
		w.Open(f.Header)
		renderBlock(w, it.Body)
		if it.Alt != nil && (it.Alt.Len() > 0 || f.Kind == graph.KindGuarded) {
			w.Section(f.Handler)
			renderBlock(w, it.Alt)
		}
		w.Close()
	default:
		w.Fragment(f)
	}
}
