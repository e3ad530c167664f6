// Package emit turns a single graph node into a Fragment of Apex source.
//
// Emission is pure and neighbor-free: the result depends only on the
// node's subtype and properties. Every subtype in the graph package's
// table has exactly one registered emitter; the registry is checked for
// completeness when the package initializes.
//
// Properties a template needs but the node lacks are replaced by a
// placeholder marker ("/* TODO: field */" inline, "// TODO: field" for a
// whole line) and the field is recorded in Fragment.Placeholders. Emission
// never fails.
package emit
