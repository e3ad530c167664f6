// Package project reads and writes editor project files and converts them
// to and from graph snapshots.
//
// The persisted form is the editor's: {name, nodes, edges} where each node
// keeps its building-block data under "data" next to UI-only fields such as
// "position". Both JSON and YAML are supported.
package project
