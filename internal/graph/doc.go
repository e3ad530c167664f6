// Package graph defines the plain, serializable design graph that the code
// generator reads: typed nodes, optionally labeled edges, and the validation
// predicates that report structural errors and content warnings as
// Diagnostics.
//
// A Graph carries no rendering state. Nodes and edges keep their input order,
// which is the only ordering the generator relies on, so every traversal and
// every diagnostic list is deterministic for a given snapshot.
//
// The subtype vocabulary is closed. Each Subtype has exactly one row in the
// subtype table (see Spec), which records the node type it belongs to, the
// shape of code it produces, how many successors it may have and which
// properties it cannot do without.
package graph
