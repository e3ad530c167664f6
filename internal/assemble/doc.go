// Package assemble walks a graph from an entry node and nests emitted
// fragments into blocks according to edge labels.
//
// The walk is depth-first and keeps the set of nodes on the current path.
// Reaching a node already on the path is a cycle unless that node is a
// loop head, in which case the edge is the loop's back-edge and simply ends
// the body. Structural problems never stop the walk: the affected branch is
// replaced by a placeholder comment and reported as a diagnostic.
package assemble
