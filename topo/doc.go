// Package topo computes a topological ordering of a signal-flow block
// graph (package block), so that the simulation driver (package sim) can
// evaluate each block after everything it reads from, whenever the
// read-graph is acyclic (spec §4.2).
//
// The algorithm is adapted from lvlath's dfs.TopologicalSort
// (github.com/katalvlaran/lvlath/dfs): a tri-color (White/Gray/Black)
// visitation map driving a post-order DFS. lvlath reverses its post-order
// list because its edges point dependent->dependency; here a block's
// Inputs() already points dependent->dependency (a block holds its own
// sources), so recursing into inputs before appending the block itself
// already yields dependencies before dependents — no reversal needed.
// Unlike lvlath's version, Sort never rejects a cyclic graph: per spec
// §4.2 and §9, a combinational cycle is legal and is expected to be
// settled by the fixed-point stepper, with memory elements acting as
// natural cut-edges. Sort simply closes the cycle with a back-edge and
// returns a total order anyway; HasCycle is provided separately for
// callers that want to log (not reject) a cyclic graph.
package topo
