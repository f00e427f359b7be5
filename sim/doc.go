// Package sim implements the simulation driver: wiring, the per-tick
// fixed-point stepper, the two-phase memory-block commit, and time
// advancement over a graph of blocks (package block).
//
// A *Simulation owns its block arena and connection list; it is
// constructed once via New (wiring connections, pre-solving any
// Equations, resolving block Parameters to literals, sorting the graph
// topologically, and snapshotting the initial state for Reset), then
// driven forward in fixed increments of dt via Update or Run.
//
// The driver shape — a single orchestrating constructor plus a handful of
// documented, sentinel-erroring operations — mirrors lvlath's
// builder.BuildGraph (github.com/katalvlaran/lvlath/builder): resolve
// configuration, apply deterministic steps in order, wrap every error
// once at the boundary with %w.
package sim
