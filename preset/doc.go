// Package preset assembles a handful of ready-made block diagrams into a
// runnable *sim.Simulation, in the spirit of lvlath/builder's named
// topology factories (impl_star.go, impl_path.go, ...) composed through one
// BuildGraph-style orchestrator.
//
// Build(kind, dt, opts...) resolves a set of functional options into an
// immutable config, then dispatches to the named diagram's constructor,
// which wires blocks and connections deterministically and hands the
// result to sim.New.
package preset
