// Package ssflow simulates block-diagram signal-flow graphs: networks of
// Constant, Generator, Amplifier, Inverter, Adder, Multiplier, Comparator,
// Function, Integrator, Differentiator, ODE, Switch, Scope, and Subsystem
// blocks, wired into a directed graph and advanced in fixed time
// increments.
//
// The module is organized as:
//
//	expr/   — the small arithmetic expression language Generator/Function/
//	          ODE blocks evaluate (+ - * / ^, parens, sin/cos/tan/exp/log/
//	          sqrt/abs/min/max, named variables).
//	block/  — the closed set of block variants and their per-tick
//	          compute/commit behavior.
//	topo/   — topological ordering of a block graph, tolerant of the
//	          algebraic loops a fixed-point stepper is meant to settle.
//	sim/    — the Simulation driver: wiring, the fixed-point stepper, state
//	          get/set, and run/reset.
//	format/ — the text file grammar for loading and saving a Simulation.
//	preset/ — a small library of ready-made block diagrams.
//	cmd/ssflow-run — a CLI that loads, runs, and prints a simulation file.
//
// A typical program builds blocks with the block package's constructors,
// wires them into a []block.Connection, and passes both to sim.New; from
// there, sim.Update/sim.Run advances the simulation one or more ticks at a
// time.
package ssflow
