// Package block implements the closed set of signal-flow block variants
// driven by the simulation engine (package sim): Constant, Generator,
// Amplifier, Inverter, Adder, Multiplier, Comparator, Function, Integrator,
// Differentiator, ODE, Switch, Scope, and Subsystem.
//
// A Block is a tagged variant rather than an interface hierarchy: Kind
// selects behavior, and Compute/Commit switch on it exhaustively. This
// keeps the closed variant set (there is no user-extensible block type)
// enumerable at compile time and avoids a virtual-dispatch table for a
// dozen tiny behaviors.
//
// Combinational blocks (Constant, Generator, Amplifier, Inverter, Adder,
// Multiplier, Comparator, Function, Switch, Scope) write Output directly
// from Compute. Memory blocks (Integrator, Differentiator, ODE) follow the
// two-phase discipline: Compute reads Output of their inputs and stashes a
// scratch value, leaving Output unchanged; Commit copies the scratch into
// Output and advances prevInput/prevState. This lets the fixed-point
// stepper in package sim treat memory blocks as frozen constants while it
// settles combinational loops within a tick.
package block
