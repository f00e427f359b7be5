// Package format implements the line-oriented text grammar described in
// spec §6: BLOCK, CONNECTION, STATE, PARAMETER, EQUATION, and TIME
// directives, plus recursive Subsystem file loads.
//
// Load parses a file into a ready-to-run *sim.Simulation; Save serializes
// a *sim.Simulation back to the same grammar (BLOCK, CONNECTION, STATE,
// TIME lines). Save carries outputs and the clock but not memory blocks'
// commit history, so Save(s); Load(path) reproduces s's traces only where
// that history does not affect the next step (see Save).
//
// Grammar:
//
//	BLOCK      <id> <Type> [<arg> ...]
//	CONNECTION <source_id> <target_id> <target_input_name>
//	STATE      <id> <initial_output>
//	PARAMETER  <name> [<value>]
//	EQUATION   <expression>           # e.g. z=3*x+y
//	TIME       <dt> <start_time>
//
// The TIME line's second field is the simulation clock to start from (the
// time already elapsed), matching original_source/simulation.py's
// Simulation(blocks, connections, dt, time) constructor — it is not a run
// length. How long to run is always supplied to Run by the caller.
//
// `#` begins a comment; an inline `#` terminates a line; blank lines are
// ignored. Positional BLOCK arguments that exactly match a declared
// PARAMETER name are late-bound to that parameter rather than parsed as a
// literal (spec §3 "Parameter"); this substitution only ever applies to a
// block's single numeric constructor argument (Amplifier's gain,
// Comparator's threshold, Constant's value, Integrator's/ODE's initial
// value) — never to Generator/Function/ODE's quoted expression text,
// mirroring original_source/blocks.py's check_parameter, which only ever
// type-switches on Parameter for numeric fields.
package format
