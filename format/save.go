package format

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/sim"
)

// Save serializes s back to the text grammar (package doc): a TIME line, a
// PARAMETER/EQUATION line per declared parameter/equation, a BLOCK line
// per block, a CONNECTION line per wired connection, and a STATE line per
// block's current output. Subsystem blocks are written to their own
// "<id>.sub" file alongside path and referenced by filename, so that the
// resulting tree of files is fully reloadable by Load.
//
// STATE lines capture s's current outputs directly, and the TIME line's
// second field records s's current elapsed time (matching
// original_source/simulation.py's Simulation(blocks, connections, dt, time)
// constructor), so Load resumes the clock exactly where s left off rather
// than restarting it at zero. Run's duration is always supplied by the
// caller at call time, never read back from the file.
//
// Save does not write a memory block's commit history: a reloaded
// Integrator or ODE takes a forward-Euler first step and a reloaded
// Differentiator emits zero on its first step, and an ODE's state is
// restored from its STATE output value (not from a separately saved x).
// The reloaded trace therefore matches s's from this point onward only
// where that history does not change the next step (e.g. an Integrator
// fed a constant input).
func Save(s *sim.Simulation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "TIME %s %s\n", formatFloat(s.Dt()), formatFloat(s.Time()))

	for name, p := range s.Parameters() {
		if v, err := p.Value(); err == nil {
			fmt.Fprintf(w, "PARAMETER %s %s\n", name, formatFloat(v))
		} else {
			fmt.Fprintf(w, "PARAMETER %s\n", name)
		}
	}

	for _, eq := range s.Equations() {
		fmt.Fprintf(w, "EQUATION %s\n", eq.String())
	}

	dir := filepath.Dir(path)
	for _, b := range s.Blocks() {
		if b.Kind == block.KindSubsystem {
			if err := saveSubsystemFile(b, dir); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "BLOCK %s\n", blockLine(b))
	}

	for _, c := range s.Connections() {
		fmt.Fprintf(w, "CONNECTION %s %s %s\n", c.Source.ID, c.Target.ID, c.TargetInput)
	}

	for _, b := range s.Blocks() {
		fmt.Fprintf(w, "STATE %s %s\n", b.ID, formatFloat(b.Output()))
	}

	return w.Flush()
}

// saveSubsystemFile writes b's interior blocks and connections to
// "<dir>/<id>.sub", recursing into any nested Subsystem blocks. The
// interior has no parameters or equations of its own here (they were
// already resolved to literals by the time a live *block.Block exists),
// so the written file carries only BLOCK and CONNECTION lines, which is
// all a Subsystem load ever consumes (spec §4.8).
func saveSubsystemFile(b *block.Block, dir string) error {
	path := filepath.Join(dir, b.ID+".sub")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("format: subsystem %q: %w", b.ID, err)
	}
	defer f.Close()

	return writeBlocksAndConnections(f, b.InnerBlocks(), b.InnerConnections(), dir)
}

func writeBlocksAndConnections(w io.Writer, blocks []*block.Block, connections []block.Connection, dir string) error {
	bw := bufio.NewWriter(w)

	for _, b := range blocks {
		if b.Kind == block.KindSubsystem {
			if err := saveSubsystemFile(b, dir); err != nil {
				return err
			}
		}
		fmt.Fprintf(bw, "BLOCK %s\n", blockLine(b))
	}
	for _, c := range connections {
		fmt.Fprintf(bw, "CONNECTION %s %s %s\n", c.Source.ID, c.Target.ID, c.TargetInput)
	}

	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// blockLine renders a block's BLOCK line body ("<id> <Type> [<arg>...]"),
// excluding the "BLOCK " prefix. Scalar-parameterized blocks emit their
// current resolved value (not the original PARAMETER reference, which is
// no longer distinguishable once resolved).
func blockLine(b *block.Block) string {
	switch b.Kind {
	case block.KindConstant, block.KindAmplifier, block.KindComparator, block.KindIntegrator:
		return fmt.Sprintf("%s %s %s", b.ID, b.Kind, formatFloat(b.Scalar()))
	case block.KindODE:
		if g := b.ODEGString(); g != "" {
			return fmt.Sprintf("%s %s %s %q %q", b.ID, b.Kind, formatFloat(b.Scalar()), b.ODEFString(), g)
		}
		return fmt.Sprintf("%s %s %s %q", b.ID, b.Kind, formatFloat(b.Scalar()), b.ODEFString())
	case block.KindGenerator, block.KindFunction:
		return fmt.Sprintf("%s %s %q", b.ID, b.Kind, b.FuncString())
	case block.KindScope:
		return fmt.Sprintf("%s %s %s", b.ID, b.Kind, b.Label)
	case block.KindSubsystem:
		return fmt.Sprintf("%s %s %s", b.ID, b.Kind, b.ID+".sub")
	default:
		return fmt.Sprintf("%s %s", b.ID, b.Kind)
	}
}

