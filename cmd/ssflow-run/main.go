// Command ssflow-run loads a simulation from a text file (package format)
// and runs it to completion, printing the trace of every Scope block.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/arolan/ssflow/block"
	"github.com/arolan/ssflow/format"
	"github.com/arolan/ssflow/sim"
)

func main() {
	file := flag.String("file", "", "path to a simulation file (required)")
	duration := flag.Float64("duration", 0, "run length, starting from the file's own TIME clock (required, > 0)")
	maxIterations := flag.Int("max-iterations", 0, "fixed-point iteration cap per tick (0 = engine default)")
	tolerance := flag.Float64("tolerance", 0, "fixed-point convergence tolerance (0 = engine default)")
	dump := flag.Bool("dump", false, "print every tick's scope outputs instead of only the final one")
	flag.Parse()

	logger := log.New(os.Stderr, "ssflow-run: ", log.LstdFlags)

	if *file == "" {
		logger.Fatal("missing required -file")
	}
	if *duration <= 0 {
		logger.Fatal("missing required -duration (> 0): a simulation file's TIME line records its starting clock, not a run length")
	}

	s, err := format.Load(*file)
	if err != nil {
		logger.Fatalf("loading %s: %s", *file, err)
	}

	times, samples, err := s.Run(context.Background(), *duration, *maxIterations, *tolerance)
	if err != nil {
		logger.Fatalf("running %s: %s", *file, err)
	}

	scopes := scopeIndices(s)
	if len(scopes) == 0 {
		logger.Println("no Scope blocks in this simulation; nothing to print")
		return
	}

	if *dump {
		for i, t := range times {
			printTick(t, scopes, samples, i)
		}
		return
	}

	if len(times) == 0 {
		logger.Println("simulation ran zero ticks")
		return
	}
	printTick(times[len(times)-1], scopes, samples, len(times)-1)
}

// scopeEntry pairs a Scope block's label with its index into Run's sample
// matrix, preserving the simulation's topological order for stable,
// repeatable column ordering across runs.
type scopeEntry struct {
	label string
	index int
}

func scopeIndices(s *sim.Simulation) []scopeEntry {
	var out []scopeEntry
	for i, b := range s.Blocks() {
		if b.Kind == block.KindScope {
			out = append(out, scopeEntry{label: b.Label, index: i})
		}
	}

	return out
}

func printTick(t float64, scopes []scopeEntry, samples [][]float64, tickIndex int) {
	fmt.Printf("t=%g", t)
	for _, e := range scopes {
		fmt.Printf(" %s=%g", e.label, samples[e.index][tickIndex])
	}
	fmt.Println()
}
