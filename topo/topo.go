package topo

import "github.com/arolan/ssflow/block"

// color marks a block's visitation state during the DFS, mirroring
// lvlath/dfs's White/Gray/Black convention.
type color int

const (
	white color = iota
	gray
	black
)

// Sort returns blocks in an order such that every block appears after
// every block reachable from its wired inputs, whenever that read-graph
// is acyclic (spec §4.2, invariant 2). Each source precedes the blocks
// that read from it, but a source need not precede unrelated blocks. Ties
// — blocks with no dependency relation to each other —
// are broken by blocks' order in the input slice, which determinism
// requires callers to keep stable across re-sorts triggered by AddBlock/
// AddConnection.
//
// If the graph contains a cycle, Sort does not error: the DFS closes the
// cycle on the back-edge it meets and still returns every block exactly
// once (spec §4.2: "the cycle is closed by a back-edge and its staleness
// is absorbed by the fixed-point iteration"). Use HasCycle separately to
// detect and log that condition.
func Sort(blocks []*block.Block) []*block.Block {
	state := make(map[*block.Block]color, len(blocks))
	order := make([]*block.Block, 0, len(blocks))

	var visit func(b *block.Block)
	visit = func(b *block.Block) {
		if state[b] == black {
			return
		}
		if state[b] == gray {
			// Back-edge into an in-progress ancestor: the cycle is
			// closed here: to avoid infinite recursion we simply treat
			// this path as fully explored without emitting b again.
			return
		}

		state[b] = gray

		for _, name := range b.InputOrder() {
			if dep := b.Inputs()[name]; dep != nil {
				visit(dep)
			}
		}

		state[b] = black
		order = append(order, b)
	}

	for _, b := range blocks {
		if state[b] == white {
			visit(b)
		}
	}

	return order
}

// HasCycle reports whether any block in blocks participates in a
// dependency cycle, without affecting the ordering Sort produces. It is a
// diagnostic aid (spec §9's open question: this design relies on
// fixed-point iteration, not Delay-insertion or rejection, to resolve
// cycles), grounded on lvlath/dfs.DetectCycles's three-color cycle check.
func HasCycle(blocks []*block.Block) bool {
	const (
		w = 0
		g = 1
		bl = 2
	)
	state := make(map[*block.Block]int, len(blocks))
	var found bool

	var visit func(b *block.Block)
	visit = func(b *block.Block) {
		if found || state[b] == bl {
			return
		}
		if state[b] == g {
			found = true
			return
		}
		state[b] = g
		for _, name := range b.InputOrder() {
			if dep := b.Inputs()[name]; dep != nil {
				visit(dep)
				if found {
					return
				}
			}
		}
		state[b] = bl
	}

	for _, b := range blocks {
		if state[b] == w {
			visit(b)
		}
		if found {
			return true
		}
	}

	return false
}
