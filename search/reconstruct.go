package search

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-pathfinding/grid"
)

// ErrBrokenPath means the predecessor chain from the target does not lead
// back to the source. A strategy that reported Found must never produce it.
var ErrBrokenPath = errors.New("broken predecessor chain")

// Reconstruct walks predecessors from the target back to the source and
// returns the path in source to target order. Every cell on the path is
// marked on the grid.
func Reconstruct(g *grid.Grid, p Predecessors) ([]grid.CellPosition, error) {
	source, current := g.Source(), g.Target()
	path := []grid.CellPosition{current}

	for current != source {
		previous, ok := p.Predecessor(current)
		if !ok {
			return nil, fmt.Errorf("%w: no predecessor for %v", ErrBrokenPath, current)
		}
		// A chain longer than the board can only be a cycle.
		if len(path) > g.Size() {
			return nil, fmt.Errorf("%w: cycle through %v", ErrBrokenPath, current)
		}
		path = append(path, previous)
		current = previous
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for _, pos := range path {
		g.MarkPath(pos)
	}

	return path, nil
}
