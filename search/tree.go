package search

import "github.com/beka-birhanu/vinom-pathfinding/grid"

const none = -1

// tree stores predecessor links as arena indexes into the grid.
// Each cell has at most one predecessor, so the links form a tree rooted at the source.
type tree struct {
	grid   *grid.Grid
	parent []int
}

func (t *tree) reset(g *grid.Grid) {
	t.grid = g
	t.parent = make([]int, g.Size())
	for i := range t.parent {
		t.parent[i] = none
	}
}

func (t *tree) link(child, parent int) {
	t.parent[child] = parent
}

func (t *tree) linked(child int) bool {
	return t.parent[child] != none
}

// Predecessor returns the cell pos was reached from.
func (t *tree) Predecessor(pos grid.CellPosition) (grid.CellPosition, bool) {
	if t.grid == nil || !t.grid.InBound(pos) {
		return grid.CellPosition{}, false
	}
	p := t.parent[t.grid.Index(pos)]
	if p == none {
		return grid.CellPosition{}, false
	}
	return t.grid.Position(p), true
}

// outcome remembers a terminal step so it can be replayed.
type outcome struct {
	steps    int
	done     bool
	terminal StepResult
}

func (o *outcome) finish(r StepResult) StepResult {
	o.done = true
	o.terminal = r
	return r
}

func (o *outcome) Exhausted() bool {
	return o.done && o.terminal.Kind == Exhausted
}

func (o *outcome) Steps() int { return o.steps }
