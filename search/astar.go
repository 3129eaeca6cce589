package search

import "github.com/beka-birhanu/vinom-pathfinding/grid"

// astar expands the open cell with the smallest f = g + h, where h is the
// Manhattan distance to the target. Equal f values go to the cell that
// was inserted (or last improved) first.
type astar struct {
	tree
	outcome
	grid   *grid.Grid
	gScore []int
	hScore []int
	fScore []int
	closed []bool
	open   *frontier
	seq    int
}

// NewAStar returns an A* strategy with the Manhattan heuristic.
func NewAStar() Strategy { return &astar{} }

func (a *astar) Init(g *grid.Grid) {
	a.tree.reset(g)
	a.outcome = outcome{}
	a.grid = g
	a.gScore = infinities(g.Size())
	a.hScore = infinities(g.Size())
	a.fScore = infinities(g.Size())
	a.closed = make([]bool, g.Size())
	a.open = newFrontier()
	a.seq = 0

	source := g.Index(g.Source())
	a.gScore[source] = 0
	a.hScore[source] = a.heuristic(g.Source())
	a.fScore[source] = a.hScore[source]
	a.insert(source)
}

func (a *astar) heuristic(pos grid.CellPosition) int {
	return pos.Manhattan(a.grid.Target())
}

func (a *astar) insert(cell int) {
	a.open.Upsert(cell, a.fScore[cell], a.seq)
	a.seq++
}

func (a *astar) Step() StepResult {
	if a.done {
		return a.terminal
	}
	if a.open.Len() == 0 {
		return a.finish(StepResult{Kind: Exhausted})
	}

	a.steps++
	current := a.open.PopMin().Cell
	pos := a.grid.Position(current)
	if pos == a.grid.Target() {
		return a.finish(StepResult{Kind: Found, Visited: pos})
	}
	a.closed[current] = true
	a.grid.MarkVisited(pos)

	for _, n := range a.grid.Neighbors(pos) {
		ni := a.grid.Index(n)
		if a.closed[ni] || a.grid.IsWall(n) {
			continue
		}
		if tentative := a.gScore[current] + 1; tentative < a.gScore[ni] {
			a.link(ni, current)
			a.gScore[ni] = tentative
			a.hScore[ni] = a.heuristic(n)
			a.fScore[ni] = tentative + a.hScore[ni]
			a.insert(ni)
		}
	}

	return StepResult{Kind: Continue, Visited: pos}
}

// Scores returns the g, h and f values of pos.
func (a *astar) Scores(pos grid.CellPosition) Scores {
	s := Scores{Distance: Infinity, G: Infinity, H: Infinity, F: Infinity}
	if a.grid != nil && a.grid.InBound(pos) {
		i := a.grid.Index(pos)
		s.G, s.H, s.F = a.gScore[i], a.hScore[i], a.fScore[i]
		s.Distance = s.G
	}
	return s
}

func infinities(n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = Infinity
	}
	return values
}
