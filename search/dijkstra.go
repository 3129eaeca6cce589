package search

import "github.com/beka-birhanu/vinom-pathfinding/grid"

// dijkstra extracts the closest unfinalized cell on every step. Equal
// distances are broken by row-major cell index, i.e. grid scan order.
type dijkstra struct {
	tree
	outcome
	grid      *grid.Grid
	distance  []int
	finalized []bool
	open      *frontier
}

// NewDijkstra returns a Dijkstra strategy over unit-cost edges.
func NewDijkstra() Strategy { return &dijkstra{} }

func (d *dijkstra) Init(g *grid.Grid) {
	d.tree.reset(g)
	d.outcome = outcome{}
	d.grid = g
	d.distance = infinities(g.Size())
	d.finalized = make([]bool, g.Size())
	d.open = newFrontier()

	source := g.Index(g.Source())
	d.distance[source] = 0
	d.open.Upsert(source, 0, source)
}

func (d *dijkstra) Step() StepResult {
	if d.done {
		return d.terminal
	}
	// An empty frontier means every remaining cell is at infinite distance.
	if d.open.Len() == 0 || d.open.Peek().Priority == Infinity {
		return d.finish(StepResult{Kind: Exhausted})
	}

	d.steps++
	current := d.open.PopMin().Cell
	pos := d.grid.Position(current)
	if pos == d.grid.Target() {
		return d.finish(StepResult{Kind: Found, Visited: pos})
	}
	d.finalized[current] = true
	d.grid.MarkVisited(pos)

	for _, n := range d.grid.Neighbors(pos) {
		ni := d.grid.Index(n)
		if d.finalized[ni] || d.grid.IsWall(n) {
			continue
		}
		if tentative := d.distance[current] + 1; tentative < d.distance[ni] {
			d.distance[ni] = tentative
			d.link(ni, current)
			d.open.Upsert(ni, tentative, ni)
		}
	}

	return StepResult{Kind: Continue, Visited: pos}
}

// Scores returns the current distance of pos.
func (d *dijkstra) Scores(pos grid.CellPosition) Scores {
	s := Scores{Distance: Infinity, G: Infinity, H: Infinity, F: Infinity}
	if d.grid != nil && d.grid.InBound(pos) {
		s.Distance = d.distance[d.grid.Index(pos)]
	}
	return s
}
