package search

import "github.com/beka-birhanu/vinom-pathfinding/grid"

// traversal is the unweighted search shared by BFS and DFS. The only
// difference between the two is which end of the frontier take removes.
type traversal struct {
	tree
	outcome
	grid       *grid.Grid
	frontier   []int
	discovered []bool
	lifo       bool
}

// NewBFS returns a breadth-first strategy (FIFO frontier).
func NewBFS() Strategy { return &traversal{} }

// NewDFS returns a depth-first strategy (LIFO frontier).
func NewDFS() Strategy { return &traversal{lifo: true} }

func (t *traversal) Init(g *grid.Grid) {
	t.tree.reset(g)
	t.outcome = outcome{}
	t.grid = g
	t.discovered = make([]bool, g.Size())

	source := g.Index(g.Source())
	t.frontier = []int{source}
	t.discovered[source] = true
}

func (t *traversal) take() int {
	if t.lifo {
		last := len(t.frontier) - 1
		current := t.frontier[last]
		t.frontier = t.frontier[:last]
		return current
	}
	current := t.frontier[0]
	t.frontier = t.frontier[1:]
	return current
}

func (t *traversal) Step() StepResult {
	if t.done {
		return t.terminal
	}
	if len(t.frontier) == 0 {
		return t.finish(StepResult{Kind: Exhausted})
	}

	t.steps++
	current := t.take()
	pos := t.grid.Position(current)
	if pos == t.grid.Target() {
		return t.finish(StepResult{Kind: Found, Visited: pos})
	}
	t.grid.MarkVisited(pos)

	for _, n := range t.grid.Neighbors(pos) {
		ni := t.grid.Index(n)
		if t.discovered[ni] || t.grid.IsWall(n) {
			continue
		}
		t.discovered[ni] = true
		// First writer wins: a discovered cell is never relinked.
		if !t.linked(ni) {
			t.link(ni, current)
		}
		t.frontier = append(t.frontier, ni)
	}

	return StepResult{Kind: Continue, Visited: pos}
}
