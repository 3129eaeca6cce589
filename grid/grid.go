/*
Package grid provides the rectangular board the search strategies run on.

A Grid owns its cells exclusively. It keeps exactly one source and one target
at all times and never lets a wall share a cell with either of them. Edits
that would break those rules are ignored rather than reported.

Neighbor queries always return cells in the fixed order up, down, left,
right so that every strategy breaks ties the same way.
*/
package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minDimension = 2
	maxDimension = 100

	// DefaultRows and DefaultCols are the board size used when none is given.
	DefaultRows = 20
	DefaultCols = 20
)

var (
	// Directions lists the neighbor offsets in query order: up, down, left, right.
	Directions = []CellPosition{
		{Row: -1, Col: 0},
		{Row: 1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 0, Col: 1},
	}

	// DefaultSource and DefaultTarget are the endpoints of a fresh 20x20 board.
	DefaultSource = CellPosition{Row: 5, Col: 5}
	DefaultTarget = CellPosition{Row: 15, Col: 15}

	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrInvalidPosition   = errors.New("invalid endpoint position")
	ErrInvalidDensity    = errors.New("wall density must be between 0 and 1")
)

// Grid is a fixed-size board of cells with a single source and target.
type Grid struct {
	rows   int
	cols   int
	cells  []Cell // row-major
	source CellPosition
	target CellPosition
}

// New creates a rows x cols grid with the given endpoints.
func New(rows, cols int, source, target CellPosition) (*Grid, error) {
	if min(rows, cols) < minDimension || max(rows, cols) > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	if !g.InBound(source) || !g.InBound(target) || source == target {
		return nil, fmt.Errorf("%w: source %v target %v", ErrInvalidPosition, source, target)
	}

	g.source, g.target = source, target
	g.cell(source).Source = true
	g.cell(target).Target = true
	return g, nil
}

// NewDefault creates the 20x20 board the visualizer starts with.
func NewDefault() *Grid {
	g, _ := New(DefaultRows, DefaultCols, DefaultSource, DefaultTarget)
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// Source returns the source position.
func (g *Grid) Source() CellPosition { return g.source }

// Target returns the target position.
func (g *Grid) Target() CellPosition { return g.target }

// InBound checks whether pos lies on the board.
func (g *Grid) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// Index returns the row-major index of pos. pos must be in bounds.
func (g *Grid) Index(pos CellPosition) int {
	return pos.Row*g.cols + pos.Col
}

// Position is the inverse of Index.
func (g *Grid) Position(index int) CellPosition {
	return CellPosition{Row: index / g.cols, Col: index % g.cols}
}

// Cell returns a copy of the cell at pos and whether pos is in bounds.
func (g *Grid) Cell(pos CellPosition) (Cell, bool) {
	if !g.InBound(pos) {
		return Cell{}, false
	}
	return *g.cell(pos), true
}

func (g *Grid) cell(pos CellPosition) *Cell {
	return &g.cells[g.Index(pos)]
}

// IsWall reports whether pos is a wall. Out of bounds counts as a wall.
func (g *Grid) IsWall(pos CellPosition) bool {
	if !g.InBound(pos) {
		return true
	}
	return g.cell(pos).Wall
}

// SetWall sets or clears a wall. Endpoints and out of bounds positions are ignored.
func (g *Grid) SetWall(pos CellPosition, wall bool) bool {
	if !g.InBound(pos) {
		return false
	}
	c := g.cell(pos)
	if c.IsEndpoint() {
		return false
	}
	c.Wall = wall
	return true
}

// ToggleWall flips the wall flag at pos under the same rules as SetWall.
func (g *Grid) ToggleWall(pos CellPosition) bool {
	if !g.InBound(pos) {
		return false
	}
	return g.SetWall(pos, !g.cell(pos).Wall)
}

// MoveSource moves the source to pos unless pos is a wall or the target.
func (g *Grid) MoveSource(pos CellPosition) bool {
	if !g.movable(pos) {
		return false
	}
	g.cell(g.source).Source = false
	g.cell(pos).Source = true
	g.source = pos
	return true
}

// MoveTarget moves the target to pos unless pos is a wall or the source.
func (g *Grid) MoveTarget(pos CellPosition) bool {
	if !g.movable(pos) {
		return false
	}
	g.cell(g.target).Target = false
	g.cell(pos).Target = true
	g.target = pos
	return true
}

func (g *Grid) movable(pos CellPosition) bool {
	if !g.InBound(pos) {
		return false
	}
	c := g.cell(pos)
	return !c.Wall && !c.IsEndpoint()
}

// Neighbors returns the in-bound cells adjacent to pos, in Directions order.
// Walls are included; callers decide whether to skip them.
func (g *Grid) Neighbors(pos CellPosition) []CellPosition {
	result := make([]CellPosition, 0, len(Directions))
	for _, delta := range Directions {
		neighbor := CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
		if g.InBound(neighbor) {
			result = append(result, neighbor)
		}
	}
	return result
}

// MarkVisited flags pos as expanded by a strategy.
func (g *Grid) MarkVisited(pos CellPosition) {
	if g.InBound(pos) {
		g.cell(pos).Visited = true
	}
}

// MarkPath flags pos as part of the reconstructed path.
func (g *Grid) MarkPath(pos CellPosition) {
	if g.InBound(pos) {
		g.cell(pos).OnPath = true
	}
}

// Reset clears visited and path flags, and walls unless preserveWalls is set.
// Endpoints are never touched.
func (g *Grid) Reset(preserveWalls bool) {
	for i := range g.cells {
		c := &g.cells[i]
		c.Visited = false
		c.OnPath = false
		if !preserveWalls {
			c.Wall = false
		}
	}
}

// Walls returns the wall positions in row-major order.
func (g *Grid) Walls() []CellPosition {
	var walls []CellPosition
	for i, c := range g.cells {
		if c.Wall {
			walls = append(walls, g.Position(i))
		}
	}
	return walls
}

// Snapshot returns a row-major copy of every cell.
func (g *Grid) Snapshot() [][]Cell {
	snapshot := make([][]Cell, g.rows)
	for row := range snapshot {
		snapshot[row] = make([]Cell, g.cols)
		copy(snapshot[row], g.cells[row*g.cols:(row+1)*g.cols])
	}
	return snapshot
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	var output strings.Builder

	output.WriteString("+" + strings.Repeat("-", g.cols) + "+\n")
	for row := 0; row < g.rows; row++ {
		output.WriteByte('|')
		for col := 0; col < g.cols; col++ {
			output.WriteByte(g.cell(CellPosition{Row: row, Col: col}).glyph())
		}
		output.WriteString("|\n")
	}
	output.WriteString("+" + strings.Repeat("-", g.cols) + "+\n")

	return output.String()
}

func (c *Cell) glyph() byte {
	switch {
	case c.Source:
		return 'S'
	case c.Target:
		return 'T'
	case c.Wall:
		return '#'
	case c.OnPath:
		return '*'
	case c.Visited:
		return '.'
	default:
		return ' '
	}
}
