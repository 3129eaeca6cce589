package grid

// Cell represents a single square of the board.
type Cell struct {
	Wall    bool // Wall marks an impassable cell.
	Source  bool // Source marks the search start.
	Target  bool // Target marks the search goal.
	Visited bool // Visited is set when a strategy expands the cell.
	OnPath  bool // OnPath is set when the cell is part of the reconstructed path.
}

// IsWall returns true if the cell blocks movement.
func (c *Cell) IsWall() bool {
	return c.Wall
}

// IsEndpoint returns true if the cell is the source or the target.
func (c *Cell) IsEndpoint() bool {
	return c.Source || c.Target
}

// CellPosition represents the position of a cell in the grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// GetRow returns the row index of the cell.
func (cp CellPosition) GetRow() int {
	return cp.Row
}

// GetCol returns the column index of the cell.
func (cp CellPosition) GetCol() int {
	return cp.Col
}

// Manhattan returns the 4-directional distance between two positions.
func (cp CellPosition) Manhattan(other CellPosition) int {
	return abs(cp.Row-other.Row) + abs(cp.Col-other.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
