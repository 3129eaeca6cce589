// Package boardapi provides structures for board requests and responses.
package boardapi

import (
	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/google/uuid"
)

// CreateBoardRequest represents a request to create a new board.
// Zero dimensions and missing endpoints fall back to the configured defaults.
type CreateBoardRequest struct {
	Rows   int                `json:"rows"`
	Cols   int                `json:"cols"`
	Source *grid.CellPosition `json:"source"`
	Target *grid.CellPosition `json:"target"`
}

// CreateBoardResponse carries the id of a new board.
type CreateBoardResponse struct {
	ID uuid.UUID `json:"id"`
}

// PositionRequest addresses one cell.
type PositionRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (p PositionRequest) Position() grid.CellPosition {
	return grid.CellPosition{Row: *p.Row, Col: *p.Col}
}

// WallRequest sets the wall at a cell, or toggles it when Wall is absent.
type WallRequest struct {
	PositionRequest
	Wall *bool `json:"wall"`
}

// ResetRequest clears a finished run from the board.
type ResetRequest struct {
	PreserveWalls bool `json:"preserve_walls"`
}

// MazeRequest replaces the walls. A density selects random scatter,
// otherwise a maze is carved.
type MazeRequest struct {
	Seed    int64    `json:"seed"`
	Density *float64 `json:"density"`
}

// StartRunRequest starts a search on the board.
type StartRunRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
	Speed     int    `json:"speed"`
}

// StartRunResponse carries the id of a started run.
type StartRunResponse struct {
	RunID uuid.UUID `json:"run_id"`
}

// SpeedRequest changes the pacing level.
type SpeedRequest struct {
	Level int `json:"level" binding:"required"`
}

// EditResponse reports whether an edit changed the board.
type EditResponse struct {
	Applied bool `json:"applied"`
}

// BoardResponse is a snapshot of a board.
type BoardResponse struct {
	ID      uuid.UUID           `json:"id"`
	Rows    int                 `json:"rows"`
	Cols    int                 `json:"cols"`
	Source  grid.CellPosition   `json:"source"`
	Target  grid.CellPosition   `json:"target"`
	State   driver.State        `json:"state"`
	Walls   []grid.CellPosition `json:"walls"`
	Visited []grid.CellPosition `json:"visited"`
	Path    []grid.CellPosition `json:"on_path"`
	Render  string              `json:"render"`
	Result  *driver.Result      `json:"last_result,omitempty"`
}

func newBoardResponse(id uuid.UUID, d *driver.Driver) BoardResponse {
	response := BoardResponse{ID: id, State: d.State()}
	d.View(func(g *grid.Grid) {
		response.Rows, response.Cols = g.Rows(), g.Cols()
		response.Source, response.Target = g.Source(), g.Target()
		response.Walls = make([]grid.CellPosition, 0)
		response.Visited = make([]grid.CellPosition, 0)
		response.Path = make([]grid.CellPosition, 0)
		for row, cells := range g.Snapshot() {
			for col, c := range cells {
				pos := grid.CellPosition{Row: row, Col: col}
				switch {
				case c.Wall:
					response.Walls = append(response.Walls, pos)
				case c.OnPath:
					response.Path = append(response.Path, pos)
				case c.Visited:
					response.Visited = append(response.Visited, pos)
				}
			}
		}
		response.Render = g.String()
	})
	if result, ok := d.LastResult(); ok {
		response.Result = &result
	}
	return response
}
