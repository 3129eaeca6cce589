package grid

import (
	"fmt"
	"math/rand"
)

// GenerateMaze fills g with walls and carves a perfect maze into it using
// Wilson's algorithm. Rooms sit on even coordinates; the cell between two
// adjacent rooms is opened when the walk passes through it. Both endpoints
// are left open and connected to the maze.
func GenerateMaze(g *Grid, rng *rand.Rand) {
	for i := range g.cells {
		g.SetWall(g.Position(i), true)
	}

	rooms := g.rooms()
	inMaze := make(map[CellPosition]struct{}, len(rooms))
	start := rooms[rng.Intn(len(rooms))]
	inMaze[start] = struct{}{}
	g.SetWall(start, false)

	for len(inMaze) < len(rooms) {
		walkStart := g.randomRoomOutside(rng, rooms, inMaze)
		exits := g.randomWalk(rng, walkStart, inMaze)

		// Follow the loop-erased walk and carve it.
		room := walkStart
		for {
			if _, done := inMaze[room]; done {
				break
			}
			next := exits[room]
			inMaze[room] = struct{}{}
			g.SetWall(room, false)
			g.SetWall(between(room, next), false)
			room = next
		}
	}

	g.connect(g.source)
	g.connect(g.target)
}

// Scatter places random walls at the given density, never on the endpoints.
func Scatter(g *Grid, rng *rand.Rand, density float64) error {
	if density < 0 || density > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	for i := range g.cells {
		if rng.Float64() < density {
			g.SetWall(g.Position(i), true)
		}
	}
	return nil
}

// rooms returns the maze lattice positions in row-major order.
func (g *Grid) rooms() []CellPosition {
	var rooms []CellPosition
	for row := 0; row < g.rows; row += 2 {
		for col := 0; col < g.cols; col += 2 {
			rooms = append(rooms, CellPosition{Row: row, Col: col})
		}
	}
	return rooms
}

func isRoom(pos CellPosition) bool {
	return pos.Row%2 == 0 && pos.Col%2 == 0
}

// randomRoomOutside selects a random room that is not yet part of the maze.
func (g *Grid) randomRoomOutside(rng *rand.Rand, rooms []CellPosition, inMaze map[CellPosition]struct{}) CellPosition {
	for {
		pos := rooms[rng.Intn(len(rooms))]
		if _, included := inMaze[pos]; !included {
			return pos
		}
	}
}

// roomNeighbors finds the rooms two cells away from pos.
func (g *Grid) roomNeighbors(pos CellPosition) []CellPosition {
	result := make([]CellPosition, 0, len(Directions))
	for _, delta := range Directions {
		neighbor := CellPosition{Row: pos.Row + 2*delta.Row, Col: pos.Col + 2*delta.Col}
		if g.InBound(neighbor) {
			result = append(result, neighbor)
		}
	}
	return result
}

// randomWalk walks from start until it reaches the maze. Revisited rooms
// overwrite their exit, which erases loops.
func (g *Grid) randomWalk(rng *rand.Rand, start CellPosition, inMaze map[CellPosition]struct{}) map[CellPosition]CellPosition {
	exits := make(map[CellPosition]CellPosition)
	room := start

	for {
		neighbors := g.roomNeighbors(room)
		next := neighbors[rng.Intn(len(neighbors))]
		exits[room] = next
		if _, included := inMaze[next]; included {
			break
		}
		room = next
	}

	return exits
}

func between(a, b CellPosition) CellPosition {
	return CellPosition{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

// connect opens a passage from an endpoint that does not sit on a room.
func (g *Grid) connect(pos CellPosition) {
	if isRoom(pos) {
		return
	}
	for _, n := range g.Neighbors(pos) {
		if isRoom(n) {
			return
		}
	}
	// Both coordinates are odd, so the cell above exists and borders a room.
	g.SetWall(CellPosition{Row: pos.Row - 1, Col: pos.Col}, false)
}
