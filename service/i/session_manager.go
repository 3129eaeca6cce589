package i

import (
	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/google/uuid"
)

// Board is the part of a session exposed to transports.
type Board interface {
	ID() uuid.UUID
	Driver() *driver.Driver

	// Subscribe returns a channel of run events and a function that ends the subscription.
	Subscribe() (<-chan driver.Event, func())
}

// SessionManager creates, finds and removes boards.
type SessionManager interface {
	NewSession(rows, cols int, source, target grid.CellPosition) (Board, error)
	Session(id uuid.UUID) (Board, error)
	Remove(id uuid.UUID) error
	Count() int
}
