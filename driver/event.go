package driver

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/google/uuid"
)

// EventKind identifies what happened in a run.
type EventKind int

const (
	CellVisited EventKind = iota
	Progress
	SearchSucceeded
	SearchExhausted
	SearchCancelled
	SearchFailed
)

var eventNames = []string{"cell_visited", "progress", "search_succeeded", "search_exhausted", "search_cancelled", "search_failed"}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Terminal reports whether k ends a run.
func (k EventKind) Terminal() bool { return k >= SearchSucceeded }

// Outcome returns the terminal state a terminal event reports.
func (k EventKind) Outcome() State {
	switch k {
	case SearchSucceeded:
		return Succeeded
	case SearchExhausted:
		return Exhausted
	case SearchFailed:
		return Failed
	case SearchCancelled:
		return Cancelled
	default:
		return Running
	}
}

// Event is a single notification to the visualization sink.
type Event struct {
	Kind      EventKind           `json:"kind"`
	RunID     uuid.UUID           `json:"run_id"`
	Algorithm search.Kind         `json:"algorithm"`
	Cell      *grid.CellPosition  `json:"cell,omitempty"`       // CellVisited
	Current   int                 `json:"current"`              // Progress and terminal events
	Total     int                 `json:"total,omitempty"`      // Progress
	Path      []grid.CellPosition `json:"path,omitempty"`       // SearchSucceeded
	Error     string              `json:"error,omitempty"`      // SearchFailed
	Elapsed   time.Duration       `json:"elapsed_ns,omitempty"` // terminal events
}

// Sink consumes events. Publish is called from the run loop goroutine and
// the next step does not start until it returns. A Sink must not call back
// into Cancel, Pause or SingleStep of the driver that feeds it.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) { f(e) }

// Sinks fans an event out to several sinks in order.
type Sinks []Sink

func (s Sinks) Publish(e Event) {
	for _, sink := range s {
		if sink != nil {
			sink.Publish(e)
		}
	}
}

type discard struct{}

func (discard) Publish(Event) {}
