package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/google/uuid"
)

// RunRecord is the summary of one finished search kept in the run history.
type RunRecord struct {
	RunID      uuid.UUID     `json:"run_id"`
	BoardID    uuid.UUID     `json:"board_id"`
	Algorithm  search.Kind   `json:"algorithm"`
	Outcome    string        `json:"outcome"`
	Visited    int           `json:"visited"`
	PathLength int           `json:"path_length"`
	Rows       int           `json:"rows"`
	Cols       int           `json:"cols"`
	Duration   time.Duration `json:"duration_ns"`
	FinishedAt time.Time     `json:"finished_at"`
}

// RunStore keeps the history of finished runs per algorithm.
type RunStore interface {
	// Record stores a finished run.
	Record(ctx context.Context, r RunRecord) error

	// Best returns up to limit runs of kind, fewest visited cells first.
	Best(ctx context.Context, kind search.Kind, limit int) ([]RunRecord, error)
}
