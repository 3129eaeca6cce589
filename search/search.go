// Package search implements the steppable grid search strategies.
//
// Every strategy satisfies the same Strategy contract: Init binds it to a
// grid, and each Step call expands exactly one node before returning. That
// granularity is what lets a driver pace, pause or abandon a run between
// any two expansions without corrupting the search state.
//
// Scores and predecessor links are kept in strategy-owned tables indexed by
// the grid's row-major cell index. The grid itself only receives the
// visited flags.
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinding/grid"
)

// Infinity is the score of a cell that has not been reached.
const Infinity = math.MaxInt

var ErrUnknownKind = errors.New("unknown search algorithm")

// Kind selects a strategy.
type Kind int

const (
	BFS Kind = iota
	DFS
	Dijkstra
	AStar
)

// Kinds lists every strategy in presentation order.
var Kinds = []Kind{Dijkstra, AStar, BFS, DFS}

var kindNames = map[Kind]string{
	BFS:      "bfs",
	DFS:      "dfs",
	Dijkstra: "dijkstra",
	AStar:    "astar",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts an algorithm name to a Kind. Matching ignores case.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "a*" {
		name = "astar"
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// StepKind classifies the outcome of a single Step.
type StepKind int

const (
	Continue StepKind = iota
	Found
	Exhausted
)

func (s StepKind) String() string {
	switch s {
	case Continue:
		return "continue"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("StepKind(%d)", int(s))
	}
}

// StepResult is the outcome of one unit of search work.
// Visited is meaningless when Kind is Exhausted.
type StepResult struct {
	Kind    StepKind
	Visited grid.CellPosition
}

// Predecessors exposes the search tree built by a strategy.
type Predecessors interface {
	Predecessor(pos grid.CellPosition) (grid.CellPosition, bool)
}

// Strategy is a single steppable search over a grid.
type Strategy interface {
	Predecessors

	// Init binds the strategy to g and seeds the frontier with the source.
	Init(g *grid.Grid)

	// Step expands one node. Once a terminal result has been returned,
	// subsequent calls return it again without doing any work.
	Step() StepResult

	// Exhausted reports whether the frontier ran out before reaching the target.
	Exhausted() bool

	// Steps returns the number of expansions performed so far.
	Steps() int
}

// Scorer is implemented by strategies that keep per-cell scores.
type Scorer interface {
	Scores(pos grid.CellPosition) Scores
}

// Scores holds the per-cell values of the weighted strategies.
// Dijkstra only fills Distance; A* fills G, H and F.
type Scores struct {
	Distance int `json:"distance"`
	G        int `json:"g"`
	H        int `json:"h"`
	F        int `json:"f"`
}

// New returns a fresh strategy for kind.
func New(kind Kind) (Strategy, error) {
	switch kind {
	case BFS:
		return NewBFS(), nil
	case DFS:
		return NewDFS(), nil
	case Dijkstra:
		return NewDijkstra(), nil
	case AStar:
		return NewAStar(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}
