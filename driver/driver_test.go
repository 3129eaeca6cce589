package driver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(row, col int) grid.CellPosition { return grid.CellPosition{Row: row, Col: col} }

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) Last() Event {
	events := r.Events()
	if len(events) == 0 {
		return Event{}
	}
	return events[len(events)-1]
}

// brokenStrategy claims to find the target without building a tree.
type brokenStrategy struct{}

func (brokenStrategy) Init(*grid.Grid) {}
func (brokenStrategy) Step() search.StepResult {
	return search.StepResult{Kind: search.Found}
}
func (brokenStrategy) Exhausted() bool { return false }
func (brokenStrategy) Steps() int      { return 1 }
func (brokenStrategy) Predecessor(grid.CellPosition) (grid.CellPosition, bool) {
	return grid.CellPosition{}, false
}

func newDriver(t *testing.T, rows, cols int, delay time.Duration, options ...Option) (*Driver, *recorder) {
	t.Helper()
	g, err := grid.New(rows, cols, pos(0, 0), pos(rows-1, cols-1))
	require.NoError(t, err)
	rec := &recorder{}
	options = append([]Option{WithSink(rec), WithPacer(FixedDelay(delay))}, options...)
	return New(g, options...), rec
}

func wait(t *testing.T, d *Driver) Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := d.Wait(ctx)
	require.NoError(t, err)
	return result
}

func TestDriver_RunToSuccess(t *testing.T) {
	for _, kind := range search.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			d, rec := newDriver(t, 4, 5, 0)

			id, err := d.Start(kind)
			require.NoError(t, err)

			result := wait(t, d)
			assert.Equal(t, id, result.RunID)
			assert.Equal(t, kind, result.Algorithm)
			assert.Equal(t, Succeeded, result.Outcome)
			assert.NoError(t, result.Err)
			require.NotEmpty(t, result.Path)
			assert.Equal(t, pos(0, 0), result.Path[0])
			assert.Equal(t, pos(3, 4), result.Path[len(result.Path)-1])
			assert.Equal(t, Idle, d.State())

			last := rec.Last()
			assert.Equal(t, SearchSucceeded, last.Kind)
			assert.Equal(t, result.Path, last.Path)
			assert.Equal(t, result.Visited, last.Current)
			assert.Equal(t, result.Visited, rec.Count(CellVisited))
			assert.Equal(t, result.Visited, rec.Count(Progress))
			for _, e := range rec.Events() {
				assert.Equal(t, id, e.RunID)
				assert.Equal(t, kind, e.Algorithm)
			}
		})
	}
}

func TestDriver_EventOrder(t *testing.T) {
	d, rec := newDriver(t, 2, 2, 0)

	_, err := d.Start(search.BFS)
	require.NoError(t, err)
	wait(t, d)

	events := rec.Events()
	require.NotEmpty(t, events)
	for i := 0; i < len(events)-1; i += 2 {
		require.Equal(t, CellVisited, events[i].Kind)
		require.NotNil(t, events[i].Cell)
		require.Equal(t, Progress, events[i+1].Kind)
		assert.Equal(t, i/2+1, events[i+1].Current)
		assert.Equal(t, 4, events[i+1].Total)
	}
	assert.True(t, events[len(events)-1].Kind.Terminal())
}

func TestDriver_Exhausted(t *testing.T) {
	d, rec := newDriver(t, 3, 3, 0)
	_, err := d.SetWall(pos(1, 2), true)
	require.NoError(t, err)
	_, err = d.SetWall(pos(2, 1), true)
	require.NoError(t, err)

	_, err = d.Start(search.Dijkstra)
	require.NoError(t, err)

	result := wait(t, d)
	assert.Equal(t, Exhausted, result.Outcome)
	assert.Empty(t, result.Path)
	assert.Equal(t, 6, result.Visited)
	assert.Equal(t, SearchExhausted, rec.Last().Kind)
}

func TestDriver_BrokenPathFails(t *testing.T) {
	d, rec := newDriver(t, 3, 3, 0, WithStrategies(func(search.Kind) (search.Strategy, error) {
		return brokenStrategy{}, nil
	}))

	_, err := d.Start(search.BFS)
	require.NoError(t, err)

	result := wait(t, d)
	assert.Equal(t, Failed, result.Outcome)
	assert.ErrorIs(t, result.Err, search.ErrBrokenPath)
	last := rec.Last()
	assert.Equal(t, SearchFailed, last.Kind)
	assert.NotEmpty(t, last.Error)
	assert.Equal(t, Idle, d.State())
}

func TestDriver_PauseAndSingleStep(t *testing.T) {
	d, rec := newDriver(t, 20, 20, time.Hour)

	_, err := d.Start(search.BFS)
	require.NoError(t, err)

	require.NoError(t, d.Pause())
	assert.Equal(t, Paused, d.State())
	before := rec.Count(CellVisited)
	assert.Equal(t, 1, before)

	for range 3 {
		require.NoError(t, d.SingleStep())
		assert.Equal(t, Paused, d.State())
	}
	assert.Equal(t, before+3, rec.Count(CellVisited))
	assert.Equal(t, before+3, rec.Count(Progress))

	require.NoError(t, d.Cancel())
	result := wait(t, d)
	assert.Equal(t, Cancelled, result.Outcome)
	assert.Equal(t, before+3, result.Visited)
	assert.Equal(t, SearchCancelled, rec.Last().Kind)
	assert.Equal(t, 1, rec.Count(SearchCancelled))
}

func TestDriver_PauseResume(t *testing.T) {
	d, _ := newDriver(t, 6, 6, time.Millisecond)

	_, err := d.Start(search.AStar)
	require.NoError(t, err)
	require.NoError(t, d.Pause())
	require.NoError(t, d.Resume())

	result := wait(t, d)
	assert.Equal(t, Succeeded, result.Outcome)
	assert.Len(t, result.Path, 11)
}

func TestDriver_SingleStepToTerminal(t *testing.T) {
	d, rec := newDriver(t, 2, 2, time.Hour)

	_, err := d.Start(search.DFS)
	require.NoError(t, err)
	require.NoError(t, d.Pause())

	for d.State() == Paused {
		require.NoError(t, d.SingleStep())
	}

	result := wait(t, d)
	assert.Equal(t, Succeeded, result.Outcome)
	assert.Equal(t, SearchSucceeded, rec.Last().Kind)
	assert.ErrorIs(t, d.SingleStep(), ErrNotPaused)
}

func TestDriver_CancelWhileRunning(t *testing.T) {
	d, rec := newDriver(t, 30, 30, 10*time.Millisecond)

	_, err := d.Start(search.Dijkstra)
	require.NoError(t, err)
	require.NoError(t, d.Cancel())

	assert.Equal(t, Idle, d.State())
	result := wait(t, d)
	assert.Equal(t, Cancelled, result.Outcome)
	assert.Empty(t, result.Path)
	assert.Equal(t, SearchCancelled, rec.Last().Kind)

	// Nothing is published once Cancel has returned.
	n := len(rec.Events())
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, rec.Events(), n)
}

func TestDriver_ControlErrors(t *testing.T) {
	d, _ := newDriver(t, 10, 10, time.Hour)

	assert.ErrorIs(t, d.Pause(), ErrNotRunning)
	assert.ErrorIs(t, d.Resume(), ErrNotPaused)
	assert.ErrorIs(t, d.SingleStep(), ErrNotPaused)
	assert.ErrorIs(t, d.Cancel(), ErrNoRun)
	_, err := d.Wait(context.Background())
	assert.ErrorIs(t, err, ErrNoRun)

	_, err = d.Start(search.BFS)
	require.NoError(t, err)
	_, err = d.Start(search.DFS)
	assert.ErrorIs(t, err, ErrNotIdle)
	assert.ErrorIs(t, d.Resume(), ErrNotPaused)
	assert.ErrorIs(t, d.SingleStep(), ErrNotPaused)

	require.NoError(t, d.Pause())
	assert.ErrorIs(t, d.Pause(), ErrNotRunning)

	require.NoError(t, d.Cancel())
	assert.ErrorIs(t, d.Cancel(), ErrNoRun)

	_, err = d.Start(search.Kind(42))
	assert.ErrorIs(t, err, search.ErrUnknownKind)
	assert.Equal(t, Idle, d.State())
}

func TestDriver_WaitRespectsContext(t *testing.T) {
	d, _ := newDriver(t, 10, 10, time.Hour)
	_, err := d.Start(search.BFS)
	require.NoError(t, err)
	defer d.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = d.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDriver_EditsGatedOnIdle(t *testing.T) {
	d, _ := newDriver(t, 10, 10, time.Hour)

	applied, err := d.ToggleWall(pos(4, 4))
	require.NoError(t, err)
	assert.True(t, applied)
	applied, err = d.ToggleWall(pos(0, 0))
	require.NoError(t, err)
	assert.False(t, applied, "endpoint cannot become a wall")

	_, err = d.Start(search.BFS)
	require.NoError(t, err)
	require.NoError(t, d.Pause())

	_, err = d.ToggleWall(pos(5, 5))
	assert.ErrorIs(t, err, ErrNotIdle)
	_, err = d.SetWall(pos(5, 5), true)
	assert.ErrorIs(t, err, ErrNotIdle)
	_, err = d.MoveSource(pos(1, 1))
	assert.ErrorIs(t, err, ErrNotIdle)
	_, err = d.MoveTarget(pos(8, 8))
	assert.ErrorIs(t, err, ErrNotIdle)
	assert.ErrorIs(t, d.Reset(false), ErrNotIdle)
	assert.ErrorIs(t, d.GenerateMaze(1), ErrNotIdle)
	assert.ErrorIs(t, d.Scatter(1, 0.2), ErrNotIdle)

	require.NoError(t, d.Cancel())

	moved, err := d.MoveSource(pos(1, 1))
	require.NoError(t, err)
	assert.True(t, moved)
	d.View(func(g *grid.Grid) {
		assert.Equal(t, pos(1, 1), g.Source())
		assert.True(t, g.IsWall(pos(4, 4)))
	})
}

func TestDriver_StartResetsVisualization(t *testing.T) {
	d, _ := newDriver(t, 3, 3, 0)
	_, err := d.SetWall(pos(1, 1), true)
	require.NoError(t, err)

	_, err = d.Start(search.BFS)
	require.NoError(t, err)
	first := wait(t, d)

	_, err = d.Start(search.BFS)
	require.NoError(t, err)
	second := wait(t, d)

	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Visited, second.Visited)
	d.View(func(g *grid.Grid) {
		assert.True(t, g.IsWall(pos(1, 1)), "walls survive a new run")
		path := 0
		for _, row := range g.Snapshot() {
			for _, c := range row {
				if c.OnPath {
					path++
				}
			}
		}
		assert.Equal(t, len(second.Path), path)
	})
}

func TestDriver_MazeEdits(t *testing.T) {
	d, _ := newDriver(t, 11, 11, 0)

	require.NoError(t, d.GenerateMaze(7))
	var walls int
	d.View(func(g *grid.Grid) { walls = len(g.Walls()) })
	assert.Positive(t, walls)

	_, err := d.Start(search.AStar)
	require.NoError(t, err)
	assert.Equal(t, Succeeded, wait(t, d).Outcome)

	err = d.Scatter(1, 1.5)
	assert.ErrorIs(t, err, ErrInvalidDensity)
	assert.ErrorIs(t, err, grid.ErrInvalidDensity)
	d.View(func(g *grid.Grid) { assert.Len(t, g.Walls(), walls) })

	require.NoError(t, d.Scatter(1, 0))
	d.View(func(g *grid.Grid) { assert.Empty(t, g.Walls()) })
}

func TestDriver_SetSpeed(t *testing.T) {
	d, _ := newDriver(t, 3, 3, 0, WithPacer(Speed{Level: 5, Formula: Slow}))

	require.NoError(t, d.SetSpeed(10))
	assert.Equal(t, 100*time.Millisecond, d.delay())
	assert.ErrorIs(t, d.SetSpeed(0), ErrInvalidSpeed)
	assert.Equal(t, 100*time.Millisecond, d.delay())
}

func TestDriver_StartWithSpeed(t *testing.T) {
	d, _ := newDriver(t, 5, 5, 0, WithPacer(Speed{Level: 9, Formula: Slow}))

	_, err := d.StartWithSpeed(search.BFS, 0)
	assert.ErrorIs(t, err, ErrInvalidSpeed)
	assert.Equal(t, Idle, d.State())
	assert.Equal(t, 200*time.Millisecond, d.delay())

	_, err = d.StartWithSpeed(search.BFS, 10)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, d.delay())

	t.Run("busy driver keeps its speed", func(t *testing.T) {
		_, err := d.StartWithSpeed(search.DFS, 1)
		assert.ErrorIs(t, err, ErrNotIdle)
		assert.Equal(t, 100*time.Millisecond, d.delay())
	})

	require.NoError(t, d.Cancel())
	assert.Equal(t, Cancelled, wait(t, d).Outcome)
}

func TestDriver_LastResult(t *testing.T) {
	d, _ := newDriver(t, 10, 10, time.Hour)
	_, ok := d.LastResult()
	assert.False(t, ok)

	id, err := d.Start(search.BFS)
	require.NoError(t, err)
	_, ok = d.LastResult()
	assert.False(t, ok, "run still in progress")

	require.NoError(t, d.Cancel())
	result, ok := d.LastResult()
	require.True(t, ok)
	assert.Equal(t, id, result.RunID)
	assert.Equal(t, Cancelled, result.Outcome)
}

func TestDriver_Scores(t *testing.T) {
	d, _ := newDriver(t, 3, 3, 0)
	_, ok := d.Scores(pos(2, 2))
	assert.False(t, ok)

	_, err := d.Start(search.AStar)
	require.NoError(t, err)
	wait(t, d)
	scores, ok := d.Scores(pos(2, 2))
	require.True(t, ok)
	assert.Equal(t, 4, scores.G)
	assert.Equal(t, 0, scores.H)
	assert.Equal(t, 4, scores.F)

	_, err = d.Start(search.BFS)
	require.NoError(t, err)
	wait(t, d)
	_, ok = d.Scores(pos(2, 2))
	assert.False(t, ok)
}
