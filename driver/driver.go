// Package driver runs one search strategy at a time over a grid, pacing
// the steps and exposing pause, resume, single-step and cancel controls.
//
// A run is executed by a single loop goroutine. Controls synchronise with
// it through channels: Pause returns once the loop has parked, Cancel
// returns once the loop has exited, and SingleStep returns once its step
// and events have been delivered. Cancellation is observed at the
// suspension points between steps; a step itself is never interrupted.
package driver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Control errors.
var (
	ErrNotIdle    = errors.New("a search is in progress")
	ErrNotRunning = errors.New("search is not running")
	ErrNotPaused  = errors.New("search is not paused")
	ErrNoRun      = errors.New("no active search")

	ErrInvalidDensity = grid.ErrInvalidDensity
)

// State of the driver.
type State int

const (
	Idle State = iota
	Running
	Paused
	Succeeded
	Exhausted
	Cancelled
	Failed
)

var stateNames = []string{"idle", "running", "paused", "succeeded", "exhausted", "cancelled", "failed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result is the terminal outcome of a run.
type Result struct {
	RunID     uuid.UUID           `json:"run_id"`
	Algorithm search.Kind         `json:"algorithm"`
	Outcome   State               `json:"outcome"`
	Visited   int                 `json:"visited"`
	Path      []grid.CellPosition `json:"path,omitempty"`
	Elapsed   time.Duration       `json:"elapsed_ns"`
	Err       error               `json:"-"`
}

// Option configures a Driver.
type Option func(*Driver)

// WithSink sets the consumer of run events.
func WithSink(s Sink) Option {
	return func(d *Driver) { d.sink = s }
}

// WithPacer sets the delay between steps.
func WithPacer(p Pacer) Option {
	return func(d *Driver) { d.pacer = p }
}

// WithLogger sets the driver logger.
func WithLogger(l logr.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithStrategies replaces the strategy constructor.
func WithStrategies(f func(search.Kind) (search.Strategy, error)) Option {
	return func(d *Driver) { d.newStrategy = f }
}

// Driver owns a grid and executes at most one search over it at a time.
type Driver struct {
	grid        *grid.Grid
	sink        Sink
	log         logr.Logger
	newStrategy func(search.Kind) (search.Strategy, error)

	gridMu sync.RWMutex // guards grid contents

	mu      sync.Mutex // guards the fields below
	state   State
	pacer   Pacer
	current *run
}

type run struct {
	id       uuid.UUID
	kind     search.Kind
	strategy search.Strategy
	ctx      context.Context
	cancel   context.CancelFunc
	pause    chan chan struct{}
	resume   chan struct{}
	step     chan chan struct{}
	done     chan struct{}
	started  time.Time
	visited  int
	result   Result
}

// New returns an idle driver over g.
func New(g *grid.Grid, options ...Option) *Driver {
	d := &Driver{
		grid:        g,
		sink:        discard{},
		log:         logr.Discard(),
		newStrategy: search.New,
		pacer:       Speed{Level: 5},
	}
	for _, option := range options {
		option(d)
	}
	if d.sink == nil {
		d.sink = discard{}
	}
	return d
}

// State returns the current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SetPacer changes the step delay, also for a run in progress.
func (d *Driver) SetPacer(p Pacer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pacer = p
}

// Pacer returns the current pacer.
func (d *Driver) Pacer() Pacer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pacer
}

// SetSpeed keeps the current formula and changes the level.
func (d *Driver) SetSpeed(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	speed, err := d.speed(level)
	if err != nil {
		return err
	}
	d.pacer = speed
	return nil
}

// speed builds a Speed at level with the current formula. d.mu must be held.
func (d *Driver) speed(level int) (Speed, error) {
	formula := Fast
	if s, ok := d.pacer.(Speed); ok {
		formula = s.Formula
	}
	return NewSpeed(formula, level)
}

func (d *Driver) delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pacer.Delay()
}

// Start begins a search with the given strategy and returns the run ID.
func (d *Driver) Start(kind search.Kind) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.start(kind, nil)
}

// StartWithSpeed changes the speed level and begins a search in one step.
// The speed is left unchanged when the search cannot start.
func (d *Driver) StartWithSpeed(kind search.Kind, level int) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return uuid.Nil, ErrNotIdle
	}
	speed, err := d.speed(level)
	if err != nil {
		return uuid.Nil, err
	}
	return d.start(kind, speed)
}

// start launches the run loop. d.mu must be held.
func (d *Driver) start(kind search.Kind, pacer Pacer) (uuid.UUID, error) {
	if d.state != Idle {
		return uuid.Nil, ErrNotIdle
	}

	strategy, err := d.newStrategy(kind)
	if err != nil {
		return uuid.Nil, err
	}
	if pacer != nil {
		d.pacer = pacer
	}

	d.gridMu.Lock()
	d.grid.Reset(true)
	strategy.Init(d.grid)
	d.gridMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		id:       uuid.New(),
		kind:     kind,
		strategy: strategy,
		ctx:      ctx,
		cancel:   cancel,
		pause:    make(chan chan struct{}),
		resume:   make(chan struct{}),
		step:     make(chan chan struct{}),
		done:     make(chan struct{}),
		started:  time.Now(),
	}
	d.current = r
	d.state = Running
	d.log.V(1).Info("Search started", "run", r.id, "algorithm", kind)

	go d.loop(r)
	return r.id, nil
}

// Pause suspends a running search. It returns once the run loop has parked,
// so no events are published until Resume, SingleStep or Cancel.
func (d *Driver) Pause() error {
	d.mu.Lock()
	if d.state != Running {
		d.mu.Unlock()
		return ErrNotRunning
	}
	d.state = Paused
	r := d.current
	d.mu.Unlock()

	ack := make(chan struct{})
	select {
	case r.pause <- ack:
	case <-r.done:
		return nil
	}
	select {
	case <-ack:
	case <-r.done:
	}
	return nil
}

// Resume continues a paused search.
func (d *Driver) Resume() error {
	d.mu.Lock()
	if d.state != Paused {
		d.mu.Unlock()
		return ErrNotPaused
	}
	d.state = Running
	r := d.current
	d.mu.Unlock()

	select {
	case r.resume <- struct{}{}:
	case <-r.done:
	}
	return nil
}

// SingleStep performs exactly one step of a paused search and stays paused.
func (d *Driver) SingleStep() error {
	d.mu.Lock()
	if d.state != Paused {
		d.mu.Unlock()
		return ErrNotPaused
	}
	r := d.current
	d.mu.Unlock()

	reply := make(chan struct{})
	select {
	case r.step <- reply:
	case <-r.done:
		return ErrNoRun
	}
	select {
	case <-reply:
	case <-r.done:
	}
	return nil
}

// Cancel aborts a running or paused search and waits for the run loop to exit.
func (d *Driver) Cancel() error {
	d.mu.Lock()
	if d.state != Running && d.state != Paused {
		d.mu.Unlock()
		return ErrNoRun
	}
	r := d.current
	d.mu.Unlock()

	r.cancel()
	<-r.done
	return nil
}

// Wait blocks until the latest run has finished and returns its result.
func (d *Driver) Wait(ctx context.Context) (Result, error) {
	d.mu.Lock()
	r := d.current
	d.mu.Unlock()
	if r == nil {
		return Result{}, ErrNoRun
	}

	select {
	case <-r.done:
		return r.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// LastResult returns the result of the latest run if it has finished.
func (d *Driver) LastResult() (Result, bool) {
	d.mu.Lock()
	r := d.current
	d.mu.Unlock()
	if r == nil {
		return Result{}, false
	}

	select {
	case <-r.done:
		return r.result, true
	default:
		return Result{}, false
	}
}

// Scores returns the latest run's scores of pos when its strategy keeps them.
func (d *Driver) Scores(pos grid.CellPosition) (search.Scores, bool) {
	d.mu.Lock()
	r := d.current
	d.mu.Unlock()
	if r == nil {
		return search.Scores{}, false
	}
	scorer, ok := r.strategy.(search.Scorer)
	if !ok {
		return search.Scores{}, false
	}

	d.gridMu.RLock()
	defer d.gridMu.RUnlock()
	return scorer.Scores(pos), true
}

// loop is the run goroutine: step, publish, suspend, repeat.
func (d *Driver) loop(r *run) {
	defer close(r.done)
	for !d.advance(r) {
		if !d.suspend(r) {
			return
		}
	}
}

// advance performs one strategy step and publishes its events.
// It returns true when the run has ended.
func (d *Driver) advance(r *run) bool {
	d.gridMu.Lock()
	result := r.strategy.Step()
	d.gridMu.Unlock()

	if r.ctx.Err() != nil {
		d.finish(r, Cancelled, nil, nil)
		return true
	}

	switch result.Kind {
	case search.Continue:
		r.visited++
		cell := result.Visited
		d.log.V(3).Info("Visited", "run", r.id, "cell", cell)
		d.publish(r, Event{Kind: CellVisited, Cell: &cell})
		d.publish(r, Event{Kind: Progress, Current: r.visited, Total: d.grid.Size()})
		return false
	case search.Found:
		d.gridMu.Lock()
		path, err := search.Reconstruct(d.grid, r.strategy)
		d.gridMu.Unlock()
		if err != nil {
			d.log.Error(err, "Internal error: strategy reported a path that cannot be reconstructed", "run", r.id, "algorithm", r.kind)
			d.finish(r, Failed, nil, err)
			return true
		}
		d.finish(r, Succeeded, path, nil)
	default:
		d.finish(r, Exhausted, nil, nil)
	}
	return true
}

// suspend waits for the pacing delay. A pause request parks the loop.
// It returns false when the run has ended.
func (d *Driver) suspend(r *run) bool {
	timer := time.NewTimer(d.delay())
	defer timer.Stop()

	select {
	case <-r.ctx.Done():
		d.finish(r, Cancelled, nil, nil)
		return false
	case ack := <-r.pause:
		return d.park(r, ack)
	case <-timer.C:
	}

	// A pause that raced with the timer is honoured before the next step.
	select {
	case ack := <-r.pause:
		return d.park(r, ack)
	default:
		return true
	}
}

// park holds the loop until resume, cancel, or a terminal single step.
func (d *Driver) park(r *run, ack chan struct{}) bool {
	close(ack)
	d.log.V(2).Info("Search paused", "run", r.id, "visited", r.visited)
	for {
		select {
		case <-r.ctx.Done():
			d.finish(r, Cancelled, nil, nil)
			return false
		case <-r.resume:
			d.log.V(2).Info("Search resumed", "run", r.id)
			return true
		case reply := <-r.step:
			ended := d.advance(r)
			close(reply)
			if ended {
				return false
			}
		}
	}
}

// finish records the result, publishes the terminal event and returns the driver to Idle.
func (d *Driver) finish(r *run, outcome State, path []grid.CellPosition, err error) {
	if r.ctx.Err() != nil {
		outcome, path, err = Cancelled, nil, nil
	}
	r.result = Result{
		RunID:     r.id,
		Algorithm: r.kind,
		Outcome:   outcome,
		Visited:   r.visited,
		Path:      path,
		Elapsed:   time.Since(r.started),
		Err:       err,
	}

	d.mu.Lock()
	d.state = outcome
	d.mu.Unlock()

	e := Event{Current: r.visited, Elapsed: r.result.Elapsed}
	switch outcome {
	case Succeeded:
		e.Kind, e.Path = SearchSucceeded, path
	case Exhausted:
		e.Kind = SearchExhausted
	case Failed:
		e.Kind, e.Error = SearchFailed, err.Error()
	default:
		e.Kind = SearchCancelled
	}
	d.publish(r, e)

	d.mu.Lock()
	d.state = Idle
	d.mu.Unlock()
	r.cancel()

	d.log.V(1).Info("Search finished", "run", r.id, "algorithm", r.kind, "outcome", outcome, "visited", r.visited, "path", len(path))
}

func (d *Driver) publish(r *run, e Event) {
	e.RunID = r.id
	e.Algorithm = r.kind
	d.sink.Publish(e)
}

// View calls f with read access to the grid.
func (d *Driver) View(f func(g *grid.Grid)) {
	d.gridMu.RLock()
	defer d.gridMu.RUnlock()
	f(d.grid)
}

// Edit calls f with write access to the grid. Edits are refused while a
// search is in progress.
func (d *Driver) Edit(f func(g *grid.Grid) bool) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return false, ErrNotIdle
	}
	d.gridMu.Lock()
	defer d.gridMu.Unlock()
	return f(d.grid), nil
}

// ToggleWall flips the wall at pos.
func (d *Driver) ToggleWall(pos grid.CellPosition) (bool, error) {
	return d.Edit(func(g *grid.Grid) bool { return g.ToggleWall(pos) })
}

// SetWall sets or clears the wall at pos.
func (d *Driver) SetWall(pos grid.CellPosition, wall bool) (bool, error) {
	return d.Edit(func(g *grid.Grid) bool { return g.SetWall(pos, wall) })
}

// MoveSource moves the source endpoint.
func (d *Driver) MoveSource(pos grid.CellPosition) (bool, error) {
	return d.Edit(func(g *grid.Grid) bool { return g.MoveSource(pos) })
}

// MoveTarget moves the target endpoint.
func (d *Driver) MoveTarget(pos grid.CellPosition) (bool, error) {
	return d.Edit(func(g *grid.Grid) bool { return g.MoveTarget(pos) })
}

// Reset clears the previous run from the grid, and the walls unless preserveWalls is set.
func (d *Driver) Reset(preserveWalls bool) error {
	_, err := d.Edit(func(g *grid.Grid) bool { g.Reset(preserveWalls); return true })
	return err
}

// GenerateMaze replaces the walls with a maze carved from seed.
func (d *Driver) GenerateMaze(seed int64) error {
	_, err := d.Edit(func(g *grid.Grid) bool {
		g.Reset(false)
		grid.GenerateMaze(g, rand.New(rand.NewSource(seed)))
		return true
	})
	return err
}

// Scatter replaces the walls with random walls at the given density.
func (d *Driver) Scatter(seed int64, density float64) error {
	if density < 0 || density > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	var scatterErr error
	if _, err := d.Edit(func(g *grid.Grid) bool {
		g.Reset(false)
		scatterErr = grid.Scatter(g, rand.New(rand.NewSource(seed)), density)
		return scatterErr == nil
	}); err != nil {
		return err
	}
	return scatterErr
}
