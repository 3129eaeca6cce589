package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/beka-birhanu/vinom-pathfinding/service/i"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const recordTimeout = 2 * time.Second

var (
	ErrSessionNotFound = errors.New("board not found")
	ErrTooManySessions = errors.New("too many boards")
	ErrInvalidBoard    = errors.New("invalid board")
)

// Session is one board: a grid, the driver that searches it and the
// broker that fans its events out.
type Session struct {
	id     uuid.UUID
	rows   int
	cols   int
	driver *driver.Driver
	broker *Broker
}

func (s *Session) ID() uuid.UUID          { return s.id }
func (s *Session) Driver() *driver.Driver { return s.driver }

// Subscribe implements i.Board.
func (s *Session) Subscribe() (<-chan driver.Event, func()) { return s.broker.Subscribe() }

// SessionManager owns every live board.
type SessionManager struct {
	sessions    map[uuid.UUID]*Session
	store       i.RunStore
	sink        driver.Sink
	speed       driver.Speed
	maxSessions int
	logger      logr.Logger
	sync.RWMutex
}

// Config configures a SessionManager.
type Config struct {
	Store       i.RunStore   // run history, nil disables recording
	Sink        driver.Sink  // extra consumer of every board's events, e.g. metrics
	Speed       driver.Speed // pacing of a new board
	MaxSessions int          // zero means unlimited
	Logger      logr.Logger
}

func NewSessionManager(c *Config) (*SessionManager, error) {
	if c == nil {
		return nil, errors.New("session manager config is required")
	}
	speed := c.Speed
	if speed.Level == 0 {
		speed.Level = 5
	}
	return &SessionManager{
		sessions:    make(map[uuid.UUID]*Session),
		store:       c.Store,
		sink:        c.Sink,
		speed:       speed,
		maxSessions: c.MaxSessions,
		logger:      c.Logger,
	}, nil
}

// NewSession creates a board with the given dimensions and endpoints.
func (m *SessionManager) NewSession(rows, cols int, source, target grid.CellPosition) (i.Board, error) {
	g, err := grid.New(rows, cols, source, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	m.Lock()
	defer m.Unlock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.logger.Info("Refusing new board", "boards", len(m.sessions), "max", m.maxSessions)
		return nil, ErrTooManySessions
	}

	sessionID := uuid.New()
	for {
		if _, ok := m.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	s := &Session{id: sessionID, rows: rows, cols: cols, broker: NewBroker()}
	sinks := driver.Sinks{s.broker, driver.SinkFunc(func(e driver.Event) { m.record(s, e) })}
	if m.sink != nil {
		sinks = append(sinks, m.sink)
	}
	s.driver = driver.New(g,
		driver.WithSink(sinks),
		driver.WithPacer(m.speed),
		driver.WithLogger(m.logger.WithValues("board", sessionID)),
	)
	m.sessions[sessionID] = s

	m.logger.V(1).Info("Created board", "board", sessionID, "rows", rows, "cols", cols)
	return s, nil
}

// Session returns the board with the given id.
func (m *SessionManager) Session(id uuid.UUID) (i.Board, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove cancels the board's run, if any, ends its subscriptions and forgets it.
func (m *SessionManager) Remove(id uuid.UUID) error {
	m.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	m.stop(s)
	m.logger.V(1).Info("Removed board", "board", id)
	return nil
}

// Count returns the number of live boards.
func (m *SessionManager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}

// StopAll cancels every run and closes every board.
func (m *SessionManager) StopAll() {
	m.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.Unlock()

	for _, s := range sessions {
		m.stop(s)
	}
}

func (m *SessionManager) stop(s *Session) {
	if err := s.driver.Cancel(); err != nil && !errors.Is(err, driver.ErrNoRun) {
		m.logger.Error(err, "Cancelling run of removed board", "board", s.id)
	}
	s.broker.Close()
}

// record stores the outcome of a finished run in the run history.
func (m *SessionManager) record(s *Session, e driver.Event) {
	if m.store == nil || !e.Kind.Terminal() {
		return
	}

	r := i.RunRecord{
		RunID:      e.RunID,
		BoardID:    s.id,
		Algorithm:  e.Algorithm,
		Outcome:    e.Kind.Outcome().String(),
		Visited:    e.Current,
		PathLength: len(e.Path),
		Rows:       s.rows,
		Cols:       s.cols,
		Duration:   e.Elapsed,
		FinishedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := m.store.Record(ctx, r); err != nil {
		m.logger.Error(err, "Recording run", "board", s.id, "run", e.RunID)
	}
}
