package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinSpeed = 1
	MaxSpeed = 10
)

var ErrInvalidSpeed = errors.New("speed level must be between 1 and 10")

// Pacer decides how long the driver waits between two steps.
type Pacer interface {
	Delay() time.Duration
}

// FixedDelay waits the same duration between every step.
type FixedDelay time.Duration

func (f FixedDelay) Delay() time.Duration { return time.Duration(f) }

// Formula maps a speed level to a delay.
type Formula int

const (
	// Fast is 110 - 10*level ms: 100ms at level 1, 10ms at level 10.
	Fast Formula = iota
	// Slow is 1100 - 100*level ms: 1s at level 1, 100ms at level 10.
	Slow
)

func (f Formula) String() string {
	if f == Slow {
		return "slow"
	}
	return "fast"
}

// ParseFormula accepts "fast" or "slow".
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(s) {
	case "", "fast":
		return Fast, nil
	case "slow":
		return Slow, nil
	default:
		return Fast, fmt.Errorf("unknown pacing formula %q", s)
	}
}

// Speed is a Pacer driven by a discrete 1-10 level.
type Speed struct {
	Level   int
	Formula Formula
}

// NewSpeed validates level and returns the matching pacer.
func NewSpeed(formula Formula, level int) (Speed, error) {
	if level < MinSpeed || level > MaxSpeed {
		return Speed{}, fmt.Errorf("%w: %d", ErrInvalidSpeed, level)
	}
	return Speed{Level: level, Formula: formula}, nil
}

func (s Speed) Delay() time.Duration {
	level := min(max(s.Level, MinSpeed), MaxSpeed)
	if s.Formula == Slow {
		return time.Duration(1100-100*level) * time.Millisecond
	}
	return time.Duration(110-10*level) * time.Millisecond
}
