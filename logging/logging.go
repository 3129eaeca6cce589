// Package logging initializes the root logger and provides component loggers.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/beka-birhanu/vinom-pathfinding/config"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var root logr.Logger

// Log returns the root logger.
func Log() logr.Logger { return root }

func init() { // Set configured verbosity on init, Init() can over-ride.
	root = New("APP", config.ColorGreen, os.Stderr)
	Init(config.Envs.LogVerbosity)
}

// Init sets verbosity for all loggers.
func Init(verbosity int) {
	if verbosity != 0 { // If not set, let env verbosity stand
		stdr.SetVerbosity(verbosity)
	}
}

// New returns a logger whose lines start with a coloured [NAME] tag.
func New(name, color string, w io.Writer) logr.Logger {
	prefix := fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset)
	return stdr.New(log.New(w, prefix, log.LstdFlags))
}

// Named returns a component logger writing to stderr.
func Named(name, color string) logr.Logger {
	return New(name, color, os.Stderr)
}
