package logging

import (
	"bytes"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinding/config"
	"github.com/go-logr/stdr"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	old := stdr.SetVerbosity(0)
	t.Cleanup(func() { stdr.SetVerbosity(old) })

	Init(2)
	assert.True(t, Log().V(2).Enabled())
	assert.False(t, Log().V(3).Enabled())

	Init(0) // Keeps the current verbosity
	assert.True(t, Log().V(2).Enabled())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	New("BOARD", config.ColorBlue, &buf).Info("Board created", "rows", 4)

	line := buf.String()
	assert.Contains(t, line, config.ColorBlue+"[BOARD]"+config.ColorReset)
	assert.Contains(t, line, `"msg"="Board created"`)
	assert.Contains(t, line, `"rows"=4`)
}
