package driver

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeed_Delay(t *testing.T) {
	tests := []struct {
		name    string
		formula Formula
		level   int
		want    time.Duration
	}{
		{"fast slowest", Fast, 1, 100 * time.Millisecond},
		{"fast middle", Fast, 5, 60 * time.Millisecond},
		{"fast fastest", Fast, 10, 10 * time.Millisecond},
		{"slow slowest", Slow, 1, time.Second},
		{"slow fastest", Slow, 10, 100 * time.Millisecond},
		{"clamped low", Fast, -3, 100 * time.Millisecond},
		{"clamped high", Slow, 99, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Speed{Level: tt.level, Formula: tt.formula}.Delay())
		})
	}
}

func TestNewSpeed(t *testing.T) {
	s, err := NewSpeed(Slow, 3)
	require.NoError(t, err)
	assert.Equal(t, Speed{Level: 3, Formula: Slow}, s)

	_, err = NewSpeed(Fast, 0)
	assert.ErrorIs(t, err, ErrInvalidSpeed)
	_, err = NewSpeed(Fast, 11)
	assert.ErrorIs(t, err, ErrInvalidSpeed)
}

func TestParseFormula(t *testing.T) {
	f, err := ParseFormula("SLOW")
	require.NoError(t, err)
	assert.Equal(t, Slow, f)

	f, err = ParseFormula("")
	require.NoError(t, err)
	assert.Equal(t, Fast, f)

	_, err = ParseFormula("warp")
	assert.Error(t, err)
}

func TestFixedDelay(t *testing.T) {
	assert.Equal(t, 3*time.Millisecond, FixedDelay(3*time.Millisecond).Delay())
}

func TestEventKind(t *testing.T) {
	assert.Equal(t, "search_succeeded", SearchSucceeded.String())
	assert.False(t, Progress.Terminal())
	assert.True(t, SearchFailed.Terminal())

	text, err := CellVisited.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cell_visited", string(text))
}

func TestEventKind_Outcome(t *testing.T) {
	assert.Equal(t, Succeeded, SearchSucceeded.Outcome())
	assert.Equal(t, Exhausted, SearchExhausted.Outcome())
	assert.Equal(t, Cancelled, SearchCancelled.Outcome())
	assert.Equal(t, Failed, SearchFailed.Outcome())
	assert.Equal(t, Running, CellVisited.Outcome())
	assert.Equal(t, "cancelled", SearchCancelled.Outcome().String())
}

func TestEvent_JSON(t *testing.T) {
	b, err := json.Marshal(Event{Kind: SearchCancelled, Algorithm: search.BFS})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.Equal(t, "search_cancelled", fields["kind"])
	assert.Equal(t, "bfs", fields["algorithm"])
	assert.Equal(t, float64(0), fields["current"])
	assert.NotContains(t, fields, "cell")
	assert.NotContains(t, fields, "path")
}
