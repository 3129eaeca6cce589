package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	for range 3 {
		c.Publish(driver.Event{Kind: driver.CellVisited, Algorithm: search.BFS})
		c.Publish(driver.Event{Kind: driver.Progress, Algorithm: search.BFS})
	}
	c.Publish(driver.Event{Kind: driver.SearchSucceeded, Algorithm: search.BFS, Current: 3, Elapsed: time.Second})
	c.Publish(driver.Event{Kind: driver.SearchCancelled, Algorithm: search.AStar})

	assert.Equal(t, 3.0, testutil.ToFloat64(c.steps.WithLabelValues("bfs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("bfs", "succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("astar", "cancelled")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.runs.WithLabelValues("bfs", "failed")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.visited))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.Publish(driver.Event{Kind: driver.CellVisited, Algorithm: search.Dijkstra})

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pathviz_cells_visited_total{algorithm="dijkstra"} 1`)
}
