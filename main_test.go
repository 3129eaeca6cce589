package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMain_run_text(t *testing.T) {
	out, err := execute(t, "run", "--rows", "3", "--cols", "4", "--algorithm", "bfs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "+----+\n|S"), out)
	assert.Contains(t, out, "outcome:     succeeded\n")
	assert.Contains(t, out, "path length: 6\n")
}

func TestMain_run_json(t *testing.T) {
	out, err := execute(t, "run", "--rows", "5", "--cols", "5", "--source", "0,0", "--target", "4,4", "-a", "astar", "--scores", "-o", "json")
	require.NoError(t, err)

	var result struct {
		Algorithm    string              `json:"algorithm"`
		Outcome      string              `json:"outcome"`
		Path         []grid.CellPosition `json:"path"`
		TargetScores map[string]int      `json:"target_scores"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "astar", result.Algorithm)
	assert.Equal(t, "succeeded", result.Outcome)
	assert.Len(t, result.Path, 9)
	assert.Equal(t, 8, result.TargetScores["g"])
	assert.Equal(t, 8, result.TargetScores["f"])
}

func TestMain_run_yamlExhausted(t *testing.T) {
	out, err := execute(t, "run", "--rows", "4", "--cols", "4", "--source", "0,0", "--target", "3,3", "-a", "dfs", "--density", "1", "-o", "yaml")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, "exhausted", result["outcome"])
	assert.Equal(t, float64(1), result["visited"])
}

func TestMain_run_maze(t *testing.T) {
	out, err := execute(t, "run", "--rows", "11", "--cols", "11", "--source", "0,0", "--target", "10,10", "--maze-seed", "4", "-a", "dijkstra")
	require.NoError(t, err)
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "outcome:     succeeded\n")
}

func TestMain_run_errors(t *testing.T) {
	for _, args := range [][]string{
		{"run", "--algorithm", "greedy"},
		{"run", "--source", "1"},
		{"run", "--target", "x,2"},
		{"run", "--rows", "1"},
		{"run", "--speed", "11"},
		{"run", "-o", "xml"},
		{"run", "--density", "2"},
	} {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestMain_algorithms(t *testing.T) {
	out, err := execute(t, "algorithms")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "ALGORITHM"))
	assert.True(t, strings.HasPrefix(lines[1], "dijkstra"))

	out, err = execute(t, "algorithms", "-o", "yaml")
	require.NoError(t, err)
	var catalog []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &catalog))
	assert.Len(t, catalog, 4)
	assert.Equal(t, "astar", catalog[1]["algorithm"])
}

func TestParsePosition(t *testing.T) {
	def := grid.CellPosition{Row: 1, Col: 2}
	p, err := parsePosition("", def)
	require.NoError(t, err)
	assert.Equal(t, def, p)

	p, err = parsePosition(" 3, 4", def)
	require.NoError(t, err)
	assert.Equal(t, grid.CellPosition{Row: 3, Col: 4}, p)

	_, err = parsePosition("3;4", def)
	assert.Error(t, err)
}
