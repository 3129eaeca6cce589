package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/config"
	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/beka-birhanu/vinom-pathfinding/logging"
	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/spf13/cobra"
)

type runOptions struct {
	algorithm string
	rows      int
	cols      int
	source    string
	target    string
	mazeSeed  int64
	density   float64
	speed     int
	render    bool
	scores    bool
	timeout   time.Duration
	output    string
}

// runOutput is the structured result of a headless run.
type runOutput struct {
	driver.Result
	Rows         int               `json:"rows"`
	Cols         int               `json:"cols"`
	Source       grid.CellPosition `json:"source"`
	Target       grid.CellPosition `json:"target"`
	TargetScores *search.Scores    `json:"target_scores,omitempty"`
	Board        string            `json:"board"`
}

func newRunCmd() *cobra.Command {
	o := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one search on a board and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.algorithm, "algorithm", "a", search.AStar.String(), "Search algorithm: dijkstra, astar, bfs or dfs")
	f.IntVar(&o.rows, "rows", config.Envs.GridRows, "Board rows")
	f.IntVar(&o.cols, "cols", config.Envs.GridCols, "Board columns")
	f.StringVar(&o.source, "source", "", "Source cell as row,col (default 5,5 or the top-left corner)")
	f.StringVar(&o.target, "target", "", "Target cell as row,col (default 15,15 or the bottom-right corner)")
	f.Int64Var(&o.mazeSeed, "maze-seed", -1, "Carve a maze from this seed, negative for none")
	f.Float64Var(&o.density, "density", 0, "Scatter random walls at this density instead of a maze")
	f.IntVar(&o.speed, "speed", 0, "Pacing level 1-10, 0 runs without delay")
	f.BoolVar(&o.render, "render", false, "Print the board after every visited cell")
	f.BoolVar(&o.scores, "scores", false, "Report the target's scores for dijkstra and astar")
	f.DurationVar(&o.timeout, "timeout", time.Minute, "Cancel the search after this long")
	f.StringVarP(&o.output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func (o *runOptions) run(ctx context.Context, out io.Writer) error {
	if err := validOutput(o.output); err != nil {
		return err
	}
	kind, err := search.ParseKind(o.algorithm)
	if err != nil {
		return err
	}

	defaultSource, defaultTarget := grid.DefaultSource, grid.DefaultTarget
	if o.rows <= defaultTarget.Row || o.cols <= defaultTarget.Col {
		defaultSource, defaultTarget = grid.CellPosition{}, grid.CellPosition{Row: o.rows - 1, Col: o.cols - 1}
	}
	source, err := parsePosition(o.source, defaultSource)
	if err != nil {
		return fmt.Errorf("--source: %w", err)
	}
	target, err := parsePosition(o.target, defaultTarget)
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}
	g, err := grid.New(o.rows, o.cols, source, target)
	if err != nil {
		return err
	}

	var pacer driver.Pacer = driver.FixedDelay(0)
	if o.speed != 0 {
		formula, err := driver.ParseFormula(config.Envs.PacingFormula)
		if err != nil {
			return err
		}
		if pacer, err = driver.NewSpeed(formula, o.speed); err != nil {
			return err
		}
	}

	var d *driver.Driver
	sink := driver.SinkFunc(func(e driver.Event) {
		if o.render && e.Kind == driver.CellVisited {
			d.View(func(g *grid.Grid) { fmt.Fprintf(out, "%v\n", g) })
		}
	})
	d = driver.New(g,
		driver.WithSink(sink),
		driver.WithPacer(pacer),
		driver.WithLogger(logging.Named("DRIVER", config.ColorYellow)),
	)

	switch {
	case o.density > 0:
		err = d.Scatter(o.mazeSeed, o.density)
	case o.mazeSeed >= 0:
		err = d.GenerateMaze(o.mazeSeed)
	}
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := d.Start(kind); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	result, err := d.Wait(waitCtx)
	if err != nil {
		_ = d.Cancel()
		if result, err = d.Wait(context.Background()); err != nil {
			return err
		}
	}

	output := runOutput{Result: result, Rows: o.rows, Cols: o.cols, Source: source, Target: target}
	d.View(func(g *grid.Grid) { output.Board = g.String() })
	if o.scores {
		if s, ok := d.Scores(target); ok {
			output.TargetScores = &s
		}
	}

	if o.output != outputText {
		return printStructured(out, o.output, output)
	}
	printRun(out, output)
	return nil
}

func printRun(w io.Writer, o runOutput) {
	fmt.Fprint(w, o.Board)
	fmt.Fprintf(w, "algorithm:   %v\n", o.Algorithm)
	fmt.Fprintf(w, "outcome:     %v\n", o.Outcome)
	fmt.Fprintf(w, "visited:     %d\n", o.Visited)
	fmt.Fprintf(w, "path length: %d\n", len(o.Path))
	fmt.Fprintf(w, "elapsed:     %v\n", o.Elapsed.Round(time.Microsecond))
	if o.Err != nil {
		fmt.Fprintf(w, "error:       %v\n", o.Err)
	}
	if s := o.TargetScores; s != nil {
		fmt.Fprintf(w, "scores:      distance=%s g=%s h=%s f=%s\n", score(s.Distance), score(s.G), score(s.H), score(s.F))
	}
}

func score(v int) string {
	if v == search.Infinity {
		return "inf"
	}
	return strconv.Itoa(v)
}

// parsePosition parses "row,col". An empty string yields def.
func parsePosition(s string, def grid.CellPosition) (grid.CellPosition, error) {
	if s == "" {
		return def, nil
	}
	row, col, ok := strings.Cut(s, ",")
	if !ok {
		return grid.CellPosition{}, fmt.Errorf("want row,col: %q", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(row))
	if err != nil {
		return grid.CellPosition{}, fmt.Errorf("bad row in %q: %w", s, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(col))
	if err != nil {
		return grid.CellPosition{}, fmt.Errorf("bad column in %q: %w", s, err)
	}
	return grid.CellPosition{Row: r, Col: c}, nil
}
