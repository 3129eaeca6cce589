package boardapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/grid"
	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/beka-birhanu/vinom-pathfinding/service"
	"github.com/beka-birhanu/vinom-pathfinding/service/i"
	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// Defaults applied to boards created without explicit dimensions or endpoints.
type Defaults struct {
	Rows int
	Cols int
}

// Controller manages boards and the searches running on them.
type Controller struct {
	sessions i.SessionManager
	defaults Defaults
	logger   logr.Logger
}

// NewController initializes a board Controller.
func NewController(sm i.SessionManager, defaults Defaults, logger logr.Logger) (*Controller, error) {
	if sm == nil {
		return nil, errors.New("session manager is required")
	}
	if defaults.Rows == 0 || defaults.Cols == 0 {
		defaults.Rows, defaults.Cols = grid.DefaultRows, grid.DefaultCols
	}
	return &Controller{sessions: sm, defaults: defaults, logger: logger}, nil
}

// Register registers the board routes.
func (bc *Controller) Register(route *gin.RouterGroup) {
	boards := route.Group("/boards")
	{
		boards.POST("", bc.create)
		boards.GET("/:id", bc.withBoard(bc.get))
		boards.DELETE("/:id", bc.remove)

		boards.POST("/:id/walls", bc.withBoard(bc.wall))
		boards.PUT("/:id/source", bc.withBoard(bc.source))
		boards.PUT("/:id/target", bc.withBoard(bc.target))
		boards.POST("/:id/reset", bc.withBoard(bc.reset))
		boards.POST("/:id/maze", bc.withBoard(bc.maze))
		boards.PUT("/:id/speed", bc.withBoard(bc.speed))

		boards.POST("/:id/runs", bc.withBoard(bc.start))
		boards.POST("/:id/runs/pause", bc.withBoard(bc.control(func(d *driver.Driver) error { return d.Pause() })))
		boards.POST("/:id/runs/resume", bc.withBoard(bc.control(func(d *driver.Driver) error { return d.Resume() })))
		boards.POST("/:id/runs/step", bc.withBoard(bc.control(func(d *driver.Driver) error { return d.SingleStep() })))
		boards.POST("/:id/runs/cancel", bc.withBoard(bc.control(func(d *driver.Driver) error { return d.Cancel() })))

		boards.GET("/:id/events", bc.withBoard(bc.events))
	}
}

type boardHandler func(*gin.Context, i.Board)

// withBoard resolves the :id parameter before calling h.
func (bc *Controller) withBoard(h boardHandler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
			return
		}
		board, err := bc.sessions.Session(id)
		if err != nil {
			bc.fail(ctx, err)
			return
		}
		h(ctx, board)
	}
}

// create handles board creation requests.
func (bc *Controller) create(ctx *gin.Context) {
	var request CreateBoardRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	rows, cols := request.Rows, request.Cols
	if rows == 0 && cols == 0 {
		rows, cols = bc.defaults.Rows, bc.defaults.Cols
	}
	source, target := defaultEndpoints(rows, cols)
	if request.Source != nil {
		source = *request.Source
	}
	if request.Target != nil {
		target = *request.Target
	}

	board, err := bc.sessions.NewSession(rows, cols, source, target)
	if err != nil {
		bc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, CreateBoardResponse{ID: board.ID()})
}

// defaultEndpoints keeps the visualizer's (5,5) and (15,15) on boards that
// fit them, and uses opposite corners otherwise.
func defaultEndpoints(rows, cols int) (grid.CellPosition, grid.CellPosition) {
	if rows > grid.DefaultTarget.Row && cols > grid.DefaultTarget.Col {
		return grid.DefaultSource, grid.DefaultTarget
	}
	return grid.CellPosition{}, grid.CellPosition{Row: rows - 1, Col: cols - 1}
}

func (bc *Controller) get(ctx *gin.Context, board i.Board) {
	ctx.JSON(http.StatusOK, newBoardResponse(board.ID(), board.Driver()))
}

func (bc *Controller) remove(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid board id"})
		return
	}
	if err := bc.sessions.Remove(id); err != nil {
		bc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (bc *Controller) wall(ctx *gin.Context, board i.Board) {
	var request WallRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var applied bool
	var err error
	if request.Wall == nil {
		applied, err = board.Driver().ToggleWall(request.Position())
	} else {
		applied, err = board.Driver().SetWall(request.Position(), *request.Wall)
	}
	bc.edited(ctx, applied, err)
}

func (bc *Controller) source(ctx *gin.Context, board i.Board) {
	var request PositionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applied, err := board.Driver().MoveSource(request.Position())
	bc.edited(ctx, applied, err)
}

func (bc *Controller) target(ctx *gin.Context, board i.Board) {
	var request PositionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applied, err := board.Driver().MoveTarget(request.Position())
	bc.edited(ctx, applied, err)
}

func (bc *Controller) reset(ctx *gin.Context, board i.Board) {
	var request ResetRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	bc.edited(ctx, true, board.Driver().Reset(request.PreserveWalls))
}

func (bc *Controller) maze(ctx *gin.Context, board i.Board) {
	var request MazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if request.Density != nil {
		err = board.Driver().Scatter(request.Seed, *request.Density)
	} else {
		err = board.Driver().GenerateMaze(request.Seed)
	}
	bc.edited(ctx, err == nil, err)
}

func (bc *Controller) speed(ctx *gin.Context, board i.Board) {
	var request SpeedRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := board.Driver().SetSpeed(request.Level); err != nil {
		bc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// start handles run requests. The run continues after the response.
func (bc *Controller) start(ctx *gin.Context, board i.Board) {
	var request StartRunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := search.ParseKind(request.Algorithm)
	if err != nil {
		bc.fail(ctx, err)
		return
	}

	d := board.Driver()
	var runID uuid.UUID
	if request.Speed != 0 {
		runID, err = d.StartWithSpeed(kind, request.Speed)
	} else {
		runID, err = d.Start(kind)
	}
	if err != nil {
		bc.fail(ctx, err)
		return
	}
	bc.logger.V(1).Info("Run started", "board", board.ID(), "run", runID, "algorithm", kind)
	ctx.JSON(http.StatusAccepted, StartRunResponse{RunID: runID})
}

func (bc *Controller) control(f func(*driver.Driver) error) boardHandler {
	return func(ctx *gin.Context, board i.Board) {
		if err := f(board.Driver()); err != nil {
			bc.fail(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"state": board.Driver().State()})
	}
}

func (bc *Controller) edited(ctx *gin.Context, applied bool, err error) {
	if err != nil {
		bc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, EditResponse{Applied: applied})
}

// fail maps service and driver errors to HTTP statuses.
func (bc *Controller) fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTooManySessions):
		status = http.StatusTooManyRequests
	case errors.Is(err, driver.ErrNotIdle),
		errors.Is(err, driver.ErrNotRunning),
		errors.Is(err, driver.ErrNotPaused),
		errors.Is(err, driver.ErrNoRun):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidBoard),
		errors.Is(err, search.ErrUnknownKind),
		errors.Is(err, driver.ErrInvalidSpeed),
		errors.Is(err, driver.ErrInvalidDensity):
		status = http.StatusBadRequest
	default:
		bc.logger.Error(err, "Board request failed", "path", ctx.FullPath())
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
