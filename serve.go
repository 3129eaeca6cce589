package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/api"
	algorithmapi "github.com/beka-birhanu/vinom-pathfinding/api/algorithm"
	boardapi "github.com/beka-birhanu/vinom-pathfinding/api/board"
	api_i "github.com/beka-birhanu/vinom-pathfinding/api/i"
	"github.com/beka-birhanu/vinom-pathfinding/config"
	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/beka-birhanu/vinom-pathfinding/infrastruture/runstore"
	"github.com/beka-birhanu/vinom-pathfinding/logging"
	"github.com/beka-birhanu/vinom-pathfinding/metrics"
	"github.com/beka-birhanu/vinom-pathfinding/service"
	"github.com/beka-birhanu/vinom-pathfinding/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// Dependencies of the serve command
var (
	redisClient         *redis.Client
	runStore            i.RunStore
	collector           *metrics.Collector
	sessionManager      *service.SessionManager
	boardController     api_i.Controller
	algorithmController api_i.Controller
	router              *api.Router
)

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(err, "Redis ping failed", "addr", config.Envs.RedisAddr)
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis", "addr", config.Envs.RedisAddr)
}

func initRunStore() {
	if redisClient == nil {
		runStore = runstore.NewMemoryRunStore(config.Envs.HistoryLimit)
		appLogger.Info("Run history kept in memory")
		return
	}

	var err error
	runStore, err = runstore.NewRedisRunStore(redisClient, config.Envs.HistoryTTLSeconds, config.Envs.HistoryLimit)
	if err != nil {
		appLogger.Error(err, "Creating redis run store")
		os.Exit(1)
	}
	appLogger.Info("Run history kept in Redis")
}

func initMetrics() {
	collector = metrics.NewCollector()
	appLogger.Info("Metrics collector initialized")
}

func initSessionManager() {
	formula, err := driver.ParseFormula(config.Envs.PacingFormula)
	if err != nil {
		appLogger.Error(err, "Invalid PACING_FORMULA")
		os.Exit(1)
	}
	speed, err := driver.NewSpeed(formula, config.Envs.DefaultSpeed)
	if err != nil {
		appLogger.Error(err, "Invalid DEFAULT_SPEED")
		os.Exit(1)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		Store:       runStore,
		Sink:        collector,
		Speed:       speed,
		MaxSessions: config.Envs.MaxSessions,
		Logger:      logging.Named("SESSION-MANAGER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(err, "Creating session manager")
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initBoardController() {
	var err error
	boardController, err = boardapi.NewController(sessionManager, boardapi.Defaults{
		Rows: config.Envs.GridRows,
		Cols: config.Envs.GridCols,
	}, logging.Named("BOARD", config.ColorBlue))
	if err != nil {
		appLogger.Error(err, "Creating board controller")
		os.Exit(1)
	}
	appLogger.Info("Board controller initialized")
}

func initAlgorithmController() {
	var err error
	algorithmController, err = algorithmapi.NewController(runStore, logging.Named("ALGORITHM", config.ColorPurple))
	if err != nil {
		appLogger.Error(err, "Creating algorithm controller")
		os.Exit(1)
	}
	appLogger.Info("Algorithm controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{boardController, algorithmController},
		Metrics:     collector.Handler(),
		Pprof:       config.Envs.PprofEnabled,
	})
	appLogger.Info("Router initialized")
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if config.Envs.RedisAddr != "" {
				pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				initRedis(pingCtx)
				cancel()
				defer redisClient.Close()
			}

			initRunStore()
			initMetrics()
			initSessionManager()
			defer sessionManager.StopAll()
			initBoardController()
			initAlgorithmController()
			initRouter()

			appLogger.Info("Listening", "addr", fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort))
			if err := router.Run(ctx); err != nil {
				appLogger.Error(err, "Starting server")
				return err
			}
			appLogger.Info("Server stopped")
			return nil
		},
	}
}
