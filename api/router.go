package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-pathfinding/api/i"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

// Router manages the HTTP server and its dependencies,
// including controllers and the metrics endpoint.
type Router struct {
	addr        string
	baseURL     string
	controllers []i.Controller
	metrics     http.Handler
	pprof       bool
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	Controllers []i.Controller
	Metrics     http.Handler // Served at /metrics when set
	Pprof       bool         // Mount /debug/pprof
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		controllers: config.Controllers,
		metrics:     config.Metrics,
		pprof:       config.Pprof,
	}
}

// Engine builds the gin engine with every route registered.
//
// Controllers are mounted under <baseURL>/v1. Metrics and profiling live at
// the root so scrapers need no API prefix.
func (r *Router) Engine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group(r.baseURL)
	{
		v1 := api.Group("/v1")
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}

	if r.metrics != nil {
		router.GET("/metrics", gin.WrapH(r.metrics))
	}
	if r.pprof {
		pprof.Register(router)
	}
	return router
}

const shutdownTimeout = 5 * time.Second

// Run starts the HTTP server and shuts it down gracefully once ctx is done.
func (r *Router) Run(ctx context.Context) error {
	gin.ForceConsoleColor()
	server := &http.Server{Addr: r.addr, Handler: r.Engine()}

	errs := make(chan error, 1)
	go func() { errs <- server.ListenAndServe() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
