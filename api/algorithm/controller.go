// Package algorithmapi exposes the algorithm catalog and run history.
package algorithmapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-pathfinding/search"
	"github.com/beka-birhanu/vinom-pathfinding/service/i"
	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
)

const defaultHistoryLimit = 10

// Controller serves algorithm details and the best runs of each algorithm.
type Controller struct {
	store  i.RunStore
	logger logr.Logger
}

// NewController initializes an algorithm Controller.
func NewController(store i.RunStore, logger logr.Logger) (*Controller, error) {
	if store == nil {
		return nil, errors.New("run store is required")
	}
	return &Controller{store: store, logger: logger}, nil
}

// Register registers the algorithm routes.
func (ac *Controller) Register(route *gin.RouterGroup) {
	algorithms := route.Group("/algorithms")
	{
		algorithms.GET("", ac.catalog)
		algorithms.GET("/:kind", ac.describe)
		algorithms.GET("/:kind/runs", ac.runs)
	}
}

func (ac *Controller) catalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, search.Catalog())
}

func (ac *Controller) describe(ctx *gin.Context) {
	kind, err := search.ParseKind(ctx.Param("kind"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	details, _ := search.Describe(kind)
	ctx.JSON(http.StatusOK, details)
}

// runs returns the recorded runs of an algorithm, fewest visited cells first.
func (ac *Controller) runs(ctx *gin.Context) {
	kind, err := search.ParseKind(ctx.Param("kind"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	limit := defaultHistoryLimit
	if raw, ok := ctx.GetQuery("limit"); ok {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
	}

	runs, err := ac.store.Best(ctx, kind, limit)
	if err != nil {
		ac.logger.Error(err, "Reading run history", "algorithm", kind)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading run history"})
		return
	}
	ctx.JSON(http.StatusOK, runs)
}
