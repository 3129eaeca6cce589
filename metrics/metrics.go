// Package metrics exports run events as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pathviz"

// Collector is a driver.Sink that counts steps and finished runs.
type Collector struct {
	registry *prometheus.Registry
	steps    *prometheus.CounterVec
	runs     *prometheus.CounterVec
	visited  *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewCollector registers the run metrics on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_visited_total",
			Help:      "Cells expanded by searches.",
		}, []string{"algorithm"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished searches by outcome.",
		}, []string{"algorithm", "outcome"}),
		visited: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_visited_cells",
			Help:      "Cells expanded per finished search.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
		}, []string{"algorithm"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of finished searches, pacing included.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"algorithm"}),
	}
	c.registry.MustRegister(c.steps, c.runs, c.visited, c.duration)
	return c
}

// Publish implements driver.Sink.
func (c *Collector) Publish(e driver.Event) {
	algorithm := e.Algorithm.String()
	switch {
	case e.Kind == driver.CellVisited:
		c.steps.WithLabelValues(algorithm).Inc()
	case e.Kind.Terminal():
		c.runs.WithLabelValues(algorithm, e.Kind.Outcome().String()).Inc()
		c.visited.WithLabelValues(algorithm).Observe(float64(e.Current))
		c.duration.WithLabelValues(algorithm).Observe(e.Elapsed.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry holding the run metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }
