// Package collector gathers the gauges the agent reports. Each collector
// produces one or more named gauge samples per tick; values are already
// rounded to integers because everything emitted is a StatsD gauge.
package collector

import (
	"context"

	"go.uber.org/zap"
)

// Gauge is a single named gauge sample.
type Gauge struct {
	Name  string
	Value int64
}

// Collector is implemented by every metric source.
type Collector interface {
	// Name identifies the collector in logs.
	Name() string

	// Collect gathers the collector's gauge samples.
	Collect(ctx context.Context) ([]Gauge, error)
}

// Registry runs collectors in registration order, so the emitted gauge lines
// are stable from tick to tick. A failed collector is logged and its gauges
// skipped; the remaining collectors still run.
type Registry struct {
	collectors []Collector
	logger     *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register appends a collector.
func (r *Registry) Register(c Collector) {
	r.collectors = append(r.collectors, c)
	r.logger.Debug("registered collector", zap.String("name", c.Name()))
}

// CollectAll gathers gauges from every registered collector.
func (r *Registry) CollectAll(ctx context.Context) []Gauge {
	var gauges []Gauge
	for _, c := range r.collectors {
		got, err := c.Collect(ctx)
		if err != nil {
			r.logger.Error("collection failed",
				zap.String("collector", c.Name()),
				zap.Error(err))
			continue
		}
		gauges = append(gauges, got...)
	}
	return gauges
}
