// Load collector — 1-minute load average scaled against core count.
package collector

import (
	"context"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
)

// LoadCollector reports the 1-minute load average multiplied by 100 and
// divided by the number of logical cores, rounded. 100 is roughly
// saturation regardless of machine size.
type LoadCollector struct{}

// NewLoadCollector creates a load collector.
func NewLoadCollector() *LoadCollector {
	return &LoadCollector{}
}

// Name returns the collector identifier.
func (c *LoadCollector) Name() string { return "load" }

// Collect gathers the load gauge.
func (c *LoadCollector) Collect(ctx context.Context) ([]Gauge, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return nil, err
	}
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, err
	}
	if cores == 0 {
		return nil, fmt.Errorf("no logical cores reported")
	}
	scaled := int64(math.Round(avg.Load1 * 100 / float64(cores)))
	return []Gauge{{Name: "load", Value: scaled}}, nil
}
