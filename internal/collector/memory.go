// Available memory collector — percent of memory still available.
package collector

import (
	"context"
	"math"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryCollector reports the percentage of memory available, rounded.
type MemoryCollector struct{}

// NewMemoryCollector creates a memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Name returns the collector identifier.
func (c *MemoryCollector) Name() string { return "memory" }

// Collect gathers the availmem gauge.
func (c *MemoryCollector) Collect(ctx context.Context) ([]Gauge, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	pct := int64(math.Round(float64(v.Available) / float64(v.Total) * 100))
	return []Gauge{{Name: "availmem", Value: pct}}, nil
}
