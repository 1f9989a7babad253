// Disk free collector — percent of one filesystem's space still free.
package collector

import (
	"context"
	"math"

	"github.com/shirou/gopsutil/v3/disk"
	"go.uber.org/zap"
)

// DiskCollector reports the percentage of free space on one filesystem,
// rounded. An inaccessible filesystem is reported as 0 with a warning rather
// than failing the tick, so a temporarily unmounted path does not silence
// the other gauges.
type DiskCollector struct {
	path   string
	logger *zap.Logger
}

// NewDiskCollector creates a collector for the given filesystem path.
func NewDiskCollector(path string, logger *zap.Logger) *DiskCollector {
	return &DiskCollector{path: path, logger: logger}
}

// Name returns the collector identifier.
func (c *DiskCollector) Name() string { return "disk" }

// Collect gathers the diskfree gauge.
func (c *DiskCollector) Collect(ctx context.Context) ([]Gauge, error) {
	usage, err := disk.UsageWithContext(ctx, c.path)
	if err != nil || usage.Total == 0 {
		c.logger.Warn("cannot access filesystem stats",
			zap.String("path", c.path),
			zap.Error(err))
		return []Gauge{{Name: "diskfree", Value: 0}}, nil
	}
	pct := int64(math.Round(float64(usage.Free) / float64(usage.Total) * 100))
	return []Gauge{{Name: "diskfree", Value: pct}}, nil
}
