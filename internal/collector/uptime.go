// Uptime collector — whole seconds since boot.
package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
)

// UptimeCollector reports seconds of uptime. Downstream alerting treats a
// gauge not seen for five minutes as a down host.
type UptimeCollector struct{}

// NewUptimeCollector creates an uptime collector.
func NewUptimeCollector() *UptimeCollector {
	return &UptimeCollector{}
}

// Name returns the collector identifier.
func (c *UptimeCollector) Name() string { return "uptime" }

// Collect gathers the uptime gauge.
func (c *UptimeCollector) Collect(ctx context.Context) ([]Gauge, error) {
	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return []Gauge{{Name: "uptime", Value: int64(uptime)}}, nil
}
