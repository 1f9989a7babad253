// Network I/O collector — per-interface RX/TX byte deltas between ticks.
package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/net"
)

// NetworkCollector reports bytes received and transmitted on one interface
// since the previous collection. It retains the last counters to compute
// deltas; the first collection establishes the baseline and reports zero.
type NetworkCollector struct {
	iface       string
	lastRx      uint64
	lastTx      uint64
	initialized bool
}

// NewNetworkCollector creates a collector for the named interface.
func NewNetworkCollector(iface string) *NetworkCollector {
	return &NetworkCollector{iface: iface}
}

// Name returns the collector identifier.
func (c *NetworkCollector) Name() string { return "network" }

// Collect gathers net-rx and net-tx deltas for the interface.
func (c *NetworkCollector) Collect(ctx context.Context) ([]Gauge, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	for _, counter := range counters {
		if counter.Name != c.iface {
			continue
		}
		var rx, tx uint64
		if c.initialized {
			rx = counter.BytesRecv - c.lastRx
			tx = counter.BytesSent - c.lastTx
		}
		c.lastRx = counter.BytesRecv
		c.lastTx = counter.BytesSent
		c.initialized = true
		return []Gauge{
			{Name: "net-rx", Value: int64(rx)},
			{Name: "net-tx", Value: int64(tx)},
		}, nil
	}

	return nil, fmt.Errorf("network interface %q not found", c.iface)
}
