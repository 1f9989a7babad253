// Package statsd implements the minimal StatsD gauge wire format and a
// fire-and-forget UDP client.
// See https://github.com/statsd/statsd/blob/master/docs/metric_types.md —
// everything the agent reports is a gauge.
package statsd

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/uptimed-io/uptimed/internal/collector"
)

// Port is the conventional StatsD UDP port.
const Port = "8125"

// Client sends gauge batches to a StatsD server over UDP. Delivery is
// fire-and-forget: a failed send is the caller's to log, never to retry.
type Client struct {
	addr   string
	logger *zap.Logger
}

// New creates a Client for the given server host.
func New(host string, logger *zap.Logger) *Client {
	return &Client{
		addr:   net.JoinHostPort(host, Port),
		logger: logger,
	}
}

// Format renders gauges as newline-terminated StatsD lines with the given
// key prefix, for example "prod.web1.net-rx:1024|g".
func Format(prefix string, gauges []collector.Gauge) string {
	var b strings.Builder
	for _, g := range gauges {
		fmt.Fprintf(&b, "%s.%s:%d|g\n", prefix, g.Name, g.Value)
	}
	return b.String()
}

// Send transmits one formatted batch. The datagram is written on a fresh
// connection so a restarted or re-resolved server picks up transparently.
func (c *Client) Send(prefix string, gauges []collector.Gauge) error {
	if len(gauges) == 0 {
		return nil
	}

	conn, err := net.Dial("udp", c.addr)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.addr, err)
	}
	defer conn.Close()

	payload := Format(prefix, gauges)
	if _, err := conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("sending to %s: %w", c.addr, err)
	}

	c.logger.Debug("gauges sent",
		zap.String("addr", c.addr),
		zap.Int("gauges", len(gauges)))
	return nil
}
