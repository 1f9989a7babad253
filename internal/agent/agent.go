// Package agent drives the periodic collect-and-report loop.
package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/uptimed-io/uptimed/internal/collector"
	"github.com/uptimed-io/uptimed/internal/statsd"
)

// Agent collects gauges on a fixed interval and reports them over StatsD.
type Agent struct {
	registry *collector.Registry
	client   *statsd.Client
	prefix   string
	interval time.Duration
	logger   *zap.Logger
}

// New creates an Agent. prefix is the metric key prefix, conventionally
// "namespace.hostname".
func New(registry *collector.Registry, client *statsd.Client, prefix string, interval time.Duration, logger *zap.Logger) *Agent {
	return &Agent{
		registry: registry,
		client:   client,
		prefix:   prefix,
		interval: interval,
		logger:   logger,
	}
}

// Run reports immediately and then once per interval until the context is
// cancelled. Send failures are logged and the loop continues; UDP delivery
// is best-effort by design.
func (a *Agent) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.report(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.report(ctx)
		}
	}
}

func (a *Agent) report(ctx context.Context) {
	gauges := a.registry.CollectAll(ctx)
	if err := a.client.Send(a.prefix, gauges); err != nil {
		a.logger.Warn("could not send gauges", zap.Error(err))
	}
}
