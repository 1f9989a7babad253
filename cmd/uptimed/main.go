// Command uptimed is the monitoring agent. Once per minute it gathers six
// host gauges and emits them to a StatsD server over UDP, keyed under
// <namespace>.<hostname>.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uptimed-io/uptimed/internal/agent"
	"github.com/uptimed-io/uptimed/internal/collector"
	"github.com/uptimed-io/uptimed/internal/statsd"
)

// version is set at build time via -ldflags.
var version = "dev"

const reportInterval = 60 * time.Second

const usage = `Usage: uptimed <statsd-server> <namespace> <filesystem> <interface>

The following stats are emitted once per minute and sent to the StatsD host
listed above, keyed under <namespace>.<hostname>:

  - net-rx    Bytes received on <interface> in the last minute
  - net-tx    Bytes transmitted on <interface> in the last minute
  - uptime    Seconds of uptime. Alert if not seen in the last 5 minutes
  - availmem  Percent of memory available, alert if < 20
  - diskfree  Percent of <filesystem> free, alert if < 10
  - load      Load average, scaled 100x and divided by the number of cores.
              100 is generally saturation. Alert if > 100
`

func main() {
	args := os.Args[1:]
	if len(args) != 4 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	destination, namespace, filesystem, iface := args[0], args[1], args[2], args[3]

	logger := initLogger()
	defer logger.Sync()

	hostname, err := os.Hostname()
	if err != nil {
		logger.Fatal("cannot determine hostname", zap.Error(err))
	}
	prefix := namespace + "." + hostname

	logger.Info("starting uptimed",
		zap.String("version", version),
		zap.String("destination", destination),
		zap.String("prefix", prefix),
		zap.String("filesystem", filesystem),
		zap.String("interface", iface))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Registration order fixes the emission order of the gauge lines.
	registry := collector.NewRegistry(logger)
	registry.Register(collector.NewNetworkCollector(iface))
	registry.Register(collector.NewUptimeCollector())
	registry.Register(collector.NewMemoryCollector())
	registry.Register(collector.NewDiskCollector(filesystem, logger))
	registry.Register(collector.NewLoadCollector())

	client := statsd.New(destination, logger)

	a := agent.New(registry, client, prefix, reportInterval, logger)
	a.Run(ctx)

	logger.Info("uptimed stopped")
}

// initLogger creates a console zap logger writing to stdout.
func initLogger() *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}
