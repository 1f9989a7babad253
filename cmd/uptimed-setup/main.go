// Command uptimed-setup installs the uptimed monitoring agent on a host:
// it stops any running instance, fetches the agent binary and places it on
// the executable search path, launches it once with the operator-supplied
// parameters, and writes the boot-time startup script that relaunches the
// agent with the same parameters after every reboot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uptimed-io/uptimed/internal/install"
)

// version is set at build time via -ldflags.
var version = "dev"

const usage = `Usage: uptimed-setup <hostname> <namespace> <filesystem> <interface>

  hostname    StatsD server the agent reports to
  namespace   metric namespace prefix for all emitted gauges
  filesystem  filesystem path whose free space is reported
  interface   network interface whose byte counters are reported
`

func main() {
	os.Exit(run())
}

func run() int {
	// Both gates run before any side effect: a rejected invocation touches
	// no file and signals no process.
	if err := install.CheckPrivilege(); err != nil {
		fmt.Fprintf(os.Stderr, "uptimed-setup: %v\n", err)
		return install.ExitPrivilege
	}

	params, err := install.ParseParams(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "uptimed-setup: %v\n\n%s", err, usage)
		return install.ExitUsage
	}

	logger := initLogger()
	defer logger.Sync()

	logger.Info("starting installation",
		zap.String("version", version),
		zap.String("host", params.Host),
		zap.String("namespace", params.Namespace))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := install.New(install.DefaultConfig(), logger)
	res, err := pipeline.Run(ctx, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "uptimed-setup: %v\n", err)
		return install.ExitCode(err)
	}

	// Launch and persistence are independent outcomes: the boot hook is
	// written even when the immediate launch failed, and vice versa.
	if res.LaunchErr != nil {
		fmt.Fprintf(os.Stderr, "uptimed-setup: agent installed but did not start: %v\n", res.LaunchErr)
	}
	if res.PersistErr != nil {
		fmt.Fprintf(os.Stderr, "uptimed-setup: agent installed%s but will not restart on reboot: %v\n",
			runningNote(res), res.PersistErr)
	}
	switch {
	case res.LaunchErr != nil:
		return install.ExitLaunch
	case res.PersistErr != nil:
		return install.ExitPersist
	}

	fmt.Printf("uptimed installed and running (pid %d), persistent across reboots\n", res.LaunchPID)
	return install.ExitOK
}

func runningNote(res *install.Result) string {
	if res.LaunchPID != 0 {
		return fmt.Sprintf(" and running (pid %d)", res.LaunchPID)
	}
	return ""
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
