// Package install orchestrates the uptimed host-bootstrap pipeline:
// terminate any running agent, fetch and place the agent binary, launch it
// once with the operator-supplied parameters, and regenerate the boot-time
// startup script so the agent restarts with the same parameters after every
// reboot.
//
// The pipeline assumes a single operator runs it against a given host at a
// time; there is no cross-process locking.
package install

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/uptimed-io/uptimed/internal/artifact"
	"github.com/uptimed-io/uptimed/internal/autostart"
	"github.com/uptimed-io/uptimed/internal/launcher"
	"github.com/uptimed-io/uptimed/internal/reaper"
)

// Config holds every well-known value the pipeline touches. Production runs
// use DefaultConfig; tests redirect the paths and URL to isolated locations.
type Config struct {
	ArtifactURL string // remote source of the agent binary
	BinPath     string // installation path, on the executable search path
	ScriptPath  string // boot-time startup script path
	ProcessName string // agent process name matched by the reaper

	FetchTimeout time.Duration // overall HTTP timeout for the artifact fetch
	FetchRetries int           // transport-level retry attempts within the fetch
	ReapTimeout  time.Duration // how long to wait for terminated instances to exit
	LaunchGrace  time.Duration // how long to watch the launched agent for early exit
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		ArtifactURL:  "https://github.com/uptimed-io/uptimed/releases/latest/download/uptimed-linux-amd64",
		BinPath:      "/usr/local/bin/uptimed",
		ScriptPath:   "/etc/local.d/uptimed.start",
		ProcessName:  "uptimed",
		FetchTimeout: 60 * time.Second,
		FetchRetries: 3,
		ReapTimeout:  5 * time.Second,
		LaunchGrace:  time.Second,
	}
}

// Result reports the per-step outcomes of a pipeline run. Launch and
// persistence failures are carried here rather than aborting Run: once the
// binary is installed, writing the boot hook does not depend on the agent
// having started, and a failed launch must not prevent persistence.
type Result struct {
	Reaped     int   // instances terminated before installation
	LaunchPID  int   // PID of the launched agent, 0 if the launch failed
	LaunchErr  error // immediate invocation failure, if any
	PersistErr error // startup script write failure, if any
}

// Pipeline runs the installation workflow.
type Pipeline struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes REAP, INSTALL, LAUNCH and PERSIST in order. It returns an
// error only when the artifact could not be fetched or placed; everything up
// to that point is aborted and any previously installed binary and startup
// script are left untouched. Launch and persistence outcomes are reported
// through Result.
//
// Privilege and argument validation happen before Run so that a rejected
// invocation performs no side effects at all.
func (p *Pipeline) Run(ctx context.Context, params Params) (*Result, error) {
	res := &Result{}

	// REAP: best-effort, never fatal. A listing failure or a process that
	// outlives the wait is logged and the pipeline continues.
	r := reaper.New(p.logger)
	reaped, err := r.Reap(ctx, p.cfg.ProcessName, p.cfg.ReapTimeout)
	if err != nil {
		p.logger.Warn("could not reap running instances", zap.Error(err))
	}
	res.Reaped = reaped

	// INSTALL: fatal on failure, leaving prior artifacts untouched.
	inst := artifact.New(p.cfg.ArtifactURL, p.cfg.FetchTimeout, p.cfg.FetchRetries, p.logger)
	if err := inst.Install(ctx, p.cfg.BinPath); err != nil {
		return res, err
	}
	p.logger.Info("agent binary installed", zap.String("path", p.cfg.BinPath))

	// LAUNCH: surfaced through Result, does not block persistence.
	pid, err := launcher.Start(p.cfg.BinPath, params.Args(), p.cfg.LaunchGrace, p.logger)
	if err != nil {
		res.LaunchErr = err
	} else {
		res.LaunchPID = pid
	}

	// PERSIST: surfaced through Result. A failure here must not roll back
	// the installed binary or kill the launched agent.
	if err := autostart.Install(p.cfg.BinPath, p.cfg.ScriptPath, params.Args()); err != nil {
		res.PersistErr = err
	} else {
		p.logger.Info("boot startup script written", zap.String("path", p.cfg.ScriptPath))
	}

	return res, nil
}
