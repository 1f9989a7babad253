// Package reaper terminates running agent instances by process name before
// a new copy is installed, so a stale agent never keeps reporting with old
// parameters alongside the new one.
package reaper

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

const pollInterval = 100 * time.Millisecond

// Reaper finds and terminates processes by name.
type Reaper struct {
	logger *zap.Logger
}

// New creates a Reaper.
func New(logger *zap.Logger) *Reaper {
	return &Reaper{logger: logger}
}

// Reap sends SIGTERM to every process whose name matches name, excluding the
// calling process, and waits up to wait for them to exit. No matching
// process is not an error. A process that outlives the wait is logged as a
// warning; termination stays best-effort. The returned count is the number
// of processes signalled.
func (r *Reaper) Reap(ctx context.Context, name string, wait time.Duration) (int, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing processes: %w", err)
	}

	self := int32(os.Getpid())
	var matched []*process.Process
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		pname, err := p.NameWithContext(ctx)
		if err != nil || pname != name {
			// Processes can vanish between listing and inspection.
			continue
		}
		if err := p.TerminateWithContext(ctx); err != nil {
			r.logger.Warn("could not signal process",
				zap.Int32("pid", p.Pid),
				zap.Error(err))
			continue
		}
		r.logger.Info("terminating running instance", zap.Int32("pid", p.Pid))
		matched = append(matched, p)
	}

	if len(matched) == 0 {
		r.logger.Debug("no running instance found", zap.String("name", name))
		return 0, nil
	}

	deadline := time.Now().Add(wait)
	for _, p := range matched {
		for {
			running, err := p.IsRunningWithContext(ctx)
			if err != nil || !running {
				break
			}
			if time.Now().After(deadline) {
				r.logger.Warn("process did not exit within wait, continuing",
					zap.Int32("pid", p.Pid),
					zap.Duration("wait", wait))
				break
			}
			select {
			case <-ctx.Done():
				return len(matched), ctx.Err()
			case <-time.After(pollInterval):
			}
		}
	}

	return len(matched), nil
}
