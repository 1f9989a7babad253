// Package launcher performs the one immediate invocation of the freshly
// installed agent. The agent is long-running, so the launch is detached
// rather than a blocking foreground wait: the agent starts in its own
// session and is watched for a short grace period to catch binaries that
// fail immediately (missing libraries, bad arguments, refused sockets).
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// StartError indicates the agent could not be started or exited with
// failure during the grace period.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string { return fmt.Sprintf("launching %s: %v", e.Path, e.Err) }
func (e *StartError) Unwrap() error { return e.Err }

// Start launches binPath with args in a new session and returns its PID.
// The process survives the installer's exit. An exit with non-zero status
// within grace is reported as a StartError; a clean exit within grace is
// accepted (the agent decided it had nothing to do).
func Start(binPath string, args []string, grace time.Duration, logger *zap.Logger) (int, error) {
	if err := unix.Access(binPath, unix.X_OK); err != nil {
		return 0, &StartError{Path: binPath, Err: fmt.Errorf("not executable: %w", err)}
	}

	cmd := exec.Command(binPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, &StartError{Path: binPath, Err: err}
	}
	pid := cmd.Process.Pid

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return 0, &StartError{Path: binPath, Err: fmt.Errorf("exited during startup: %w", err)}
		}
		logger.Warn("agent exited immediately with success", zap.Int("pid", pid))
	case <-time.After(grace):
		logger.Info("agent running", zap.Int("pid", pid))
	}

	return pid, nil
}
