// Package autostart generates the boot-time startup script that relaunches
// the agent with the installation parameters after every reboot. The script
// is fully regenerated on each run — its content reflects exactly the most
// recent parameter tuple, never an accumulation — and the write is atomic so
// an interrupted run cannot leave a truncated hook behind.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteError indicates the startup script could not be written. The already
// installed binary and any launched agent are intentionally left alone.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("writing startup script %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Install writes the startup script at scriptPath: a shebang line plus one
// backgrounded invocation of binPath with args embedded as quoted literals.
// The trailing ampersand keeps a sequentially executed boot script directory
// from blocking on the long-running agent.
func Install(binPath, scriptPath string, args []string) error {
	content := Script(binPath, args)

	if err := os.MkdirAll(filepath.Dir(scriptPath), 0755); err != nil {
		return &WriteError{Path: scriptPath, Err: err}
	}

	tmpPath := filepath.Join(filepath.Dir(scriptPath), fmt.Sprintf(".%s-%d", filepath.Base(scriptPath), time.Now().UnixNano()))
	if err := os.WriteFile(tmpPath, []byte(content), 0755); err != nil {
		return &WriteError{Path: scriptPath, Err: err}
	}
	// WriteFile's mode is subject to the umask; make the bit explicit.
	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: scriptPath, Err: err}
	}
	if err := os.Rename(tmpPath, scriptPath); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: scriptPath, Err: err}
	}

	return nil
}

// Script returns the full startup script content for the given invocation.
func Script(binPath string, args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, shellQuote(binPath))
	for _, a := range args {
		quoted = append(quoted, shellQuote(a))
	}
	return "#!/bin/sh\n" + strings.Join(quoted, " ") + " &\n"
}

// shellQuote single-quotes s for the shell so operator-supplied values
// survive verbatim, including spaces and metacharacters.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
