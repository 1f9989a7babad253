package install

import (
	"fmt"
	"os"
)

// Params is the operator-supplied identification tuple. The values are
// opaque to the installer: they are passed through to the agent positionally
// and embedded in the boot startup script, never interpreted.
type Params struct {
	Host       string // StatsD server the agent reports to
	Namespace  string // metric namespace prefix
	Filesystem string // filesystem whose free space is reported
	Interface  string // network interface whose byte counters are reported
}

// ParseParams validates the raw argument list. Exactly four positional
// values are required; empty strings are accepted.
func ParseParams(args []string) (Params, error) {
	if len(args) != 4 {
		return Params{}, fmt.Errorf("expected 4 arguments (hostname, namespace, filesystem, interface), got %d", len(args))
	}
	return Params{
		Host:       args[0],
		Namespace:  args[1],
		Filesystem: args[2],
		Interface:  args[3],
	}, nil
}

// Args returns the tuple in the fixed positional order the agent expects.
func (p Params) Args() []string {
	return []string{p.Host, p.Namespace, p.Filesystem, p.Interface}
}

// CheckPrivilege verifies the process runs with root privileges.
// Every later pipeline step mutates system paths or signals other users'
// processes, so this gate runs before anything else touches the host.
func CheckPrivilege() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("installation requires root privileges\n\nRun with sudo:\n  sudo %s <hostname> <namespace> <filesystem> <interface>", os.Args[0])
	}
	return nil
}
