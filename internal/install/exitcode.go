package install

import (
	"errors"

	"github.com/uptimed-io/uptimed/internal/artifact"
	"github.com/uptimed-io/uptimed/internal/autostart"
	"github.com/uptimed-io/uptimed/internal/launcher"
)

// Exit codes, one per failure kind, so wrapping scripts can tell the stages
// apart without parsing messages.
const (
	ExitOK        = 0
	ExitUsage     = 2 // wrong argument count
	ExitPrivilege = 3 // not running as root
	ExitFetch     = 4 // artifact retrieval failed
	ExitPlace     = 5 // fetched artifact could not be made executable or moved into place
	ExitLaunch    = 6 // immediate invocation failed
	ExitPersist   = 7 // boot startup script could not be written
)

// ExitCode maps a pipeline error to its exit code.
func ExitCode(err error) int {
	var fetchErr *artifact.FetchError
	if errors.As(err, &fetchErr) {
		return ExitFetch
	}
	var placeErr *artifact.PlaceError
	if errors.As(err, &placeErr) {
		return ExitPlace
	}
	var startErr *launcher.StartError
	if errors.As(err, &startErr) {
		return ExitLaunch
	}
	var writeErr *autostart.WriteError
	if errors.As(err, &writeErr) {
		return ExitPersist
	}
	return 1
}
