package testout

import (
	"github.com/testout/testout/exitcodes"
	"github.com/testout/testout/types"
)

// ExitCodeFor maps an error to the binary's exit code contract:
// configuration errors exit with 2, validation and any other failures
// exit with 1.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case types.IsConfigurationError(err):
		return exitcodes.ConfigurationErr
	default:
		return exitcodes.ValidationErr
	}
}
