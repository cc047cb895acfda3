package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/augmentlab/ftkit/internal/augment"
)

// Exit codes for different failure modes
const (
	ExitSuccess           = 0 // Everything finished
	ExitConstraintFailure = 1 // The fill loop gave up before reaching its target
	ExitError             = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit code.
// A batch error counts as a constraint failure only when every task in it
// failed that way.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case constraintFailure(err):
		return ExitConstraintFailure
	default:
		return ExitError
	}
}

func constraintFailure(err error) bool {
	for err != nil {
		if err == augment.ErrConstraintsUnsatisfiable || err == augment.ErrRoundLimit {
			return true
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			errs := joined.Unwrap()
			for _, e := range errs {
				if !constraintFailure(e) {
					return false
				}
			}
			return len(errs) > 0
		}
		err = errors.Unwrap(err)
	}
	return false
}
