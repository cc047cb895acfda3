package augment

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSeedData is matched by *InsufficientSeedDataError.
	ErrInsufficientSeedData = errors.New("insufficient seed data")

	// ErrConstraintsUnsatisfiable is returned when too many consecutive rounds
	// produce no accepted lines.
	ErrConstraintsUnsatisfiable = errors.New("phrase constraints look unsatisfiable")

	// ErrRoundLimit is returned when the fill loop hits its total round cap
	// before reaching the target.
	ErrRoundLimit = errors.New("round limit reached before target")
)

// InsufficientSeedDataError reports that a seed file does not hold enough
// lines of the mode an augmentation type samples from.
type InsufficientSeedDataError struct {
	Mode      Mode
	Available int
	Requested int
}

func (e *InsufficientSeedDataError) Error() string {
	return fmt.Sprintf("not enough %s seed lines to sample from: have %d, need %d", e.Mode, e.Available, e.Requested)
}

func (e *InsufficientSeedDataError) Is(target error) bool {
	return target == ErrInsufficientSeedData
}

// FillError wraps a fill-loop failure with the progress made before it.
type FillError struct {
	Output string
	Done   int
	Target int
	Err    error
}

func (e *FillError) Error() string {
	return fmt.Sprintf("augmenting %s stopped at %d/%d lines: %v", e.Output, e.Done, e.Target, e.Err)
}

func (e *FillError) Unwrap() error {
	return e.Err
}
