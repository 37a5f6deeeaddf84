package merge

import "errors"

// Fatal error categories. Per-file problems are logged and skipped; these
// abort the run.
var (
	// ErrSystemResource indicates required system information (such as
	// available memory) could not be obtained. Guessing would risk unbounded
	// memory growth, so the run fails instead.
	ErrSystemResource = errors.New("system resource unavailable")

	// ErrChannel indicates an internal pipeline plumbing failure.
	ErrChannel = errors.New("internal channel failure")

	// ErrResume indicates a checkpoint that cannot be continued, for example
	// because the input list no longer contains the recorded files.
	ErrResume = errors.New("cannot resume from checkpoint")
)
