package judge

import (
	"errors"
	"fmt"
)

// ErrNoHiddenTests means a problem has no hidden test cases configured. A
// problem in this state cannot be graded; it is a configuration defect, not a
// wrong submission.
var ErrNoHiddenTests = errors.New("problem has no hidden test cases")

// ErrStore means the relational store was unavailable while loading test
// cases. Nothing was executed or recorded.
var ErrStore = errors.New("persistence layer unavailable")

// ErrNotRecorded means grading finished but the outcome could not be
// persisted. The caller must be told the result is indeterminate.
var ErrNotRecorded = errors.New("grading outcome could not be recorded")

// CompileError carries the remote sandbox's stderr for a submission that
// failed to compile or crashed at runtime. It counts as a failed attempt.
type CompileError struct {
	Stderr string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compilation / runtime error: %s", e.Stderr)
}
