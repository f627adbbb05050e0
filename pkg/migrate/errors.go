package migrate

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jsxmigrate/pkg/jsx"
)

var (
	// ErrNotFound indicates the step's source component is not imported.
	// It is a soft outcome: the file is simply left alone.
	ErrNotFound = errors.New("component not imported")

	// ErrAmbiguousBinding indicates that several matching declarations
	// import the same name. The step proceeds with the first one.
	ErrAmbiguousBinding = errors.New("ambiguous binding")

	// ErrStructuralMismatch indicates the tree does not have the shape a
	// rewrite expects. It aborts the current file only.
	ErrStructuralMismatch = jsx.ErrStructuralMismatch
)

// StepError reports a step that failed on a file.
type StepError struct {
	StepID string
	Path   string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s: %v", e.Path, e.StepID, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// IsSoft reports whether err is an outcome that must not be surfaced as
// a failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguousBinding)
}
