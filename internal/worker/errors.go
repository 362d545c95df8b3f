package worker

import "fmt"

// RunError represents an error that occurred while converting a source
type RunError struct {
	Stage   string // The stage where the error occurred
	Message string // Human-readable error message
	Err     error  // Original error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func NewRunError(stage, message string, err error) error {
	return &RunError{
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}
