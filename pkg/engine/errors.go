package engine

import "fmt"

// StopRequestError is returned when the platform refused to stop the target
// after every attempt
type StopRequestError struct {
	Target   string
	Attempts int
	Err      error
}

func (e *StopRequestError) Error() string {
	return fmt.Sprintf("error stopping %s after %d attempt(s): %v", e.Target, e.Attempts, e.Err)
}

func (e *StopRequestError) Unwrap() error {
	return e.Err
}
