package logger

import "fmt"

// Error reports a failure inside a log handler.
// Callers that log errors must not log an *Error again.
type Error struct {
	Handler string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("logger: %s handler: %v", e.Handler, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
