package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrQueueClosed is returned by Submit after Close has been called.
var ErrQueueClosed = errors.New("engine queue closed")

// TerminatedError reports that the engine process died while a request was
// in flight. The queue restarts the process automatically; the triggering
// request is not retried. Callers decide whether to resubmit against the
// fresh process.
type TerminatedError struct {
	// Stage describes where the termination was detected
	// (e.g., "handshake", "search", "desync").
	Stage string

	// Cause is the underlying process error, if one was observed.
	Cause error
}

// Error implements the error interface.
func (e *TerminatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("engine terminated during %s: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("engine terminated during %s", e.Stage)
}

// Unwrap returns the underlying error for error chain support.
func (e *TerminatedError) Unwrap() error {
	return e.Cause
}

// StartError reports that the engine process could not be started. After the
// configured number of consecutive failed restart attempts the queue enters
// the degraded state and surfaces it through HealthCheck and Metrics.
type StartError struct {
	// Path is the engine binary path.
	Path string

	// Attempts is the number of consecutive start attempts that failed.
	Attempts int

	// Cause is the last underlying error.
	Cause error
}

// Error implements the error interface.
func (e *StartError) Error() string {
	return fmt.Sprintf("engine %q failed to start after %d attempt(s): %v", e.Path, e.Attempts, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *StartError) Unwrap() error {
	return e.Cause
}

// UnresponsiveError reports that the engine process is alive but did not
// answer a readiness probe within the allowed time.
type UnresponsiveError struct {
	// Timeout is the probe deadline that elapsed.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *UnresponsiveError) Error() string {
	return fmt.Sprintf("engine unresponsive after %s", e.Timeout)
}

// InvalidPositionError reports a malformed FEN string. Invalid positions are
// rejected before queueing and never reach the engine.
type InvalidPositionError struct {
	// FEN is the rejected position string.
	FEN string

	// Cause is the parse error.
	Cause error
}

// Error implements the error interface.
func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %q: %v", e.FEN, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *InvalidPositionError) Unwrap() error {
	return e.Cause
}

// TimeoutError reports that a submission's deadline expired before its
// result was available. A request already handed to the engine is allowed
// to complete; its result is discarded.
type TimeoutError struct {
	// Elapsed is how long the caller waited.
	Elapsed time.Duration

	// Cause is the context error (context.DeadlineExceeded or
	// context.Canceled).
	Cause error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("analysis request abandoned after %s: %v", e.Elapsed.Round(time.Millisecond), e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
