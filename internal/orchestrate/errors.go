// Package orchestrate implements the Hub Orchestrator and Competition
// Orchestrator of §4.4/§4.7: the two discovery loops that pull a Source,
// drive it through the Fetch Router and the matching parser, and either
// enqueue follow-up work into the Frontier or hand off to the Skeleton
// Manager / Matcher.
package orchestrate

import "fmt"

// ErrorKind classifies how a caller should treat an orchestrator failure,
// the same recoverable/fatal split as the teacher's CampaignOrchestrator.
type ErrorKind string

const (
	// ErrorRecoverable signals a transient failure (a single fetch or
	// parse failing); the orchestrator continues with the next item.
	ErrorRecoverable ErrorKind = "recoverable"
	// ErrorFatal signals the crawl job as a whole cannot continue (the
	// source row is missing, or its base configuration is invalid).
	ErrorFatal ErrorKind = "fatal"
)

// Error wraps an underlying failure with a kind so callers (the REST layer,
// the sweeper) can decide whether to fail the crawl job or keep going.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s orchestrator error (%s)", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s orchestrator error (%s): %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: ErrorFatal, Err: err}
}

func recoverable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: ErrorRecoverable, Err: err}
}
