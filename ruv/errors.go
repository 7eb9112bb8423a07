package ruv

import (
	"fmt"
	"strings"
)

// RemoteError reports a failed call: a transport error, a non-success status
// or a GraphQL error without data.
type RemoteError struct {
	Op         string
	StatusCode int
	Messages   []string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %s", e.Op, strings.Join(e.Messages, "; "))
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a program or an episode stream that the catalog does not offer,
// typically because it has expired or is geo-restricted.
type NotFoundError struct {
	SID string
	PID string
}

func (e *NotFoundError) Error() string {
	if e.PID == "" {
		return fmt.Sprintf("program %s not found", e.SID)
	}
	return fmt.Sprintf("no stream available for %s:%s", e.SID, e.PID)
}

// ParseError reports a response whose shape is not the expected one.
type ParseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
