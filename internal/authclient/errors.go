package authclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable means no response was received: connection failure,
	// timeout or a truncated body.
	ErrUnreachable = errors.New("auth service unreachable")

	// ErrCanceled means the caller gave up on the request. It also matches
	// ErrUnreachable, since no response exists either way.
	ErrCanceled = fmt.Errorf("request canceled: %w", ErrUnreachable)
)

// RejectedError is a non-2xx response from AuthService.
type RejectedError struct {
	StatusCode int
	// Message is the server-supplied msg field, valid only when HasMessage is set.
	Message    string
	HasMessage bool
}

func (e *RejectedError) Error() string {
	if e.HasMessage {
		return fmt.Sprintf("auth service rejected request (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("auth service rejected request (%d)", e.StatusCode)
}

// AsRejected unwraps err into a *RejectedError.
func AsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
