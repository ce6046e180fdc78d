package saveapi

import (
	"errors"
	"fmt"
)

var (
	ErrRejected  = errors.New("request rejected")
	ErrTransport = errors.New("transport failure")
)

// RejectedError is a structured refusal from the API, such as an unknown
// friend code. Detail is the server's message, unmodified.
type RejectedError struct {
	URL    string
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	return e.Detail
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// TransportError covers everything that is not a structured refusal:
// network errors, non-2xx responses without a detail and undecodable bodies.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
