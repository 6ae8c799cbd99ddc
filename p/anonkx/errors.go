package anonkx

import (
	"fmt"
	"time"
)

// ErrInvalidRequest is returned when an operation is not permitted by the
// session's role or current state, or when the session is already bound to a
// different exchange kind.
type ErrInvalidRequest struct {
	Op     string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return fmt.Sprintf("anonkx: %s: invalid request: %s", e.Op, e.Reason)
}

// ErrUnexpectedPacketLength is returned when an inbound message ends before
// its declared fields do.
type ErrUnexpectedPacketLength struct {
	Op    string
	Cause error
}

func (e ErrUnexpectedPacketLength) Error() string {
	return fmt.Sprintf("anonkx: %s: unexpected packet length: %v", e.Op, e.Cause)
}

func (e ErrUnexpectedPacketLength) Unwrap() error { return e.Cause }

// ErrIntegerParse is returned when a field of an inbound message cannot be
// interpreted as an integer value.
type ErrIntegerParse struct {
	Op    string
	Cause error
}

func (e ErrIntegerParse) Error() string {
	return fmt.Sprintf("anonkx: %s: integer parse failed: %v", e.Op, e.Cause)
}

func (e ErrIntegerParse) Unwrap() error { return e.Cause }

// ErrSessionExpired is returned when a session is too old to continue the
// exchange and should be discarded.
type ErrSessionExpired struct {
	ExpiredAt time.Time
}

func (e ErrSessionExpired) Error() string {
	return fmt.Sprintf("anonkx: session expired at %v", e.ExpiredAt)
}
