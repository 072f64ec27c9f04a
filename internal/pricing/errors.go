package pricing

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Kind is the closed set of failure classes produced by the transport
// wrapper. Callers branch on Kind, never on raw transport errors.
type Kind int

const (
	KindOther Kind = iota
	KindUnreachable
	KindTimeout
	KindBadResponse
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindTimeout:
		return "timeout"
	case KindBadResponse:
		return "bad_response"
	default:
		return "other"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure class from any error returned by this package.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindOther
}

// classify maps a transport error onto the Kind enumeration.
func classify(err error) Kind {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindUnreachable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindOther
}
