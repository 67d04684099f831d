package gpodder

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a call failed.
type Kind int

const (
	// KindInvalid means the call was rejected before any request was sent.
	KindInvalid Kind = iota + 1
	// KindTransport covers connection, DNS and TLS failures.
	KindTransport
	// KindAuth means the server rejected the credentials (401 or 403).
	KindAuth
	// KindProtocol means the response could not be decoded into the expected shape.
	KindProtocol
	// KindServer is any other non-2xx response.
	KindServer
	// KindTimeout means the client timeout or the context deadline expired.
	KindTimeout
	// KindCanceled means the caller canceled the context.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid argument"
	case KindTransport:
		return "transport failure"
	case KindAuth:
		return "authentication failure"
	case KindProtocol:
		return "protocol failure"
	case KindServer:
		return "server failure"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every Client operation.
type Error struct {
	Kind Kind
	// Op is the client operation that failed, e.g. "ListDevices".
	Op string
	// StatusCode is the HTTP status for KindAuth and KindServer errors.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("gpodder: %s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func invalid(op string, format string, args ...interface{}) error {
	return &Error{Kind: KindInvalid, Op: op, Err: errors.Errorf(format, args...)}
}
