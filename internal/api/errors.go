package api

import (
	"errors"
	"fmt"
)

// Kind classifies client errors per the failure taxonomy: transport faults,
// non-2xx rejections, malformed bodies, local input validation, and a missing
// cached identity.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindServer
	KindDecode
	KindValidation
	KindMissingIdentity
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network failure"
	case KindServer:
		return "server rejection"
	case KindDecode:
		return "decode failure"
	case KindValidation:
		return "validation failure"
	case KindMissingIdentity:
		return "missing identity"
	default:
		return "unknown"
	}
}

// Error is the single error shape surfaced by the client and the flows.
type Error struct {
	Kind    Kind
	Status  int // HTTP status for server rejections, zero otherwise
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from err, or zero when err is not a client error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// NetworkError wraps a transport-level failure.
func NetworkError(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: op, Err: err}
}

// ServerError reports a non-2xx response, carrying the server's message.
func ServerError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("server returned status %d", status)
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}

// DecodeError reports a response body that does not match the expected schema.
func DecodeError(op string, err error) *Error {
	return &Error{Kind: KindDecode, Message: op, Err: err}
}

// ValidationError reports a client-side input check failure.
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// MissingIdentity reports that no phone number is cached for an endpoint
// that requires one.
func MissingIdentity() *Error {
	return &Error{Kind: KindMissingIdentity, Message: "phone number not found"}
}
