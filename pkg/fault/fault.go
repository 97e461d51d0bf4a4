package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindClientInput: the request itself is malformed (missing/invalid fields).
	KindClientInput Kind = iota
	// KindValidation: the request is well-formed but violates a semantic rule.
	KindValidation
	// KindNotFound: a referenced resource does not exist.
	KindNotFound
	// KindInternal: unexpected store or infrastructure failure.
	KindInternal
)

type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.kindString(), f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.kindString(), f.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) kindString() string {
	switch f.Kind {
	case KindClientInput:
		return "ClientInputError"
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// ClientInput creates an error for a malformed request.
func ClientInput(msg string) error {
	return &Fault{Kind: KindClientInput, Message: msg}
}

// Validation creates an error for a semantic rule violation.
func Validation(msg string) error {
	return &Fault{Kind: KindValidation, Message: msg}
}

// NotFound creates an error for a missing resource.
func NotFound(msg string) error {
	return &Fault{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected failure. The wrapped error is for operator
// visibility only and must never reach a client.
func Internal(msg string, err error) error {
	return &Fault{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the Kind of err, defaulting to KindInternal for
// errors that carry no classification.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err. Internal faults always
// surface a generic message.
func MessageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) && f.Kind != KindInternal {
		return f.Message
	}
	return "internal server error"
}
