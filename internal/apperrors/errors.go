// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can distinguish retryable transport
// faults from deterministic rejections without parsing messages.
type Kind int

const (
	KindAuthorization Kind = iota
	KindValidation
	KindNotFound
	KindInvalidState
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "AUTHORIZATION"
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidState:
		return "INVALID_STATE"
	case KindTransport:
		return "TRANSPORT"
	}
	return "UNKNOWN"
}

type Error struct {
	Kind    Kind
	Code    string
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

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Code: "FORBIDDEN", Message: message}
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: resource + " not found"}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Code: "INVALID_STATE", Message: message}
}

// Transport wraps a ledger/storage failure. It is the only kind a caller may
// retry, and only after re-reading current state; the prior submission may
// already have committed.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Code: "TRANSPORT", Message: "ledger submission failed", Err: err}
}

// KindOf reports the classification of err, or ok=false for untyped errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
