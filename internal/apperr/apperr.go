// Package apperr defines the error kinds the service reports to callers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the request layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindRateLimited
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "internal"
	}
}

// Error is a classified error with a stable machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error without a cause.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrEmptyMessage          = New(KindValidation, "empty_message", "message must contain text or media")
	ErrSelfFollow            = New(KindConflict, "self_follow", "cannot follow yourself")
	ErrSelfConnect           = New(KindConflict, "self_connect", "cannot connect with yourself")
	ErrAlreadyFollowing      = New(KindConflict, "already_following", "already following this user")
	ErrRequestAlreadyPending = New(KindConflict, "request_already_pending", "follow request already pending")
	ErrNoPendingRequest      = New(KindNotFound, "no_pending_request", "no pending follow request from this user")
	ErrRateLimited           = New(KindRateLimited, "rate_limited", "too many connection requests in the last 24 hours")
	ErrAlreadyConnected      = New(KindConflict, "already_connected", "already connected with this user")
	ErrRequestPending        = New(KindConflict, "request_pending", "connection request already pending")
	ErrNoRequestFound        = New(KindNotFound, "no_request_found", "connection request not found")
	ErrUserNotFound          = New(KindNotFound, "user_not_found", "user not found")
	ErrUsernameTaken         = New(KindConflict, "username_taken", "username already taken")
	ErrNotFound              = New(KindNotFound, "not_found", "record not found")
	ErrDuplicate             = New(KindConflict, "duplicate", "record already exists")
)

// Validation builds a validation error for a single field.
func Validation(field, problem string) *Error {
	return &Error{Kind: KindValidation, Code: "validation", Message: field + ": " + problem}
}

// Unavailable wraps a transient infrastructure failure. It is the only
// retryable kind.
func Unavailable(op string, err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Code: "store_unavailable", Message: op, Err: err}
}

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf reports the stable code of err, "internal" for unclassified errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal"
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Retryable reports whether the caller may retry the failed operation.
func Retryable(err error) bool {
	return IsKind(err, KindStoreUnavailable)
}
