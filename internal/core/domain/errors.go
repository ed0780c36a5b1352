package domain

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorKind string

const (
	KindInvalidInput ErrorKind = "INVALID_INPUT"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindInternal     ErrorKind = "INTERNAL"
)

// Repository sentinels. Services translate them into a DomainError with a
// message that makes sense to the caller.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// DomainError is the error type every service returns. Message is safe to show
// to clients for every kind except KindInternal.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func NewError(kind ErrorKind, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func InvalidInput(message string, err error) *DomainError {
	return NewError(KindInvalidInput, message, err)
}

func Unauthorized(message string, err error) *DomainError {
	return NewError(KindUnauthorized, message, err)
}

func Forbidden(message string, err error) *DomainError {
	return NewError(KindForbidden, message, err)
}

func NotFound(message string, err error) *DomainError {
	return NewError(KindNotFound, message, err)
}

func Conflict(message string, err error) *DomainError {
	return NewError(KindConflict, message, err)
}

func Internal(message string, err error) *DomainError {
	return NewError(KindInternal, message, err)
}

// KindOf reports the kind of err, or KindInternal when err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
