package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. A *DomainError matches the
// sentinel of its kind through errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("already exists")
	ErrReference    = errors.New("referenced entity does not exist")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindDuplicate    ErrorKind = "duplicate"
	KindReference    ErrorKind = "reference"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
)

var kindSentinels = map[ErrorKind]error{
	KindValidation:   ErrValidation,
	KindDuplicate:    ErrDuplicate,
	KindReference:    ErrReference,
	KindNotFound:     ErrNotFound,
	KindUnauthorized: ErrUnauthorized,
}

// DomainError carries a kind, the failing operation and a human-readable reason.
type DomainError struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Msg
	if base == "" {
		base = string(e.Kind)
	}
	if e.Op != "" {
		base = fmt.Sprintf("%s: %s", e.Op, base)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// WithOp returns a copy of the error annotated with the operation name.
func (e *DomainError) WithOp(op string) *DomainError {
	cp := *e
	cp.Op = op
	return &cp
}

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NewDuplicateError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindDuplicate, Msg: fmt.Sprintf(format, args...)}
}

func NewReferenceError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindReference, Msg: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

// IsKind helps callers classify errors without string matching.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf returns the kind of a domain error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
