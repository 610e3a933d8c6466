package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and for callers that need to
// branch on the failure class rather than the message.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindPolicyViolation
	KindBusinessRule
	KindAuthFailure
)

// Violation is one failed rule from a validation pass. A single request can
// carry several of them so the caller gets complete feedback in one round trip.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type Error struct {
	Kind       Kind
	Detail     string
	Violations []Violation
	wrapped    error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.wrapped)
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.wrapped }

// Is matches either the exact sentinel or any *Error of the same Kind, so
// errors.Is(err, ErrNoAvailableCopies) and errors.Is(err, anyConflict) both work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Detail != "" {
		return e.Kind == t.Kind && e.Detail == t.Detail
	}
	return e.Kind == t.Kind
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Detail: entity + " not found"}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func BusinessRule(detail string) *Error {
	return &Error{Kind: KindBusinessRule, Detail: detail}
}

func AuthFailure(detail string) *Error {
	return &Error{Kind: KindAuthFailure, Detail: detail}
}

func PolicyViolations(violations []Violation) *Error {
	return &Error{Kind: KindPolicyViolation, Detail: "validation failed", Violations: violations}
}

func Internal(detail string, err error) *Error {
	return &Error{Kind: KindUnknown, Detail: detail, wrapped: err}
}

// Lending-policy sentinels. Matched by detail so the exact failure survives
// wrapping on its way up to the controller.
var (
	ErrNoAvailableCopies   = BusinessRule("No available copies of this book")
	ErrReaderLimitExceeded = BusinessRule("Reader cannot borrow more than 3 books simultaneously")
	ErrAlreadyBorrowed     = BusinessRule("This book is already borrowed by this reader")
	ErrNotBorrowed         = BusinessRule("This book was not borrowed by this reader or already returned")
)

// HTTPStatus maps an error to the response status. Conflicts and broken
// business rules both surface as 400, matching the public API contract.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindBusinessRule:
		return http.StatusBadRequest
	case KindPolicyViolation:
		return http.StatusUnprocessableEntity
	case KindAuthFailure:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Detail extracts the public-facing payload for the "detail" field of an
// error response: the violation list for validation failures, the message
// otherwise. Unknown errors are masked.
func Detail(err error) interface{} {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "internal server error"
	}
	if appErr.Kind == KindPolicyViolation && len(appErr.Violations) > 0 {
		return appErr.Violations
	}
	if appErr.Kind == KindUnknown {
		return "internal server error"
	}
	return appErr.Detail
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
