// Package apperror defines the error values that flow from the store and
// service layers up to the HTTP error translator.
//
// There are two families:
//
//   - *AppError: raised by our own code. It carries a kind (a sentinel such as
//     ErrNotFound) and the exact message the client should see.
//   - *StoreError: raised when the database itself rejects a statement
//     (bad identifier text, foreign-key violation). Repositories translate the
//     driver-specific codes into this one type so nothing above the
//     repository needs to import a driver.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")

	// ErrCommentNotFound is its own kind: a missing comment is
	// reported as 400, while a missing article is 404.
	ErrCommentNotFound = errors.New("comment not found")
)

type AppError struct {
	Err     error  // kind sentinel
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// BadRequest returns a 400-kind error with the given client-facing message.
func BadRequest(message string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Invalid is BadRequest with the offending field recorded for logs.
func Invalid(field, message string) *AppError {
	return &AppError{
		Err:     ErrBadRequest,
		Message: message,
		Field:   field,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func CommentNotFound(id int64) *AppError {
	return &AppError{
		Err:     ErrCommentNotFound,
		Message: fmt.Sprintf("Comment %d Not Found", id),
	}
}

// StoreErrorKind classifies a rejection reported by the database.
type StoreErrorKind int

const (
	// InvalidText: a value could not be parsed as the column's type
	// (postgres SQLSTATE 22P02).
	InvalidText StoreErrorKind = iota + 1
	// ForeignKey: a referenced row does not exist (postgres 23503,
	// SQLITE_CONSTRAINT_FOREIGNKEY).
	ForeignKey
	// OutOfRange: a computed value does not fit the column type
	// (postgres 22003, e.g. a vote total past INT).
	OutOfRange
)

// Referenced columns reported in StoreError.Constraint for ForeignKey errors.
const (
	RefArticle = "article_id"
	RefAuthor  = "author"
)

type StoreError struct {
	Kind       StoreErrorKind
	Constraint string // for ForeignKey: RefArticle or RefAuthor
	Err        error  // original driver error
}

func (e *StoreError) Error() string {
	switch e.Kind {
	case InvalidText:
		return fmt.Sprintf("store: invalid text representation: %v", e.Err)
	case ForeignKey:
		return fmt.Sprintf("store: foreign key violation on %s: %v", e.Constraint, e.Err)
	case OutOfRange:
		return fmt.Sprintf("store: value out of range: %v", e.Err)
	default:
		return fmt.Sprintf("store: %v", e.Err)
	}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err carries a StoreError of the given kind and,
// when constraint is non-empty, on that constraint.
func IsStoreError(err error, kind StoreErrorKind, constraint string) bool {
	var se *StoreError
	if !errors.As(err, &se) {
		return false
	}
	if se.Kind != kind {
		return false
	}
	return constraint == "" || se.Constraint == constraint
}
