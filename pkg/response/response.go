package response

import (
	"errors"
)

// Error is a domain error that knows the HTTP status it maps to.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same status and message, so sentinels survive wrapping
// by ParseError and FileSystemError.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

// StatusCode returns the status of the first *Error in err's chain, or fallback.
func StatusCode(err error, fallback int) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return fallback
}
