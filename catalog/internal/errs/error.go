package errs

import (
	"errors"
)

var (
	ErrValidation     = errors.New("missing required fields")
	ErrAuthentication = errors.New("authentication required")
	ErrAuthorization  = errors.New("access denied")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrLimitExceeded  = errors.New("maximum of 3 favorites allowed")
	ErrDuplicate      = errors.New("book is already in favorites")
	ErrStore          = errors.New("store failure")
)

// FieldError reports a supplied field with an unusable value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// ErrorResponse is the body of unexpected failures: a generic message plus
// the diagnostic for operators.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
