package errors

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError reports input bytes that could not be parsed into a table.
type LoadError struct {
	Cause error
}

// NewLoadError wraps cause as a LoadError.
func NewLoadError(cause error) *LoadError {
	return &LoadError{Cause: cause}
}

// Error is the message shown to the user.
func (e *LoadError) Error() string {
	return fmt.Sprintf("Error loading file: %v", e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// AppError converts e into the generic application error taxonomy.
func (e *LoadError) AppError() *AppError {
	return NewAppError(ErrTypeLoad, "Error loading file", e.Cause)
}

// MissingFieldsError reports required columns absent from the input header.
// Missing keeps the order of the required-column list.
type MissingFieldsError struct {
	Missing []string
}

// NewMissingFieldsError builds the error for the given missing columns.
func NewMissingFieldsError(missing []string) *MissingFieldsError {
	return &MissingFieldsError{Missing: append([]string(nil), missing...)}
}

// Error is the message shown to the user.
func (e *MissingFieldsError) Error() string {
	return "Missing columns in CSV: " + strings.Join(e.Missing, ", ")
}

// AppError converts e into the generic application error taxonomy.
func (e *MissingFieldsError) AppError() *AppError {
	return NewAppError(ErrTypeMissingFields, e.Error(), nil).
		WithContext("missing_columns", append([]string(nil), e.Missing...))
}

// IsLoadError reports whether err wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsMissingFields reports whether err wraps a MissingFieldsError.
func IsMissingFields(err error) bool {
	var mf *MissingFieldsError
	return errors.As(err, &mf)
}

// UserMessage returns the text shown to an end user for err. Analysis errors
// carry their own message; anything else is reported without internals.
func UserMessage(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Error()
	}
	var mf *MissingFieldsError
	if errors.As(err, &mf) {
		return mf.Error()
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
