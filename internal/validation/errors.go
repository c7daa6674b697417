package validation

import (
	"errors"
	"strings"
)

// Code is a machine-readable validation failure reason.
type Code string

const (
	CodeTooLarge               Code = "TOO_LARGE"
	CodeEmptyFile              Code = "EMPTY_FILE"
	CodeMissingFilename        Code = "MISSING_FILENAME"
	CodeUnsafeFilename         Code = "UNSAFE_FILENAME"
	CodeDisallowedExtension    Code = "DISALLOWED_EXTENSION"
	CodeContentMismatch        Code = "CONTENT_MISMATCH"
	CodeInvalidCategory        Code = "INVALID_CATEGORY"
	CodeInvalidTermFormat      Code = "INVALID_TERM_FORMAT"
	CodeMissingTerm            Code = "MISSING_TERM"
	CodeMissingRejectionReason Code = "MISSING_REJECTION_REASON"
)

// FieldError is a client input error addressed to one request field.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects several field errors from one validation pass.
type Errors []*FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// FieldErrors extracts field errors from err, whether it is a single *FieldError or Errors.
func FieldErrors(err error) ([]*FieldError, bool) {
	var many Errors
	if errors.As(err, &many) {
		return many, len(many) > 0
	}
	var one *FieldError
	if errors.As(err, &one) {
		return []*FieldError{one}, true
	}
	return nil, false
}

// HasCode reports whether err carries a field error with the given code.
func HasCode(err error, code Code) bool {
	fes, _ := FieldErrors(err)
	for _, fe := range fes {
		if fe.Code == code {
			return true
		}
	}
	return false
}
