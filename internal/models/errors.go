package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStore          = errors.New("invalid store")
	ErrItemNotFound          = errors.New("no active item found")
	ErrUnsupportedRecordType = errors.New("unsupported record type")
	ErrSubmissionRejected    = errors.New("product submission rejected")
)

// RequiredFieldsError lists every product field that failed validation.
type RequiredFieldsError struct {
	Fields []string
}

func (e *RequiredFieldsError) Error() string {
	return "The following fields need to be set: " + strings.Join(e.Fields, ", ")
}

// MissingArgumentError reports an absent request argument.
type MissingArgumentError struct {
	Argument string
	Method   string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Missing a required argument: [%s] for method: %s", e.Argument, e.Method)
}
