package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgPostFieldsRequired  = "Please provide title and contents for the post."
	MsgCommentTextRequired = "Please provide text for the comment."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError is returned when a submitted body is missing required
// fields. Message is safe to show to API clients.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

// NewValidationError returns a ValidationError without field details, used
// for bodies that could not be decoded at all.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func validateInput(in any, message string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Message: message}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, strings.ToLower(fe.Field()))
	}
	return verr
}
