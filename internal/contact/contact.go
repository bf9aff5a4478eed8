// Package contact validates contact form submissions. Accepted submissions are only
// acknowledged; nothing is stored or delivered.
package contact

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// SuccessMessage is shown after an accepted submission.
	SuccessMessage = "Thanks for your message! I'll get back to you soon."
	// MissingFieldsMessage is shown when a required field is blank.
	MissingFieldsMessage = "Please fill in all required fields (*)"
)

// ErrMissingRequiredField matches every ValidationError.
var ErrMissingRequiredField = errors.New("contact: missing required field")

// Submission holds the fields of one form post.
type Submission struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required"`
	Subject string `form:"subject"`
	Message string `form:"message" validate:"required"`
}

// Normalize returns a copy with surrounding whitespace removed from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// Notice acknowledges an accepted submission.
type Notice struct {
	Message string
}

// ValidationError lists the required fields that were blank, by form field name.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "contact: missing required field(s): " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// Missing reports whether field (form name) was blank.
func (e *ValidationError) Missing(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// Submit validates a submission. Name, email and message must be non-blank; subject is
// optional. On success it returns the notice to display.
func Submit(s Submission) (Notice, error) {
	s = s.Normalize()
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Notice{}, err
		}
		ve := &ValidationError{}
		for _, fe := range verrs {
			ve.Fields = append(ve.Fields, fe.Field())
		}
		return Notice{}, ve
	}
	return Notice{Message: SuccessMessage}, nil
}
