// Package contact validates the contact form. Nothing is sent anywhere; the
// form only acknowledges a valid submission locally.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinMessageLength is the minimum trimmed length of a message, in characters
const MinMessageLength = 10

// Field names a form input
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// ErrorKind is the reason a field was rejected
type ErrorKind string

const (
	Required      ErrorKind = "required"
	InvalidFormat ErrorKind = "invalid_format"
	TooShort      ErrorKind = "too_short"
)

// local@domain.tld with a single @ and no whitespace
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fields are the raw submitted values
type Fields struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

// Result carries at most one error per field
type Result struct {
	Errors map[Field]ErrorKind
}

// Valid reports whether no field failed
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns the error kind for f, or "" when the field passed
func (r Result) Error(f Field) ErrorKind {
	return r.Errors[f]
}

// Message returns the text shown under the field, or "" when it passed
func (r Result) Message(f Field) string {
	kind, ok := r.Errors[f]
	if !ok {
		return ""
	}
	return messageFor(f, kind)
}

// Validate checks the fields synchronously
func Validate(fields Fields) Result {
	errs := make(map[Field]ErrorKind)

	if strings.TrimSpace(fields.Name) == "" {
		errs[FieldName] = Required
	}

	if strings.TrimSpace(fields.Email) == "" {
		errs[FieldEmail] = Required
	} else if !emailPattern.MatchString(fields.Email) {
		errs[FieldEmail] = InvalidFormat
	}

	message := strings.TrimSpace(fields.Message)
	if message == "" {
		errs[FieldMessage] = Required
	} else if utf8.RuneCountInString(message) < MinMessageLength {
		errs[FieldMessage] = TooShort
	}

	if len(errs) == 0 {
		return Result{}
	}
	return Result{Errors: errs}
}

func messageFor(f Field, kind ErrorKind) string {
	switch kind {
	case Required:
		switch f {
		case FieldName:
			return "Full Name is required."
		case FieldEmail:
			return "Email Address is required."
		case FieldMessage:
			return "Message is required."
		}
	case InvalidFormat:
		return "Please enter a valid email address."
	case TooShort:
		return "Message should be at least 10 characters long."
	}
	return "Invalid value."
}
