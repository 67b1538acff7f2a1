package validation

import (
	"fmt"
	"strings"

	"github.com/deppfellow/users-api/internal/errs"
)

// CustomValidationError is a single schema violation.
type CustomValidationError struct {
	// Field is the dotted path of the offending value ("name", "address.city").
	Field string

	// Message is the short, field-level description ("is required").
	Message string

	// Detail is the full sentence including the instance path,
	// e.g. "body must have required property 'name'".
	Detail string
}

// CustomValidationErrors is a slice of violations that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) == 0 {
		return "Validation failed"
	}
	return c[0].Detail
}

// extractValidationError converts violations into the client-facing
// message and field errors. The message is the first violation's detail.
func extractValidationError(violations CustomValidationErrors) (string, []errs.FieldError) {
	fieldErrors := make([]errs.FieldError, 0, len(violations))
	for _, v := range violations {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: v.Field,
			Error: v.Message,
		})
	}
	return violations.Error(), fieldErrors
}

func requiredViolation(location []string, property string) CustomValidationError {
	return CustomValidationError{
		Field:   fieldPath(append(location[:len(location):len(location)], property)),
		Message: "is required",
		Detail:  fmt.Sprintf("%s must have required property '%s'", instancePath(location), property),
	}
}

func typeViolation(location []string, want string) CustomValidationError {
	return keywordViolation(location, "must be "+want)
}

func keywordViolation(location []string, message string) CustomValidationError {
	field := fieldPath(location)
	if field == "" {
		field = rootInstance
	}
	return CustomValidationError{
		Field:   field,
		Message: message,
		Detail:  fmt.Sprintf("%s %s", instancePath(location), message),
	}
}

// fieldPath joins instance location tokens with dots ("address.city").
func fieldPath(location []string) string {
	return strings.Join(location, ".")
}

// instancePath renders a location as a JSON pointer under the body
// ("body/address/city").
func instancePath(location []string) string {
	var b strings.Builder
	b.WriteString(rootInstance)
	for _, token := range location {
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1"))
	}
	return b.String()
}
