package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// rootInstance names the request body in violation messages.
const rootInstance = "body"

var printer = message.NewPrinter(language.English)

// Validator checks decoded JSON values against one compiled schema.
// It is safe for concurrent use.
type Validator struct {
	name   string
	schema *jsonschema.Schema
}

// Name identifies the schema in logs and metrics.
func (v *Validator) Name() string {
	return v.name
}

// Validate checks value, as decoded by jsonschema.UnmarshalJSON or
// encoding/json, against the schema. It returns nil when value conforms.
func (v *Validator) Validate(value any) CustomValidationErrors {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return CustomValidationErrors{{
			Field:   rootInstance,
			Message: "cannot be validated",
			Detail:  rootInstance + " cannot be validated: " + err.Error(),
		}}
	}

	var violations CustomValidationErrors
	collect(verr, &violations)
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations
}

// collect flattens the error tree into one violation per failing leaf.
func collect(verr *jsonschema.ValidationError, out *CustomValidationErrors) {
	if len(verr.Causes) > 0 {
		for _, cause := range verr.Causes {
			collect(cause, out)
		}
		return
	}

	location := verr.InstanceLocation
	switch k := verr.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			*out = append(*out, requiredViolation(location, name))
		}
	case *kind.Type:
		*out = append(*out, typeViolation(location, strings.Join(k.Want, ",")))
	default:
		*out = append(*out, keywordViolation(location, verr.ErrorKind.LocalizedString(printer)))
	}
}
