package validation

import (
	"bytes"
	"errors"
	"io"

	"github.com/deppfellow/users-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Body returns route middleware that validates the JSON request body
// against v before anything else on the route runs.
//
// The body is restored after reading so handlers can still Bind it.
// An empty body decodes to nothing and fails any typed schema.
// Observers are told the schema name whenever a body is rejected.
func Body(v *Validator, observers ...func(schema string)) echo.MiddlewareFunc {
	name := v.Name()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			var raw []byte
			if req.Body != nil {
				var err error
				raw, err = io.ReadAll(req.Body)
				if err != nil {
					var limitErr *echo.HTTPError
					if errors.As(err, &limitErr) {
						return err
					}
					return errs.NewBadRequestError("Failed to read request body", false, nil, nil, nil)
				}
				_ = req.Body.Close()
			}
			req.Body = io.NopCloser(bytes.NewReader(raw))

			var data any
			if len(bytes.TrimSpace(raw)) > 0 {
				decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
				if err != nil {
					return errs.NewBadRequestError("Body is not valid JSON", true, nil, nil, nil)
				}
				data = decoded
			}

			if violations := v.Validate(data); violations != nil {
				for _, observe := range observers {
					observe(name)
				}
				message, fieldErrors := extractValidationError(violations)
				return errs.NewBadRequestError(message, true, nil, fieldErrors, nil)
			}

			return next(c)
		}
	}
}
