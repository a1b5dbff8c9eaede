// Package validation checks request payloads against declarative schemas.
//
// A Schema is plain data: an ordered list of fields, each with a kind and
// an ordered list of constraints, every constraint carrying its own
// client-facing message. Schemas are defined once at startup and reused per
// request. Validation is pure and total: malformed input is the expected
// failure path and comes back as a Violations value, never as a panic or an
// exceptional control transfer.
package validation

import (
	"github.com/deckwise/backend/internal/errs"
	"github.com/labstack/echo/v4"
)

// Violation records that a specific constraint on a specific field failed.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// Violations is the ordered collection of everything that failed during a
// single validation pass. It is non-empty whenever validation fails and
// absent on success; there is no partial-success state. It satisfies error
// so it can travel through ordinary error returns, but callers are expected
// to branch on the returned value, not unwrap it.
type Violations []Violation

func (v Violations) Error() string {
	return "validation failed"
}

// Details converts the violations into the structured details map used in
// error envelopes: each offending field path maps to the ordered list of
// its violated constraints.
//
//	{ "source_text": [ { "constraint": "max_length", "message": "..." } ] }
func (v Violations) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, violation := range v {
		entry := map[string]string{
			"constraint": violation.Constraint,
			"message":    violation.Message,
		}
		existing, _ := details[violation.Field].([]map[string]string)
		details[violation.Field] = append(existing, entry)
	}
	return details
}

// BindAndValidate decodes the request body into an untyped record and
// validates it against the schema.
//
// Flow:
//  1. c.Bind fills a map[string]any from the JSON body.
//  2. schema.Validate collects all violations in one pass.
//  3. A failure becomes a 400 *errs.HTTPError with code VALIDATION_ERROR
//     and a details map enumerating every violated field/constraint pair.
//
// Malformed JSON (not an object, or not JSON at all) is reported as a plain
// 400 without field details, since no fields could be examined.
func BindAndValidate(c echo.Context, schema *Schema) (*Validated, error) {
	raw := map[string]any{}
	if err := c.Bind(&raw); err != nil {
		return nil, errs.NewBadRequestError("Request body must be a JSON object", nil, nil)
	}

	validated, violations := schema.Validate(raw)
	if violations != nil {
		return nil, errs.NewValidationError(violations.Details())
	}

	return validated, nil
}
