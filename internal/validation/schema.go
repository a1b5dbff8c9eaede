package validation

import (
	"fmt"
	"unicode/utf8"
)

// Kind is the primitive kind a field's value must have before any of its
// other constraints are considered.
type Kind int

const (
	// KindString accepts any JSON string.
	KindString Kind = iota

	// KindUUID accepts a JSON string in canonical UUID textual form
	// (8-4-4-4-12 hex groups).
	KindUUID
)

// Constraint rule tokens. They appear verbatim in Violation.Constraint and
// in response details, so clients may branch on them.
const (
	RuleRequired  = "required"
	RuleType      = "type"
	RuleUUID      = "uuid"
	RuleMinLength = "min_length"
	RuleMaxLength = "max_length"
)

// Constraint is a single checkable rule attached to a field, together with
// the human-readable message reported when it is violated. Constraints are
// plain data; the rule token selects the check applied at validation time.
type Constraint struct {
	Rule    string
	Min     int
	Max     int
	Message string
}

// Required marks a field as mandatory. An absent or JSON-null value
// produces this constraint's message and suppresses the field's remaining
// checks.
func Required(message string) Constraint {
	return Constraint{Rule: RuleRequired, Message: message}
}

// MinLength requires the string to contain at least n characters (runes,
// not bytes). The bound is inclusive.
func MinLength(n int, message string) Constraint {
	return Constraint{Rule: RuleMinLength, Min: n, Message: message}
}

// MaxLength requires the string to contain at most n characters (runes,
// not bytes). The bound is inclusive.
func MaxLength(n int, message string) Constraint {
	return Constraint{Rule: RuleMaxLength, Max: n, Message: message}
}

// Field describes one expected input field: its name in the payload, its
// kind, the message reported when the kind check fails, and an ordered list
// of further constraints.
type Field struct {
	Name        string
	Kind        Kind
	KindMessage string
	Constraints []Constraint
}

// String declares a string field with the given constraints.
func String(name string, constraints ...Constraint) Field {
	return Field{
		Name:        name,
		Kind:        KindString,
		KindMessage: "must be a string",
		Constraints: constraints,
	}
}

// UUID declares an identifier field. The value must be a string in
// canonical UUID form; any other string fails with a constraint-specific
// message before length or format checks run.
func UUID(name string, constraints ...Constraint) Field {
	return Field{
		Name:        name,
		Kind:        KindUUID,
		KindMessage: "must be a string",
		Constraints: constraints,
	}
}

// Schema is a declarative description of an expected request payload.
//
// A schema is built once at process start and reused for every request; it
// is immutable after construction and holds no request-time state, so a
// single schema value is safe for arbitrarily many concurrent Validate
// calls.
type Schema struct {
	name   string
	fields []Field
}

// New constructs a Schema.
//
// Schema misconfiguration (duplicate field names, negative bounds, a
// minimum above a maximum) is a programmer error: New panics so the process
// aborts at startup instead of silently validating against a broken schema.
func New(name string, fields ...Field) *Schema {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("validation: schema %q has a field with no name", name))
		}
		if seen[f.Name] {
			panic(fmt.Sprintf("validation: schema %q declares field %q twice", name, f.Name))
		}
		seen[f.Name] = true

		min, max := -1, -1
		for _, c := range f.Constraints {
			switch c.Rule {
			case RuleMinLength:
				if c.Min < 0 {
					panic(fmt.Sprintf("validation: schema %q field %q has negative min length", name, f.Name))
				}
				min = c.Min
			case RuleMaxLength:
				if c.Max < 0 {
					panic(fmt.Sprintf("validation: schema %q field %q has negative max length", name, f.Name))
				}
				max = c.Max
			}
		}
		if min >= 0 && max >= 0 && min > max {
			panic(fmt.Sprintf("validation: schema %q field %q has contradictory bounds (min %d > max %d)", name, f.Name, min, max))
		}
	}

	return &Schema{name: name, fields: fields}
}

// Name returns the schema's name, used in logs.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks input against the schema.
//
// Exactly one return value is non-nil: a *Validated carrying the declared
// fields with kind-correct types, or the ordered Violations collected
// across all fields. Validation never fails fast; every field is checked so
// the caller receives a complete report in one pass. Within a field,
// constraints run in declaration order, and a failed kind check suppresses
// that field's remaining checks (other fields still proceed).
//
// Validate is a pure function of (schema, input): no side effects, and
// identical inputs yield structurally equal results.
func (s *Schema) Validate(input map[string]any) (*Validated, Violations) {
	var violations Violations
	values := make(map[string]any, len(s.fields))

	for _, f := range s.fields {
		raw, present := input[f.Name]
		if !present || raw == nil {
			if c, ok := requiredConstraint(f); ok {
				violations = append(violations, Violation{
					Field:      f.Name,
					Constraint: c.Rule,
					Message:    c.Message,
				})
			}
			continue
		}

		// Kind check runs before everything else. A wrong-kind value
		// yields a single violation, not a cascade of nonsensical
		// length/format errors.
		str, ok := raw.(string)
		if !ok {
			violations = append(violations, Violation{
				Field:      f.Name,
				Constraint: RuleType,
				Message:    f.KindMessage,
			})
			continue
		}

		if f.Kind == KindUUID && !IsValidUUID(str) {
			violations = append(violations, Violation{
				Field:      f.Name,
				Constraint: RuleUUID,
				Message:    "must be a valid UUID",
			})
			continue
		}

		length := utf8.RuneCountInString(str)
		clean := len(violations)
		for _, c := range f.Constraints {
			switch c.Rule {
			case RuleMinLength:
				if length < c.Min {
					violations = append(violations, Violation{
						Field:      f.Name,
						Constraint: c.Rule,
						Message:    c.Message,
					})
				}
			case RuleMaxLength:
				if length > c.Max {
					violations = append(violations, Violation{
						Field:      f.Name,
						Constraint: c.Rule,
						Message:    c.Message,
					})
				}
			}
		}

		// Only fully valid values are ever stored; a field with any
		// violation never reaches the output.
		if len(violations) == clean {
			values[f.Name] = str
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &Validated{values: values}, nil
}

func requiredConstraint(f Field) (Constraint, bool) {
	for _, c := range f.Constraints {
		if c.Rule == RuleRequired {
			return c, true
		}
	}
	return Constraint{}, false
}

// Validated is the typed output of a passing validation. Every field it
// carries satisfies all of its declared constraints simultaneously;
// partially valid values are never produced.
type Validated struct {
	values map[string]any
}

// String returns the validated string value of a field, or "" if the field
// was optional and absent from the input.
func (v *Validated) String(name string) string {
	s, _ := v.values[name].(string)
	return s
}

// UUID returns the canonical textual form of a validated identifier field.
func (v *Validated) UUID(name string) string {
	return v.String(name)
}

// Has reports whether an optional field was present in the input.
func (v *Validated) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}
