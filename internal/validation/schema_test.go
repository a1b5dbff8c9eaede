package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generationSchema() *Schema {
	return New("create_generation",
		String("source_text",
			Required("source_text is required"),
			MinLength(1, "source_text cannot be empty"),
			MaxLength(5000, "source_text must not exceed 5000 characters"),
		),
		UUID("deck_id",
			Required("deck_id is required"),
		),
	)
}

func TestValidatePassesValidPayload(t *testing.T) {
	v, violations := generationSchema().Validate(map[string]any{
		"source_text": "Photosynthesis converts light into chemical energy.",
		"deck_id":     "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111",
	})

	require.Nil(t, violations)
	require.NotNil(t, v)
	assert.Equal(t, "Photosynthesis converts light into chemical energy.", v.String("source_text"))
	assert.Equal(t, "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111", v.UUID("deck_id"))
}

func TestValidateReportsMissingRequiredFields(t *testing.T) {
	v, violations := generationSchema().Validate(map[string]any{})

	assert.Nil(t, v)
	require.Len(t, violations, 2)

	assert.Equal(t, "source_text", violations[0].Field)
	assert.Equal(t, RuleRequired, violations[0].Constraint)
	assert.Equal(t, "source_text is required", violations[0].Message)

	assert.Equal(t, "deck_id", violations[1].Field)
	assert.Equal(t, RuleRequired, violations[1].Constraint)
}

func TestValidateTreatsNullAsAbsent(t *testing.T) {
	_, violations := generationSchema().Validate(map[string]any{
		"source_text": nil,
		"deck_id":     "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111",
	})

	require.Len(t, violations, 1)
	assert.Equal(t, RuleRequired, violations[0].Constraint)
}

func TestValidateWrongTypeYieldsSingleViolation(t *testing.T) {
	// A non-string value must produce exactly one "type" violation, never a
	// cascade of length errors on a value that has no length.
	_, violations := generationSchema().Validate(map[string]any{
		"source_text": 42,
		"deck_id":     "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111",
	})

	require.Len(t, violations, 1)
	assert.Equal(t, "source_text", violations[0].Field)
	assert.Equal(t, RuleType, violations[0].Constraint)
	assert.Equal(t, "must be a string", violations[0].Message)
}

func TestValidateInvalidUUIDSuppressesOtherChecks(t *testing.T) {
	_, violations := generationSchema().Validate(map[string]any{
		"source_text": "some text",
		"deck_id":     "not-a-uuid",
	})

	require.Len(t, violations, 1)
	assert.Equal(t, "deck_id", violations[0].Field)
	assert.Equal(t, RuleUUID, violations[0].Constraint)
	assert.Equal(t, "must be a valid UUID", violations[0].Message)
}

func TestValidateLengthBoundsAreInclusive(t *testing.T) {
	deckID := "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111"

	_, violations := generationSchema().Validate(map[string]any{
		"source_text": strings.Repeat("a", 5000),
		"deck_id":     deckID,
	})
	assert.Nil(t, violations, "exactly 5000 characters is valid")

	_, violations = generationSchema().Validate(map[string]any{
		"source_text": strings.Repeat("a", 5001),
		"deck_id":     deckID,
	})
	require.Len(t, violations, 1)
	assert.Equal(t, RuleMaxLength, violations[0].Constraint)

	_, violations = generationSchema().Validate(map[string]any{
		"source_text": "",
		"deck_id":     deckID,
	})
	require.Len(t, violations, 1)
	assert.Equal(t, RuleMinLength, violations[0].Constraint)
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	// 5000 multibyte characters is within the limit even though the byte
	// count is far larger.
	_, violations := generationSchema().Validate(map[string]any{
		"source_text": strings.Repeat("ä", 5000),
		"deck_id":     "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111",
	})

	assert.Nil(t, violations)
}

func TestValidateCollectsViolationsAcrossFields(t *testing.T) {
	// One pass reports everything; earlier failures never hide later fields.
	_, violations := generationSchema().Validate(map[string]any{
		"source_text": strings.Repeat("a", 5001),
		"deck_id":     "nope",
	})

	require.Len(t, violations, 2)
	assert.Equal(t, "source_text", violations[0].Field)
	assert.Equal(t, "deck_id", violations[1].Field)
}

func TestValidateNeverReturnsPartiallyValidValues(t *testing.T) {
	// A length violation on one field must not leave that field's value, or
	// any sibling's, reachable through a Validated result.
	v, violations := generationSchema().Validate(map[string]any{
		"source_text": strings.Repeat("a", 5001),
		"deck_id":     "6f1e6a30-10c7-4c3f-9f65-93d2c8c8a111",
	})

	require.Len(t, violations, 1)
	assert.Equal(t, RuleMaxLength, violations[0].Constraint)
	assert.Nil(t, v)
}

func TestValidateIsPure(t *testing.T) {
	schema := generationSchema()
	input := map[string]any{
		"source_text": "",
		"deck_id":     "nope",
	}

	_, first := schema.Validate(input)
	_, second := schema.Validate(input)

	assert.Equal(t, first, second)
}

func TestViolationsDetailsGroupsByField(t *testing.T) {
	violations := Violations{
		{Field: "source_text", Constraint: RuleMaxLength, Message: "too long"},
		{Field: "source_text", Constraint: RuleMinLength, Message: "too short"},
		{Field: "deck_id", Constraint: RuleUUID, Message: "must be a valid UUID"},
	}

	details := violations.Details()

	require.Len(t, details, 2)
	sourceText := details["source_text"].([]map[string]string)
	require.Len(t, sourceText, 2)
	assert.Equal(t, RuleMaxLength, sourceText[0]["constraint"])
	assert.Equal(t, "too long", sourceText[0]["message"])
}

func TestNewPanicsOnMisconfiguredSchema(t *testing.T) {
	assert.Panics(t, func() {
		New("dup", String("a"), String("a"))
	}, "duplicate field names")

	assert.Panics(t, func() {
		New("unnamed", String(""))
	}, "empty field name")

	assert.Panics(t, func() {
		New("bounds", String("a", MinLength(10, "m"), MaxLength(5, "m")))
	}, "min above max")

	assert.NotPanics(t, func() {
		New("ok", String("a", MinLength(1, "m"), MaxLength(1, "m")))
	}, "equal bounds are fine")
}
