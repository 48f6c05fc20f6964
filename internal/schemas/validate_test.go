package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnalysis = `{
	"analysis": {
		"score": 0.8,
		"suggestions": ["Add metrics"],
		"strengths": ["Go"],
		"recommendations": []
	},
	"portfolio_structure": [
		{"section_title": "Projects", "section_type": "grid", "section_items": ["fastfolio"]}
	]
}`

func TestValidateAnalysis_Valid(t *testing.T) {
	assert.NoError(t, ValidateAnalysis(validAnalysis))
}

func TestValidateAnalysis_MinimalDocument(t *testing.T) {
	assert.NoError(t, ValidateAnalysis(`{"analysis": {"score": 0}}`))
}

func TestValidateAnalysis_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "missing analysis",
			input: `{"portfolio_structure": []}`,
			field: "(root)",
		},
		{
			name:  "score out of range",
			input: `{"analysis": {"score": 85}}`,
			field: "analysis.score",
		},
		{
			name:  "score wrong type",
			input: `{"analysis": {"score": "high"}}`,
			field: "analysis.score",
		},
		{
			name:  "unknown section type",
			input: `{"analysis": {"score": 0.5}, "portfolio_structure": [{"section_title": "A", "section_type": "table", "section_items": []}]}`,
			field: "portfolio_structure.0.section_type",
		},
		{
			name:  "items not strings",
			input: `{"analysis": {"score": 0.5}, "portfolio_structure": [{"section_title": "A", "section_type": "list", "section_items": [1]}]}`,
			field: "portfolio_structure.0.section_items.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysis(tt.input)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			require.NotEmpty(t, validationErr.Errors)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateAnalysis_NotJSON(t *testing.T) {
	err := ValidateAnalysis(`{"analysis": {"score": 0.5,}`)
	require.Error(t, err)

	var docErr *DocumentError
	assert.True(t, errors.As(err, &docErr))
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "analysis.score", Message: "Must be less than or equal to 1"},
	}}
	assert.Equal(t, "validation failed:\n  1. analysis.score: Must be less than or equal to 1\n", err.Error())
}
