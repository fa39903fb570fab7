package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     string `json:"id" validate:"required,notblank"`
	Status string `json:"status" validate:"omitempty,oneof=active suspended"`
	TopN   int    `json:"top_n" validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      sample
		wantErr    bool
		wantFields []string
	}{
		{
			name:  "valid",
			input: sample{ID: "p1", Status: "active", TopN: 3},
		},
		{
			name:       "blank id",
			input:      sample{ID: "   "},
			wantErr:    true,
			wantFields: []string{"sample.id"},
		},
		{
			name:       "unknown enum and negative bound",
			input:      sample{ID: "p1", Status: "retired", TopN: -1},
			wantErr:    true,
			wantFields: []string{"sample.status", "sample.top_n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			valErr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			for _, field := range tt.wantFields {
				_, exists := valErr.GetFieldError(field)
				assert.True(t, exists, "missing error for %s in %v", field, valErr.Errors)
			}
		})
	}
}

func TestValidationError_AddError(t *testing.T) {
	v := &ValidationError{}
	assert.False(t, v.HasErrors())

	v.AddError("top_n", "top_n must not exceed 50")

	assert.True(t, v.HasErrors())
	assert.Equal(t, "top_n: top_n must not exceed 50", v.Error())
}
