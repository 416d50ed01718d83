package offerdoc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "anchor not found",
			err:      NewAnchorNotFoundError("1.2 Details"),
			expected: `anchor heading "1.2 Details" not found in base document`,
		},
		{
			name:     "invalid fragment with source and cause",
			err:      NewInvalidFragmentError("block.docx", errors.New("truncated zip")),
			expected: `invalid fragment "block.docx": truncated zip`,
		},
		{
			name:     "invalid fragment bare",
			err:      NewInvalidFragmentError("", nil),
			expected: "invalid fragment",
		},
		{
			name:     "numbering conflict with heading",
			err:      NewNumberingConflictError("Details", 3, "heading skips a level"),
			expected: `numbering conflict at heading "Details" (level 3): heading skips a level`,
		},
		{
			name:     "numbering conflict without heading",
			err:      NewNumberingConflictError("", 3, "heading skips a level"),
			expected: "numbering conflict at level 3: heading skips a level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorTypeChecks(t *testing.T) {
	anchor := NewAnchorNotFoundError("x")
	fragment := NewInvalidFragmentError("f", nil)
	conflict := NewNumberingConflictError("h", 1, "m")
	validation := ValidationReport{}.Err()

	assert.True(t, IsAnchorNotFound(anchor))
	assert.False(t, IsAnchorNotFound(fragment))

	assert.True(t, IsInvalidFragment(fragment))
	assert.False(t, IsInvalidFragment(conflict))

	assert.True(t, IsNumberingConflict(conflict))
	assert.False(t, IsNumberingConflict(anchor))

	assert.True(t, IsValidationFailed(validation))
	assert.False(t, IsValidationFailed(anchor))
}

func TestInvalidFragmentUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying decode failure")
	err := NewInvalidFragmentError("block.docx", cause)
	assert.True(t, errors.Is(err, cause))
}
