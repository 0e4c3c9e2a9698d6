package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  F001  ", "F002 "},
			expected: []string{"F001", "F002"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"F001", "F002", "F001", "F003", "F002"},
			expected: []string{"F001", "F002", "F003"},
		},
		{
			name:     "drops empty entries",
			input:    []string{"F001", "", "  ", "F002"},
			expected: []string{"F001", "F002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
