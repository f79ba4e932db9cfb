package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saurabhkjha/studymaterial-backend/internal/models"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		expected []string
	}{
		{
			name:     "nil stays nil",
			tags:     nil,
			expected: nil,
		},
		{
			name:     "order preserved",
			tags:     []string{"aptitude", "interview", "tcs"},
			expected: []string{"aptitude", "interview", "tcs"},
		},
		{
			name:     "duplicates keep first occurrence",
			tags:     []string{"go", "sql", "go", "dsa", "sql"},
			expected: []string{"go", "sql", "dsa"},
		},
		{
			name:     "whitespace trimmed",
			tags:     []string{" aptitude ", "interview\t"},
			expected: []string{"aptitude", "interview"},
		},
		{
			name:     "empties dropped",
			tags:     []string{"", "  ", "placement"},
			expected: []string{"placement"},
		},
		{
			name:     "case sensitive",
			tags:     []string{"Go", "go"},
			expected: []string{"Go", "go"},
		},
		{
			name:     "all empty collapses to empty slice",
			tags:     []string{"", " "},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.NormalizeTags(tt.tags))
		})
	}
}
