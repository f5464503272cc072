package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"findash/internal/generator"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  SELECT 1  ", "SELECT 1"},
		{"sql fence", "```sql\nSELECT * FROM invoices;\n```", "SELECT * FROM invoices;"},
		{"bare fence", "```\nSELECT 2\n```", "SELECT 2"},
		{"fence with prose", "Here you go:\n```sqlite\nSELECT 3\n```\nEnjoy.", "SELECT 3"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generator.ExtractSQL(tt.in))
		})
	}
}

func TestBuildSQLPrompt(t *testing.T) {
	p := generator.BuildSQLPrompt("What is the total spend?")
	assert.Contains(t, p, "What is the total spend?")
	assert.Contains(t, p, "invoices(")
	assert.Contains(t, p, "line_items(")
}
