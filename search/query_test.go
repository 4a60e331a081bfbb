package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		terms string
		limit int
	}{
		{"Plain terms", "lunch tomorrow", "lunch tomorrow", 10},
		{"Limit flag", "lunch --limit 3", "lunch", 3},
		{"Limit capped", "--limit 500 lunch", "lunch", 50},
		{"Invalid limit ignored", "lunch --limit many", "lunch", 10},
		{"Unknown flag dropped with its value", "lunch --room 4 today", "lunch today", 10},
		{"Command word ignored", "/find lunch", "lunch", 10},
		{"Dangling flag kept as term", "lunch --limit", "lunch --limit", 10},
		{"Empty", "   ", "", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			query := NewSearchQuery(tt.input, 10, 50)
			req.Equal(tt.terms, query.Terms)
			req.Equal(tt.limit, query.Limit)
			req.Equal(tt.input, query.RawInput)
		})
	}
}
