package search

import (
	"strconv"
	"strings"
)

// Query is a parsed search input: free text terms plus command-line style
// flags.
type Query struct {
	RawInput string
	Terms    string
	Limit    int
}

// NewSearchQuery parses input such as `invoice march --limit 5`.
// Unknown flags and their value are dropped, a leading /command word is
// ignored. Limit falls back to defaultLimit and is capped at maxLimit.
func NewSearchQuery(input string, defaultLimit, maxLimit int) Query {
	query := Query{RawInput: input, Limit: defaultLimit}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			if key == "limit" {
				if limit, err := strconv.Atoi(parts[i+1]); err == nil && limit > 0 {
					query.Limit = limit
				}
			}
			i++
			continue
		}

		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, part)
		}
	}

	if maxLimit > 0 && query.Limit > maxLimit {
		query.Limit = maxLimit
	}
	query.Terms = strings.Join(textTerms, " ")
	return query
}

func (q Query) IsEmpty() bool {
	return q.Terms == ""
}
