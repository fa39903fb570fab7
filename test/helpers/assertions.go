package helpers

import (
	"testing"

	"github.com/aidmatch/trust-engine/internal/matching"
	"github.com/stretchr/testify/assert"
)

// AssertSuggestionsOrdered asserts score desc, then trust desc, then provider id asc
func AssertSuggestionsOrdered(t *testing.T, suggestions []matching.Suggestion) {
	t.Helper()
	for i := 1; i < len(suggestions); i++ {
		prev, cur := suggestions[i-1], suggestions[i]
		switch {
		case prev.Score != cur.Score:
			assert.Greater(t, prev.Score, cur.Score, "position %d", i)
		case prev.TrustScore != cur.TrustScore:
			assert.Greater(t, prev.TrustScore, cur.TrustScore, "position %d", i)
		default:
			assert.Less(t, prev.ProviderID, cur.ProviderID, "position %d", i)
		}
	}
}

// AssertNotSuggested asserts that none of ids appear in the suggestions
func AssertNotSuggested(t *testing.T, suggestions []matching.Suggestion, ids ...string) {
	t.Helper()
	for _, s := range suggestions {
		assert.NotContains(t, ids, s.ProviderID)
	}
}
