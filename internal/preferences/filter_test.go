package preferences

import (
	"testing"

	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provider(id string, trustScore int, mutate ...func(p *providers.Provider)) providers.Provider {
	p := providers.Provider{
		ID:               id,
		Name:             "Provider " + id,
		TrustScore:       trustScore,
		Type:             providers.TypeNGO,
		Specialization:   []string{"food"},
		GeographicFocus:  []string{"north"},
		OrganizationSize: providers.SizeMedium,
		Status:           providers.StatusActive,
	}
	for _, m := range mutate {
		m(&p)
	}
	return p
}

func ids(list []providers.Provider) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_NilProfileKeepsActiveProviders(t *testing.T) {
	candidates := []providers.Provider{
		provider("p1", 10),
		provider("p2", 95, func(p *providers.Provider) { p.Status = providers.StatusSuspended }),
		provider("p3", 50),
	}

	assert.Equal(t, []string{"p1", "p3"}, ids(Filter(candidates, nil)))
}

func TestFilter_NegativeOverridesPositive(t *testing.T) {
	candidates := []providers.Provider{provider("p1", 90), provider("p2", 90)}

	// A profile built outside the mutators can carry an id in both lists
	prefs := &Profile{Positive: []string{"p1", "p2"}, Negative: []string{"p1"}}

	result := Apply(candidates, prefs)

	assert.Equal(t, []string{"p2"}, ids(result.Eligible))
	require.Len(t, result.Excluded, 1)
	assert.Equal(t, Exclusion{ProviderID: "p1", Reason: ExcludedNegative}, result.Excluded[0])
}

func TestFilter_MinTrustScoreBoundary(t *testing.T) {
	candidates := []providers.Provider{
		provider("p79", 79),
		provider("p80", 80),
		provider("p81", 81),
	}

	result := Apply(candidates, &Profile{MinTrustScore: 80})

	assert.Equal(t, []string{"p80", "p81"}, ids(result.Eligible))
	assert.Equal(t, []Exclusion{{ProviderID: "p79", Reason: ExcludedTrustScore}}, result.Excluded)
}

func TestFilter_PositiveListDoesNotBypassRules(t *testing.T) {
	candidates := []providers.Provider{
		provider("p1", 40),
		provider("p2", 90, func(p *providers.Provider) { p.Status = providers.StatusWatchlist }),
	}
	prefs := &Profile{MinTrustScore: 60}
	prefs.AddPositive("p1")
	prefs.AddPositive("p2")

	result := Apply(candidates, prefs)

	assert.Empty(t, result.Eligible)
	assert.Equal(t, []Exclusion{
		{ProviderID: "p1", Reason: ExcludedTrustScore},
		{ProviderID: "p2", Reason: ExcludedStatus},
	}, result.Excluded)
}

func TestFilter_Dimensions(t *testing.T) {
	ngoSmallFood := provider("a", 80, func(p *providers.Provider) {
		p.Type = providers.TypeNGO
		p.OrganizationSize = providers.SizeSmall
		p.Specialization = []string{"food", "shelter"}
	})
	govLargeMedical := provider("b", 80, func(p *providers.Provider) {
		p.Type = providers.TypeGovernment
		p.OrganizationSize = providers.SizeLarge
		p.Specialization = []string{"medical"}
	})
	communityMediumShelter := provider("c", 80, func(p *providers.Provider) {
		p.Type = providers.TypeCommunity
		p.OrganizationSize = providers.SizeMedium
		p.Specialization = []string{"shelter"}
	})
	candidates := []providers.Provider{ngoSmallFood, govLargeMedical, communityMediumShelter}

	tests := []struct {
		name     string
		prefs    *Profile
		expected []string
	}{
		{
			name:     "no dimensions specified",
			prefs:    &Profile{},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "any listed type matches",
			prefs:    &Profile{PreferredTypes: []providers.ProviderType{providers.TypeNGO, providers.TypeCommunity}},
			expected: []string{"a", "c"},
		},
		{
			name:     "organization size",
			prefs:    &Profile{PreferredOrganizationSizes: []providers.OrganizationSize{providers.SizeLarge}},
			expected: []string{"b"},
		},
		{
			name:     "specialization matches any covered need",
			prefs:    &Profile{PreferredSpecializations: []string{"shelter"}},
			expected: []string{"a", "c"},
		},
		{
			name: "every specified dimension must match",
			prefs: &Profile{
				PreferredTypes:           []providers.ProviderType{providers.TypeNGO, providers.TypeCommunity},
				PreferredSpecializations: []string{"shelter"},
				PreferredOrganizationSizes: []providers.OrganizationSize{
					providers.SizeMedium,
				},
			},
			expected: []string{"c"},
		},
		{
			name:     "nothing matches",
			prefs:    &Profile{PreferredSpecializations: []string{"legal"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(candidates, tt.prefs)
			assert.Equal(t, tt.expected, ids(result.Eligible))
			for _, ex := range result.Excluded {
				assert.Equal(t, ExcludedDimensions, ex.Reason)
			}
		})
	}
}

func TestFilter_RuleOrderDecidesReason(t *testing.T) {
	// fails every rule; the negative list is reported
	p := provider("p1", 10, func(p *providers.Provider) {
		p.Status = providers.StatusSuspended
		p.Type = providers.TypePrivate
	})
	prefs := &Profile{
		MinTrustScore:  50,
		PreferredTypes: []providers.ProviderType{providers.TypeNGO},
	}
	prefs.AddNegative("p1")

	result := Apply([]providers.Provider{p}, prefs)
	assert.Equal(t, ExcludedNegative, result.Excluded[0].Reason)

	prefs.Remove("p1")
	result = Apply([]providers.Provider{p}, prefs)
	assert.Equal(t, ExcludedTrustScore, result.Excluded[0].Reason)

	prefs.MinTrustScore = 0
	result = Apply([]providers.Provider{p}, prefs)
	assert.Equal(t, ExcludedDimensions, result.Excluded[0].Reason)

	prefs.PreferredTypes = nil
	result = Apply([]providers.Provider{p}, prefs)
	assert.Equal(t, ExcludedStatus, result.Excluded[0].Reason)
}

func TestFilter_PreservesOrderAndIsSubset(t *testing.T) {
	candidates := make([]providers.Provider, 0, 20)
	for i := 0; i < 20; i++ {
		candidates = append(candidates, provider(string(rune('a'+i)), i*5))
	}
	prefs := &Profile{MinTrustScore: 30}
	prefs.AddNegative("k")

	eligible := Filter(candidates, prefs)

	last := -1
	for _, e := range eligible {
		pos := -1
		for i, c := range candidates {
			if c.ID == e.ID {
				pos = i
			}
		}
		require.NotEqual(t, -1, pos, "filter returned a provider not in the input")
		assert.Greater(t, pos, last, "filter reordered providers")
		last = pos
		assert.NotEqual(t, "k", e.ID)
		assert.GreaterOrEqual(t, e.TrustScore, 30)
	}
}

func TestFilter_EmptyCandidates(t *testing.T) {
	result := Apply(nil, &Profile{MinTrustScore: 50})
	assert.NotNil(t, result.Eligible)
	assert.Empty(t, result.Eligible)
	assert.Empty(t, result.Excluded)
}

func TestFilter_MinTrustScoreIsClamped(t *testing.T) {
	candidates := []providers.Provider{provider("p1", 100), provider("p2", 0)}

	assert.Equal(t, []string{"p1"}, ids(Filter(candidates, &Profile{MinTrustScore: 250})))
	assert.Equal(t, []string{"p1", "p2"}, ids(Filter(candidates, &Profile{MinTrustScore: -20})))
}

func TestMatchDimensions(t *testing.T) {
	p := provider("p1", 80, func(p *providers.Provider) {
		p.Type = providers.TypeFaithBased
		p.OrganizationSize = providers.SizeSmall
		p.Specialization = []string{"food"}
	})

	prefs := &Profile{
		PreferredTypes:             []providers.ProviderType{providers.TypeFaithBased},
		PreferredOrganizationSizes: []providers.OrganizationSize{providers.SizeLarge},
	}

	m := prefs.MatchDimensions(&p)
	assert.True(t, m.Type)
	assert.False(t, m.Size)
	assert.False(t, m.Specialization)
	assert.Equal(t, 1, m.Count())

	assert.Empty(t, m.MatchedSpecializations)

	prefs.PreferredSpecializations = []string{"shelter", "food", "food"}
	m = prefs.MatchDimensions(&p)
	assert.True(t, m.Specialization)
	assert.Equal(t, []string{"food"}, m.MatchedSpecializations)
	assert.Equal(t, 2, m.Count())

	var nilProfile *Profile
	assert.Equal(t, 0, nilProfile.MatchDimensions(&p).Count())
	assert.True(t, nilProfile.SatisfiesDimensions(&p))
}
