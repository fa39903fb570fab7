package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/aidmatch/trust-engine/internal/trust"
)

// Ranker orders eligible providers for a beneficiary
type Ranker struct {
	config *Config
}

// NewRanker creates a ranker. A nil config uses DefaultConfig.
func NewRanker(config *Config) *Ranker {
	if config == nil {
		config = DefaultConfig()
	}
	return &Ranker{config: config}
}

var defaultRanker = NewRanker(nil)

// SuggestProviders ranks providers for a beneficiary with the default weights
// and returns at most topN suggestions.
func SuggestProviders(b Beneficiary, candidates []providers.Provider, prefs *preferences.Profile, topN int) []Suggestion {
	return defaultRanker.Suggest(b, candidates, prefs, topN)
}

// Suggest returns at most topN suggestions. topN <= 0 yields an empty list.
func (r *Ranker) Suggest(b Beneficiary, candidates []providers.Provider, prefs *preferences.Profile, topN int) []Suggestion {
	return r.Rank(b, candidates, prefs, topN).Suggestions
}

type scoredCandidate struct {
	provider providers.Provider
	score    float64
	trust    int
	reasons  []string
}

// Rank filters, scores and orders the candidates. Ties on score are broken by
// higher trust score, then by provider id, so identical input always yields
// identical output.
func (r *Ranker) Rank(b Beneficiary, candidates []providers.Provider, prefs *preferences.Profile, topN int) *RankResult {
	filtered := preferences.Apply(candidates, prefs)

	result := &RankResult{
		Suggestions: make([]Suggestion, 0),
		Excluded:    filtered.Excluded,
		OutOfScope:  make([]string, 0),
	}

	scored := make([]scoredCandidate, 0, len(filtered.Eligible))
	for _, p := range filtered.Eligible {
		if !p.Specializes(b.NeedCategory) || !p.Serves(b.Location.Region) {
			result.OutOfScope = append(result.OutOfScope, p.ID)
			continue
		}
		score, reasons := r.scoreCandidate(&p, b, prefs)
		scored = append(scored, scoredCandidate{
			provider: p,
			score:    score,
			trust:    trust.ClampScore(p.TrustScore),
			reasons:  reasons,
		})
	}
	result.Ranked = len(scored)

	sort.SliceStable(scored, func(i, j int) bool {
		a, c := scored[i], scored[j]
		if a.score != c.score {
			return a.score > c.score
		}
		if a.trust != c.trust {
			return a.trust > c.trust
		}
		return a.provider.ID < c.provider.ID
	})

	if topN < 0 {
		topN = 0
	}
	if topN > len(scored) {
		topN = len(scored)
	}

	for _, s := range scored[:topN] {
		result.Suggestions = append(result.Suggestions, Suggestion{
			ProviderID:   s.provider.ID,
			ProviderName: s.provider.Name,
			Score:        s.score,
			TrustScore:   s.trust,
			MatchReasons: s.reasons,
		})
	}

	return result
}

// scoreCandidate computes the compatibility score of an in-scope provider and
// the reasons that contributed to it.
func (r *Ranker) scoreCandidate(p *providers.Provider, b Beneficiary, prefs *preferences.Profile) (float64, []string) {
	trustScore := trust.ClampScore(p.TrustScore)
	reasons := []string{
		"need match: " + b.NeedCategory,
		"location match: " + b.Location.Region,
	}

	bonus := 0.0
	if prefs.IsPositive(p.ID) {
		bonus += r.config.PositiveBonus
		reasons = append(reasons, "preferred provider")
	}

	m := prefs.MatchDimensions(p)
	attributes := 0
	if m.Type {
		attributes++
		reasons = append(reasons, "preferred type: "+string(p.Type))
	}
	if m.Size {
		attributes++
		reasons = append(reasons, "preferred organization size: "+string(p.OrganizationSize))
	}
	if m.Specialization {
		// each covered specialization counts, so broader coverage ranks higher
		attributes += len(m.MatchedSpecializations)
		reasons = append(reasons, "preferred specialization: "+strings.Join(m.MatchedSpecializations, ", "))
	}
	bonus += float64(attributes) * r.config.AttributeBonus

	w := r.config.weightsFor(b.UrgencyLevel)
	score := float64(trustScore)*w.Trust + bonus*w.Preference

	reasons = append(reasons, fmt.Sprintf("trust tier: %s (%d)", trust.TierFor(trustScore), trustScore))

	return math.Round(score*100) / 100, reasons
}
