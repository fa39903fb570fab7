package preferences

import (
	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/aidmatch/trust-engine/internal/trust"
)

// ExclusionReason names the rule that removed a provider
type ExclusionReason string

const (
	ExcludedNegative   ExclusionReason = "negative_list"
	ExcludedTrustScore ExclusionReason = "below_min_trust"
	ExcludedDimensions ExclusionReason = "preference_mismatch"
	ExcludedStatus     ExclusionReason = "inactive_status"
)

// Exclusion is a provider removed by the filter and the rule that removed it
type Exclusion struct {
	ProviderID string          `json:"provider_id"`
	Reason     ExclusionReason `json:"reason"`
}

// Result is the outcome of a filter pass
type Result struct {
	Eligible []providers.Provider `json:"eligible"`
	Excluded []Exclusion          `json:"excluded"`
}

// Filter returns the providers that satisfy prefs, preserving input order.
// A nil profile applies only the active-status rule.
func Filter(candidates []providers.Provider, prefs *Profile) []providers.Provider {
	return Apply(candidates, prefs).Eligible
}

// Apply runs the filter rules in order and records why each excluded
// provider was dropped:
//  1. negative list (overrides everything, including the positive list)
//  2. minimum trust score
//  3. preferred type / organization size / specialization
//  4. active status
func Apply(candidates []providers.Provider, prefs *Profile) Result {
	if prefs == nil {
		prefs = &Profile{}
	}

	negative := toSet(prefs.Negative)
	minTrust := trust.ClampScore(prefs.MinTrustScore)

	result := Result{
		Eligible: make([]providers.Provider, 0, len(candidates)),
		Excluded: make([]Exclusion, 0),
	}

	for _, p := range candidates {
		var reason ExclusionReason
		switch {
		case negative[p.ID]:
			reason = ExcludedNegative
		case trust.ClampScore(p.TrustScore) < minTrust:
			reason = ExcludedTrustScore
		case !prefs.SatisfiesDimensions(&p):
			reason = ExcludedDimensions
		case !p.IsActive():
			reason = ExcludedStatus
		}

		if reason != "" {
			result.Excluded = append(result.Excluded, Exclusion{ProviderID: p.ID, Reason: reason})
			continue
		}
		result.Eligible = append(result.Eligible, p)
	}

	return result
}

// SatisfiesDimensions reports whether p matches at least one value in every
// preference dimension that is specified. Unspecified dimensions always pass.
func (prefs *Profile) SatisfiesDimensions(p *providers.Provider) bool {
	if prefs == nil {
		return true
	}
	m := prefs.MatchDimensions(p)
	if len(prefs.PreferredTypes) > 0 && !m.Type {
		return false
	}
	if len(prefs.PreferredOrganizationSizes) > 0 && !m.Size {
		return false
	}
	if len(prefs.PreferredSpecializations) > 0 && !m.Specialization {
		return false
	}
	return true
}

// MatchDimensions reports, per specified dimension, whether p matches it.
// A dimension with no preferred values never reports a match.
func (prefs *Profile) MatchDimensions(p *providers.Provider) DimensionMatch {
	var m DimensionMatch
	if prefs == nil {
		return m
	}

	for _, t := range prefs.PreferredTypes {
		if p.Type == t {
			m.Type = true
			break
		}
	}
	for _, size := range prefs.PreferredOrganizationSizes {
		if p.OrganizationSize == size {
			m.Size = true
			break
		}
	}
	for _, want := range prefs.PreferredSpecializations {
		if p.Specializes(want) && !containsID(m.MatchedSpecializations, want) {
			m.MatchedSpecializations = append(m.MatchedSpecializations, want)
		}
	}
	m.Specialization = len(m.MatchedSpecializations) > 0

	return m
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
