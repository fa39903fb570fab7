package preferences

import "github.com/aidmatch/trust-engine/internal/providers"

// Profile holds a beneficiary's inclusion and exclusion rules over providers.
// A provider id is never in both Positive and Negative; use AddPositive,
// AddNegative and Remove to keep it that way.
type Profile struct {
	BeneficiaryID              string                       `json:"beneficiary_id,omitempty"`
	Positive                   []string                     `json:"positive"`
	Negative                   []string                     `json:"negative"`
	PreferredTypes             []providers.ProviderType     `json:"preferred_types" validate:"dive,oneof=ngo community government faith_based private"`
	PreferredOrganizationSizes []providers.OrganizationSize `json:"preferred_organization_sizes" validate:"dive,oneof=small medium large"`
	PreferredSpecializations   []string                     `json:"preferred_specializations"`
	MinTrustScore              int                          `json:"min_trust_score"`
}

// AddPositive marks a provider as preferred, removing it from the negative list
func (prefs *Profile) AddPositive(id string) {
	prefs.Negative = without(prefs.Negative, id)
	if !containsID(prefs.Positive, id) {
		prefs.Positive = append(prefs.Positive, id)
	}
}

// AddNegative excludes a provider, removing it from the positive list
func (prefs *Profile) AddNegative(id string) {
	prefs.Positive = without(prefs.Positive, id)
	if !containsID(prefs.Negative, id) {
		prefs.Negative = append(prefs.Negative, id)
	}
}

// Remove clears any preference recorded for a provider
func (prefs *Profile) Remove(id string) {
	prefs.Positive = without(prefs.Positive, id)
	prefs.Negative = without(prefs.Negative, id)
}

// IsPositive reports whether id is preferred. Negative always wins, so an id
// present in both lists is not positive.
func (prefs *Profile) IsPositive(id string) bool {
	if prefs == nil {
		return false
	}
	return containsID(prefs.Positive, id) && !containsID(prefs.Negative, id)
}

// IsNegative reports whether id is excluded
func (prefs *Profile) IsNegative(id string) bool {
	if prefs == nil {
		return false
	}
	return containsID(prefs.Negative, id)
}

// DimensionMatch records which specified preference dimensions a provider satisfies
type DimensionMatch struct {
	Type           bool
	Size           bool
	Specialization bool
	// MatchedSpecializations lists the distinct preferred specializations the
	// provider covers, in preference order.
	MatchedSpecializations []string
}

// Count returns how many dimensions matched
func (m DimensionMatch) Count() int {
	n := 0
	for _, ok := range []bool{m.Type, m.Size, m.Specialization} {
		if ok {
			n++
		}
	}
	return n
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

// FilterRequest carries an inline provider snapshot to filter
type FilterRequest struct {
	Providers   []providers.Provider `json:"providers" validate:"dive"`
	Preferences *Profile             `json:"preferences"`
}
