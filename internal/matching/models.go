package matching

import (
	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/providers"
)

// UrgencyLevel is how time-critical a beneficiary's request is
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// Location is where a beneficiary needs help
type Location struct {
	Region string `json:"region" validate:"required,notblank"`
	City   string `json:"city,omitempty"`
}

// Beneficiary is a read-only snapshot of the person or household requesting aid
type Beneficiary struct {
	ID           string       `json:"id,omitempty"`
	NeedCategory string       `json:"need_category" validate:"required,notblank"`
	Location     Location     `json:"location" validate:"required"`
	UrgencyLevel UrgencyLevel `json:"urgency_level" validate:"omitempty,oneof=low medium high critical"`
}

// Suggestion is a ranked provider for a beneficiary
type Suggestion struct {
	ProviderID   string   `json:"provider_id"`
	ProviderName string   `json:"provider_name,omitempty"`
	Score        float64  `json:"score"`
	TrustScore   int      `json:"trust_score"`
	MatchReasons []string `json:"match_reasons"`
}

// RankResult is the full outcome of a ranking pass, including what was dropped
type RankResult struct {
	Suggestions []Suggestion            `json:"suggestions"`
	Ranked      int                     `json:"ranked"`
	Excluded    []preferences.Exclusion `json:"excluded"`
	OutOfScope  []string                `json:"out_of_scope"`
}

// ========================================
// REQUEST/RESPONSE TYPES
// ========================================

// SuggestRequest carries an inline snapshot to rank
type SuggestRequest struct {
	Beneficiary Beneficiary          `json:"beneficiary" validate:"required"`
	Providers   []providers.Provider `json:"providers" validate:"dive"`
	Preferences *preferences.Profile `json:"preferences"`
	TopN        int                  `json:"top_n" validate:"gte=0"`
}
