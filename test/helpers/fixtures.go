package helpers

import (
	"fmt"

	"github.com/aidmatch/trust-engine/internal/fraud"
	"github.com/aidmatch/trust-engine/internal/matching"
	"github.com/aidmatch/trust-engine/internal/preferences"
	"github.com/aidmatch/trust-engine/internal/providers"
	"github.com/aidmatch/trust-engine/internal/trust"
)

// CreateTestProvider creates an active food provider serving the north region
func CreateTestProvider(id string, factors trust.TrustFactors) providers.Provider {
	return providers.Provider{
		ID:               id,
		Name:             "Provider " + id,
		TrustScore:       trust.ComputeTrustScore(factors),
		Type:             providers.TypeNGO,
		Specialization:   []string{"food"},
		GeographicFocus:  []string{"north"},
		OrganizationSize: providers.SizeMedium,
		Status:           providers.StatusActive,
	}
}

// CreateTestDirectory creates n providers with descending trust factors
func CreateTestDirectory(n int) []providers.Provider {
	directory := make([]providers.Provider, 0, n)
	for i := 0; i < n; i++ {
		directory = append(directory, CreateTestProvider(fmt.Sprintf("provider-%03d", i), trust.TrustFactors{
			DocumentVerification: 100 - float64(i*3),
			ResponseTime:         95 - float64(i*2),
			CompletionRate:       90 - float64(i),
			YearsActive:          float64(5 - i%5),
			FraudIncidents:       i % 3,
		}))
	}
	return directory
}

// CreateTestBeneficiary creates a beneficiary needing food in the north region
func CreateTestBeneficiary(id string, urgency matching.UrgencyLevel) *matching.Beneficiary {
	return &matching.Beneficiary{
		ID:           id,
		NeedCategory: "food",
		Location:     matching.Location{Region: "north", City: "Tamale"},
		UrgencyLevel: urgency,
	}
}

// CreateTestProfile creates a preference profile with the given positive and negative lists
func CreateTestProfile(beneficiaryID string, positive, negative []string) *preferences.Profile {
	profile := &preferences.Profile{BeneficiaryID: beneficiaryID}
	for _, id := range positive {
		profile.AddPositive(id)
	}
	for _, id := range negative {
		profile.AddNegative(id)
	}
	return profile
}

// CreateTestRingGraph creates a graph with one account linked to three others
// and an unrelated pair
func CreateTestRingGraph() ([]fraud.FraudNode, []fraud.FraudConnection) {
	nodes := []fraud.FraudNode{
		{ID: "acct-hub", Name: "Hub", Type: fraud.NodeProvider, RiskScore: 88, Incidents: 4, Status: fraud.StatusBlacklisted},
		{ID: "acct-1", Name: "One", Type: fraud.NodeBeneficiary, RiskScore: 64, Incidents: 1, Status: fraud.StatusFlagged},
		{ID: "acct-2", Name: "Two", Type: fraud.NodeBeneficiary, RiskScore: 41, Status: fraud.StatusWatchlist},
		{ID: "acct-3", Name: "Three", Type: fraud.NodeDonor, RiskScore: 12, Status: fraud.StatusWatchlist},
		{ID: "acct-4", Name: "Four", Type: fraud.NodeBeneficiary, RiskScore: 55, Status: fraud.StatusFlagged},
		{ID: "acct-5", Name: "Five", Type: fraud.NodeBeneficiary, RiskScore: 20, Status: fraud.StatusWatchlist},
	}
	connections := []fraud.FraudConnection{
		{From: "acct-hub", To: "acct-1", Reason: "shared bank account", Confidence: 0.95, Type: fraud.ConnectionCollusion},
		{From: "acct-hub", To: "acct-2", Reason: "invoice markup", Confidence: 0.7, Type: fraud.ConnectionCostInflation},
		{From: "acct-3", To: "acct-hub", Reason: "same device", Confidence: 0.8, Type: fraud.ConnectionNetworkRing},
		{From: "acct-4", To: "acct-5", Reason: "reused id document", Confidence: 0.9, Type: fraud.ConnectionDuplicateID},
	}
	return nodes, connections
}
