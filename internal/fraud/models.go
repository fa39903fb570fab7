package fraud

import (
	"time"

	"github.com/google/uuid"
)

// NodeType is the kind of account a fraud node represents
type NodeType string

const (
	NodeBeneficiary NodeType = "beneficiary"
	NodeProvider    NodeType = "provider"
	NodeDonor       NodeType = "donor"
)

// NodeStatus is the compliance status recorded for an account
type NodeStatus string

const (
	StatusFlagged     NodeStatus = "flagged"
	StatusWatchlist   NodeStatus = "watchlist"
	StatusBlacklisted NodeStatus = "blacklisted"
)

// ConnectionType is why two accounts are linked
type ConnectionType string

const (
	ConnectionDuplicateID     ConnectionType = "duplicate-id"
	ConnectionCostInflation   ConnectionType = "cost-inflation"
	ConnectionRapidSubmission ConnectionType = "rapid-submission"
	ConnectionNetworkRing     ConnectionType = "network-ring"
	ConnectionCollusion       ConnectionType = "collusion"
)

// RiskTier is a coarse bucket derived from a node's risk score
type RiskTier string

const (
	TierCritical RiskTier = "critical"
	TierHigh     RiskTier = "high"
	TierMedium   RiskTier = "medium"
)

// FraudNode is an account in the relationship graph
type FraudNode struct {
	ID        string     `json:"id" validate:"required,notblank"`
	Name      string     `json:"name"`
	Type      NodeType   `json:"type" validate:"required,oneof=beneficiary provider donor"`
	RiskScore float64    `json:"risk_score"`
	Incidents int        `json:"incidents"`
	Status    NodeStatus `json:"status" validate:"required,oneof=flagged watchlist blacklisted"`
}

// FraudConnection links two accounts. It is stored directionally but treated
// as undirected for connectivity.
type FraudConnection struct {
	From       string         `json:"from" validate:"required"`
	To         string         `json:"to" validate:"required"`
	Reason     string         `json:"reason"`
	Confidence float64        `json:"confidence"`
	Type       ConnectionType `json:"type" validate:"required,oneof=duplicate-id cost-inflation rapid-submission network-ring collusion"`
}

// RiskTiers groups nodes by risk tier. Nodes below the medium threshold are in none.
type RiskTiers struct {
	Critical []FraudNode `json:"critical"`
	High     []FraudNode `json:"high"`
	Medium   []FraudNode `json:"medium"`
}

// DroppedConnection is a connection that referenced an unknown node
type DroppedConnection struct {
	Index      int             `json:"index"`
	Connection FraudConnection `json:"connection"`
	MissingIDs []string        `json:"missing_ids"`
}

// NetworkAnalysis is the result of analyzing a fraud graph snapshot
type NetworkAnalysis struct {
	ConnectionTypeCounts map[ConnectionType]int `json:"connection_type_counts"`
	TotalConnections     int                    `json:"total_connections"`
	RiskTiers            RiskTiers              `json:"risk_tiers"`
	RingMembers          []FraudNode            `json:"ring_members"`
	HighestRiskNode      *FraudNode             `json:"highest_risk_node"`
	Degrees              map[string]int         `json:"degrees"`
	Clusters             [][]string             `json:"clusters"`
	DroppedConnections   []DroppedConnection    `json:"dropped_connections"`
	Warnings             []string               `json:"warnings"`
}

// TypeShare returns the percentage of valid connections that have type t.
// It is 0 when there are no connections.
func (a *NetworkAnalysis) TypeShare(t ConnectionType) float64 {
	if a == nil || a.TotalConnections == 0 {
		return 0
	}
	return float64(a.ConnectionTypeCounts[t]) / float64(a.TotalConnections) * 100
}

// ========================================
// REQUEST/RESPONSE TYPES
// ========================================

// AnalyzeRequest carries an inline graph snapshot
type AnalyzeRequest struct {
	Nodes       []FraudNode       `json:"nodes" validate:"dive"`
	Connections []FraudConnection `json:"connections" validate:"dive"`
}

// RingAlert is published for the operator escalation workflow whenever an
// analysis finds ring members. The analyzer itself never changes node status.
type RingAlert struct {
	ID          uuid.UUID  `json:"id"`
	DetectedAt  time.Time  `json:"detected_at"`
	MemberIDs   []string   `json:"member_ids"`
	Clusters    [][]string `json:"clusters"`
	HighestRisk *FraudNode `json:"highest_risk,omitempty"`
}
