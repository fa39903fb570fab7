package fraud

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, risk float64) FraudNode {
	return FraudNode{ID: id, Name: "Account " + id, Type: NodeBeneficiary, RiskScore: risk, Status: StatusFlagged}
}

func link(from, to string, t ConnectionType) FraudConnection {
	return FraudConnection{From: from, To: to, Type: t, Confidence: 0.9}
}

func nodeIDs(nodes []FraudNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestAnalyze_RingDegreeBoundary(t *testing.T) {
	nodes := []FraudNode{node("hub", 50), node("a", 10), node("b", 10), node("c", 10), node("pair", 10)}
	connections := []FraudConnection{
		link("hub", "a", ConnectionCollusion),
		link("hub", "b", ConnectionCollusion),
		link("hub", "c", ConnectionNetworkRing),
		link("a", "pair", ConnectionDuplicateID),
	}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, 3, analysis.Degrees["hub"])
	assert.Equal(t, 2, analysis.Degrees["a"])
	assert.Equal(t, 1, analysis.Degrees["pair"])
	assert.Equal(t, []string{"hub"}, nodeIDs(analysis.RingMembers))
}

func TestAnalyze_RingMembersMatchDegrees(t *testing.T) {
	nodes := make([]FraudNode, 0, 10)
	for i := 0; i < 10; i++ {
		nodes = append(nodes, node(fmt.Sprintf("n%d", i), float64(i*10)))
	}
	connections := make([]FraudConnection, 0)
	for i := 0; i < 10; i++ {
		for j := i + 1; j < 10; j += i + 1 {
			connections = append(connections, link(nodes[i].ID, nodes[j].ID, ConnectionRapidSubmission))
		}
	}

	analysis := Analyze(nodes, connections)

	members := make(map[string]bool)
	for _, m := range analysis.RingMembers {
		members[m.ID] = true
	}
	for _, n := range nodes {
		assert.Equal(t, analysis.Degrees[n.ID] >= RingDegreeThreshold, members[n.ID], "node %s", n.ID)
	}
}

func TestAnalyze_RiskTiers(t *testing.T) {
	nodes := []FraudNode{
		node("c100", 100),
		node("c80", 80),
		node("h79", 79.99),
		node("h60", 60),
		node("m59", 59.5),
		node("m40", 40),
		node("none", 39.9),
		node("zero", 0),
	}

	analysis := Analyze(nodes, nil)

	assert.Equal(t, []string{"c100", "c80"}, nodeIDs(analysis.RiskTiers.Critical))
	assert.Equal(t, []string{"h79", "h60"}, nodeIDs(analysis.RiskTiers.High))
	assert.Equal(t, []string{"m59", "m40"}, nodeIDs(analysis.RiskTiers.Medium))
}

func TestAnalyze_ConnectionStatistics(t *testing.T) {
	nodes := []FraudNode{node("a", 10), node("b", 10), node("c", 10)}
	connections := []FraudConnection{
		link("a", "b", ConnectionCostInflation),
		link("b", "c", ConnectionCostInflation),
		link("c", "a", ConnectionCollusion),
		link("a", "b", ConnectionDuplicateID),
	}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, 4, analysis.TotalConnections)
	assert.Equal(t, map[ConnectionType]int{
		ConnectionCostInflation: 2,
		ConnectionCollusion:     1,
		ConnectionDuplicateID:   1,
	}, analysis.ConnectionTypeCounts)
	assert.InDelta(t, 50.0, analysis.TypeShare(ConnectionCostInflation), 1e-9)
	assert.InDelta(t, 0.0, analysis.TypeShare(ConnectionNetworkRing), 1e-9)

	total := 0
	for _, n := range analysis.ConnectionTypeCounts {
		total += n
	}
	assert.Equal(t, analysis.TotalConnections, total)
}

func TestAnalyze_DropsConnectionsToUnknownNodes(t *testing.T) {
	nodes := []FraudNode{node("a", 10), node("b", 10)}
	connections := []FraudConnection{
		link("a", "b", ConnectionCollusion),
		link("a", "ghost", ConnectionCollusion),
		link("phantom", "ghost", ConnectionNetworkRing),
	}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, 1, analysis.TotalConnections)
	assert.Equal(t, map[ConnectionType]int{ConnectionCollusion: 1}, analysis.ConnectionTypeCounts)
	assert.Equal(t, 1, analysis.Degrees["a"])
	assert.NotContains(t, analysis.Degrees, "ghost")

	require.Len(t, analysis.DroppedConnections, 2)
	assert.Equal(t, 1, analysis.DroppedConnections[0].Index)
	assert.Equal(t, []string{"ghost"}, analysis.DroppedConnections[0].MissingIDs)
	assert.Equal(t, 2, analysis.DroppedConnections[1].Index)
	assert.Equal(t, []string{"phantom", "ghost"}, analysis.DroppedConnections[1].MissingIDs)
	assert.Len(t, analysis.Warnings, 2)
}

func TestAnalyze_Empty(t *testing.T) {
	analysis := Analyze(nil, nil)

	assert.Equal(t, 0, analysis.TotalConnections)
	assert.Nil(t, analysis.HighestRiskNode)
	assert.Empty(t, analysis.RingMembers)
	assert.Empty(t, analysis.Clusters)
	assert.Equal(t, 0.0, analysis.TypeShare(ConnectionCollusion))
	assert.NotNil(t, analysis.RiskTiers.Critical)
}

func TestAnalyze_HighestRiskNode(t *testing.T) {
	t.Run("maximum wins", func(t *testing.T) {
		analysis := Analyze([]FraudNode{node("a", 40), node("b", 91), node("c", 77)}, nil)
		require.NotNil(t, analysis.HighestRiskNode)
		assert.Equal(t, "b", analysis.HighestRiskNode.ID)
	})

	t.Run("ties keep the earliest node", func(t *testing.T) {
		analysis := Analyze([]FraudNode{node("a", 10), node("b", 88), node("c", 88)}, nil)
		require.NotNil(t, analysis.HighestRiskNode)
		assert.Equal(t, "b", analysis.HighestRiskNode.ID)
	})

	t.Run("result is a copy", func(t *testing.T) {
		nodes := []FraudNode{node("a", 70)}
		analysis := Analyze(nodes, nil)
		analysis.HighestRiskNode.RiskScore = 1
		assert.Equal(t, 70.0, nodes[0].RiskScore)
	})
}

func TestAnalyze_SelfLoopCountsOnce(t *testing.T) {
	nodes := []FraudNode{node("a", 10), node("b", 10)}
	connections := []FraudConnection{link("a", "a", ConnectionDuplicateID)}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, 1, analysis.Degrees["a"])
	assert.Equal(t, 1, analysis.TotalConnections)
	assert.Empty(t, analysis.Clusters)
}

func TestAnalyze_RepeatedRecordsCountAsOneEdge(t *testing.T) {
	nodes := []FraudNode{node("a", 10), node("b", 10)}
	connections := []FraudConnection{
		link("a", "b", ConnectionCollusion),
		link("b", "a", ConnectionCollusion),
		link("a", "b", ConnectionDuplicateID),
	}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, 1, analysis.Degrees["a"])
	assert.Equal(t, 1, analysis.Degrees["b"])
	assert.Empty(t, analysis.RingMembers)
	assert.Equal(t, 3, analysis.TotalConnections)
	assert.Equal(t, map[ConnectionType]int{
		ConnectionCollusion:   2,
		ConnectionDuplicateID: 1,
	}, analysis.ConnectionTypeCounts)
	assert.Equal(t, [][]string{{"a", "b"}}, analysis.Clusters)
}

func TestAnalyze_RepeatedSelfLoopCountsOnce(t *testing.T) {
	nodes := []FraudNode{node("a", 10), node("b", 10), node("c", 10)}
	connections := []FraudConnection{
		link("a", "a", ConnectionDuplicateID),
		link("a", "a", ConnectionRapidSubmission),
		link("a", "b", ConnectionCollusion),
		link("c", "a", ConnectionCollusion),
	}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, 3, analysis.Degrees["a"])
	assert.Equal(t, []string{"a"}, nodeIDs(analysis.RingMembers))
}

func TestAnalyze_DuplicateNodeIDs(t *testing.T) {
	nodes := []FraudNode{node("a", 10), node("b", 20), node("a", 99)}
	connections := []FraudConnection{link("a", "b", ConnectionCollusion)}

	analysis := Analyze(nodes, connections)

	require.Len(t, analysis.Warnings, 1)
	assert.Contains(t, analysis.Warnings[0], `"a"`)
	// the first record for an id is the node; later copies are only warned about
	assert.Empty(t, analysis.RiskTiers.Critical)
	assert.Equal(t, 1, analysis.Degrees["a"])
	assert.Equal(t, "b", analysis.HighestRiskNode.ID)
	assert.Equal(t, [][]string{{"a", "b"}}, analysis.Clusters)
}

func TestAnalyze_Clusters(t *testing.T) {
	nodes := []FraudNode{
		node("a", 10), node("b", 10), node("lonely", 10), node("c", 10),
		node("x", 10), node("y", 10), node("z", 10),
	}
	connections := []FraudConnection{
		link("z", "x", ConnectionNetworkRing),
		link("c", "a", ConnectionCollusion),
		link("b", "c", ConnectionCollusion),
		link("y", "z", ConnectionNetworkRing),
	}

	analysis := Analyze(nodes, connections)

	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"x", "y", "z"},
	}, analysis.Clusters)
}

func TestAnalyze_ClampsRiskScores(t *testing.T) {
	nodes := []FraudNode{node("over", 180), node("under", -20), node("top", 100)}

	analysis := Analyze(nodes, nil)

	assert.Equal(t, []string{"over", "top"}, nodeIDs(analysis.RiskTiers.Critical))
	assert.Equal(t, "over", analysis.HighestRiskNode.ID)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score    float64
		expected RiskTier
	}{
		{100, TierCritical},
		{80, TierCritical},
		{79.9, TierHigh},
		{60, TierHigh},
		{59.9, TierMedium},
		{40, TierMedium},
		{39.9, ""},
		{-5, ""},
		{250, TierCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierFor(tt.score), "score %v", tt.score)
	}
}

func TestNetworkAnalysis_TypeShareNil(t *testing.T) {
	var analysis *NetworkAnalysis
	assert.Equal(t, 0.0, analysis.TypeShare(ConnectionCollusion))
}
