package fraud

import (
	"fmt"
	"math"
)

// Risk tier thresholds and the ring policy constant
const (
	CriticalRiskThreshold = 80.0
	HighRiskThreshold     = 60.0
	MediumRiskThreshold   = 40.0

	// RingDegreeThreshold is the number of distinct counterparties (self-loop
	// included) at which an account is considered part of a fraud ring.
	RingDegreeThreshold = 3
)

// Analyze builds the undirected account graph and derives risk tiers, ring
// membership, connection statistics and the highest-risk node. Connections
// that reference unknown node ids are dropped and recorded as warnings.
func Analyze(nodes []FraudNode, connections []FraudConnection) *NetworkAnalysis {
	analysis := &NetworkAnalysis{
		ConnectionTypeCounts: make(map[ConnectionType]int),
		RiskTiers: RiskTiers{
			Critical: make([]FraudNode, 0),
			High:     make([]FraudNode, 0),
			Medium:   make([]FraudNode, 0),
		},
		RingMembers:        make([]FraudNode, 0),
		Degrees:            make(map[string]int, len(nodes)),
		Clusters:           make([][]string, 0),
		DroppedConnections: make([]DroppedConnection, 0),
		Warnings:           make([]string, 0),
	}

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.ID]; dup {
			analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("duplicate node id %q at position %d ignored for connectivity", n.ID, i))
			continue
		}
		index[n.ID] = i
		analysis.Degrees[n.ID] = 0
	}

	adjacency := make(map[string][]string, len(nodes))
	seen := make(map[[2]string]bool, len(connections))
	for i, c := range connections {
		missing := missingEndpoints(index, c)
		if len(missing) > 0 {
			analysis.DroppedConnections = append(analysis.DroppedConnections, DroppedConnection{
				Index:      i,
				Connection: c,
				MissingIDs: missing,
			})
			analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("connection %d (%s -> %s) references unknown node(s) %v", i, c.From, c.To, missing))
			continue
		}

		analysis.TotalConnections++
		analysis.ConnectionTypeCounts[c.Type]++

		// degree counts distinct undirected edges, not records
		pair := edgeKey(c.From, c.To)
		if seen[pair] {
			continue
		}
		seen[pair] = true

		analysis.Degrees[c.From]++
		if c.To != c.From {
			analysis.Degrees[c.To]++
			adjacency[c.From] = append(adjacency[c.From], c.To)
			adjacency[c.To] = append(adjacency[c.To], c.From)
		}
	}

	var highest *FraudNode
	for i := range nodes {
		n := nodes[i]
		if index[n.ID] != i {
			continue
		}

		switch TierFor(n.RiskScore) {
		case TierCritical:
			analysis.RiskTiers.Critical = append(analysis.RiskTiers.Critical, n)
		case TierHigh:
			analysis.RiskTiers.High = append(analysis.RiskTiers.High, n)
		case TierMedium:
			analysis.RiskTiers.Medium = append(analysis.RiskTiers.Medium, n)
		}

		if analysis.Degrees[n.ID] >= RingDegreeThreshold {
			analysis.RingMembers = append(analysis.RingMembers, n)
		}

		// strict comparison keeps the earliest node on ties
		if highest == nil || clampRisk(n.RiskScore) > clampRisk(highest.RiskScore) {
			highest = &nodes[i]
		}
	}
	if highest != nil {
		h := *highest
		analysis.HighestRiskNode = &h
	}

	analysis.Clusters = connectedClusters(nodes, index, adjacency)

	return analysis
}

// TierFor buckets a risk score. Scores below the medium threshold belong to
// no tier and return the empty string.
func TierFor(riskScore float64) RiskTier {
	score := clampRisk(riskScore)
	switch {
	case score >= CriticalRiskThreshold:
		return TierCritical
	case score >= HighRiskThreshold:
		return TierHigh
	case score >= MediumRiskThreshold:
		return TierMedium
	default:
		return ""
	}
}

func edgeKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func missingEndpoints(index map[string]int, c FraudConnection) []string {
	var missing []string
	if _, ok := index[c.From]; !ok {
		missing = append(missing, c.From)
	}
	if _, ok := index[c.To]; !ok && c.To != c.From {
		missing = append(missing, c.To)
	}
	return missing
}

// connectedClusters returns the connected components with at least two
// members, ordered by the input position of their first member. Member ids
// are listed in input order.
func connectedClusters(nodes []FraudNode, index map[string]int, adjacency map[string][]string) [][]string {
	component := make(map[string]int, len(nodes))
	sizes := make([]int, 0)

	for i, n := range nodes {
		if index[n.ID] != i {
			continue
		}
		if _, seen := component[n.ID]; seen {
			continue
		}

		id := len(sizes)
		sizes = append(sizes, 0)
		component[n.ID] = id
		queue := []string{n.ID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			sizes[id]++
			for _, next := range adjacency[current] {
				if _, seen := component[next]; !seen {
					component[next] = id
					queue = append(queue, next)
				}
			}
		}
	}

	// components are numbered in order of their first member, so bucketing by
	// id in input order keeps both orderings stable
	buckets := make([][]string, len(sizes))
	for i, n := range nodes {
		if index[n.ID] != i {
			continue
		}
		id := component[n.ID]
		if sizes[id] >= 2 {
			buckets[id] = append(buckets[id], n.ID)
		}
	}

	clusters := make([][]string, 0)
	for _, members := range buckets {
		if len(members) > 0 {
			clusters = append(clusters, members)
		}
	}
	return clusters
}

func clampRisk(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
