package engine

import (
	"sort"

	"github.com/rawblock/muling-graph-engine/pkg/models"
)

// patternTypeToGraph normalizes a ring's pattern_type to the graph
// snapshot's patternType vocabulary (spec.md §6 note: layered_shell → shell).
func patternTypeToGraph(patternType string) string {
	if patternType == patternShell {
		return "shell"
	}
	return patternType
}

// FormatReport assembles the final JSON-shaped report from the graph, the
// aggregation result, and the computed account scores. Suspicious accounts
// are sorted by suspicion_score descending; ties are broken by ascending
// account ID, so the order does not depend on map iteration.
func FormatReport(g *TransactionGraph, agg *AggregateResult, accountScores map[string]float64, processingSeconds float64, diagnostics []models.Diagnostic) *models.Report {
	suspiciousAccounts := make([]models.AccountReport, 0, len(agg.Accounts()))
	for _, account := range agg.Accounts() {
		ringID := agg.RingID(account)
		if ringID == "" {
			ringID = "UNKNOWN"
		}
		patterns := agg.DetailLabels(account)
		sort.Strings(patterns)

		suspiciousAccounts = append(suspiciousAccounts, models.AccountReport{
			AccountID:        account,
			SuspicionScore:   accountScores[account],
			DetectedPatterns: patterns,
			RingID:           ringID,
		})
	}
	sort.SliceStable(suspiciousAccounts, func(i, j int) bool {
		if suspiciousAccounts[i].SuspicionScore != suspiciousAccounts[j].SuspicionScore {
			return suspiciousAccounts[i].SuspicionScore > suspiciousAccounts[j].SuspicionScore
		}
		return suspiciousAccounts[i].AccountID < suspiciousAccounts[j].AccountID
	})

	fraudRings := make([]models.RingReport, 0, len(agg.Rings))
	ringRiskByID := make(map[string]float64, len(agg.Rings))
	for _, ring := range agg.Rings {
		memberScores := make([]float64, len(ring.MemberAccounts))
		for i, m := range ring.MemberAccounts {
			memberScores[i] = accountScores[m]
		}
		risk := ScoreRing(memberScores, ring.PatternType)
		ringRiskByID[ring.RingID] = risk

		fraudRings = append(fraudRings, models.RingReport{
			RingID:         ring.RingID,
			MemberAccounts: ring.MemberAccounts,
			PatternType:    ring.PatternType,
			RiskScore:      risk,
		})
	}

	graph := buildGraphSnapshot(g, agg, accountScores, fraudRings, ringRiskByID)

	return &models.Report{
		SuspiciousAccounts: suspiciousAccounts,
		FraudRings:         fraudRings,
		Graph:              graph,
		Summary: models.Summary{
			TotalAccountsAnalyzed:     g.NodeCount(),
			SuspiciousAccountsFlagged: len(suspiciousAccounts),
			FraudRingsDetected:        len(fraudRings),
			ProcessingTimeSeconds:     roundTo(processingSeconds, 2),
		},
		Diagnostics: diagnostics,
	}
}

func buildGraphSnapshot(g *TransactionGraph, agg *AggregateResult, accountScores map[string]float64, fraudRings []models.RingReport, ringRiskByID map[string]float64) models.Graph {
	nodes := make([]models.GraphNode, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		score, suspicious := accountScores[n]
		var ringID *string
		var patternType *string
		if suspicious {
			rid := agg.RingID(n)
			if rid == "" {
				rid = "UNKNOWN"
			}
			ringID = &rid

			for _, ring := range agg.Rings {
				if ring.RingID == rid {
					pt := patternTypeToGraph(ring.PatternType)
					patternType = &pt
					break
				}
			}
		}
		stats := g.Stats(n)
		nodes = append(nodes, models.GraphNode{
			ID:                n,
			RiskScore:         score,
			Suspicious:        suspicious,
			RingID:            ringID,
			PatternType:       patternType,
			TotalTransactions: stats.TotalDegree(),
		})
	}

	edges := make([]models.GraphEdge, 0, g.EdgeCount())
	for _, n := range g.Nodes() {
		for _, e := range g.OutgoingEdges(n) {
			edges = append(edges, models.GraphEdge{
				ID:        e.TransactionID,
				Source:    n,
				Target:    e.Target,
				Amount:    e.Amount,
				Timestamp: e.Timestamp,
			})
		}
	}

	rings := make([]models.GraphRing, 0, len(fraudRings))
	for _, r := range fraudRings {
		rings = append(rings, models.GraphRing{
			RingID:      r.RingID,
			PatternType: patternTypeToGraph(r.PatternType),
			MemberCount: len(r.MemberAccounts),
			RiskScore:   ringRiskByID[r.RingID],
			Members:     r.MemberAccounts,
		})
	}

	return models.Graph{Nodes: nodes, Edges: edges, Rings: rings}
}
