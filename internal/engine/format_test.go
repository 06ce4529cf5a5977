package engine

import (
	"testing"
	"time"
)

func TestFormatReport_SortsSuspiciousAccountsByScoreDescWithIDTieBreak(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "B", 100, 0),
		txn("T2", "B", "C", 100, time.Hour),
		txn("T3", "C", "A", 100, 2*time.Hour),
	}
	g := BuildGraph(txns)
	agg := Aggregate(DetectCycles(g), nil, nil)
	scores := ScoreAccounts(agg)

	report := FormatReport(g, agg, scores, 0.01, nil)

	if len(report.SuspiciousAccounts) != 3 {
		t.Fatalf("expected 3 suspicious accounts, got %d", len(report.SuspiciousAccounts))
	}
	// All three triangle members score identically, so the tie-break on
	// account ID must produce lexicographic order.
	if report.SuspiciousAccounts[0].AccountID != "A" ||
		report.SuspiciousAccounts[1].AccountID != "B" ||
		report.SuspiciousAccounts[2].AccountID != "C" {
		t.Errorf("expected tie-broken order A,B,C, got %v", report.SuspiciousAccounts)
	}
}

func TestFormatReport_GraphSnapshotMarksSuspiciousNodes(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "B", 100, 0),
		txn("T2", "B", "C", 100, time.Hour),
		txn("T3", "C", "A", 100, 2*time.Hour),
		txn("T4", "A", "D", 50, 3*time.Hour), // D is never on the cycle
	}
	g := BuildGraph(txns)
	agg := Aggregate(DetectCycles(g), nil, nil)
	scores := ScoreAccounts(agg)
	report := FormatReport(g, agg, scores, 0.01, nil)

	byID := make(map[string]bool)
	for _, n := range report.Graph.Nodes {
		byID[n.ID] = n.Suspicious
	}
	if !byID["A"] || !byID["B"] || !byID["C"] {
		t.Errorf("expected A, B, C to be marked suspicious: %+v", byID)
	}
	if byID["D"] {
		t.Errorf("did not expect D (off-cycle) to be marked suspicious")
	}
}

func TestFormatReport_SummaryCounts(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "B", 100, 0),
	}
	g := BuildGraph(txns)
	agg := Aggregate(nil, nil, nil)
	scores := ScoreAccounts(agg)
	report := FormatReport(g, agg, scores, 0.5, nil)

	if report.Summary.TotalAccountsAnalyzed != 2 {
		t.Errorf("expected 2 accounts analyzed, got %d", report.Summary.TotalAccountsAnalyzed)
	}
	if report.Summary.SuspiciousAccountsFlagged != 0 {
		t.Errorf("expected 0 suspicious accounts, got %d", report.Summary.SuspiciousAccountsFlagged)
	}
	if report.Summary.ProcessingTimeSeconds != 0.5 {
		t.Errorf("expected processing time 0.5, got %v", report.Summary.ProcessingTimeSeconds)
	}
}
