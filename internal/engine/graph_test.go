package engine

import (
	"testing"
	"time"
)

func txn(id, sender, receiver string, amount float64, offset time.Duration) Transaction {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Transaction{
		TransactionID: id,
		SenderID:      sender,
		ReceiverID:    receiver,
		Amount:        amount,
		Timestamp:     base.Add(offset),
	}
}

func TestBuildGraph_DegreesAndCounts(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "B", 100, 0),
		txn("T2", "B", "C", 90, time.Hour),
		txn("T3", "A", "B", 50, 2*time.Hour), // parallel edge A->B
	}
	g := BuildGraph(txns)

	if g.NodeCount() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Fatalf("expected 3 edges, got %d", g.EdgeCount())
	}

	aStats := g.Stats("A")
	if aStats.OutDegree != 2 || aStats.InDegree != 0 {
		t.Errorf("unexpected A stats: %+v", aStats)
	}
	if aStats.OutAmountTotal != 150 {
		t.Errorf("expected A out total 150, got %v", aStats.OutAmountTotal)
	}

	bStats := g.Stats("B")
	if bStats.InDegree != 2 || bStats.OutDegree != 1 {
		t.Errorf("unexpected B stats: %+v", bStats)
	}
	if bStats.TotalDegree() != 3 {
		t.Errorf("expected B total degree 3, got %d", bStats.TotalDegree())
	}
}

func TestBuildGraph_NodeOrderIsFirstSeen(t *testing.T) {
	txns := []Transaction{
		txn("T1", "C", "A", 10, 0),
		txn("T2", "A", "B", 10, time.Hour),
	}
	g := BuildGraph(txns)
	order := g.Nodes()
	want := []string{"C", "A", "B"}
	if len(order) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(order))
	}
	for i, n := range want {
		if order[i] != n {
			t.Errorf("position %d: expected %s, got %s", i, n, order[i])
		}
	}
}

func TestBuildGraph_NeighborsPreserveInsertionOrderWithRepeats(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "B", 10, 0),
		txn("T2", "A", "C", 10, time.Hour),
		txn("T3", "A", "B", 10, 2*time.Hour),
	}
	g := BuildGraph(txns)
	neighbors := g.Neighbors("A")
	want := []string{"B", "C", "B"}
	if len(neighbors) != len(want) {
		t.Fatalf("expected %d neighbors, got %d", len(want), len(neighbors))
	}
	for i := range want {
		if neighbors[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], neighbors[i])
		}
	}
}
