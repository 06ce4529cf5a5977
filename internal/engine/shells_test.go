package engine

import (
	"testing"
	"time"
)

// A -> S1 -> S2 -> B, where S1 and S2 each have total degree 2 (one in, one
// out) and sit squarely in the shell band.
func TestDetectShellNetworks_ThreeHopChainWithTwoIntermediaries(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "S1", 100, 0),
		txn("T2", "S1", "S2", 100, time.Hour),
		txn("T3", "S2", "B", 100, 2*time.Hour),
	}
	g := BuildGraph(txns)
	chains := DetectShellNetworks(g)

	if len(chains) == 0 {
		t.Fatal("expected at least one shell chain A->S1->S2->B")
	}

	var full *ShellChain
	for i := range chains {
		if len(chains[i].Members) == 4 {
			full = &chains[i]
		}
	}
	if full == nil {
		t.Fatalf("expected a 4-member chain, got: %+v", chains)
	}
	if full.Members[0] != "A" || full.Members[3] != "B" {
		t.Errorf("expected chain from A to B, got %v", full.Members)
	}
	if len(full.ShellAccounts) != 2 {
		t.Errorf("expected 2 shell intermediaries, got %v", full.ShellAccounts)
	}
}

func TestDetectShellNetworks_HighDegreeIntermediaryIsNotAShell(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "HUB", 100, 0),
		txn("T2", "HUB", "B", 100, time.Hour),
		// Push HUB's degree outside the shell band [2,3].
		txn("T3", "C", "HUB", 100, 2*time.Hour),
		txn("T4", "HUB", "D", 100, 3*time.Hour),
	}
	g := BuildGraph(txns)
	chains := DetectShellNetworks(g)
	for _, c := range chains {
		for _, s := range c.ShellAccounts {
			if s == "HUB" {
				t.Fatalf("HUB has total degree 4 and should never be classified as a shell: %+v", c)
			}
		}
	}
}

func TestDetectShellNetworks_TwoHopChainBelowMinHopsNotReported(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", "S1", 100, 0),
		txn("T2", "S1", "B", 100, time.Hour),
	}
	g := BuildGraph(txns)
	chains := DetectShellNetworks(g)
	for _, c := range chains {
		if c.ChainLength < shellMinHops {
			t.Errorf("found a chain below the minimum hop count: %+v", c)
		}
	}
}
