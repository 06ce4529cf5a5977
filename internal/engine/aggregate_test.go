package engine

import "testing"

func TestAggregate_FixedOrderAssignsRingIDsCyclesFirst(t *testing.T) {
	cycles := []CycleRing{{Members: []string{"A", "B", "C"}, Length: 3}}
	smurfs := []SmurfingRing{{HubAccount: "D", Counterparties: []string{"E", "F"}, Pattern: "fan_out", Members: []string{"D", "E", "F"}}}
	shells := []ShellChain{{Members: []string{"G", "H", "I", "J"}, ShellAccounts: []string{"H", "I"}, ChainLength: 3}}

	agg := Aggregate(cycles, smurfs, shells)

	if agg.RingID("A") != "RING_001" {
		t.Errorf("expected cycle ring to be assigned RING_001 first, got %s", agg.RingID("A"))
	}
	if agg.RingID("D") != "RING_002" {
		t.Errorf("expected smurfing ring to be assigned RING_002 second, got %s", agg.RingID("D"))
	}
	if agg.RingID("G") != "RING_003" {
		t.Errorf("expected shell ring to be assigned RING_003 last, got %s", agg.RingID("G"))
	}
}

func TestAggregate_InvolvementCountsAcrossRings(t *testing.T) {
	cycles := []CycleRing{{Members: []string{"A", "B", "C"}, Length: 3}}
	smurfs := []SmurfingRing{{HubAccount: "A", Counterparties: makeNames(10), Pattern: "fan_out", Members: append([]string{"A"}, makeNames(10)...)}}

	agg := Aggregate(cycles, smurfs, nil)

	if agg.Involvement("A") != 2 {
		t.Errorf("expected A to be involved in 2 rings, got %d", agg.Involvement("A"))
	}
	families := agg.PatternFamilies("A")
	if _, ok := families[patternCycle]; !ok {
		t.Error("expected A's pattern families to include cycle")
	}
	if _, ok := families[patternSmurf]; !ok {
		t.Error("expected A's pattern families to include smurfing")
	}
}

func TestAggregate_ShellIntermediaryDetailLabel(t *testing.T) {
	shells := []ShellChain{{Members: []string{"A", "S1", "S2", "B"}, ShellAccounts: []string{"S1", "S2"}, ChainLength: 3}}
	agg := Aggregate(nil, nil, shells)

	labels := agg.DetailLabels("S1")
	found := false
	for _, l := range labels {
		if l == detailShellMid {
			found = true
		}
	}
	if !found {
		t.Errorf("expected S1 to carry the shell_intermediary detail label, got %v", labels)
	}

	endpointLabels := agg.DetailLabels("A")
	for _, l := range endpointLabels {
		if l == detailShellMid {
			t.Errorf("did not expect chain origin A to carry the shell_intermediary label")
		}
	}
}

func makeNames(n int) []string {
	out := make([]string, n)
	letters := "BCDEFGHIJK"
	for i := 0; i < n; i++ {
		out[i] = string(letters[i%len(letters)]) + string(rune('0'+i))
	}
	return out
}
