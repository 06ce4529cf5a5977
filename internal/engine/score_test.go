package engine

import "testing"

func TestScoreAccounts_TriangleCycleOnly(t *testing.T) {
	cycles := []CycleRing{{Members: []string{"A", "B", "C"}, Length: 3}}
	agg := Aggregate(cycles, nil, nil)
	scores := ScoreAccounts(agg)

	for _, acct := range []string{"A", "B", "C"} {
		if scores[acct] != 40.0 {
			t.Errorf("expected %s to score 40.0, got %v", acct, scores[acct])
		}
	}

	ring := agg.Rings[0]
	memberScores := []float64{scores["A"], scores["B"], scores["C"]}
	ringScore := ScoreRing(memberScores, ring.PatternType)
	if ringScore != 48.0 {
		t.Errorf("expected ring score 48.0, got %v", ringScore)
	}
}

func TestScoreAccounts_FanOutSmurfOnly(t *testing.T) {
	members := append([]string{"HUB"}, makeNames(10)...)
	smurfs := []SmurfingRing{{HubAccount: "HUB", Counterparties: makeNames(10), Pattern: "fan_out", Members: members}}
	agg := Aggregate(nil, smurfs, nil)
	scores := ScoreAccounts(agg)

	if scores["HUB"] != 30.0 {
		t.Errorf("expected HUB to score 30.0, got %v", scores["HUB"])
	}

	ringScore := ScoreRing([]float64{30.0}, patternSmurf)
	if ringScore != 30.0 {
		t.Errorf("expected ring score 30.0, got %v", ringScore)
	}
}

func TestScoreAccounts_OverlappingCycleAndSmurfGetsBonus(t *testing.T) {
	cycles := []CycleRing{{Members: []string{"A", "B", "C"}, Length: 3}}
	smurfMembers := append([]string{"A"}, makeNames(10)...)
	smurfs := []SmurfingRing{{HubAccount: "A", Counterparties: makeNames(10), Pattern: "fan_out", Members: smurfMembers}}

	agg := Aggregate(cycles, smurfs, nil)
	scores := ScoreAccounts(agg)

	if scores["A"] != 95.5 {
		t.Errorf("expected A's overlapping-pattern score to be 95.5, got %v", scores["A"])
	}
}

func TestScoreRing_EmptyMembersReturnsZero(t *testing.T) {
	if got := ScoreRing(nil, patternCycle); got != 0.0 {
		t.Errorf("expected 0.0 for an empty member list, got %v", got)
	}
}

func TestClampScore_BoundsToZeroAndHundred(t *testing.T) {
	if clampScore(-5) != 0 {
		t.Error("expected negative scores to clamp to 0")
	}
	if clampScore(150) != 100 {
		t.Error("expected scores above 100 to clamp to 100")
	}
}
