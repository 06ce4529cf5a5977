package engine

import "math"

// patternBaseScores are the per-pattern-family base suspicion contributions
// from spec.md §4.7; any unrecognized label defaults to 20.
var patternBaseScores = map[string]float64{
	patternCycle: 40.0,
	patternSmurf: 30.0,
	patternShell: 30.0,
}

const defaultPatternBase = 20.0
const multiPatternBonus = 15.0

// ringSeverity are the pattern_type multipliers applied to a ring's mean
// member score; unrecognized pattern types default to 1.0.
var ringSeverity = map[string]float64{
	patternCycle: 1.2,
	patternSmurf: 1.0,
	patternShell: 1.1,
}

// ScoreAccounts computes each flagged account's suspicion_score per the
// formula in spec.md §4.7: base pattern scores, involvement scaling,
// multi-pattern bonus, rounded to one decimal and clamped to [0, 100].
func ScoreAccounts(agg *AggregateResult) map[string]float64 {
	scores := make(map[string]float64)

	for _, account := range agg.Accounts() {
		families := agg.PatternFamilies(account)

		base := 0.0
		for p := range families {
			if b, ok := patternBaseScores[p]; ok {
				base += b
			} else {
				base += defaultPatternBase
			}
		}

		involvement := agg.Involvement(account)
		if involvement > 1 {
			base *= 1 + 0.15*float64(involvement-1)
		}

		if len(families) > 1 {
			base += multiPatternBonus
		}

		scores[account] = clampScore(roundTo(base, 1))
	}

	return scores
}

// ScoreRing computes a ring's risk_score: the mean of its member suspicion
// scores, scaled by the pattern's severity weight, rounded and clamped.
func ScoreRing(memberScores []float64, patternType string) float64 {
	if len(memberScores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, s := range memberScores {
		sum += s
	}
	avg := sum / float64(len(memberScores))

	severity, ok := ringSeverity[patternType]
	if !ok {
		severity = 1.0
	}

	return clampScore(roundTo(avg*severity, 1))
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
