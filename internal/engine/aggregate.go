package engine

import "fmt"

// Pattern-family labels used by both the aggregator and the scorer.
const (
	patternCycle   = "cycle"
	patternSmurf   = "smurfing"
	patternShell   = "layered_shell"
	detailShellMid = "shell_intermediary"
)

// accountRecord is the single per-account aggregate the design note in
// spec.md §9 calls for, replacing four parallel string-keyed maps.
type accountRecord struct {
	patternFamilies map[string]struct{}
	detailLabels    map[string]struct{}
	lastRingID      string
	involvement     int
}

func newAccountRecord() *accountRecord {
	return &accountRecord{
		patternFamilies: make(map[string]struct{}),
		detailLabels:    make(map[string]struct{}),
	}
}

// FraudRing is an assigned ring, ready for scoring and formatting.
type FraudRing struct {
	RingID         string
	MemberAccounts []string
	PatternType    string
}

// AggregateResult is the product of the aggregation phase: per-account
// pattern/ring bookkeeping plus the ordered, ID-assigned ring list.
type AggregateResult struct {
	accounts map[string]*accountRecord
	Rings    []FraudRing
}

// Aggregate consumes the three detector outputs in the fixed order spec.md
// §4.6/§5 mandates — cycles, then smurfing, then shells — assigning a
// single monotonic RING_### counter as it goes.
func Aggregate(cycles []CycleRing, smurfs []SmurfingRing, shells []ShellChain) *AggregateResult {
	result := &AggregateResult{
		accounts: make(map[string]*accountRecord),
		Rings:    make([]FraudRing, 0, len(cycles)+len(smurfs)+len(shells)),
	}

	ringCounter := 0
	nextRingID := func() string {
		ringCounter++
		return fmt.Sprintf("RING_%03d", ringCounter)
	}

	for _, cr := range cycles {
		ringID := nextRingID()
		for _, member := range cr.Members {
			rec := result.recordFor(member)
			rec.patternFamilies[patternCycle] = struct{}{}
			rec.detailLabels[fmt.Sprintf("cycle_length_%d", cr.Length)] = struct{}{}
			rec.lastRingID = ringID
			rec.involvement++
		}
		result.Rings = append(result.Rings, FraudRing{
			RingID:         ringID,
			MemberAccounts: cr.Members,
			PatternType:    patternCycle,
		})
	}

	for _, sr := range smurfs {
		ringID := nextRingID()
		for _, member := range sr.Members {
			rec := result.recordFor(member)
			rec.patternFamilies[patternSmurf] = struct{}{}
			rec.detailLabels[sr.Pattern] = struct{}{}
			rec.lastRingID = ringID
			rec.involvement++
		}
		result.Rings = append(result.Rings, FraudRing{
			RingID:         ringID,
			MemberAccounts: sr.Members,
			PatternType:    patternSmurf,
		})
	}

	for _, sc := range shells {
		ringID := nextRingID()
		shellSet := make(map[string]struct{}, len(sc.ShellAccounts))
		for _, s := range sc.ShellAccounts {
			shellSet[s] = struct{}{}
		}
		for _, member := range sc.Members {
			rec := result.recordFor(member)
			rec.patternFamilies[patternShell] = struct{}{}
			detail := patternShell
			if _, isShell := shellSet[member]; isShell {
				detail = detailShellMid
			}
			rec.detailLabels[detail] = struct{}{}
			rec.lastRingID = ringID
			rec.involvement++
		}
		result.Rings = append(result.Rings, FraudRing{
			RingID:         ringID,
			MemberAccounts: sc.Members,
			PatternType:    patternShell,
		})
	}

	return result
}

func (r *AggregateResult) recordFor(account string) *accountRecord {
	rec, ok := r.accounts[account]
	if !ok {
		rec = newAccountRecord()
		r.accounts[account] = rec
	}
	return rec
}

// Accounts returns every flagged account ID.
func (r *AggregateResult) Accounts() []string {
	out := make([]string, 0, len(r.accounts))
	for a := range r.accounts {
		out = append(out, a)
	}
	return out
}

// PatternFamilies returns the pattern-family set for an account.
func (r *AggregateResult) PatternFamilies(account string) map[string]struct{} {
	if rec, ok := r.accounts[account]; ok {
		return rec.patternFamilies
	}
	return nil
}

// DetailLabels returns the granular detected_patterns labels for an account.
func (r *AggregateResult) DetailLabels(account string) []string {
	rec, ok := r.accounts[account]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rec.detailLabels))
	for d := range rec.detailLabels {
		out = append(out, d)
	}
	return out
}

// RingID returns the last ring ID assigned to the account, or "" if none.
func (r *AggregateResult) RingID(account string) string {
	if rec, ok := r.accounts[account]; ok {
		return rec.lastRingID
	}
	return ""
}

// Involvement returns the number of rings the account belongs to.
func (r *AggregateResult) Involvement(account string) int {
	if rec, ok := r.accounts[account]; ok {
		return rec.involvement
	}
	return 0
}
