package engine

import (
	"sort"
	"time"
)

// Pattern 2 — smurfing (temporal fan-in / fan-out).
//
// Flags a node whose incoming (fan-in) or outgoing (fan-out) edges touch at
// least smurfThreshold distinct counterparties within some rolling
// smurfWindow. Each node is checked independently in both directions and
// may be flagged for at most one ring per direction.

const (
	smurfWindow    = 72 * time.Hour
	smurfThreshold = 10
)

// SmurfingRing is a detected fan-in or fan-out hub.
type SmurfingRing struct {
	HubAccount     string
	Counterparties []string
	Pattern        string // "fan_in" or "fan_out"
	Members        []string
}

// DetectSmurfing scans every node for temporal fan-in/fan-out hubs. Node
// iteration order is pinned to lexicographic order for determinism.
func DetectSmurfing(g *TransactionGraph) []SmurfingRing {
	nodes := g.Nodes()
	sort.Strings(nodes)

	results := make([]SmurfingRing, 0)

	for _, node := range nodes {
		incoming := g.IncomingEdges(node)
		if partners := widestWindow(incoming); partners != nil {
			results = append(results, SmurfingRing{
				HubAccount:     node,
				Counterparties: partners,
				Pattern:        "fan_in",
				Members:        append([]string{node}, partners...),
			})
		}

		outgoing := g.OutgoingEdges(node)
		if partners := widestWindow(outgoing); partners != nil {
			results = append(results, SmurfingRing{
				HubAccount:     node,
				Counterparties: partners,
				Pattern:        "fan_out",
				Members:        append([]string{node}, partners...),
			})
		}
	}

	return results
}

// widestWindow runs the two-pointer sliding window over edges sorted by
// timestamp and returns the widest (by distinct-counterparty count) 72-hour
// window's counterparty set, or nil if no window reaches smurfThreshold.
// Ties keep the earlier (first-found) window, matching spec.md §4.4.
func widestWindow(edges []Edge) []string {
	if len(edges) < smurfThreshold {
		return nil
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var best map[string]struct{}

	left := 0
	for right := 0; right < len(sorted); right++ {
		for sorted[right].Timestamp.Sub(sorted[left].Timestamp) > smurfWindow {
			left++
		}

		current := make(map[string]struct{})
		for i := left; i <= right; i++ {
			current[sorted[i].Target] = struct{}{}
		}

		if len(current) >= smurfThreshold && len(current) > len(best) {
			best = current
		}
	}

	if len(best) < smurfThreshold {
		return nil
	}

	out := make([]string, 0, len(best))
	for k := range best {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
