package engine

import "sort"

// Pattern 1 — circular fund routing.
//
// Finds closed directed loops of length 3 to 5 (A→B→C→A and friends).
// Implemented as an iterative DFS with an explicit stack — per spec.md §9's
// design note — so the hard iteration cap applies uniformly regardless of
// how deep or wide a candidate's neighborhood is.

const (
	cycleMinLength    = 3
	cycleMaxLength    = 5
	cycleMaxIterations = 100_000
	cycleMaxRings      = 50
)

// CycleRing is a detected circular routing ring. Members is the
// rotation-normalized member list (see normalizeCycle).
type CycleRing struct {
	Members []string
	Length  int
}

// stackFrame is one explicit-stack entry for the bounded DFS: the node
// being explored, a snapshot of the path and visited set to reach it, and
// the next neighbor index to examine on resume.
type stackFrame struct {
	node         string
	path         []string
	visited      map[string]struct{}
	neighborIdx  int
}

// DetectCycles enumerates unique directed simple cycles of length
// [cycleMinLength, cycleMaxLength], under the hard iteration and cycle-count
// caps in spec.md §4.3. Partial completion on cap exhaustion is not an
// error — the detector simply returns what it found.
func DetectCycles(g *TransactionGraph) []CycleRing {
	found := make(map[string]struct{})
	results := make([]CycleRing, 0)
	iterations := 0

	candidates := cycleCandidates(g)

	for _, start := range candidates {
		if len(found) >= cycleMaxRings || iterations >= cycleMaxIterations {
			break
		}

		stack := []stackFrame{{
			node:        start,
			path:        []string{start},
			visited:     map[string]struct{}{start: {}},
			neighborIdx: 0,
		}}

		for len(stack) > 0 {
			iterations++
			if iterations >= cycleMaxIterations || len(found) >= cycleMaxRings {
				break
			}

			frame := &stack[len(stack)-1]
			neighbors := g.Neighbors(frame.node)

			advanced := false
			for frame.neighborIdx < len(neighbors) {
				neighbor := neighbors[frame.neighborIdx]
				frame.neighborIdx++
				iterations++
				if iterations >= cycleMaxIterations || len(found) >= cycleMaxRings {
					break
				}

				if neighbor == start && len(frame.path) >= cycleMinLength {
					key := normalizeCycleKey(frame.path)
					if _, ok := found[key]; !ok {
						members := normalizeCycle(frame.path)
						found[key] = struct{}{}
						results = append(results, CycleRing{Members: members, Length: len(members)})
					}
					continue
				}

				if _, onPath := frame.visited[neighbor]; !onPath && len(frame.path) < cycleMaxLength {
					newVisited := make(map[string]struct{}, len(frame.visited)+1)
					for v := range frame.visited {
						newVisited[v] = struct{}{}
					}
					newVisited[neighbor] = struct{}{}

					newPath := make([]string, len(frame.path)+1)
					copy(newPath, frame.path)
					newPath[len(frame.path)] = neighbor

					stack = append(stack, stackFrame{
						node:        neighbor,
						path:        newPath,
						visited:     newVisited,
						neighborIdx: 0,
					})
					advanced = true
					break
				}
			}

			if !advanced && frame.neighborIdx >= len(neighbors) {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return results
}

// cycleCandidates returns, in ascending lexicographic order, the nodes that
// can sit on a directed cycle (both in-degree and out-degree positive).
func cycleCandidates(g *TransactionGraph) []string {
	candidates := make([]string, 0)
	for n := range g.nodes {
		stats := g.Stats(n)
		if stats.InDegree > 0 && stats.OutDegree > 0 {
			candidates = append(candidates, n)
		}
	}
	sort.Strings(candidates)
	return candidates
}

// normalizeCycle rotates a cycle so its lexicographically smallest member
// is first, giving every rotation of the same cycle an identical identity.
func normalizeCycle(cycle []string) []string {
	if len(cycle) == 0 {
		return nil
	}
	minIdx := 0
	for i, v := range cycle {
		if v < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, len(cycle))
	copy(out, cycle[minIdx:])
	copy(out[len(cycle)-minIdx:], cycle[:minIdx])
	return out
}

func normalizeCycleKey(cycle []string) string {
	normalized := normalizeCycle(cycle)
	key := make([]byte, 0, len(normalized)*8)
	for _, m := range normalized {
		key = append(key, m...)
		key = append(key, 0)
	}
	return string(key)
}
