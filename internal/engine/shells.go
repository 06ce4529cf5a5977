package engine

// Pattern 3 — layered shell network detection.
//
// Finds directed simple paths of >= shellMinHops edges where every
// intermediate node (neither first nor last) has a total degree in the
// "shell" band [shellMinDegree, shellMaxDegree] — the signature of a
// passthrough account whose only purpose is to break the money trail.

const (
	shellMinDegree = 2
	shellMaxDegree = 3
	shellMinHops   = 3
	shellMaxHops   = 8
)

// ShellChain is a detected layered-shell path.
type ShellChain struct {
	Members       []string // origin .. endpoint
	ShellAccounts []string // the shell-like intermediates, in path order
	ChainLength   int      // hops = len(Members) - 1
}

// DetectShellNetworks searches from every non-shell-like node for chains
// through shell intermediaries. Per spec.md §4.5's design note, a chain is
// recorded both as its running path crosses the hop threshold and again
// when it terminates at a non-shell endpoint — deduplicated by exact
// ordered path identity, not merged.
func DetectShellNetworks(g *TransactionGraph) []ShellChain {
	results := make([]ShellChain, 0)
	seen := make(map[string]struct{})

	for _, start := range g.Nodes() {
		if isShellAccount(g.Stats(start).TotalDegree()) {
			continue // shells are intermediaries, not originators
		}

		path := []string{start}
		visited := map[string]struct{}{start: {}}
		findShellChains(g, start, path, visited, nil, &results, seen)
	}

	return results
}

func isShellAccount(totalDegree int) bool {
	return totalDegree >= shellMinDegree && totalDegree <= shellMaxDegree
}

func findShellChains(
	g *TransactionGraph,
	current string,
	path []string,
	visited map[string]struct{},
	shellsInPath []string,
	results *[]ShellChain,
	seen map[string]struct{},
) {
	hops := len(path) - 1
	recordIfValid(path, shellsInPath, hops, results, seen)

	if hops >= shellMaxHops {
		return
	}

	for _, neighbor := range g.Neighbors(current) {
		if _, onPath := visited[neighbor]; onPath {
			continue
		}

		shellLike := isShellAccount(g.Stats(neighbor).TotalDegree())

		if shellLike {
			visited[neighbor] = struct{}{}
			nextPath := append(path, neighbor)
			nextShells := append(shellsInPath, neighbor)
			findShellChains(g, neighbor, nextPath, visited, nextShells, results, seen)
			delete(visited, neighbor)
			continue
		}

		if len(shellsInPath) >= 1 && hops >= shellMinHops-1 {
			visited[neighbor] = struct{}{}
			nextPath := append(path, neighbor)
			recordIfValid(nextPath, shellsInPath, len(nextPath)-1, results, seen)
			delete(visited, neighbor)
		}
	}
}

func recordIfValid(path []string, shellsInPath []string, hops int, results *[]ShellChain, seen map[string]struct{}) {
	if hops < shellMinHops || len(shellsInPath) == 0 {
		return
	}
	key := pathKey(path)
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}

	members := make([]string, len(path))
	copy(members, path)
	shells := make([]string, len(shellsInPath))
	copy(shells, shellsInPath)

	*results = append(*results, ShellChain{
		Members:       members,
		ShellAccounts: shells,
		ChainLength:   hops,
	})
}

func pathKey(path []string) string {
	key := make([]byte, 0, len(path)*8)
	for _, p := range path {
		key = append(key, p...)
		key = append(key, 0)
	}
	return string(key)
}
