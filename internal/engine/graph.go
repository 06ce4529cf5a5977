package engine

import "time"

// Edge is a directed edge stored in one node's adjacency list. target is the
// other endpoint seen from the indexing side: the receiver in the forward
// adjacency, the sender in the reverse adjacency.
type Edge struct {
	Target        string
	Amount        float64
	Timestamp     time.Time
	TransactionID string
}

// NodeStats holds the precomputed per-account aggregates the detectors and
// scorer rely on instead of re-walking adjacency lists.
type NodeStats struct {
	InDegree      int
	OutDegree     int
	InAmountTotal float64
	OutAmountTotal float64
}

// TotalDegree is the shell-classification input and the graph snapshot's
// totalTransactions value.
func (s NodeStats) TotalDegree() int {
	return s.InDegree + s.OutDegree
}

// TransactionGraph is the directed multigraph built once from a
// transaction list and observed read-only by every detector afterward.
type TransactionGraph struct {
	forward map[string][]Edge // adj[sender] = forward edges, target=receiver
	reverse map[string][]Edge // reverseAdj[receiver] = reverse edges, target=sender
	nodes   map[string]struct{}
	stats   map[string]*NodeStats
	// nodeOrder preserves first-seen order so callers that want a
	// deterministic full node sweep (e.g. the shell detector and the report's
	// graph snapshot) don't need to sort a set on every call.
	nodeOrder []string
}

// BuildGraph constructs a directed multigraph from a transaction list. Edge
// insertion order within an adjacency list equals transaction order.
func BuildGraph(transactions []Transaction) *TransactionGraph {
	g := &TransactionGraph{
		forward: make(map[string][]Edge),
		reverse: make(map[string][]Edge),
		nodes:   make(map[string]struct{}),
		stats:   make(map[string]*NodeStats),
	}
	for _, txn := range transactions {
		g.addTransaction(txn)
	}
	return g
}

func (g *TransactionGraph) addTransaction(txn Transaction) {
	g.addNode(txn.SenderID)
	g.addNode(txn.ReceiverID)

	g.forward[txn.SenderID] = append(g.forward[txn.SenderID], Edge{
		Target:        txn.ReceiverID,
		Amount:        txn.Amount,
		Timestamp:     txn.Timestamp,
		TransactionID: txn.TransactionID,
	})
	g.reverse[txn.ReceiverID] = append(g.reverse[txn.ReceiverID], Edge{
		Target:        txn.SenderID,
		Amount:        txn.Amount,
		Timestamp:     txn.Timestamp,
		TransactionID: txn.TransactionID,
	})

	sStats := g.statsFor(txn.SenderID)
	sStats.OutDegree++
	sStats.OutAmountTotal += txn.Amount

	rStats := g.statsFor(txn.ReceiverID)
	rStats.InDegree++
	rStats.InAmountTotal += txn.Amount
}

func (g *TransactionGraph) addNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = struct{}{}
	g.nodeOrder = append(g.nodeOrder, id)
}

func (g *TransactionGraph) statsFor(id string) *NodeStats {
	s, ok := g.stats[id]
	if !ok {
		s = &NodeStats{}
		g.stats[id] = s
	}
	return s
}

// Neighbors returns the forward-edge targets of n, in insertion order,
// possibly with repeats (parallel edges).
func (g *TransactionGraph) Neighbors(n string) []string {
	edges := g.forward[n]
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.Target
	}
	return out
}

// OutgoingEdges returns n's forward adjacency (target = receiver).
func (g *TransactionGraph) OutgoingEdges(n string) []Edge {
	return g.forward[n]
}

// IncomingEdges returns n's reverse adjacency (target = sender).
func (g *TransactionGraph) IncomingEdges(n string) []Edge {
	return g.reverse[n]
}

// Stats returns the node's precomputed aggregates. A node known only via
// the node set (never possible here, since every node arrives via a
// transaction) would return a zero-valued stats block.
func (g *TransactionGraph) Stats(n string) NodeStats {
	if s, ok := g.stats[n]; ok {
		return *s
	}
	return NodeStats{}
}

// Nodes returns every account ID, in first-seen order.
func (g *TransactionGraph) Nodes() []string {
	out := make([]string, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// NodeCount is the number of distinct accounts discovered.
func (g *TransactionGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount is the number of accepted transactions (one forward edge each).
func (g *TransactionGraph) EdgeCount() int {
	total := 0
	for _, edges := range g.forward {
		total += len(edges)
	}
	return total
}
