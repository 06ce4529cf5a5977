// Package models holds the wire-shaped types returned by the analysis
// engine and persisted by the history store. These are plain data types —
// no behavior lives here, only JSON shape.
package models

import "time"

// AccountReport is one entry of the report's suspicious_accounts list.
type AccountReport struct {
	AccountID        string   `json:"account_id"`
	SuspicionScore   float64  `json:"suspicion_score"`
	DetectedPatterns []string `json:"detected_patterns"`
	RingID           string   `json:"ring_id"`
}

// RingReport is one entry of the report's fraud_rings list.
type RingReport struct {
	RingID         string   `json:"ring_id"`
	MemberAccounts []string `json:"member_accounts"`
	PatternType    string   `json:"pattern_type"` // cycle | smurfing | layered_shell
	RiskScore      float64  `json:"risk_score"`
}

// GraphNode is one node in the report's graph snapshot.
type GraphNode struct {
	ID                string  `json:"id"`
	RiskScore         float64 `json:"riskScore"`
	Suspicious        bool    `json:"suspicious"`
	RingID            *string `json:"ringId"`
	PatternType       *string `json:"patternType"` // cycle | smurfing | shell
	TotalTransactions int     `json:"totalTransactions"`
}

// GraphEdge is one edge in the report's graph snapshot.
type GraphEdge struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// GraphRing is the compact ring view embedded in the graph snapshot.
type GraphRing struct {
	RingID      string   `json:"ringId"`
	PatternType string   `json:"patternType"` // cycle | smurfing | shell
	MemberCount int      `json:"memberCount"`
	RiskScore   float64  `json:"riskScore"`
	Members     []string `json:"members"`
}

// Graph is the full graph snapshot embedded in the report.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Rings []GraphRing `json:"rings"`
}

// Summary holds the report's top-level run statistics.
type Summary struct {
	TotalAccountsAnalyzed     int     `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged int     `json:"suspicious_accounts_flagged"`
	FraudRingsDetected        int     `json:"fraud_rings_detected"`
	ProcessingTimeSeconds     float64 `json:"processing_time_seconds"`
}

// Diagnostic is a non-fatal warning surfaced alongside an otherwise
// well-formed report (e.g. the detector phase hit its wall-clock bound).
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Report is the full JSON-shaped analysis result.
type Report struct {
	SuspiciousAccounts []AccountReport `json:"suspicious_accounts"`
	FraudRings         []RingReport    `json:"fraud_rings"`
	Graph              Graph           `json:"graph"`
	Summary            Summary         `json:"summary"`
	Diagnostics        []Diagnostic    `json:"diagnostics,omitempty"`
}

// RunSummary is the thin row persisted by the history store — a digest of
// a Report, not the report itself. It exists to exercise the engine's
// optional persistence seam, not to reconstruct a full report later.
type RunSummary struct {
	RunID                 string    `json:"run_id"`
	SubmittedAt           time.Time `json:"submitted_at"`
	NodeCount             int       `json:"node_count"`
	EdgeCount             int       `json:"edge_count"`
	SuspiciousCount       int       `json:"suspicious_count"`
	RingCount             int       `json:"ring_count"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
}
