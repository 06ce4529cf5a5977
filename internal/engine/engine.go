// Package engine implements the analytic core described in SPEC_FULL.md:
// CSV parsing, directed multigraph construction, the three pattern
// detectors, aggregation, scoring, and report formatting.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rawblock/muling-graph-engine/pkg/models"
)

// DetectorTimeout bounds the fan-out detector phase (spec.md §5). When it
// elapses, all three detector outputs are discarded and a diagnostic is
// attached to the report instead of failing the run.
const DetectorTimeout = 15 * time.Second

// Hub is the minimal surface the engine needs from an optional websocket
// lifecycle broadcaster (internal/api.Hub implements this). A nil Hub is a
// valid, no-op choice — the engine never requires one.
type Hub interface {
	Broadcast(data []byte)
}

// HistoryStore is the minimal surface the engine needs from an optional
// run-history sink (internal/history.Store implements this).
type HistoryStore interface {
	SaveRun(ctx context.Context, summary models.RunSummary) error
}

// Engine is the single entry point for the analysis pipeline.
type Engine struct {
	logger  *zap.SugaredLogger
	hub     Hub
	history HistoryStore
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithHub attaches a websocket lifecycle broadcaster.
func WithHub(hub Hub) Option {
	return func(e *Engine) { e.hub = hub }
}

// WithHistoryStore attaches a best-effort run-history sink.
func WithHistoryStore(store HistoryStore) Option {
	return func(e *Engine) { e.history = store }
}

// WithLogger overrides the default no-op-safe logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New constructs an Engine. A nil logger is replaced with a production
// zap logger so callers never need to special-case logging setup.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		plain, _ := zap.NewProduction()
		e.logger = plain.Sugar()
	}
	return e
}

// detectorOutputs bundles the three detectors' results for the join.
type detectorOutputs struct {
	cycles []CycleRing
	smurfs []SmurfingRing
	shells []ShellChain
}

// Analyze runs the full pipeline on raw CSV bytes: parse → build graph →
// run detectors (parallel, bounded by DetectorTimeout) → aggregate →
// score → format. It returns a *ParseError for the fatal conditions in
// spec.md §4.1/§7; all other irregularities are absorbed into the report.
func (e *Engine) Analyze(ctx context.Context, runID string, content []byte) (*models.Report, error) {
	start := time.Now()

	transactions, err := ParseCSV(content)
	if err != nil {
		return nil, err
	}

	graph := BuildGraph(transactions)
	e.broadcast(runID, "run_started", map[string]any{"node_count": graph.NodeCount()})

	outputs, diagnostics := e.runDetectors(ctx, graph, runID)

	agg := Aggregate(outputs.cycles, outputs.smurfs, outputs.shells)
	scores := ScoreAccounts(agg)

	elapsed := time.Since(start).Seconds()
	report := FormatReport(graph, agg, scores, elapsed, diagnostics)

	e.persistSummary(ctx, runID, start, graph, report)
	e.broadcast(runID, "run_completed", map[string]any{
		"suspicious_accounts_flagged": report.Summary.SuspiciousAccountsFlagged,
		"fraud_rings_detected":       report.Summary.FraudRingsDetected,
	})

	return report, nil
}

// runDetectors launches the three detectors concurrently over the
// read-only graph and joins them against DetectorTimeout. On expiry, all
// three outputs are discarded (per the open question in spec.md §9, the
// current reference drops all three on any timeout) and a diagnostic
// describing the timeout is returned.
func (e *Engine) runDetectors(ctx context.Context, graph *TransactionGraph, runID string) (detectorOutputs, []models.Diagnostic) {
	deadlineCtx, cancel := context.WithTimeout(ctx, DetectorTimeout)
	defer cancel()

	type result struct {
		cycles []CycleRing
		smurfs []SmurfingRing
		shells []ShellChain
	}
	done := make(chan result, 1)

	go func() {
		var r result
		cycleCh := make(chan []CycleRing, 1)
		smurfCh := make(chan []SmurfingRing, 1)
		shellCh := make(chan []ShellChain, 1)

		go func() { cycleCh <- DetectCycles(graph) }()
		go func() { smurfCh <- DetectSmurfing(graph) }()
		go func() { shellCh <- DetectShellNetworks(graph) }()

		r.cycles = <-cycleCh
		r.smurfs = <-smurfCh
		r.shells = <-shellCh
		done <- r
	}()

	select {
	case r := <-done:
		return detectorOutputs{cycles: r.cycles, smurfs: r.smurfs, shells: r.shells}, nil
	case <-deadlineCtx.Done():
		e.logger.Warnw("detector phase exceeded wall-clock bound, discarding partial results",
			"run_id", runID, "timeout", DetectorTimeout)
		e.broadcast(runID, "detector_timeout", map[string]any{"timeout_seconds": DetectorTimeout.Seconds()})
		return detectorOutputs{}, []models.Diagnostic{{
			Code:    "detector_timeout",
			Message: "detector phase exceeded the 15s bound; returning empty detector outputs",
			At:      time.Now(),
		}}
	}
}

func (e *Engine) persistSummary(ctx context.Context, runID string, submittedAt time.Time, graph *TransactionGraph, report *models.Report) {
	if e.history == nil {
		return
	}
	summary := models.RunSummary{
		RunID:                 runID,
		SubmittedAt:           submittedAt,
		NodeCount:             graph.NodeCount(),
		EdgeCount:             graph.EdgeCount(),
		SuspiciousCount:       report.Summary.SuspiciousAccountsFlagged,
		RingCount:             report.Summary.FraudRingsDetected,
		ProcessingTimeSeconds: report.Summary.ProcessingTimeSeconds,
	}
	if err := e.history.SaveRun(ctx, summary); err != nil {
		e.logger.Warnw("failed to persist run summary, continuing without history", "run_id", runID, "error", err)
	}
}

func (e *Engine) broadcast(runID, event string, payload map[string]any) {
	if e.hub == nil {
		return
	}
	data, err := encodeEvent(runID, event, payload)
	if err != nil {
		e.logger.Warnw("failed to encode lifecycle event", "event", event, "error", err)
		return
	}
	e.hub.Broadcast(data)
}
