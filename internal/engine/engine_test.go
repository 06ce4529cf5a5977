package engine

import (
	"context"
	"testing"
	"time"
)

func TestEngine_Analyze_EndToEnd(t *testing.T) {
	csv := "transaction_id,sender_id,receiver_id,amount,timestamp\n" +
		"T1,A,B,100,2024-01-01 10:00:00\n" +
		"T2,B,C,100,2024-01-01 11:00:00\n" +
		"T3,C,A,100,2024-01-01 12:00:00\n"

	eng := New()
	report, err := eng.Analyze(context.Background(), "run-1", []byte(csv))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if report.Summary.TotalAccountsAnalyzed != 3 {
		t.Errorf("expected 3 accounts, got %d", report.Summary.TotalAccountsAnalyzed)
	}
	if report.Summary.FraudRingsDetected != 1 {
		t.Errorf("expected 1 fraud ring (the triangle), got %d", report.Summary.FraudRingsDetected)
	}
}

func TestEngine_Analyze_PropagatesParseError(t *testing.T) {
	eng := New()
	_, err := eng.Analyze(context.Background(), "run-2", []byte(""))
	if err == nil {
		t.Fatal("expected a ParseError for an empty upload")
	}
}

func TestEngine_RunDetectors_TimeoutProducesDiagnostic(t *testing.T) {
	eng := New()
	txns := []Transaction{txn("T1", "A", "B", 10, 0)}
	graph := BuildGraph(txns)

	expiredCtx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	outputs, diagnostics := eng.runDetectors(expiredCtx, graph, "run-3")
	if len(diagnostics) != 1 || diagnostics[0].Code != "detector_timeout" {
		t.Fatalf("expected a detector_timeout diagnostic, got: %+v", diagnostics)
	}
	if outputs.cycles != nil || outputs.smurfs != nil || outputs.shells != nil {
		t.Errorf("expected all detector outputs discarded on timeout, got: %+v", outputs)
	}
}
