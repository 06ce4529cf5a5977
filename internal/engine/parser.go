package engine

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// timestampLayout is the exact wire format required by the input contract;
// anything else is a row-level parse failure, not a fatal one.
const timestampLayout = "2006-01-02 15:04:05"

var requiredColumns = [...]string{"transaction_id", "sender_id", "receiver_id", "amount", "timestamp"}

// Transaction is an immutable, validated transfer record. It is produced by
// ParseCSV and consumed once by BuildGraph — nothing downstream retains it.
type Transaction struct {
	TransactionID string
	SenderID      string
	ReceiverID    string
	Amount        float64
	Timestamp     time.Time
}

// ParseError is the fatal boundary error described in spec.md §7: non-UTF-8
// input, a missing header, a missing required column, or zero accepted rows.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csv parse error: %s", e.Reason)
}

// ParseCSV decodes and validates raw CSV bytes into an ordered list of
// canonical transactions. Row-level problems are skipped silently; only the
// conditions in spec.md §4.1 step 5 (no header, missing columns, zero
// accepted rows, non-UTF-8) are fatal.
func ParseCSV(content []byte) ([]Transaction, error) {
	if !utf8.Valid(content) {
		return nil, &ParseError{Reason: "not valid UTF-8"}
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // tolerate ragged rows; they fail per-field lookups instead

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Reason: "missing header row"}
	}

	colIndex, missing := resolveColumns(header)
	if len(missing) > 0 {
		return nil, &ParseError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}

	transactions := make([]Transaction, 0, 64)
	seenIDs := make(map[string]struct{})

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // malformed row: skip silently
		}

		txn, ok := parseRow(record, colIndex, seenIDs)
		if !ok {
			continue
		}
		transactions = append(transactions, txn)
	}

	if len(transactions) == 0 {
		return nil, &ParseError{Reason: "no valid transactions"}
	}

	return transactions, nil
}

// resolveColumns normalizes header names (trim + lowercase) and returns the
// column index for each required field, plus any required columns missing.
func resolveColumns(header []string) (map[string]int, []string) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	colIndex := make(map[string]int, len(requiredColumns))
	for _, want := range requiredColumns {
		for i, h := range normalized {
			if h == want {
				colIndex[want] = i
				break
			}
		}
	}

	missing := make([]string, 0)
	for _, want := range requiredColumns {
		if _, ok := colIndex[want]; !ok {
			missing = append(missing, want)
		}
	}
	return colIndex, missing
}

func parseRow(record []string, colIndex map[string]int, seenIDs map[string]struct{}) (Transaction, bool) {
	field := func(name string) (string, bool) {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	txnID, ok := field("transaction_id")
	if !ok || txnID == "" {
		return Transaction{}, false
	}
	sender, ok := field("sender_id")
	if !ok || sender == "" {
		return Transaction{}, false
	}
	receiver, ok := field("receiver_id")
	if !ok || receiver == "" {
		return Transaction{}, false
	}
	amountStr, ok := field("amount")
	if !ok || amountStr == "" {
		return Transaction{}, false
	}
	tsStr, ok := field("timestamp")
	if !ok || tsStr == "" {
		return Transaction{}, false
	}

	if _, dup := seenIDs[txnID]; dup {
		return Transaction{}, false
	}

	if sender == receiver {
		return Transaction{}, false
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return Transaction{}, false
	}

	timestamp, err := time.Parse(timestampLayout, tsStr)
	if err != nil {
		return Transaction{}, false
	}

	seenIDs[txnID] = struct{}{}

	return Transaction{
		TransactionID: txnID,
		SenderID:      sender,
		ReceiverID:    receiver,
		Amount:        amount,
		Timestamp:     timestamp,
	}, true
}
