package engine

import (
	"encoding/json"
	"time"
)

// lifecycleEvent is the shape broadcast over the websocket hub. It narrates
// one Analyze call; it is not part of the JSON report contract.
type lifecycleEvent struct {
	RunID     string         `json:"runId"`
	Event     string         `json:"event"`
	At        time.Time      `json:"at"`
	Payload   map[string]any `json:"payload,omitempty"`
}

func encodeEvent(runID, event string, payload map[string]any) ([]byte, error) {
	return json.Marshal(lifecycleEvent{
		RunID:   runID,
		Event:   event,
		At:      time.Now().UTC(),
		Payload: payload,
	})
}
