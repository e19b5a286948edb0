package models

import (
	"encoding/json"
	"errors"
)

// DevelopmentEvent is the one user-visible entity: a tracked event as stored
// and as returned by GET /events. Data is kept as raw JSON so the payload
// round-trips verbatim; it is the only dynamically-typed value in the model.
type DevelopmentEvent struct {
	ID        int64           `json:"id"`
	Timestamp string          `json:"timestamp"`
	Source    string          `json:"source"`
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// IngestRequest is the POST /ingest payload. String fields are pointers so a
// missing or null field is distinguishable from an explicit empty string:
// the former is a client error, the latter is accepted.
type IngestRequest struct {
	Timestamp *string         `json:"timestamp"`
	Source    *string         `json:"source"`
	EventType *string         `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// IngestResponse is returned by POST /ingest.
type IngestResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// EventFilter holds the optional equality constraints accepted by
// GET /events. An empty value means the constraint is absent, not a match
// against the empty string.
type EventFilter struct {
	Source    string
	EventType string
}

// ParseIngest decodes a request body into the event to persist. Any failure
// here is the caller's fault: malformed JSON, a mistyped field, or a required
// field that is missing or null. Data may be any valid JSON value including
// null, but the key itself must be present.
func ParseIngest(body []byte) (DevelopmentEvent, error) {
	var req IngestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return DevelopmentEvent{}, err
	}
	if req.Timestamp == nil {
		return DevelopmentEvent{}, errors.New("timestamp is required")
	}
	if req.Source == nil {
		return DevelopmentEvent{}, errors.New("source is required")
	}
	if req.EventType == nil {
		return DevelopmentEvent{}, errors.New("event_type is required")
	}
	if req.Data == nil {
		return DevelopmentEvent{}, errors.New("data is required")
	}
	return DevelopmentEvent{
		Timestamp: *req.Timestamp,
		Source:    *req.Source,
		EventType: *req.EventType,
		Data:      req.Data,
	}, nil
}
