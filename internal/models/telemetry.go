package models

import "time"

// TelemetryMessage is one Kafka batch of per-fixture payloads published by an
// upstream feed collector.
type TelemetryMessage struct {
	Payloads  []MatchPayload `json:"payloads"`
	Timestamp time.Time      `json:"timestamp"`
	BatchID   string         `json:"batch_id"`
}
