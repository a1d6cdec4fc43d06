package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the versioned shape of every ledger event on the bus.
// Fields may be added; existing fields must keep their meaning.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

const (
	LedgerTopic = "ledger.events"

	EventUserRegistered       = "ledger.user_registered"
	EventCampaignCreated      = "ledger.campaign_created"
	EventContributionRecorded = "ledger.contribution_recorded"
	EventCampaignClosed       = "ledger.campaign_closed"
)
