package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"peerraise/contexts/crowdfunding/ledger-service/ports"
	eventsv1 "peerraise/contracts/events/v1"
)

const (
	moduleName  = "crowdfunding/ledger-service"
	serviceName = "ledger-service"
)

// eventSink bundles what a use case needs to announce a ledger change.
// A nil Publisher turns publishing off.
type eventSink struct {
	Publisher ports.EventPublisher
	IDGen     ports.IDGenerator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func newLedgerEnvelope(
	eventID string,
	eventType string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    serviceName,
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             payload,
	}, nil
}

// publish is best effort. The ledger change has already been applied, so a
// failure here is logged and never alters the operation result.
func (s eventSink) publish(
	ctx context.Context,
	eventType string,
	partitionKeyPath string,
	partitionKey string,
	data map[string]any,
) {
	if s.Publisher == nil {
		return
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	eventID, err := s.IDGen.NewID(ctx)
	if err == nil {
		var envelope ports.EventEnvelope
		envelope, err = newLedgerEnvelope(eventID, eventType, partitionKeyPath, partitionKey, s.Clock.Now(), data)
		if err == nil {
			err = s.Publisher.Publish(ctx, eventsv1.LedgerTopic, envelope)
		}
	}
	if err != nil {
		logger.Warn("ledger event publish failed",
			"event", "ledger_event_publish_failed",
			"module", moduleName,
			"layer", "application",
			"event_type", eventType,
			"partition_key", partitionKey,
			"error", err.Error(),
		)
	}
}
