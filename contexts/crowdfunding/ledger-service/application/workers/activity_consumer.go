package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
	eventsv1 "peerraise/contracts/events/v1"
)

const defaultActivityConsumerGroup = "ledger-service-activity-cg"

// ActivityConsumer writes one structured log line per ledger event so
// operators can follow ledger activity without reading process state.
type ActivityConsumer struct {
	Subscriber    ports.EventSubscriber
	ConsumerGroup string
	Disabled      bool
	Logger        *slog.Logger
}

func (c ActivityConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	if c.Disabled || c.Subscriber == nil {
		logger.Info("ledger activity consumer disabled",
			"event", "ledger_activity_consumer_disabled",
			"module", "crowdfunding/ledger-service",
			"layer", "worker",
		)
		return nil
	}
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultActivityConsumerGroup
	}
	if err := c.Subscriber.Subscribe(ctx, eventsv1.LedgerTopic, group, c.Handle); err != nil {
		return err
	}
	logger.Info("ledger activity consumer started",
		"event", "ledger_activity_consumer_started",
		"module", "crowdfunding/ledger-service",
		"layer", "worker",
		"topic", eventsv1.LedgerTopic,
		"consumer_group", group,
	)
	return nil
}

func (c ActivityConsumer) Handle(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload map[string]any
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			logger.Error("ledger event payload is not valid json",
				"event", "ledger_activity_decode_failed",
				"module", "crowdfunding/ledger-service",
				"layer", "worker",
				"event_id", event.EventID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return err
		}
	}

	attrs := []any{
		"event", "ledger_activity",
		"module", "crowdfunding/ledger-service",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"occurred_at", event.OccurredAt,
	}
	if event.PartitionKeyPath != "" {
		attrs = append(attrs, event.PartitionKeyPath, event.PartitionKey)
	}
	for _, key := range []string{"contributor", "amount", "raised", "goal", "creator", "closed_by", "username"} {
		if value, ok := payload[key]; ok {
			attrs = append(attrs, key, value)
		}
	}
	logger.Info("ledger activity", attrs...)
	return nil
}
