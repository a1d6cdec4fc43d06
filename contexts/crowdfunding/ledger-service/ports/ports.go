package ports

import (
	"context"
	"time"

	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	eventsv1 "peerraise/contracts/events/v1"
)

// LedgerRepository owns users, campaigns and contributions. Every method is
// one atomic step: it either fully applies or returns a domain error and
// leaves state untouched.
type LedgerRepository interface {
	RegisterUser(ctx context.Context, user entities.User) error
	CreateCampaign(ctx context.Context, creator entities.Principal, title string, description string, goal uint64) (entities.Campaign, error)
	Contribute(ctx context.Context, contribution entities.Contribution) (entities.Campaign, error)
	CloseCampaign(ctx context.Context, campaignID uint64) (entities.Campaign, error)
	SearchCampaigns(ctx context.Context, query string) ([]entities.Campaign, error)
	GetCampaign(ctx context.Context, campaignID uint64) (entities.Campaign, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = eventsv1.Envelope

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
