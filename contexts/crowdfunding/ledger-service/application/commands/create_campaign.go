package commands

import (
	"context"
	"log/slog"
	"strconv"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	domainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
	eventsv1 "peerraise/contracts/events/v1"
)

type CreateCampaignCommand struct {
	Caller      entities.Principal
	Title       string
	Description string
	Goal        uint64
}

type CreateCampaignUseCase struct {
	Ledger ports.LedgerRepository
	Events ports.EventPublisher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute always creates a campaign; title, description and goal are taken as given.
func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (uint64, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Caller == "" {
		return 0, domainerrors.ErrCallerRequired
	}

	campaign, err := uc.Ledger.CreateCampaign(ctx, cmd.Caller, cmd.Title, cmd.Description, cmd.Goal)
	if err != nil {
		return 0, err
	}

	campaignKey := strconv.FormatUint(campaign.ID, 10)
	eventSink{Publisher: uc.Events, IDGen: uc.IDGen, Clock: uc.Clock, Logger: logger}.publish(
		ctx,
		eventsv1.EventCampaignCreated,
		"campaign_id",
		campaignKey,
		map[string]any{
			"campaign_id": campaign.ID,
			"creator":     campaign.Creator.String(),
			"title":       campaign.Title,
			"goal":        campaign.Goal,
		},
	)

	logger.Info("campaign created",
		"event", "ledger_campaign_created",
		"module", moduleName,
		"layer", "application",
		"campaign_id", campaign.ID,
		"creator", campaign.Creator.String(),
		"goal", campaign.Goal,
	)
	return campaign.ID, nil
}
