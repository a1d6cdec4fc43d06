package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	domainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
	eventsv1 "peerraise/contracts/events/v1"
)

type CloseCampaignCommand struct {
	Caller     entities.Principal
	CampaignID uint64
}

// CloseCampaignUseCase does not check that the caller created the campaign.
type CloseCampaignUseCase struct {
	Ledger ports.LedgerRepository
	Events ports.EventPublisher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc CloseCampaignUseCase) Execute(ctx context.Context, cmd CloseCampaignCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Caller == "" {
		return false, domainerrors.ErrCallerRequired
	}

	campaign, err := uc.Ledger.CloseCampaign(ctx, cmd.CampaignID)
	switch {
	case errors.Is(err, domainerrors.ErrCampaignNotFound),
		errors.Is(err, domainerrors.ErrCampaignClosed):
		logger.Info("campaign close rejected",
			"event", "ledger_campaign_close_rejected",
			"module", moduleName,
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"caller", cmd.Caller.String(),
			"reason", err.Error(),
		)
		return false, nil
	case err != nil:
		return false, err
	}

	eventSink{Publisher: uc.Events, IDGen: uc.IDGen, Clock: uc.Clock, Logger: logger}.publish(
		ctx,
		eventsv1.EventCampaignClosed,
		"campaign_id",
		strconv.FormatUint(campaign.ID, 10),
		map[string]any{
			"campaign_id": campaign.ID,
			"closed_by":   cmd.Caller.String(),
			"raised":      campaign.Raised,
			"goal":        campaign.Goal,
		},
	)

	logger.Info("campaign closed",
		"event", "ledger_campaign_closed",
		"module", moduleName,
		"layer", "application",
		"campaign_id", campaign.ID,
		"caller", cmd.Caller.String(),
		"creator", campaign.Creator.String(),
	)
	return true, nil
}
