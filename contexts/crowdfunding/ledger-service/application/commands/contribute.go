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

type ContributeCommand struct {
	Caller     entities.Principal
	CampaignID uint64
	Amount     uint64
}

// ContributeUseCase records a pledge. Callers need not be registered users
// and zero amounts are accepted.
type ContributeUseCase struct {
	Ledger ports.LedgerRepository
	Events ports.EventPublisher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc ContributeUseCase) Execute(ctx context.Context, cmd ContributeCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Caller == "" {
		return false, domainerrors.ErrCallerRequired
	}

	campaign, err := uc.Ledger.Contribute(ctx, entities.Contribution{
		CampaignID:  cmd.CampaignID,
		Contributor: cmd.Caller,
		Amount:      cmd.Amount,
	})
	switch {
	case errors.Is(err, domainerrors.ErrCampaignNotFound),
		errors.Is(err, domainerrors.ErrCampaignClosed),
		errors.Is(err, domainerrors.ErrRaisedOverflow):
		logger.Info("contribution rejected",
			"event", "ledger_contribution_rejected",
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
		eventsv1.EventContributionRecorded,
		"campaign_id",
		strconv.FormatUint(campaign.ID, 10),
		map[string]any{
			"campaign_id": campaign.ID,
			"contributor": cmd.Caller.String(),
			"amount":      cmd.Amount,
			"raised":      campaign.Raised,
			"goal":        campaign.Goal,
		},
	)

	logger.Info("contribution recorded",
		"event", "ledger_contribution_recorded",
		"module", moduleName,
		"layer", "application",
		"campaign_id", campaign.ID,
		"caller", cmd.Caller.String(),
		"amount", cmd.Amount,
		"raised", campaign.Raised,
	)
	return true, nil
}
