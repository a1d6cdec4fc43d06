package queries

import (
	"context"
	"errors"
	"log/slog"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	domainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
)

type GetStatisticsUseCase struct {
	Campaigns ports.LedgerRepository
	Logger    *slog.Logger
}

// Execute reports zeroed statistics for unknown campaigns.
func (uc GetStatisticsUseCase) Execute(ctx context.Context, campaignID uint64) (entities.Statistics, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaign, err := uc.Campaigns.GetCampaign(ctx, campaignID)
	if errors.Is(err, domainerrors.ErrCampaignNotFound) {
		logger.Debug("statistics requested for unknown campaign",
			"event", "ledger_statistics_unknown_campaign",
			"module", moduleName,
			"layer", "application",
			"campaign_id", campaignID,
		)
		return entities.Statistics{}, nil
	}
	if err != nil {
		return entities.Statistics{}, err
	}
	return campaign.Statistics(), nil
}
