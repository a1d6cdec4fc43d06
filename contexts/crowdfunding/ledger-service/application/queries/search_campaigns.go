package queries

import (
	"context"
	"log/slog"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
)

const moduleName = "crowdfunding/ledger-service"

type SearchCampaignsQuery struct {
	Query string
}

type SearchCampaignsUseCase struct {
	Campaigns ports.LedgerRepository
	Logger    *slog.Logger
}

// Execute returns every campaign whose title or description contains the
// query, ignoring case, in creation order. The query is not trimmed.
func (uc SearchCampaignsUseCase) Execute(ctx context.Context, query SearchCampaignsQuery) ([]entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	items, err := uc.Campaigns.SearchCampaigns(ctx, query.Query)
	if err != nil {
		return nil, err
	}
	logger.Debug("campaigns searched",
		"event", "ledger_campaigns_searched",
		"module", moduleName,
		"layer", "application",
		"count", len(items),
	)
	return items, nil
}
