package httpadapter

import (
	"context"
	"log/slog"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/application/commands"
	"peerraise/contexts/crowdfunding/ledger-service/application/queries"
	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	domainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"
	httptransport "peerraise/contexts/crowdfunding/ledger-service/transport/http"
)

type Handler struct {
	RegisterUser    commands.RegisterUserUseCase
	CreateCampaign  commands.CreateCampaignUseCase
	Contribute      commands.ContributeUseCase
	CloseCampaign   commands.CloseCampaignUseCase
	SearchCampaigns queries.SearchCampaignsUseCase
	GetStatistics   queries.GetStatisticsUseCase
	Logger          *slog.Logger
}

// RegisterUserHandler godoc
// @Summary Register the calling principal
// @Description Creates a user for the caller. Returns registered=false when the caller already has one.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.RegisterUserRequest true "Registration"
// @Success 200 {object} httptransport.RegisterUserResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/ledger/v1/users [post]
func (h Handler) RegisterUserHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RegisterUserRequest,
) (httptransport.RegisterUserResponse, error) {
	caller, err := parseCaller(callerID)
	if err != nil {
		return httptransport.RegisterUserResponse{}, err
	}
	registered, err := h.RegisterUser.Execute(ctx, commands.RegisterUserCommand{
		Caller:   caller,
		Username: req.Username,
	})
	if err != nil {
		h.logFailure("register_user", err)
		return httptransport.RegisterUserResponse{}, err
	}
	return httptransport.RegisterUserResponse{Registered: registered}, nil
}

// CreateCampaignHandler godoc
// @Summary Create a campaign
// @Description Creates an open campaign owned by the caller and returns its sequential id.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateCampaignRequest true "Campaign"
// @Success 200 {object} httptransport.CreateCampaignResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/ledger/v1/campaigns [post]
func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	caller, err := parseCaller(callerID)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	id, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		Caller:      caller,
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
	})
	if err != nil {
		h.logFailure("create_campaign", err)
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{CampaignID: id}, nil
}

// ContributeHandler godoc
// @Summary Contribute to a campaign
// @Description Records a contribution. accepted=false when the campaign is unknown or closed.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campaign_id path integer true "Campaign id"
// @Param request body httptransport.ContributeRequest true "Contribution"
// @Success 200 {object} httptransport.ContributeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/ledger/v1/campaigns/{campaign_id}/contributions [post]
func (h Handler) ContributeHandler(
	ctx context.Context,
	callerID string,
	campaignID uint64,
	req httptransport.ContributeRequest,
) (httptransport.ContributeResponse, error) {
	caller, err := parseCaller(callerID)
	if err != nil {
		return httptransport.ContributeResponse{}, err
	}
	accepted, err := h.Contribute.Execute(ctx, commands.ContributeCommand{
		Caller:     caller,
		CampaignID: campaignID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.logFailure("contribute", err)
		return httptransport.ContributeResponse{}, err
	}
	return httptransport.ContributeResponse{Accepted: accepted}, nil
}

// CloseCampaignHandler godoc
// @Summary Close a campaign
// @Description Closes a campaign for further contributions. closed=false when unknown or already closed.
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param campaign_id path integer true "Campaign id"
// @Success 200 {object} httptransport.CloseCampaignResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/ledger/v1/campaigns/{campaign_id}/close [post]
func (h Handler) CloseCampaignHandler(
	ctx context.Context,
	callerID string,
	campaignID uint64,
) (httptransport.CloseCampaignResponse, error) {
	caller, err := parseCaller(callerID)
	if err != nil {
		return httptransport.CloseCampaignResponse{}, err
	}
	closed, err := h.CloseCampaign.Execute(ctx, commands.CloseCampaignCommand{
		Caller:     caller,
		CampaignID: campaignID,
	})
	if err != nil {
		h.logFailure("close_campaign", err)
		return httptransport.CloseCampaignResponse{}, err
	}
	return httptransport.CloseCampaignResponse{Closed: closed}, nil
}

// SearchCampaignsHandler godoc
// @Summary Search campaigns
// @Description Case-insensitive substring match on title or description. An empty query returns every campaign.
// @Tags ledger
// @Produce json
// @Param query query string false "Search text"
// @Success 200 {object} httptransport.SearchCampaignsResponse
// @Router /api/ledger/v1/campaigns/search [get]
func (h Handler) SearchCampaignsHandler(ctx context.Context, query string) (httptransport.SearchCampaignsResponse, error) {
	items, err := h.SearchCampaigns.Execute(ctx, queries.SearchCampaignsQuery{Query: query})
	if err != nil {
		h.logFailure("search_campaigns", err)
		return httptransport.SearchCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.SearchCampaignsResponse{Items: result}, nil
}

// GetStatisticsHandler godoc
// @Summary Campaign statistics
// @Description Total raised and contribution count. Unknown campaigns report zeros.
// @Tags ledger
// @Produce json
// @Param campaign_id path integer true "Campaign id"
// @Success 200 {object} httptransport.CampaignStatisticsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/ledger/v1/campaigns/{campaign_id}/statistics [get]
func (h Handler) GetStatisticsHandler(ctx context.Context, campaignID uint64) (httptransport.CampaignStatisticsResponse, error) {
	stats, err := h.GetStatistics.Execute(ctx, campaignID)
	if err != nil {
		h.logFailure("get_statistics", err)
		return httptransport.CampaignStatisticsResponse{}, err
	}
	return httptransport.CampaignStatisticsResponse{
		TotalRaised:       stats.TotalRaised,
		TotalContributors: stats.TotalContributors,
	}, nil
}

func (h Handler) logFailure(operation string, err error) {
	application.ResolveLogger(h.Logger).Error("ledger request failed",
		"event", "http_ledger_request_failed",
		"module", "crowdfunding/ledger-service",
		"layer", "transport",
		"operation", operation,
		"error", err.Error(),
	)
}

func parseCaller(raw string) (entities.Principal, error) {
	caller, ok := entities.ParsePrincipal(raw)
	if !ok {
		return "", domainerrors.ErrCallerRequired
	}
	return caller, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	contributors := make([]string, 0, len(item.Contributors))
	for _, contributor := range item.Contributors {
		contributors = append(contributors, contributor.String())
	}
	return httptransport.CampaignDTO{
		ID:           item.ID,
		Title:        item.Title,
		Description:  item.Description,
		Creator:      item.Creator.String(),
		Goal:         item.Goal,
		Raised:       item.Raised,
		Contributors: contributors,
		IsClosed:     item.IsClosed,
	}
}
