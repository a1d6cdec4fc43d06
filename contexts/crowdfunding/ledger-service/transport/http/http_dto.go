package http

// Record fields are camelCase to match the ledger's published record shape.

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
}

type RegisterUserResponse struct {
	Registered bool `json:"registered"`
}

type CreateCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        uint64 `json:"goal"`
}

type CreateCampaignResponse struct {
	CampaignID uint64 `json:"campaignId"`
}

type ContributeRequest struct {
	Amount uint64 `json:"amount"`
}

type ContributeResponse struct {
	Accepted bool `json:"accepted"`
}

type CloseCampaignResponse struct {
	Closed bool `json:"closed"`
}

type CampaignDTO struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Creator      string   `json:"creator"`
	Goal         uint64   `json:"goal"`
	Raised       uint64   `json:"raised"`
	Contributors []string `json:"contributors"`
	IsClosed     bool     `json:"isClosed"`
}

type SearchCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type CampaignStatisticsResponse struct {
	TotalRaised       uint64 `json:"totalRaised"`
	TotalContributors uint64 `json:"totalContributors"`
}
