package entities

// Contribution records one accepted pledge. Records are append-only.
type Contribution struct {
	CampaignID  uint64
	Contributor Principal
	Amount      uint64
}
