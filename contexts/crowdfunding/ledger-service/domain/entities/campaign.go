package entities

import (
	"math"
	"strings"
)

type Campaign struct {
	ID           uint64
	Title        string
	Description  string
	Creator      Principal
	Goal         uint64
	Raised       uint64
	Contributors []Principal
	IsClosed     bool
}

// Statistics summarizes a campaign. TotalContributors counts contributions,
// so a caller who gave twice is counted twice.
type Statistics struct {
	TotalRaised       uint64
	TotalContributors uint64
}

func NewCampaign(id uint64, creator Principal, title string, description string, goal uint64) Campaign {
	return Campaign{
		ID:           id,
		Title:        title,
		Description:  description,
		Creator:      creator,
		Goal:         goal,
		Raised:       0,
		Contributors: []Principal{},
		IsClosed:     false,
	}
}

func (c Campaign) AcceptsContributions() bool {
	return !c.IsClosed
}

// CanAdd reports whether amount fits into Raised without wrapping.
func (c Campaign) CanAdd(amount uint64) bool {
	return amount <= math.MaxUint64-c.Raised
}

// MatchesQuery does a case-insensitive substring match on title or description.
// An empty query matches every campaign.
func (c Campaign) MatchesQuery(query string) bool {
	needle := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle)
}

func (c Campaign) Statistics() Statistics {
	return Statistics{
		TotalRaised:       c.Raised,
		TotalContributors: uint64(len(c.Contributors)),
	}
}

func (c Campaign) Clone() Campaign {
	out := c
	out.Contributors = append([]Principal{}, c.Contributors...)
	return out
}
