package memory

import (
	"context"
	"sync"
	"time"

	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	domainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the ledger. A single lock guards all three collections and the
// campaign sequence so each operation's find-then-mutate is atomic.
type Store struct {
	mu sync.RWMutex

	users         map[entities.Principal]entities.User
	userOrder     []entities.Principal
	campaigns     map[uint64]*entities.Campaign
	campaignOrder []uint64
	contributions []entities.Contribution

	nextCampaignID uint64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[entities.Principal]entities.User),
		userOrder:     make([]entities.Principal, 0),
		campaigns:     make(map[uint64]*entities.Campaign),
		campaignOrder: make([]uint64, 0),
		contributions: make([]entities.Contribution, 0),
	}
}

func (s *Store) RegisterUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return domainerrors.ErrUserAlreadyRegistered
	}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *Store) CreateCampaign(
	_ context.Context,
	creator entities.Principal,
	title string,
	description string,
	goal uint64,
) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextCampaignID
	s.nextCampaignID++

	campaign := entities.NewCampaign(id, creator, title, description, goal)
	s.campaigns[id] = &campaign
	s.campaignOrder = append(s.campaignOrder, id)
	return campaign.Clone(), nil
}

func (s *Store) Contribute(_ context.Context, contribution entities.Contribution) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[contribution.CampaignID]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	if !campaign.AcceptsContributions() {
		return entities.Campaign{}, domainerrors.ErrCampaignClosed
	}
	if !campaign.CanAdd(contribution.Amount) {
		return entities.Campaign{}, domainerrors.ErrRaisedOverflow
	}

	campaign.Raised += contribution.Amount
	campaign.Contributors = append(campaign.Contributors, contribution.Contributor)
	s.contributions = append(s.contributions, contribution)
	return campaign.Clone(), nil
}

func (s *Store) CloseCampaign(_ context.Context, campaignID uint64) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, exists := s.campaigns[campaignID]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	if campaign.IsClosed {
		return entities.Campaign{}, domainerrors.ErrCampaignClosed
	}
	campaign.IsClosed = true
	return campaign.Clone(), nil
}

func (s *Store) SearchCampaigns(_ context.Context, query string) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0)
	for _, id := range s.campaignOrder {
		campaign := s.campaigns[id]
		if campaign.MatchesQuery(query) {
			items = append(items, campaign.Clone())
		}
	}
	return items, nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID uint64) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaign, exists := s.campaigns[campaignID]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign.Clone(), nil
}

// Users returns registered users in registration order.
func (s *Store) Users() []entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		items = append(items, s.users[id])
	}
	return items
}

// Contributions returns the append-only contribution log.
func (s *Store) Contributions() []entities.Contribution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.Contribution(nil), s.contributions...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
