package ledgerservice

import (
	"log/slog"

	httpadapter "peerraise/contexts/crowdfunding/ledger-service/adapters/http"
	"peerraise/contexts/crowdfunding/ledger-service/adapters/memory"
	"peerraise/contexts/crowdfunding/ledger-service/application/commands"
	"peerraise/contexts/crowdfunding/ledger-service/application/queries"
	"peerraise/contexts/crowdfunding/ledger-service/application/workers"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Activity workers.ActivityConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Ledger      ports.LedgerRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Publisher   ports.EventPublisher
	Subscriber  ports.EventSubscriber
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registerUser := commands.RegisterUserUseCase{
		Ledger: deps.Ledger,
		Events: deps.Publisher,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	createCampaign := commands.CreateCampaignUseCase{
		Ledger: deps.Ledger,
		Events: deps.Publisher,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	contribute := commands.ContributeUseCase{
		Ledger: deps.Ledger,
		Events: deps.Publisher,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	closeCampaign := commands.CloseCampaignUseCase{
		Ledger: deps.Ledger,
		Events: deps.Publisher,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}

	searchCampaigns := queries.SearchCampaignsUseCase{
		Campaigns: deps.Ledger,
		Logger:    deps.Logger,
	}
	getStatistics := queries.GetStatisticsUseCase{
		Campaigns: deps.Ledger,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			RegisterUser:    registerUser,
			CreateCampaign:  createCampaign,
			Contribute:      contribute,
			CloseCampaign:   closeCampaign,
			SearchCampaigns: searchCampaigns,
			GetStatistics:   getStatistics,
			Logger:          deps.Logger,
		},
		Activity: workers.ActivityConsumer{
			Subscriber: deps.Subscriber,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule builds the ledger on a fresh in-memory store. The bus may
// be nil, in which case no events are published or consumed.
func NewInMemoryModule(bus EventBus, logger *slog.Logger) Module {
	store := memory.NewStore()
	deps := Dependencies{
		Ledger:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	}
	if bus != nil {
		deps.Publisher = bus
		deps.Subscriber = bus
	}
	module := NewModule(deps)
	module.Store = store
	return module
}

// EventBus is anything that can both publish and subscribe to ledger events.
type EventBus interface {
	ports.EventPublisher
	ports.EventSubscriber
}
