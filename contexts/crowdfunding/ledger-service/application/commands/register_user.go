package commands

import (
	"context"
	"errors"
	"log/slog"

	application "peerraise/contexts/crowdfunding/ledger-service/application"
	"peerraise/contexts/crowdfunding/ledger-service/domain/entities"
	domainerrors "peerraise/contexts/crowdfunding/ledger-service/domain/errors"
	"peerraise/contexts/crowdfunding/ledger-service/ports"
	eventsv1 "peerraise/contracts/events/v1"
)

type RegisterUserCommand struct {
	Caller   entities.Principal
	Username string
}

type RegisterUserUseCase struct {
	Ledger ports.LedgerRepository
	Events ports.EventPublisher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Execute returns false when the caller already has a user record.
func (uc RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	if cmd.Caller == "" {
		return false, domainerrors.ErrCallerRequired
	}

	err := uc.Ledger.RegisterUser(ctx, entities.User{
		ID:       cmd.Caller,
		Username: cmd.Username,
	})
	if errors.Is(err, domainerrors.ErrUserAlreadyRegistered) {
		logger.Debug("user already registered",
			"event", "ledger_user_register_rejected",
			"module", moduleName,
			"layer", "application",
			"caller", cmd.Caller.String(),
		)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	eventSink{Publisher: uc.Events, IDGen: uc.IDGen, Clock: uc.Clock, Logger: logger}.publish(
		ctx,
		eventsv1.EventUserRegistered,
		"user_id",
		cmd.Caller.String(),
		map[string]any{
			"user_id":  cmd.Caller.String(),
			"username": cmd.Username,
		},
	)

	logger.Info("user registered",
		"event", "ledger_user_registered",
		"module", moduleName,
		"layer", "application",
		"caller", cmd.Caller.String(),
	)
	return true, nil
}
