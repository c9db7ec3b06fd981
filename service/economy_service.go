package service

import (
	"context"
	"fmt"

	"pitboss/events"
	"pitboss/models"
)

// economyService implements the EconomyService interface
type economyService struct {
	uowFactory UnitOfWorkFactory
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory) EconomyService {
	return &economyService{uowFactory: uowFactory}
}

// GetOrCreateUser retrieves an existing user or creates one with zero balances
func (s *economyService) GetOrCreateUser(ctx context.Context, discordID, guildID int64, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	// Primary key on (discord_id, guild_id) prevents duplicates
	user, err = uow.UserRepository().Create(ctx, discordID, guildID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// AdjustBalances applies wallet/bank deltas to a user and audits the change
func (s *economyService) AdjustBalances(ctx context.Context, actorID, targetID, guildID, walletDelta, bankDelta int64, reason string) (*models.User, error) {
	if walletDelta == 0 && bankDelta == 0 {
		return nil, fmt.Errorf("nothing to adjust")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, targetID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	newWallet := user.Wallet + walletDelta
	newBank := user.Bank + bankDelta
	if newWallet < 0 || newBank < 0 {
		return nil, ErrNegativeBalance
	}

	if err := uow.UserRepository().UpdateBalances(ctx, targetID, guildID, newWallet, newBank); err != nil {
		return nil, fmt.Errorf("failed to update balances: %w", err)
	}

	uow.EventBus().Publish(events.BalanceAdjustedEvent{
		ActorID:     actorID,
		TargetID:    targetID,
		GuildID:     guildID,
		WalletDelta: walletDelta,
		BankDelta:   bankDelta,
		NewWallet:   newWallet,
		NewBank:     newBank,
		Reason:      reason,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.Wallet = newWallet
	user.Bank = newBank
	return user, nil
}

// SetOffEconomy flips the off-economy flag, leaving balances untouched
func (s *economyService) SetOffEconomy(ctx context.Context, actorID, targetID, guildID int64, offEconomy bool) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, targetID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.OffEconomy != offEconomy {
		if err := uow.UserRepository().SetOffEconomy(ctx, targetID, guildID, offEconomy); err != nil {
			return nil, fmt.Errorf("failed to set off-economy flag: %w", err)
		}

		uow.EventBus().Publish(events.EconomyFlagToggledEvent{
			ActorID:    actorID,
			TargetID:   targetID,
			GuildID:    guildID,
			OffEconomy: offEconomy,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.OffEconomy = offEconomy
	return user, nil
}

// Summarize aggregates guild-wide economy figures
func (s *economyService) Summarize(ctx context.Context, guildID int64) (*models.EconomySummary, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	summary, err := uow.UserRepository().Summarize(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize economy: %w", err)
	}

	return summary, nil
}
