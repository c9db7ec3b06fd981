package service

import (
	"context"
	"fmt"
	"time"

	"pitboss/events"
	"pitboss/models"
)

// subscriptionService implements the SubscriptionService interface
type subscriptionService struct {
	uowFactory UnitOfWorkFactory
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(uowFactory UnitOfWorkFactory) SubscriptionService {
	return &subscriptionService{uowFactory: uowFactory}
}

// Grant upserts a subscription for a user. An existing row is overwritten,
// not versioned.
func (s *subscriptionService) Grant(ctx context.Context, actorID, targetID, guildID, roleID int64, tier string, duration time.Duration) (*models.Subscription, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sub := &models.Subscription{
		DiscordID: targetID,
		GuildID:   guildID,
		Tier:      tier,
		RoleID:    roleID,
		Active:    true,
		ExpiresAt: time.Now().Add(duration),
	}

	if err := uow.SubscriptionRepository().Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}

	uow.EventBus().Publish(events.SubscriptionGrantedEvent{
		ActorID:   actorID,
		TargetID:  targetID,
		GuildID:   guildID,
		Tier:      tier,
		RoleID:    roleID,
		ExpiresAt: sub.ExpiresAt,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sub, nil
}

// Revoke deactivates a user's subscription
func (s *subscriptionService) Revoke(ctx context.Context, actorID, targetID, guildID int64) (*models.Subscription, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().GetByDiscordID(ctx, targetID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil || !sub.Active {
		return nil, ErrNoSubscription
	}

	if err := uow.SubscriptionRepository().Deactivate(ctx, targetID, guildID); err != nil {
		return nil, fmt.Errorf("failed to deactivate subscription: %w", err)
	}

	uow.EventBus().Publish(events.SubscriptionRevokedEvent{
		ActorID:  actorID,
		TargetID: targetID,
		GuildID:  guildID,
		Tier:     sub.Tier,
		RoleID:   sub.RoleID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	sub.Active = false
	return sub, nil
}

// Get returns a user's subscription row, if any
func (s *subscriptionService) Get(ctx context.Context, targetID, guildID int64) (*models.Subscription, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().GetByDiscordID(ctx, targetID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return sub, nil
}

// ExpireDue deactivates all past-due subscriptions and returns them.
// Called by the background sweep; role removal happens in the bot layer
// via the emitted events.
func (s *subscriptionService) ExpireDue(ctx context.Context, now time.Time) ([]*models.Subscription, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	expired, err := uow.SubscriptionRepository().GetExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired subscriptions: %w", err)
	}

	for _, sub := range expired {
		if err := uow.SubscriptionRepository().Deactivate(ctx, sub.DiscordID, sub.GuildID); err != nil {
			return nil, fmt.Errorf("failed to deactivate subscription for user %d: %w", sub.DiscordID, err)
		}
		sub.Active = false

		uow.EventBus().Publish(events.SubscriptionRevokedEvent{
			TargetID: sub.DiscordID,
			GuildID:  sub.GuildID,
			Tier:     sub.Tier,
			RoleID:   sub.RoleID,
			Expired:  true,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expired, nil
}
