package service

import (
	"context"
	"fmt"
	"strings"

	"pitboss/events"
	"pitboss/models"
)

// shopService implements the ShopService interface
type shopService struct {
	uowFactory UnitOfWorkFactory
}

// NewShopService creates a new shop service
func NewShopService(uowFactory UnitOfWorkFactory) ShopService {
	return &shopService{uowFactory: uowFactory}
}

func (s *shopService) AddItem(ctx context.Context, actorID int64, item *models.ShopItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.ShopRepository().GetByName(ctx, item.GuildID, item.Name)
	if err != nil {
		return fmt.Errorf("failed to check existing item: %w", err)
	}
	if existing != nil {
		return ErrItemExists
	}

	if err := uow.ShopRepository().Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create shop item: %w", err)
	}

	uow.EventBus().Publish(events.ShopChangedEvent{
		ActorID:  actorID,
		GuildID:  item.GuildID,
		ItemName: item.Name,
		Action:   "added",
	})

	return uow.Commit()
}

func (s *shopService) RemoveItem(ctx context.Context, actorID, guildID int64, name string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	item, err := uow.ShopRepository().GetByName(ctx, guildID, name)
	if err != nil {
		return fmt.Errorf("failed to get shop item: %w", err)
	}
	if item == nil {
		return ErrItemNotFound
	}

	if err := uow.ShopRepository().Delete(ctx, guildID, name); err != nil {
		return fmt.Errorf("failed to delete shop item: %w", err)
	}

	uow.EventBus().Publish(events.ShopChangedEvent{
		ActorID:  actorID,
		GuildID:  guildID,
		ItemName: name,
		Action:   "removed",
	})

	return uow.Commit()
}

func (s *shopService) SetItemEnabled(ctx context.Context, actorID, guildID int64, name string, enabled bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	item, err := uow.ShopRepository().GetByName(ctx, guildID, name)
	if err != nil {
		return fmt.Errorf("failed to get shop item: %w", err)
	}
	if item == nil {
		return ErrItemNotFound
	}

	if err := uow.ShopRepository().SetEnabled(ctx, guildID, name, enabled); err != nil {
		return fmt.Errorf("failed to toggle shop item: %w", err)
	}

	action := "enabled"
	if !enabled {
		action = "disabled"
	}
	uow.EventBus().Publish(events.ShopChangedEvent{
		ActorID:  actorID,
		GuildID:  guildID,
		ItemName: name,
		Action:   action,
	})

	return uow.Commit()
}

func (s *shopService) ListItems(ctx context.Context, guildID int64) ([]*models.ShopItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	items, err := uow.ShopRepository().GetAll(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shop items: %w", err)
	}

	return items, nil
}
