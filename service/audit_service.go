package service

import (
	"context"
	"fmt"
	"time"

	"pitboss/events"
	"pitboss/models"
)

// auditService implements the AuditService interface
type auditService struct {
	uowFactory UnitOfWorkFactory
}

// NewAuditService creates a new audit service
func NewAuditService(uowFactory UnitOfWorkFactory) AuditService {
	return &auditService{uowFactory: uowFactory}
}

// Record writes a single audit entry
func (s *auditService) Record(ctx context.Context, entry *models.AuditEntry) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.AuditRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return uow.Commit()
}

// Recent returns the newest entries for a guild
func (s *auditService) Recent(ctx context.Context, guildID int64, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.AuditRepository().GetRecent(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent audit entries: %w", err)
	}

	return entries, nil
}

// RenderAuditEntry converts a domain event into an audit log entry.
// Returns nil for events that are not audited.
func RenderAuditEntry(event events.Event) *models.AuditEntry {
	switch e := event.(type) {
	case events.BalanceAdjustedEvent:
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryEconomy,
			ActorID:  e.ActorID,
			Detail: fmt.Sprintf("adjusted <@%d>: wallet %+d, bank %+d (now %d/%d): %s",
				e.TargetID, e.WalletDelta, e.BankDelta, e.NewWallet, e.NewBank, e.Reason),
		}
	case events.EconomyFlagToggledEvent:
		state := "back on"
		if e.OffEconomy {
			state = "off"
		}
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryEconomy,
			ActorID:  e.ActorID,
			Detail:   fmt.Sprintf("moved <@%d> %s the economy leaderboards", e.TargetID, state),
		}
	case events.SubscriptionGrantedEvent:
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategorySubscription,
			ActorID:  e.ActorID,
			Detail: fmt.Sprintf("granted %s subscription to <@%d> until <t:%d:f>",
				e.Tier, e.TargetID, e.ExpiresAt.Unix()),
		}
	case events.SubscriptionRevokedEvent:
		verb := "revoked"
		if e.Expired {
			verb = "expired"
		}
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategorySubscription,
			ActorID:  e.ActorID,
			Detail:   fmt.Sprintf("%s %s subscription of <@%d>", verb, e.Tier, e.TargetID),
		}
	case events.ShiftClosedEvent:
		detail := fmt.Sprintf("<@%d> clocked out of %s shift after %s, earning %d chips",
			e.TargetID, e.Role, e.Duration.Round(time.Minute), e.Earnings)
		if e.Forced {
			detail += " (bulk clock-out)"
		}
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryShift,
			ActorID:  e.TargetID,
			Detail:   detail,
		}
	case events.GiveawayConcludedEvent:
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryGiveaway,
			Detail: fmt.Sprintf("giveaway %d for %q concluded: %d winner(s) of %d entrant(s)",
				e.MessageID, e.Prize, len(e.WinnerIDs), e.Participants),
		}
	case events.MemberTimedOutEvent:
		if e.Removed {
			return &models.AuditEntry{
				GuildID:  e.GuildID,
				Category: models.AuditCategoryModeration,
				ActorID:  e.ActorID,
				Detail:   fmt.Sprintf("removed timeout from <@%d>", e.TargetID),
			}
		}
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryModeration,
			ActorID:  e.ActorID,
			Detail:   fmt.Sprintf("timed out <@%d> for %s: %s", e.TargetID, e.Duration, e.Reason),
		}
	case events.ShopChangedEvent:
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryShop,
			ActorID:  e.ActorID,
			Detail:   fmt.Sprintf("%s shop item %q", e.Action, e.ItemName),
		}
	case events.CasinoInterventionEvent:
		detail := fmt.Sprintf("casino intervention: %s", e.Action)
		if e.TargetID != 0 {
			detail = fmt.Sprintf("casino intervention against <@%d>: %s", e.TargetID, e.Action)
		}
		return &models.AuditEntry{
			GuildID:  e.GuildID,
			Category: models.AuditCategoryCasino,
			ActorID:  e.ActorID,
			Detail:   detail,
		}
	}
	return nil
}
