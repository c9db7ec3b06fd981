package repository

import (
	"context"
	"fmt"

	"pitboss/database"
	"pitboss/events"
	"pitboss/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	subscriptionRepo service.SubscriptionRepository
	giveawayRepo     service.GiveawayRepository
	shiftRepo        service.ShiftRepository
	suggestionRepo   service.SuggestionRepository
	bugReportRepo    service.BugReportRepository
	auditRepo        service.AuditRepository
	shopRepo         service.ShopRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.subscriptionRepo = newSubscriptionRepositoryWithTx(tx)
	u.giveawayRepo = newGiveawayRepositoryWithTx(tx)
	u.shiftRepo = newShiftRepositoryWithTx(tx)
	u.suggestionRepo = newSuggestionRepositoryWithTx(tx)
	u.bugReportRepo = newBugReportRepositoryWithTx(tx)
	u.auditRepo = newAuditRepositoryWithTx(tx)
	u.shopRepo = newShopRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

func (u *unitOfWork) SubscriptionRepository() service.SubscriptionRepository {
	if u.subscriptionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.subscriptionRepo
}

func (u *unitOfWork) GiveawayRepository() service.GiveawayRepository {
	if u.giveawayRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.giveawayRepo
}

func (u *unitOfWork) ShiftRepository() service.ShiftRepository {
	if u.shiftRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shiftRepo
}

func (u *unitOfWork) SuggestionRepository() service.SuggestionRepository {
	if u.suggestionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.suggestionRepo
}

func (u *unitOfWork) BugReportRepository() service.BugReportRepository {
	if u.bugReportRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bugReportRepo
}

func (u *unitOfWork) AuditRepository() service.AuditRepository {
	if u.auditRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.auditRepo
}

func (u *unitOfWork) ShopRepository() service.ShopRepository {
	if u.shopRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.shopRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
