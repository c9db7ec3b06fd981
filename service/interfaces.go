package service

import (
	"context"
	"time"

	"pitboss/events"
	"pitboss/models"
)

// UserRepository defines the interface for economy record access
type UserRepository interface {
	// GetByDiscordID retrieves a user by Discord ID within a guild
	GetByDiscordID(ctx context.Context, discordID, guildID int64) (*models.User, error)

	// Create creates a new user row with zero balances
	Create(ctx context.Context, discordID, guildID int64, username string) (*models.User, error)

	// UpdateBalances sets wallet and bank, leaving all other columns alone
	UpdateBalances(ctx context.Context, discordID, guildID, wallet, bank int64) error

	// SetOffEconomy sets the off-economy flag
	SetOffEconomy(ctx context.Context, discordID, guildID int64, offEconomy bool) error

	// Summarize aggregates economy figures across a guild
	Summarize(ctx context.Context, guildID int64) (*models.EconomySummary, error)
}

// SubscriptionRepository defines the interface for subscription rows
type SubscriptionRepository interface {
	// Upsert overwrites the subscription row for a user
	Upsert(ctx context.Context, sub *models.Subscription) error

	// GetByDiscordID returns the subscription row for a user, if any
	GetByDiscordID(ctx context.Context, discordID, guildID int64) (*models.Subscription, error)

	// Deactivate marks a subscription inactive
	Deactivate(ctx context.Context, discordID, guildID int64) error

	// GetExpired returns active subscriptions whose expiry has passed
	GetExpired(ctx context.Context, now time.Time) ([]*models.Subscription, error)
}

// GiveawayRepository defines the interface for giveaway rows
type GiveawayRepository interface {
	// Create inserts a new giveaway keyed by Discord message ID
	Create(ctx context.Context, g *models.Giveaway) error

	// GetByMessageID returns the giveaway for a message, if any
	GetByMessageID(ctx context.Context, messageID int64) (*models.Giveaway, error)

	// GetOpen returns all giveaways that have not concluded
	GetOpen(ctx context.Context) ([]*models.Giveaway, error)

	// MarkConcluded flags a giveaway as finished
	MarkConcluded(ctx context.Context, messageID int64) error
}

// ShiftRepository defines the interface for shift rows
type ShiftRepository interface {
	// Create inserts a new open shift
	Create(ctx context.Context, shift *models.Shift) error

	// GetOpenByUser returns the open shift for a user, if any
	GetOpenByUser(ctx context.Context, discordID, guildID int64) (*models.Shift, error)

	// GetAllOpen returns every open shift
	GetAllOpen(ctx context.Context) ([]*models.Shift, error)

	// Close stamps a shift's clock-out time and earnings
	Close(ctx context.Context, shiftID int64, clockOut time.Time, earnings int64) error

	// TotalEarnings sums closed-shift earnings for a user
	TotalEarnings(ctx context.Context, discordID, guildID int64) (int64, error)
}

// SuggestionRepository defines the interface for suggestion rows
type SuggestionRepository interface {
	Create(ctx context.Context, s *models.Suggestion) error
	GetByID(ctx context.Context, id int64) (*models.Suggestion, error)
	SetMessageIDs(ctx context.Context, id, messageID, threadID int64) error
	UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error
}

// BugReportRepository defines the interface for bug report rows
type BugReportRepository interface {
	Create(ctx context.Context, b *models.BugReport) error
	GetByID(ctx context.Context, id int64) (*models.BugReport, error)
	SetMessageID(ctx context.Context, id, messageID int64) error
	UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error
}

// AuditRepository defines the interface for the audit log
type AuditRepository interface {
	// Record appends an audit entry
	Record(ctx context.Context, entry *models.AuditEntry) error

	// GetRecent returns the newest entries for a guild, newest first
	GetRecent(ctx context.Context, guildID int64, limit int) ([]*models.AuditEntry, error)
}

// ShopRepository defines the interface for shop items
type ShopRepository interface {
	Create(ctx context.Context, item *models.ShopItem) error
	GetByName(ctx context.Context, guildID int64, name string) (*models.ShopItem, error)
	GetAll(ctx context.Context, guildID int64) ([]*models.ShopItem, error)
	SetEnabled(ctx context.Context, guildID int64, name string, enabled bool) error
	Delete(ctx context.Context, guildID int64, name string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	SubscriptionRepository() SubscriptionRepository
	GiveawayRepository() GiveawayRepository
	ShiftRepository() ShiftRepository
	SuggestionRepository() SuggestionRepository
	BugReportRepository() BugReportRepository
	AuditRepository() AuditRepository
	ShopRepository() ShopRepository

	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// EconomyService defines economy admin operations
type EconomyService interface {
	// GetOrCreateUser retrieves an existing user or creates one with zero balances
	GetOrCreateUser(ctx context.Context, discordID, guildID int64, username string) (*models.User, error)

	// AdjustBalances applies wallet/bank deltas to a user and audits the change
	AdjustBalances(ctx context.Context, actorID, targetID, guildID, walletDelta, bankDelta int64, reason string) (*models.User, error)

	// SetOffEconomy flips the off-economy flag, leaving balances untouched
	SetOffEconomy(ctx context.Context, actorID, targetID, guildID int64, offEconomy bool) (*models.User, error)

	// Summarize aggregates guild-wide economy figures
	Summarize(ctx context.Context, guildID int64) (*models.EconomySummary, error)
}

// SubscriptionService defines subscription admin operations
type SubscriptionService interface {
	// Grant upserts a subscription for a user
	Grant(ctx context.Context, actorID, targetID, guildID, roleID int64, tier string, duration time.Duration) (*models.Subscription, error)

	// Revoke deactivates a user's subscription
	Revoke(ctx context.Context, actorID, targetID, guildID int64) (*models.Subscription, error)

	// Get returns a user's subscription row, if any
	Get(ctx context.Context, targetID, guildID int64) (*models.Subscription, error)

	// ExpireDue deactivates all past-due subscriptions and returns them
	ExpireDue(ctx context.Context, now time.Time) ([]*models.Subscription, error)
}

// GiveawayService manages giveaway lifecycle: persistence, in-memory
// participants, and one-shot conclusion timers.
type GiveawayService interface {
	// Start persists a giveaway and arms its conclusion timer
	Start(ctx context.Context, g *models.Giveaway) error

	// Enter adds a participant to a running giveaway
	Enter(messageID, discordID int64) error

	// Conclude draws winners, marks the row concluded and disarms the timer
	Conclude(ctx context.Context, messageID int64) (*models.GiveawayResult, error)

	// Recover re-arms a giveaway from a surviving Discord message.
	// Fails if a row for the message already exists.
	Recover(ctx context.Context, g *models.Giveaway) error

	// SyncFromDatabase re-arms timers for all unconcluded rows
	SyncFromDatabase(ctx context.Context) error

	// Active returns the message IDs of giveaways with armed timers
	Active() []int64

	// Stop disarms all timers without concluding anything
	Stop()
}

// ShiftService manages staff work sessions
type ShiftService interface {
	// ClockIn opens a shift for a user in the given staff role
	ClockIn(ctx context.Context, discordID, guildID int64, role string) (*models.Shift, error)

	// ClockOut closes the user's open shift and computes earnings
	ClockOut(ctx context.Context, discordID, guildID int64) (*models.ShiftReceipt, error)

	// ClockOutAll closes every open shift, used for end-of-day cleanup
	ClockOutAll(ctx context.Context, guildID int64) ([]*models.ShiftReceipt, error)

	// Status returns the user's open shift, if any
	Status(discordID int64) (*models.Shift, bool)

	// TotalEarnings sums a user's closed-shift earnings
	TotalEarnings(ctx context.Context, discordID, guildID int64) (int64, error)

	// SyncFromDatabase reloads open shifts into memory at startup
	SyncFromDatabase(ctx context.Context) error
}

// SuggestionService manages suggestions and bug reports
type SuggestionService interface {
	SubmitSuggestion(ctx context.Context, authorID, guildID int64, title, description string) (*models.Suggestion, error)
	AttachSuggestionMessage(ctx context.Context, id, messageID, threadID int64) error
	ResolveSuggestion(ctx context.Context, id int64, status models.SubmissionStatus) (*models.Suggestion, error)

	SubmitBugReport(ctx context.Context, authorID, guildID int64, title, description string) (*models.BugReport, error)
	AttachBugReportMessage(ctx context.Context, id, messageID int64) error
	ResolveBugReport(ctx context.Context, id int64, status models.SubmissionStatus) (*models.BugReport, error)
}

// ShopService manages the shop item table
type ShopService interface {
	AddItem(ctx context.Context, actorID int64, item *models.ShopItem) error
	RemoveItem(ctx context.Context, actorID, guildID int64, name string) error
	SetItemEnabled(ctx context.Context, actorID, guildID int64, name string, enabled bool) error
	ListItems(ctx context.Context, guildID int64) ([]*models.ShopItem, error)
}

// AuditService persists audit entries for domain events and serves recency queries
type AuditService interface {
	// Record writes a single audit entry
	Record(ctx context.Context, entry *models.AuditEntry) error

	// Recent returns the newest entries for a guild
	Recent(ctx context.Context, guildID int64, limit int) ([]*models.AuditEntry, error)
}
