package service

import (
	"context"
	"sync"
	"time"

	"pitboss/events"
	"pitboss/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID, guildID int64) (*models.User, error) {
	args := m.Called(ctx, discordID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, discordID, guildID int64, username string) (*models.User, error) {
	args := m.Called(ctx, discordID, guildID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalances(ctx context.Context, discordID, guildID, wallet, bank int64) error {
	args := m.Called(ctx, discordID, guildID, wallet, bank)
	return args.Error(0)
}

func (m *MockUserRepository) SetOffEconomy(ctx context.Context, discordID, guildID int64, offEconomy bool) error {
	args := m.Called(ctx, discordID, guildID, offEconomy)
	return args.Error(0)
}

func (m *MockUserRepository) Summarize(ctx context.Context, guildID int64) (*models.EconomySummary, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EconomySummary), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByDiscordID(ctx context.Context, discordID, guildID int64) (*models.Subscription, error) {
	args := m.Called(ctx, discordID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Deactivate(ctx context.Context, discordID, guildID int64) error {
	args := m.Called(ctx, discordID, guildID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetExpired(ctx context.Context, now time.Time) ([]*models.Subscription, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

// MockGiveawayRepository is a mock implementation of GiveawayRepository
type MockGiveawayRepository struct {
	mock.Mock
}

func (m *MockGiveawayRepository) Create(ctx context.Context, g *models.Giveaway) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGiveawayRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.Giveaway, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Giveaway), args.Error(1)
}

func (m *MockGiveawayRepository) GetOpen(ctx context.Context) ([]*models.Giveaway, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Giveaway), args.Error(1)
}

func (m *MockGiveawayRepository) MarkConcluded(ctx context.Context, messageID int64) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// MockShiftRepository is a mock implementation of ShiftRepository
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) GetOpenByUser(ctx context.Context, discordID, guildID int64) (*models.Shift, error) {
	args := m.Called(ctx, discordID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shift), args.Error(1)
}

func (m *MockShiftRepository) GetAllOpen(ctx context.Context) ([]*models.Shift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Shift), args.Error(1)
}

func (m *MockShiftRepository) Close(ctx context.Context, shiftID int64, clockOut time.Time, earnings int64) error {
	args := m.Called(ctx, shiftID, clockOut, earnings)
	return args.Error(0)
}

func (m *MockShiftRepository) TotalEarnings(ctx context.Context, discordID, guildID int64) (int64, error) {
	args := m.Called(ctx, discordID, guildID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSuggestionRepository is a mock implementation of SuggestionRepository
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) Create(ctx context.Context, s *models.Suggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSuggestionRepository) GetByID(ctx context.Context, id int64) (*models.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) SetMessageIDs(ctx context.Context, id, messageID, threadID int64) error {
	args := m.Called(ctx, id, messageID, threadID)
	return args.Error(0)
}

func (m *MockSuggestionRepository) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockBugReportRepository is a mock implementation of BugReportRepository
type MockBugReportRepository struct {
	mock.Mock
}

func (m *MockBugReportRepository) Create(ctx context.Context, b *models.BugReport) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBugReportRepository) GetByID(ctx context.Context, id int64) (*models.BugReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BugReport), args.Error(1)
}

func (m *MockBugReportRepository) SetMessageID(ctx context.Context, id, messageID int64) error {
	args := m.Called(ctx, id, messageID)
	return args.Error(0)
}

func (m *MockBugReportRepository) UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetRecent(ctx context.Context, guildID int64, limit int) ([]*models.AuditEntry, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditEntry), args.Error(1)
}

// MockShopRepository is a mock implementation of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Create(ctx context.Context, item *models.ShopItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShopRepository) GetByName(ctx context.Context, guildID int64, name string) (*models.ShopItem, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShopItem), args.Error(1)
}

func (m *MockShopRepository) GetAll(ctx context.Context, guildID int64) ([]*models.ShopItem, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ShopItem), args.Error(1)
}

func (m *MockShopRepository) SetEnabled(ctx context.Context, guildID int64, name string, enabled bool) error {
	args := m.Called(ctx, guildID, name, enabled)
	return args.Error(0)
}

func (m *MockShopRepository) Delete(ctx context.Context, guildID int64, name string) error {
	args := m.Called(ctx, guildID, name)
	return args.Error(0)
}

// RecordingEventPublisher captures published events for assertions
type RecordingEventPublisher struct {
	mu     sync.Mutex
	Events []events.Event
}

func (p *RecordingEventPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, e)
}

// Published returns a snapshot of the captured events
func (p *RecordingEventPublisher) Published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.Events))
	copy(out, p.Events)
	return out
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// attached with SetRepositories; Begin/Commit/Rollback run through testify.
type MockUnitOfWork struct {
	mock.Mock

	userRepo         UserRepository
	subscriptionRepo SubscriptionRepository
	giveawayRepo     GiveawayRepository
	shiftRepo        ShiftRepository
	suggestionRepo   SuggestionRepository
	bugReportRepo    BugReportRepository
	auditRepo        AuditRepository
	shopRepo         ShopRepository
	publisher        *RecordingEventPublisher
}

// SetRepositories attaches repositories to the unit of work. Nil arguments
// are fine for repositories the test never touches.
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	subscriptionRepo SubscriptionRepository,
	giveawayRepo GiveawayRepository,
	shiftRepo ShiftRepository,
	suggestionRepo SuggestionRepository,
	bugReportRepo BugReportRepository,
	auditRepo AuditRepository,
	shopRepo ShopRepository,
) {
	m.userRepo = userRepo
	m.subscriptionRepo = subscriptionRepo
	m.giveawayRepo = giveawayRepo
	m.shiftRepo = shiftRepo
	m.suggestionRepo = suggestionRepo
	m.bugReportRepo = bugReportRepo
	m.auditRepo = auditRepo
	m.shopRepo = shopRepo
	m.publisher = &RecordingEventPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository                 { return m.userRepo }
func (m *MockUnitOfWork) SubscriptionRepository() SubscriptionRepository { return m.subscriptionRepo }
func (m *MockUnitOfWork) GiveawayRepository() GiveawayRepository         { return m.giveawayRepo }
func (m *MockUnitOfWork) ShiftRepository() ShiftRepository               { return m.shiftRepo }
func (m *MockUnitOfWork) SuggestionRepository() SuggestionRepository     { return m.suggestionRepo }
func (m *MockUnitOfWork) BugReportRepository() BugReportRepository       { return m.bugReportRepo }
func (m *MockUnitOfWork) AuditRepository() AuditRepository               { return m.auditRepo }
func (m *MockUnitOfWork) ShopRepository() ShopRepository                 { return m.shopRepo }

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher == nil {
		m.publisher = &RecordingEventPublisher{}
	}
	return m.publisher
}

// PublishedEvents returns the events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Published()
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
