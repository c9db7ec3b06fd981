package service

import (
	"context"
	"testing"

	"pitboss/events"
	"pitboss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEconomyMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockUserRepo
}

func TestEconomyService_GetOrCreateUser_Existing(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	existing := &models.User{DiscordID: 123, GuildID: 555, Username: "punter", Wallet: 1000, Bank: 5000}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(123), int64(555)).Return(existing, nil)

	user, err := svc.GetOrCreateUser(ctx, 123, 555, "punter")

	require.NoError(t, err)
	assert.Equal(t, existing, user)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestEconomyService_GetOrCreateUser_New(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	created := &models.User{DiscordID: 123, GuildID: 555, Username: "punter"}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(123), int64(555)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(123), int64(555), "punter").Return(created, nil)

	user, err := svc.GetOrCreateUser(ctx, 123, 555, "punter")

	require.NoError(t, err)
	assert.Equal(t, created, user)
	mockUserRepo.AssertExpectations(t)
}

func TestEconomyService_AdjustBalances(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	target := &models.User{DiscordID: 123, GuildID: 555, Wallet: 1000, Bank: 5000, OffEconomy: true}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(123), int64(555)).Return(target, nil)
	mockUserRepo.On("UpdateBalances", ctx, int64(123), int64(555), int64(1500), int64(4000)).Return(nil)

	user, err := svc.AdjustBalances(ctx, 999, 123, 555, 500, -1000, "comp for outage")

	require.NoError(t, err)
	assert.Equal(t, int64(1500), user.Wallet)
	assert.Equal(t, int64(4000), user.Bank)
	// Untouched fields survive the adjustment
	assert.True(t, user.OffEconomy)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	event, ok := published[0].(events.BalanceAdjustedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(999), event.ActorID)
	assert.Equal(t, int64(500), event.WalletDelta)
	assert.Equal(t, "comp for outage", event.Reason)

	mockUserRepo.AssertExpectations(t)
}

func TestEconomyService_AdjustBalances_Negative(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	target := &models.User{DiscordID: 123, GuildID: 555, Wallet: 100, Bank: 0}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(123), int64(555)).Return(target, nil)

	_, err := svc.AdjustBalances(ctx, 999, 123, 555, -500, 0, "fine")

	assert.ErrorIs(t, err, ErrNegativeBalance)
	mockUserRepo.AssertNotCalled(t, "UpdateBalances")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestEconomyService_AdjustBalances_UserNotFound(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(404), int64(555)).Return(nil, nil)

	_, err := svc.AdjustBalances(ctx, 999, 404, 555, 100, 0, "bonus")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEconomyService_SetOffEconomy_RoundTripsBalances(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	target := &models.User{DiscordID: 123, GuildID: 555, Wallet: 777, Bank: 8888, OffEconomy: false}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(123), int64(555)).Return(target, nil)
	mockUserRepo.On("SetOffEconomy", ctx, int64(123), int64(555), true).Return(nil)

	user, err := svc.SetOffEconomy(ctx, 999, 123, 555, true)

	require.NoError(t, err)
	assert.True(t, user.OffEconomy)
	// Wallet and bank are untouched by the toggle
	assert.Equal(t, int64(777), user.Wallet)
	assert.Equal(t, int64(8888), user.Bank)
	mockUserRepo.AssertNotCalled(t, "UpdateBalances")
}

func TestEconomyService_SetOffEconomy_NoopWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockUserRepo := newEconomyMocks()

	svc := NewEconomyService(mockFactory)

	target := &models.User{DiscordID: 123, GuildID: 555, OffEconomy: true}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByDiscordID", ctx, int64(123), int64(555)).Return(target, nil)

	_, err := svc.SetOffEconomy(ctx, 999, 123, 555, true)

	require.NoError(t, err)
	mockUserRepo.AssertNotCalled(t, "SetOffEconomy")
	assert.Empty(t, mockUoW.PublishedEvents())
}
