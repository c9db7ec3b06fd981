package service

import (
	"context"
	"testing"
	"time"

	"pitboss/events"
	"pitboss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSubscriptionMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockSubscriptionRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockSubRepo := new(MockSubscriptionRepository)

	mockUoW.SetRepositories(nil, mockSubRepo, nil, nil, nil, nil, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockSubRepo
}

func TestSubscriptionService_Grant(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockSubRepo := newSubscriptionMocks()

	svc := NewSubscriptionService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSubRepo.On("Upsert", ctx, mock.MatchedBy(func(s *models.Subscription) bool {
		return s.DiscordID == 42 && s.Tier == "high-roller" && s.Active
	})).Return(nil)

	sub, err := svc.Grant(ctx, 999, 42, 555, 777, "high-roller", 30*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "high-roller", sub.Tier)
	assert.True(t, sub.Active)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sub.ExpiresAt, time.Minute)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	granted, ok := published[0].(events.SubscriptionGrantedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(777), granted.RoleID)
}

func TestSubscriptionService_Grant_InvalidDuration(t *testing.T) {
	mockFactory, _, _ := newSubscriptionMocks()
	svc := NewSubscriptionService(mockFactory)

	_, err := svc.Grant(context.Background(), 999, 42, 555, 777, "high-roller", -time.Hour)
	assert.Error(t, err)
}

func TestSubscriptionService_Revoke(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockSubRepo := newSubscriptionMocks()

	svc := NewSubscriptionService(mockFactory)

	active := &models.Subscription{DiscordID: 42, GuildID: 555, Tier: "vip", RoleID: 777, Active: true}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSubRepo.On("GetByDiscordID", ctx, int64(42), int64(555)).Return(active, nil)
	mockSubRepo.On("Deactivate", ctx, int64(42), int64(555)).Return(nil)

	sub, err := svc.Revoke(ctx, 999, 42, 555)

	require.NoError(t, err)
	assert.False(t, sub.Active)
}

func TestSubscriptionService_Revoke_NoSubscription(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockSubRepo := newSubscriptionMocks()

	svc := NewSubscriptionService(mockFactory)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSubRepo.On("GetByDiscordID", ctx, int64(42), int64(555)).Return(nil, nil)

	_, err := svc.Revoke(ctx, 999, 42, 555)
	assert.ErrorIs(t, err, ErrNoSubscription)
}

func TestSubscriptionService_ExpireDue(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockSubRepo := newSubscriptionMocks()

	svc := NewSubscriptionService(mockFactory)

	now := time.Now()
	due := []*models.Subscription{
		{DiscordID: 1, GuildID: 555, Tier: "vip", RoleID: 7, Active: true, ExpiresAt: now.Add(-time.Hour)},
		{DiscordID: 2, GuildID: 555, Tier: "vip", RoleID: 7, Active: true, ExpiresAt: now.Add(-time.Minute)},
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSubRepo.On("GetExpired", ctx, now).Return(due, nil)
	mockSubRepo.On("Deactivate", ctx, int64(1), int64(555)).Return(nil)
	mockSubRepo.On("Deactivate", ctx, int64(2), int64(555)).Return(nil)

	expired, err := svc.ExpireDue(ctx, now)

	require.NoError(t, err)
	assert.Len(t, expired, 2)
	for _, sub := range expired {
		assert.False(t, sub.Active)
	}

	// Each expiry publishes a revoked event flagged as Expired
	published := mockUoW.PublishedEvents()
	require.Len(t, published, 2)
	for _, e := range published {
		revoked, ok := e.(events.SubscriptionRevokedEvent)
		require.True(t, ok)
		assert.True(t, revoked.Expired)
		assert.Zero(t, revoked.ActorID)
	}

	mockSubRepo.AssertExpectations(t)
}
