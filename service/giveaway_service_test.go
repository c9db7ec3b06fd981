package service

import (
	"context"
	"testing"
	"time"

	"pitboss/events"
	"pitboss/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGiveawayMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockGiveawayRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockGiveawayRepo := new(MockGiveawayRepository)

	mockUoW.SetRepositories(nil, nil, mockGiveawayRepo, nil, nil, nil, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockGiveawayRepo
}

func TestGiveawayService_StartAndEnter(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	g := &models.Giveaway{
		MessageID: 1001,
		ChannelID: 2002,
		GuildID:   555,
		Prize:     "10,000 chips",
		EndsAt:    time.Now().Add(time.Hour),
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("Create", ctx, g).Return(nil)

	require.NoError(t, svc.Start(ctx, g))
	assert.Equal(t, 1, g.WinnerCount) // defaulted

	assert.NoError(t, svc.Enter(1001, 42))
	assert.NoError(t, svc.Enter(1001, 42)) // re-entry is idempotent
	assert.ErrorIs(t, svc.Enter(9999, 42), ErrGiveawayNotFound)

	assert.Contains(t, svc.Active(), int64(1001))
}

func TestGiveawayService_Start_PastEndTime(t *testing.T) {
	mockFactory, _, _ := newGiveawayMocks()
	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	g := &models.Giveaway{MessageID: 1, EndsAt: time.Now().Add(-time.Minute)}
	assert.Error(t, svc.Start(context.Background(), g))
}

func TestGiveawayService_Conclude(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	g := &models.Giveaway{
		MessageID:   1001,
		GuildID:     555,
		Prize:       "free spins",
		WinnerCount: 1,
		EndsAt:      time.Now().Add(time.Hour),
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("Create", ctx, g).Return(nil)
	mockGiveawayRepo.On("GetByMessageID", ctx, int64(1001)).Return(g, nil)
	mockGiveawayRepo.On("MarkConcluded", ctx, int64(1001)).Return(nil)

	require.NoError(t, svc.Start(ctx, g))
	require.NoError(t, svc.Enter(1001, 11))
	require.NoError(t, svc.Enter(1001, 22))
	require.NoError(t, svc.Enter(1001, 33))

	result, err := svc.Conclude(ctx, 1001)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Participants)
	require.Len(t, result.WinnerIDs, 1)
	assert.Contains(t, []int64{11, 22, 33}, result.WinnerIDs[0])

	// Runtime state is gone
	assert.NotContains(t, svc.Active(), int64(1001))
	assert.ErrorIs(t, svc.Enter(1001, 44), ErrGiveawayNotFound)

	var concluded *events.GiveawayConcludedEvent
	for _, e := range mockUoW.PublishedEvents() {
		if ev, ok := e.(events.GiveawayConcludedEvent); ok {
			concluded = &ev
		}
	}
	require.NotNil(t, concluded)
	assert.Equal(t, 3, concluded.Participants)
}

func TestGiveawayService_Conclude_AlreadyConcluded(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	done := &models.Giveaway{MessageID: 1001, Concluded: true}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("GetByMessageID", ctx, int64(1001)).Return(done, nil)

	_, err := svc.Conclude(ctx, 1001)
	assert.ErrorIs(t, err, ErrGiveawayConcluded)
}

func TestGiveawayService_Recover_RefusesDuplicate(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	existing := &models.Giveaway{MessageID: 1001}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("GetByMessageID", ctx, int64(1001)).Return(existing, nil)

	err := svc.Recover(ctx, &models.Giveaway{MessageID: 1001, EndsAt: time.Now().Add(time.Hour)})

	assert.ErrorIs(t, err, ErrGiveawayExists)
	mockGiveawayRepo.AssertNotCalled(t, "Create")
}

func TestGiveawayService_Recover_ArmsEmptyParticipantSet(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	g := &models.Giveaway{MessageID: 1001, GuildID: 555, Prize: "vip table", EndsAt: time.Now().Add(time.Hour)}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("GetByMessageID", ctx, int64(1001)).Return(nil, nil)
	mockGiveawayRepo.On("Create", ctx, g).Return(nil)

	require.NoError(t, svc.Recover(ctx, g))

	// Recovered giveaway accepts fresh entries
	assert.NoError(t, svc.Enter(1001, 42))
	assert.Contains(t, svc.Active(), int64(1001))
}

func TestGiveawayService_SyncFromDatabase(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	open := []*models.Giveaway{
		{MessageID: 1, EndsAt: time.Now().Add(time.Hour)},
		{MessageID: 2, EndsAt: time.Now().Add(2 * time.Hour)},
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("GetOpen", ctx).Return(open, nil)

	require.NoError(t, svc.SyncFromDatabase(ctx))
	assert.ElementsMatch(t, []int64{1, 2}, svc.Active())
}

func TestGiveawayService_SyncFromDatabase_ConcludesPastDue(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockGiveawayRepo := newGiveawayMocks()

	svc := NewGiveawayService(mockFactory)
	defer svc.Stop()

	overdue := &models.Giveaway{
		MessageID:   1001,
		ChannelID:   2002,
		GuildID:     555,
		Prize:       "weekend bonus",
		WinnerCount: 1,
		EndsAt:      time.Now().Add(-time.Minute),
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockGiveawayRepo.On("GetOpen", ctx).Return([]*models.Giveaway{overdue}, nil)
	mockGiveawayRepo.On("GetByMessageID", ctx, int64(1001)).Return(overdue, nil)
	mockGiveawayRepo.On("MarkConcluded", ctx, int64(1001)).Return(nil)

	require.NoError(t, svc.SyncFromDatabase(ctx))

	// The timer fires with zero delay, so the conclusion lands shortly
	// after the sync returns
	require.Eventually(t, func() bool {
		for _, e := range mockUoW.PublishedEvents() {
			if _, ok := e.(events.GiveawayConcludedEvent); ok {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	mockGiveawayRepo.AssertCalled(t, "MarkConcluded", ctx, int64(1001))
	assert.NotContains(t, svc.Active(), int64(1001))
}

func TestDrawWinners(t *testing.T) {
	t.Run("no participants", func(t *testing.T) {
		assert.Nil(t, drawWinners(nil, 1))
	})

	t.Run("fewer participants than winners", func(t *testing.T) {
		winners := drawWinners([]int64{1, 2}, 5)
		assert.ElementsMatch(t, []int64{1, 2}, winners)
	})

	t.Run("winners are distinct", func(t *testing.T) {
		participants := []int64{1, 2, 3, 4, 5, 6, 7, 8}
		winners := drawWinners(participants, 3)
		require.Len(t, winners, 3)

		seen := make(map[int64]bool)
		for _, w := range winners {
			assert.False(t, seen[w], "winner drawn twice")
			seen[w] = true
			assert.Contains(t, participants, w)
		}
	})
}
