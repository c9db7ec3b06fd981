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

var testPayRates = map[string]int64{"dealer": 600, "host": 120}

func newShiftMocks() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockShiftRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockShiftRepo := new(MockShiftRepository)

	mockUoW.SetRepositories(nil, nil, nil, mockShiftRepo, nil, nil, nil, nil)
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockShiftRepo
}

func TestShiftService_ClockIn(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockShiftRepo := newShiftMocks()

	svc := NewShiftService(mockFactory, testPayRates)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockShiftRepo.On("GetOpenByUser", ctx, int64(42), int64(555)).Return(nil, nil)
	mockShiftRepo.On("Create", ctx, mock.MatchedBy(func(s *models.Shift) bool {
		return s.DiscordID == 42 && s.Role == "dealer" && s.HourlyRate == 600
	})).Return(nil)

	shift, err := svc.ClockIn(ctx, 42, 555, "Dealer")

	require.NoError(t, err)
	assert.Equal(t, "dealer", shift.Role)

	// And the in-memory map now reflects the open shift
	open, ok := svc.Status(42)
	assert.True(t, ok)
	assert.Equal(t, shift, open)
}

func TestShiftService_ClockIn_AlreadyClockedIn(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockShiftRepo := newShiftMocks()

	svc := NewShiftService(mockFactory, testPayRates)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockShiftRepo.On("GetOpenByUser", ctx, int64(42), int64(555)).Return(nil, nil).Once()
	mockShiftRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err := svc.ClockIn(ctx, 42, 555, "dealer")
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, 42, 555, "dealer")
	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
}

func TestShiftService_ClockIn_StaleMapFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockShiftRepo := newShiftMocks()

	svc := NewShiftService(mockFactory, testPayRates)

	// The map is empty, but the database still has an open row
	existing := &models.Shift{ID: 7, DiscordID: 42, GuildID: 555, Role: "dealer", HourlyRate: 600, ClockIn: time.Now()}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockShiftRepo.On("GetOpenByUser", ctx, int64(42), int64(555)).Return(existing, nil)

	_, err := svc.ClockIn(ctx, 42, 555, "dealer")

	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	mockShiftRepo.AssertNotCalled(t, "Create")

	// The stale entry was re-cached
	_, ok := svc.Status(42)
	assert.True(t, ok)
}

func TestShiftService_ClockIn_UnknownRole(t *testing.T) {
	mockFactory, _, _ := newShiftMocks()
	svc := NewShiftService(mockFactory, testPayRates)

	_, err := svc.ClockIn(context.Background(), 42, 555, "croupier")
	assert.ErrorIs(t, err, ErrUnknownShiftRole)
}

func TestShiftService_ClockOut(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockShiftRepo := newShiftMocks()

	svc := NewShiftService(mockFactory, testPayRates)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockShiftRepo.On("GetOpenByUser", ctx, int64(42), int64(555)).Return(nil, nil)
	mockShiftRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockShiftRepo.On("Close", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ClockIn(ctx, 42, 555, "dealer")
	require.NoError(t, err)

	receipt, err := svc.ClockOut(ctx, 42, 555)
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.DiscordID)
	assert.Equal(t, "dealer", receipt.Role)

	_, stillOpen := svc.Status(42)
	assert.False(t, stillOpen)

	// A second clock-out is rejected
	_, err = svc.ClockOut(ctx, 42, 555)
	assert.ErrorIs(t, err, ErrNotClockedIn)

	// A ShiftClosedEvent was published
	var found bool
	for _, e := range mockUoW.PublishedEvents() {
		if closed, ok := e.(events.ShiftClosedEvent); ok {
			found = true
			assert.Equal(t, int64(42), closed.TargetID)
			assert.False(t, closed.Forced)
		}
	}
	assert.True(t, found)
}

func TestShiftService_ClockOutAll(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockShiftRepo := newShiftMocks()

	svc := NewShiftService(mockFactory, testPayRates)

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockShiftRepo.On("GetOpenByUser", ctx, mock.Anything, mock.Anything).Return(nil, nil)
	mockShiftRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockShiftRepo.On("Close", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ClockIn(ctx, 1, 555, "dealer")
	require.NoError(t, err)
	_, err = svc.ClockIn(ctx, 2, 555, "host")
	require.NoError(t, err)

	receipts, err := svc.ClockOutAll(ctx, 555)
	require.NoError(t, err)
	assert.Len(t, receipts, 2)

	_, ok := svc.Status(1)
	assert.False(t, ok)
	_, ok = svc.Status(2)
	assert.False(t, ok)
}

func TestShiftService_SyncFromDatabase(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockShiftRepo := newShiftMocks()

	svc := NewShiftService(mockFactory, testPayRates)

	open := []*models.Shift{
		{ID: 1, DiscordID: 10, GuildID: 555, Role: "dealer", HourlyRate: 600, ClockIn: time.Now().Add(-time.Hour)},
		{ID: 2, DiscordID: 20, GuildID: 555, Role: "host", HourlyRate: 120, ClockIn: time.Now()},
	}

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockShiftRepo.On("GetAllOpen", ctx).Return(open, nil)

	require.NoError(t, svc.SyncFromDatabase(ctx))

	_, ok := svc.Status(10)
	assert.True(t, ok)
	_, ok = svc.Status(20)
	assert.True(t, ok)
}

func TestComputeEarnings(t *testing.T) {
	// 600 chips/hour = 10 chips/minute
	assert.Equal(t, int64(600), computeEarnings(time.Hour, 600))
	assert.Equal(t, int64(300), computeEarnings(30*time.Minute, 600))
	// A few seconds of lag round away
	assert.Equal(t, int64(600), computeEarnings(time.Hour+10*time.Second, 600))
	assert.Equal(t, int64(0), computeEarnings(20*time.Second, 600))
}
