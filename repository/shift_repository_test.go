package repository

import (
	"context"
	"testing"
	"time"

	"pitboss/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepository_OpenShiftLifecycle(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShiftRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no open shift", func(t *testing.T) {
		shift, err := repo.GetOpenByUser(ctx, 999999, 1)
		require.NoError(t, err)
		assert.Nil(t, shift)
	})

	t.Run("create and fetch open shift", func(t *testing.T) {
		testShift := testutil.CreateTestShift(123456, 1)
		require.NoError(t, repo.Create(ctx, testShift))
		assert.NotZero(t, testShift.ID)

		shift, err := repo.GetOpenByUser(ctx, 123456, 1)
		require.NoError(t, err)
		require.NotNil(t, shift)
		assert.Equal(t, testShift.ID, shift.ID)
		assert.Equal(t, "dealer", shift.Role)
		assert.Equal(t, int64(250), shift.HourlyRate)
		assert.Nil(t, shift.ClockOut)
	})

	t.Run("second open shift for same user is rejected", func(t *testing.T) {
		// The partial unique index on open shifts is the authoritative guard
		dup := testutil.CreateTestShift(123456, 1)
		assert.Error(t, repo.Create(ctx, dup))
	})

	t.Run("close shift", func(t *testing.T) {
		shift, err := repo.GetOpenByUser(ctx, 123456, 1)
		require.NoError(t, err)
		require.NotNil(t, shift)

		clockOut := time.Now()
		require.NoError(t, repo.Close(ctx, shift.ID, clockOut, 500))

		// No longer open
		open, err := repo.GetOpenByUser(ctx, 123456, 1)
		require.NoError(t, err)
		assert.Nil(t, open)

		// Closing twice fails
		assert.Error(t, repo.Close(ctx, shift.ID, clockOut, 500))
	})

	t.Run("new shift allowed after closing", func(t *testing.T) {
		next := testutil.CreateTestShift(123456, 1)
		assert.NoError(t, repo.Create(ctx, next))
	})
}

func TestShiftRepository_GetAllOpen(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShiftRepository(testDB.DB)
	ctx := context.Background()

	first := testutil.CreateTestShift(111, 1)
	first.ClockIn = time.Now().Add(-3 * time.Hour)
	require.NoError(t, repo.Create(ctx, first))

	second := testutil.CreateTestShift(222, 1)
	second.ClockIn = time.Now().Add(-1 * time.Hour)
	require.NoError(t, repo.Create(ctx, second))

	closed := testutil.CreateTestShift(333, 1)
	require.NoError(t, repo.Create(ctx, closed))
	require.NoError(t, repo.Close(ctx, closed.ID, time.Now(), 250))

	open, err := repo.GetAllOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)

	// Ordered by clock-in
	assert.Equal(t, int64(111), open[0].DiscordID)
	assert.Equal(t, int64(222), open[1].DiscordID)
}

func TestShiftRepository_TotalEarnings(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewShiftRepository(testDB.DB)
	ctx := context.Background()

	t.Run("zero with no closed shifts", func(t *testing.T) {
		total, err := repo.TotalEarnings(ctx, 444, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("sums only closed shifts", func(t *testing.T) {
		for _, earnings := range []int64{300, 700} {
			shift := testutil.CreateTestShift(444, 1)
			require.NoError(t, repo.Create(ctx, shift))
			require.NoError(t, repo.Close(ctx, shift.ID, time.Now(), earnings))
		}

		// An open shift contributes nothing
		open := testutil.CreateTestShift(444, 1)
		require.NoError(t, repo.Create(ctx, open))

		total, err := repo.TotalEarnings(ctx, 444, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), total)
	})
}
