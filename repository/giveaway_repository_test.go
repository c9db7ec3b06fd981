package repository

import (
	"context"
	"testing"

	"pitboss/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiveawayRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiveawayRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing row returns nil", func(t *testing.T) {
		g, err := repo.GetByMessageID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("round trip", func(t *testing.T) {
		created := testutil.CreateTestGiveaway(1001, 1)
		require.NoError(t, repo.Create(ctx, created))

		g, err := repo.GetByMessageID(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, g)
		assert.Equal(t, created.Prize, g.Prize)
		assert.Equal(t, created.WinnerCount, g.WinnerCount)
		assert.False(t, g.Concluded)
		assert.WithinDuration(t, created.EndsAt, g.EndsAt, 0)
	})

	t.Run("duplicate message ID is rejected", func(t *testing.T) {
		dup := testutil.CreateTestGiveaway(1001, 1)
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestGiveawayRepository_OpenAndConclude(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiveawayRepository(testDB.DB)
	ctx := context.Background()

	running := testutil.CreateTestGiveaway(2001, 1)
	require.NoError(t, repo.Create(ctx, running))

	finished := testutil.CreateTestGiveaway(2002, 1)
	require.NoError(t, repo.Create(ctx, finished))
	require.NoError(t, repo.MarkConcluded(ctx, 2002))

	open, err := repo.GetOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, int64(2001), open[0].MessageID)

	t.Run("concluding twice fails", func(t *testing.T) {
		assert.Error(t, repo.MarkConcluded(ctx, 2002))
	})

	t.Run("concluding a missing row fails", func(t *testing.T) {
		assert.Error(t, repo.MarkConcluded(ctx, 424242))
	})
}
