package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotto/repository/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, "alice@example.com", "alice")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "alice", user.Username)
		assert.Zero(t, user.CreditCents)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "alice@example.com", "alice2")
		assert.Error(t, err)
	})

	t.Run("get by email", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)

		missing, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("get by id", func(t *testing.T) {
		created, err := repo.Create(ctx, "bob@example.com", "bob")
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "bob@example.com", user.Email)

		missing, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestUserRepository_AdjustCredit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, err := repo.Create(ctx, "carol@example.com", "carol")
	require.NoError(t, err)

	t.Run("credit then debit", func(t *testing.T) {
		balance, err := repo.AdjustCredit(ctx, user.ID, 10_000)
		require.NoError(t, err)
		assert.Equal(t, int64(10_000), balance)

		balance, err = repo.AdjustCredit(ctx, user.ID, -3_500)
		require.NoError(t, err)
		assert.Equal(t, int64(6_500), balance)
	})

	t.Run("debit to exactly zero", func(t *testing.T) {
		balance, err := repo.AdjustCredit(ctx, user.ID, -6_500)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("overdraw rejected", func(t *testing.T) {
		_, err := repo.AdjustCredit(ctx, user.ID, -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient balance")

		// Balance is untouched by the failed debit
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Zero(t, got.CreditCents)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.AdjustCredit(ctx, 999999, 100)
		assert.Error(t, err)
	})
}
