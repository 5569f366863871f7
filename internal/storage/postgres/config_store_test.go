package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/storage"
)

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		StartingYear:           2025,
		Age:                    domain.IntPtr(35),
		InitialCapital:         decimal.RequireFromString("50000.50"),
		AvgYearlyReturns:       decimal.NewFromInt(6),
		WithdrawalRate:         decimal.NewFromInt(4),
		RetirementIncomeTarget: decimal.NewFromInt(40000),
		Incomes: []domain.CashFlow{
			domain.NewRecurringCashFlow("salary", decimal.NewFromInt(60000), domain.Yearly()),
		},
		Currency: "EUR",
	}
}

func TestConfigStore_CreateAndLoad(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewConfigStore(pool)

	require.NoError(t, store.Create(ctx, "base", testConfiguration()))

	loaded, err := store.Load(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, 2025, loaded.StartingYear)
	assert.True(t, loaded.InitialCapital.Equal(decimal.RequireFromString("50000.50")))
	assert.Equal(t, "EUR", loaded.Currency)
	require.Len(t, loaded.Incomes, 1)
	assert.Equal(t, "salary", loaded.Incomes[0].Name)

	err = store.Create(ctx, "base", testConfiguration())
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestConfigStore_SaveListDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewConfigStore(pool)

	require.NoError(t, store.Save(ctx, "beta", testConfiguration()))
	require.NoError(t, store.Save(ctx, "alpha", testConfiguration()))

	updated := testConfiguration()
	updated.WithdrawalRate = decimal.RequireFromString("3.5")
	require.NoError(t, store.Save(ctx, "beta", updated))

	loaded, err := store.Load(ctx, "beta")
	require.NoError(t, err)
	assert.True(t, loaded.WithdrawalRate.Equal(decimal.RequireFromString("3.5")))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "beta", infos[1].Name)

	require.NoError(t, store.Delete(ctx, "alpha"))
	assert.ErrorIs(t, store.Delete(ctx, "alpha"), storage.ErrNotFound)

	_, err = store.Load(ctx, "alpha")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConfigStore_MigrateIsIdempotent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, pool.Migrate(context.Background()))
}
