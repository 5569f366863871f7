package file

import (
	"context"
	"os"
	"path/filepath"
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
		InitialCapital:         decimal.NewFromInt(50000),
		AvgYearlyReturns:       decimal.NewFromInt(6),
		WithdrawalRate:         decimal.NewFromInt(4),
		RetirementIncomeTarget: decimal.NewFromInt(40000),
		Incomes: []domain.CashFlow{
			domain.NewRecurringCashFlow("salary", decimal.NewFromInt(60000), domain.Yearly()),
		},
		Spendings: []domain.CashFlow{
			domain.NewOneTimeCashFlow("car", decimal.NewFromInt(25000), 2027),
		},
		Currency: "USD",
	}
}

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "profiles"))
	require.NoError(t, err)
	return store
}

func TestConfigStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "base", testConfiguration()))
	assert.FileExists(t, filepath.Join(store.Dir(), "base.yaml"))

	loaded, err := store.Load(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, 2025, loaded.StartingYear)
	assert.Equal(t, 35, *loaded.Age)
	assert.True(t, loaded.InitialCapital.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "USD", loaded.Currency)
	require.Len(t, loaded.Incomes, 1)
	assert.True(t, loaded.Incomes[0].Recurring)
	require.Len(t, loaded.Spendings, 1)
	assert.Equal(t, 2027, *loaded.Spendings[0].FixedYear)

	assert.ErrorIs(t, store.Create(ctx, "base", testConfiguration()), storage.ErrDuplicateKey)
}

func TestConfigStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "base", testConfiguration()))
	updated := testConfiguration()
	updated.Spendings = nil
	require.NoError(t, store.Save(ctx, "base", updated))

	loaded, err := store.Load(ctx, "base")
	require.NoError(t, err)
	assert.Empty(t, loaded.Spendings)
}

func TestConfigStore_ListAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "beta", testConfiguration()))
	require.NoError(t, store.Save(ctx, "alpha", testConfiguration()))
	// Unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "archive.yaml"), 0o755))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "beta", infos[1].Name)
	assert.False(t, infos[0].UpdatedAt.IsZero())

	require.NoError(t, store.Delete(ctx, "alpha"))
	assert.ErrorIs(t, store.Delete(ctx, "alpha"), storage.ErrNotFound)

	_, err = store.Load(ctx, "alpha")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConfigStore_InvalidInput(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, "../escape", testConfiguration()), storage.ErrInvalidInput)
	_, err := store.Load(ctx, "../escape")
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "broken.yaml"), []byte("starting_year: [1"), 0o644))
	_, err = store.Load(ctx, "broken")
	assert.Error(t, err)
}

func TestConfigStore_Cancelled(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, "base", testConfiguration()), context.Canceled)
	_, err := store.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
