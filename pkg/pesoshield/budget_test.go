package pesoshield

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesoshield/pesoshield-go/internal/storage"
)

func TestPlanned_DefaultsToZeroForEveryCategory(t *testing.T) {
	client := newTestClient(t, nil)

	planned, err := client.Budgets.Planned(context.Background())
	require.NoError(t, err)

	assert.Len(t, planned, len(BudgetCategories))
	for _, c := range BudgetCategories {
		assert.Contains(t, planned, c.Key)
		assert.Zero(t, planned[c.Key])
	}
}

func TestSavePlanned_RoundTripMergesZeroDefaults(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, nil)

	// Save a partial map; unspecified categories must come back as zero
	err := client.Budgets.SavePlanned(ctx, map[CategoryKey]float64{
		CategoryAlimentos: 10000,
		CategorySalud:     2500,
	})
	require.NoError(t, err)

	planned, err := client.Budgets.Planned(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[CategoryKey]float64{
		CategoryAlimentos:  10000,
		CategoryServicios:  0,
		CategoryTransporte: 0,
		CategorySalud:      2500,
		CategoryOtros:      0,
	}, planned)
}

func TestSavePlanned_FullyReplacesPreviousPlan(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, nil)

	require.NoError(t, client.Budgets.SavePlanned(ctx, map[CategoryKey]float64{
		CategoryAlimentos: 10000,
	}))
	require.NoError(t, client.Budgets.SavePlanned(ctx, map[CategoryKey]float64{
		CategoryTransporte: 3000,
	}))

	planned, err := client.Budgets.Planned(ctx)
	require.NoError(t, err)

	// The first write is gone entirely; no partial merge on write
	assert.Zero(t, planned[CategoryAlimentos])
	assert.Equal(t, 3000.0, planned[CategoryTransporte])
}

func TestSavePlanned_RejectsNegativeAmounts(t *testing.T) {
	client := newTestClient(t, nil)

	err := client.Budgets.SavePlanned(context.Background(), map[CategoryKey]float64{
		CategoryAlimentos: -1,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestPlanned_IgnoresUnknownStoredKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	client := newTestClient(t, &ClientOptions{Store: store})

	// Stored data with a key outside the fixed set must not leak through
	require.NoError(t, store.Set(ctx, "pesoshield-budget-planned",
		[]byte(`{"alimentos": 5000, "viajes": 99999}`)))

	planned, err := client.Budgets.Planned(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, planned[CategoryAlimentos])
	assert.NotContains(t, planned, CategoryKey("viajes"))
	assert.Len(t, planned, len(BudgetCategories))
}

func TestPlanned_CorruptStoredValueResetsToDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	client := newTestClient(t, &ClientOptions{Store: store})

	require.NoError(t, store.Set(ctx, "pesoshield-budget-planned", []byte(`{{{not json`)))

	planned, err := client.Budgets.Planned(ctx)
	require.NoError(t, err)
	for _, c := range BudgetCategories {
		assert.Zero(t, planned[c.Key])
	}
}

func TestSpentByCategory_SumsExpensesForMonthOnly(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, nil)

	addExpense(t, client, "2025-08-01", 1200, CategoryAlimentos)
	addExpense(t, client, "2025-08-20", 800, CategoryAlimentos)
	addExpense(t, client, "2025-08-10", 450, CategoryTransporte)
	// Different month and income entries must not count
	addExpense(t, client, "2025-07-10", 9999, CategoryAlimentos)
	addIncome(t, client, "2025-08-05", 50000)

	spent, err := client.Budgets.SpentByCategory(ctx, YearMonth{2025, 8})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, spent[CategoryAlimentos])
	assert.Equal(t, 450.0, spent[CategoryTransporte])
	assert.Zero(t, spent[CategorySalud])
	assert.Len(t, spent, len(BudgetCategories))
}

func TestSpentByCategory_EmptyLedgerYieldsAllZeros(t *testing.T) {
	client := newTestClient(t, nil)

	spent, err := client.Budgets.SpentByCategory(context.Background(), YearMonth{2025, 8})
	require.NoError(t, err)

	assert.Len(t, spent, len(BudgetCategories))
	for key, value := range spent {
		assert.Zero(t, value, "category %s", key)
	}
}
