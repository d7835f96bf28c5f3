package pesoshield

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildContext_AggregatesMonth(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, nil)

	require.NoError(t, client.Budgets.SavePlanned(ctx, map[CategoryKey]float64{
		CategoryAlimentos: 10000,
		CategoryServicios: 5000,
	}))

	addExpense(t, client, "2025-08-02", 4000, CategoryAlimentos)
	addExpense(t, client, "2025-08-05", 1500, CategoryServicios)
	addIncome(t, client, "2025-08-01", 80000)
	// Previous month spend feeds the trend consumers
	addExpense(t, client, "2025-07-20", 2000, CategoryAlimentos)

	rates := []RateSnapshot{
		{Type: "blue", Label: "Dólar Blue", Sell: 1200},
		{Type: "oficial", Label: "Dólar Oficial", Sell: 1020},
	}

	rc, err := client.Reports.BuildContext(ctx, rates, nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-08", rc.YearMonth)
	assert.Equal(t, "agosto 2025", rc.Month)
	assert.Equal(t, 31, rc.DaysInMonth)
	assert.Equal(t, 15, rc.DaysPassed, "current month counts today's day-of-month")

	assert.Equal(t, 15000.0, rc.TotalPlanned)
	assert.Equal(t, 5500.0, rc.TotalSpent)
	assert.Equal(t, 80000.0, rc.TotalIncome)
	assert.Equal(t, 74500.0, rc.Balance)
	assert.Equal(t, 3, rc.TransactionCount)

	require.Len(t, rc.Categories, len(BudgetCategories))
	assert.Equal(t, 40, rc.Categories[0].PercentUsed, "alimentos 4000/10000")
	assert.Equal(t, 30, rc.Categories[1].PercentUsed, "servicios 1500/5000")

	require.Len(t, rc.Rates, 2)
	assert.Equal(t, RateQuote{Label: "Dólar Blue", Sell: 1200}, rc.Rates[0])

	assert.Equal(t, 2000.0, rc.PreviousMonthSpent[CategoryAlimentos])
}

func TestBuildContext_PastMonthIsFullyElapsed(t *testing.T) {
	client := newTestClient(t, nil)

	ym := YearMonth{Year: 2025, Month: time.June}
	rc, err := client.Reports.BuildContext(context.Background(), nil, &ym)
	require.NoError(t, err)

	assert.Equal(t, 30, rc.DaysInMonth)
	assert.Equal(t, 30, rc.DaysPassed, "a past month is considered fully elapsed")
}

func TestBuildContext_LeapFebruary(t *testing.T) {
	client := newTestClient(t, nil)

	ym := YearMonth{Year: 2024, Month: time.February}
	rc, err := client.Reports.BuildContext(context.Background(), nil, &ym)
	require.NoError(t, err)

	assert.Equal(t, 29, rc.DaysInMonth)
}

func TestBuildContext_TopExpensesStableTieBreak(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, nil)

	for _, tx := range []Transaction{
		{Date: "2025-08-01", Description: "farmacia", Amount: 5000, Type: TransactionExpense, Category: CategorySalud},
		{Date: "2025-08-02", Description: "super primero", Amount: 7000, Type: TransactionExpense, Category: CategoryAlimentos},
		{Date: "2025-08-03", Description: "super segundo", Amount: 7000, Type: TransactionExpense, Category: CategoryAlimentos},
		{Date: "2025-08-04", Description: "colectivo", Amount: 300, Type: TransactionExpense, Category: CategoryTransporte},
		{Date: "2025-08-05", Description: "luz", Amount: 9000, Type: TransactionExpense, Category: CategoryServicios},
	} {
		_, err := client.Ledger.Add(ctx, tx)
		require.NoError(t, err)
	}

	rc, err := client.Reports.BuildContext(ctx, nil, nil)
	require.NoError(t, err)

	require.Len(t, rc.TopExpenses, 3)
	assert.Equal(t, "luz", rc.TopExpenses[0].Description)
	// Equal amounts keep their original relative order
	assert.Equal(t, "super primero", rc.TopExpenses[1].Description)
	assert.Equal(t, "super segundo", rc.TopExpenses[2].Description)
	assert.Equal(t, "Servicios (luz, gas, agua)", rc.TopExpenses[0].Category)
}

func TestBuildContext_EmptyMonth(t *testing.T) {
	client := newTestClient(t, nil)

	rc, err := client.Reports.BuildContext(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Zero(t, rc.TransactionCount)
	assert.Zero(t, rc.TotalPlanned)
	assert.Zero(t, rc.TotalSpent)
	assert.Empty(t, rc.TopExpenses)
}

func TestGenerate_EmptyMonthSkipsGeneration(t *testing.T) {
	generator := new(MockGenerator)
	client := newTestClient(t, &ClientOptions{Generator: generator})

	rc, err := client.Reports.BuildContext(context.Background(), nil, nil)
	require.NoError(t, err)

	_, err = client.Reports.Generate(context.Background(), rc)
	assert.ErrorIs(t, err, ErrNoReportData)

	// The collaborator must not even be called for a legitimate empty
	// state
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_PassesContextJSONAndDirective(t *testing.T) {
	ctx := context.Background()
	generator := new(MockGenerator)
	client := newTestClient(t, &ClientOptions{Generator: generator})

	addExpense(t, client, "2025-08-02", 4000, CategoryAlimentos)

	generator.On("Generate",
		mock.Anything,
		mock.MatchedBy(func(contextJSON []byte) bool {
			var decoded ReportContext
			if err := json.Unmarshal(contextJSON, &decoded); err != nil {
				return false
			}
			return decoded.YearMonth == "2025-08" && decoded.TransactionCount == 1
		}),
		mock.MatchedBy(func(directive string) bool {
			// The fixed directive carries the structural and safety
			// constraints
			return len(directive) > 0 &&
				containsAll(directive, "400 palabras", "NO des consejos de inversion", "NO inventes datos")
		}),
	).Return("Hola! Este mes gastaste $4.000 en alimentos.", nil)

	text, err := client.Reports.Generate(ctx, mustBuildContext(t, client))
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	generator.AssertExpectations(t)
}

func TestGenerate_CollaboratorFailureIsUnavailable(t *testing.T) {
	ctx := context.Background()
	generator := new(MockGenerator)
	client := newTestClient(t, &ClientOptions{Generator: generator})

	addExpense(t, client, "2025-08-02", 4000, CategoryAlimentos)

	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	_, err := client.Reports.Generate(ctx, mustBuildContext(t, client))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportUnavailable)
	assert.NotErrorIs(t, err, ErrNoReportData, "a failure is distinct from an empty month")
}

func TestGenerate_NoGeneratorConfigured(t *testing.T) {
	client := newTestClient(t, nil)
	addExpense(t, client, "2025-08-02", 4000, CategoryAlimentos)

	_, err := client.Reports.Generate(context.Background(), mustBuildContext(t, client))
	assert.ErrorIs(t, err, ErrNoGenerator)
}

func TestChat_DelegatesWithPersonaDirective(t *testing.T) {
	assistant := new(MockAssistant)
	client := newTestClient(t, &ClientOptions{Assistant: assistant})

	history := []ChatMessage{{Role: "user", Content: "¿Qué es el dólar blue?"}}

	assistant.On("Chat", mock.Anything, history,
		mock.MatchedBy(func(directive string) bool {
			return containsAll(directive, "PesoShield", "español rioplatense")
		}),
	).Return("El dólar blue es el que se compra fuera del banco.", nil)

	reply, err := client.Reports.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	assistant.AssertExpectations(t)
}

func TestChat_NoAssistantConfigured(t *testing.T) {
	client := newTestClient(t, nil)

	_, err := client.Reports.Chat(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoAssistant)
}

// mustBuildContext builds the current month's context or fails the test.
func mustBuildContext(t *testing.T, client *Client) *ReportContext {
	t.Helper()
	rc, err := client.Reports.BuildContext(context.Background(), nil, nil)
	require.NoError(t, err)
	return rc
}

// containsAll reports whether s contains every needle.
func containsAll(s string, needles ...string) bool {
	for _, n := range needles {
		if !strings.Contains(s, n) {
			return false
		}
	}
	return true
}
