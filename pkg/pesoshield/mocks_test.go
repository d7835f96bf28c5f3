package pesoshield

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pesoshield/pesoshield-go/internal/storage"
)

// MockGenerator mocks the text-generation collaborator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, contextJSON []byte, directive string) (string, error) {
	args := m.Called(ctx, contextJSON, directive)
	return args.String(0), args.Error(1)
}

// MockAssistant mocks the conversational collaborator
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Chat(ctx context.Context, history []ChatMessage, directive string) (string, error) {
	args := m.Called(ctx, history, directive)
	return args.String(0), args.Error(1)
}

// testNow is the pinned "today" for deterministic month and day-stamp
// logic: 2025-08-15.
var testNow = time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)

// newTestClient builds a client over an in-memory store with a pinned
// clock.
func newTestClient(t *testing.T, opts *ClientOptions) *Client {
	t.Helper()

	if opts == nil {
		opts = &ClientOptions{}
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}

	client, err := NewClient(opts)
	require.NoError(t, err)
	return client
}

// addExpense seeds a ledger expense.
func addExpense(t *testing.T, client *Client, date string, amount float64, category CategoryKey) {
	t.Helper()

	_, err := client.Ledger.Add(context.Background(), Transaction{
		Date:        date,
		Description: "test expense",
		Amount:      amount,
		Type:        TransactionExpense,
		Category:    category,
	})
	require.NoError(t, err)
}

// addIncome seeds a ledger income entry.
func addIncome(t *testing.T, client *Client, date string, amount float64) {
	t.Helper()

	_, err := client.Ledger.Add(context.Background(), Transaction{
		Date:        date,
		Description: "test income",
		Amount:      amount,
		Type:        TransactionIncome,
		Category:    CategoryOtros,
	})
	require.NoError(t, err)
}
