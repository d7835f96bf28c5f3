package pesoshield

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	client *Client
}

// List returns all stored transactions. Corrupt or missing stored data
// degrades to an empty slice.
func (s *ledgerService) List(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	ok, err := s.client.getJSON(ctx, transactionsKey, &txs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transactions")
	}
	if !ok || txs == nil {
		return []Transaction{}, nil
	}
	return txs, nil
}

// Add validates and stores a transaction.
func (s *ledgerService) Add(ctx context.Context, tx Transaction) (*Transaction, error) {
	if err := validateTransaction(&tx); err != nil {
		return nil, err
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	txs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	txs = append(txs, tx)
	if err := s.client.setJSON(ctx, transactionsKey, txs); err != nil {
		return nil, errors.Wrap(err, "failed to save transactions")
	}

	return &tx, nil
}

// Delete removes a transaction by ID. Unknown IDs are a no-op, which
// keeps deletes idempotent.
func (s *ledgerService) Delete(ctx context.Context, id string) error {
	txs, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}

	if err := s.client.setJSON(ctx, transactionsKey, kept); err != nil {
		return errors.Wrap(err, "failed to save transactions")
	}

	return nil
}

// validateTransaction enforces the ledger invariants: non-empty
// description, positive amount, known direction and category, ISO date.
func validateTransaction(tx *Transaction) error {
	if strings.TrimSpace(tx.Description) == "" {
		return &ValidationError{Field: "description", Message: "must not be empty"}
	}

	if tx.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than zero", Value: tx.Amount}
	}

	if tx.Type != TransactionExpense && tx.Type != TransactionIncome {
		return &ValidationError{Field: "type", Message: "must be gasto or ingreso", Value: string(tx.Type)}
	}

	if !ValidCategory(tx.Category) {
		return &ValidationError{Field: "category", Message: "unknown category", Value: string(tx.Category)}
	}

	if _, err := time.Parse("2006-01-02", tx.Date); err != nil {
		return &ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date", Value: tx.Date}
	}

	return nil
}
