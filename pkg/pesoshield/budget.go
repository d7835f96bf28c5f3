package pesoshield

import (
	"context"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// Planned returns the recurring monthly plan. Stored data is merged over
// the zero-valued full category set, so newly introduced categories always
// appear and stored keys outside the fixed set are dropped.
func (s *budgetService) Planned(ctx context.Context) (map[CategoryKey]float64, error) {
	result := zeroByCategory()

	var stored map[CategoryKey]float64
	ok, err := s.client.getJSON(ctx, plannedKey, &stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load planned budget")
	}
	if !ok {
		return result, nil
	}

	for key := range result {
		if value, present := stored[key]; present {
			result[key] = value
		}
	}

	return result, nil
}

// SavePlanned replaces the whole plan. Negative amounts are rejected; a
// plan of zero for a category simply disables its threshold alerts.
func (s *budgetService) SavePlanned(ctx context.Context, planned map[CategoryKey]float64) error {
	for key, amount := range planned {
		if amount < 0 {
			return &ValidationError{Field: string(key), Message: "planned amount must not be negative", Value: amount}
		}
	}

	complete := zeroByCategory()
	for key := range complete {
		if value, present := planned[key]; present {
			complete[key] = value
		}
	}

	if err := s.client.setJSON(ctx, plannedKey, complete); err != nil {
		return errors.Wrap(err, "failed to save planned budget")
	}

	return nil
}

// SpentByCategory sums expenses per category for the given month. The
// month match is a string prefix over the ISO transaction date.
func (s *budgetService) SpentByCategory(ctx context.Context, ym YearMonth) (map[CategoryKey]float64, error) {
	txs, err := s.client.Ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	result := zeroByCategory()
	for _, tx := range txs {
		if tx.Type != TransactionExpense || !ym.Contains(tx.Date) {
			continue
		}
		// Stored data is untrusted; keys outside the fixed set are ignored
		if _, known := result[tx.Category]; !known {
			continue
		}
		result[tx.Category] += tx.Amount
	}

	return result, nil
}
