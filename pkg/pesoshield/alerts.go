package pesoshield

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Alert thresholds. Rate moves under 5% and spend increases that are
// either small in relative terms or under the absolute floor stay quiet;
// the absolute floor keeps tiny categories from flagging.
const (
	maxAlerts = 5

	rateSpikeMinPercent      = 5.0
	rateSpikeCriticalPercent = 10.0

	budgetWarnPercent = 80
	budgetOverPercent = 100

	patternMinIncreasePercent = 30.0
	patternMinAbsoluteARS     = 5000.0
)

// rateShortLabels are the short rate names used in alert copy, where the
// title already says "El dolar".
var rateShortLabels = map[string]string{
	"oficial":         "Oficial",
	"blue":            "Blue",
	"bolsa":           "MEP",
	"contadoconliqui": "CCL",
	"tarjeta":         "Tarjeta",
	"cripto":          "Cripto",
}

var severityOrder = map[Severity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

// alertService implements the AlertService interface
type alertService struct {
	client *Client
}

// CheckAll runs the three alert checks over the current inputs, sorts by
// severity and truncates to the five most urgent. Missing data (no
// previous snapshot, zero planned, zero previous spend) is an
// insufficient basis for an alert, never an error.
func (s *alertService) CheckAll(ctx context.Context, current, previous []RateSnapshot) ([]Alert, error) {
	planned, err := s.client.Budgets.Planned(ctx)
	if err != nil {
		return nil, err
	}

	currentYM := CurrentYearMonth(s.client.now())
	spent, err := s.client.Budgets.SpentByCategory(ctx, currentYM)
	if err != nil {
		return nil, err
	}

	prevSpent, err := s.client.Budgets.SpentByCategory(ctx, currentYM.Prev())
	if err != nil {
		return nil, err
	}

	alerts := checkRateAlerts(current, previous)
	alerts = append(alerts, checkBudgetAlerts(planned, spent)...)
	alerts = append(alerts, checkPatternAlerts(spent, prevSpent)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityOrder[alerts[i].Severity] < severityOrder[alerts[j].Severity]
	})

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}

	return alerts, nil
}

// checkRateAlerts compares the current rate board against the previous
// snapshot. An absent previous set is the expected first-run state and
// produces no alerts.
func checkRateAlerts(current, previous []RateSnapshot) []Alert {
	if len(previous) == 0 {
		return nil
	}

	prevByType := make(map[string]RateSnapshot, len(previous))
	for _, p := range previous {
		prevByType[p.Type] = p
	}

	var alerts []Alert
	for _, cur := range current {
		prev, ok := prevByType[cur.Type]
		if !ok || prev.Sell == 0 || cur.Sell == 0 {
			continue
		}

		change := (cur.Sell - prev.Sell) / prev.Sell * 100
		absChange := math.Abs(change)
		if absChange < rateSpikeMinPercent {
			continue
		}

		label, ok := rateShortLabels[cur.Type]
		if !ok {
			label = cur.Label
		}
		direction := "subio"
		icon := "trending_up"
		message := fmt.Sprintf("Paso de $%.0f a $%.0f. Tene cuidado con compras en dolares.",
			math.Round(prev.Sell), math.Round(cur.Sell))
		if change < 0 {
			direction = "bajo"
			icon = "trending_down"
			message = fmt.Sprintf("Paso de $%.0f a $%.0f.", math.Round(prev.Sell), math.Round(cur.Sell))
		}

		severity := SeverityWarning
		if absChange >= rateSpikeCriticalPercent {
			severity = SeverityCritical
		}

		// The id is keyed on the compared values, not generation time, so
		// the same persistent spike keeps the same id and a dismissal
		// holds for the rest of the day
		alerts = append(alerts, Alert{
			ID: fmt.Sprintf("rate-%s-%s-%.0f-%.0f",
				cur.Type, direction, math.Round(prev.Sell), math.Round(cur.Sell)),
			Kind:     AlertRateSpike,
			Severity: severity,
			Title:    fmt.Sprintf("El dolar %s %s un %.0f%%", label, direction, math.Round(absChange)),
			Message:  message,
			Icon:     icon,
		})
	}

	return alerts
}

// checkBudgetAlerts flags categories at or past their planned amount.
// Categories with no plan cannot evaluate a percentage and are skipped.
func checkBudgetAlerts(planned, spent map[CategoryKey]float64) []Alert {
	var alerts []Alert
	for _, cat := range BudgetCategories {
		p := planned[cat.Key]
		if p <= 0 {
			continue
		}

		percent := int(math.Round(spent[cat.Key] / p * 100))

		switch {
		case percent >= budgetOverPercent:
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("budget-over-%s", cat.Key),
				Kind:     AlertBudgetThreshold,
				Severity: SeverityCritical,
				Title:    fmt.Sprintf("Superaste el presupuesto de %s", CategoryLabel(cat.Key)),
				Message:  fmt.Sprintf("Gastaste %d%% del presupuesto de esta categoria.", percent),
				Icon:     "warning",
				Category: cat.Key,
			})
		case percent >= budgetWarnPercent:
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("budget-warn-%s", cat.Key),
				Kind:     AlertBudgetThreshold,
				Severity: SeverityWarning,
				Title:    fmt.Sprintf("%s: ya usaste el %d%%", CategoryLabel(cat.Key), percent),
				Message:  "Te queda poco presupuesto en esta categoria. Ojo con los gastos.",
				Icon:     "account_balance_wallet",
				Category: cat.Key,
			})
		}
	}

	return alerts
}

// checkPatternAlerts compares this month's spend per category against the
// previous calendar month's.
func checkPatternAlerts(spent, prevSpent map[CategoryKey]float64) []Alert {
	var alerts []Alert
	for _, cat := range BudgetCategories {
		current := spent[cat.Key]
		previous := prevSpent[cat.Key]
		if previous <= 0 || current <= 0 {
			continue
		}

		increase := (current - previous) / previous * 100
		absoluteIncrease := current - previous

		if increase >= patternMinIncreasePercent && absoluteIncrease > patternMinAbsoluteARS {
			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("pattern-%s", cat.Key),
				Kind:     AlertSpendingPattern,
				Severity: SeverityInfo,
				Title: fmt.Sprintf("%s: gastas un %.0f%% mas que el mes pasado",
					CategoryLabel(cat.Key), math.Round(increase)),
				Message:  "Este mes llevas mas gasto en esta categoria comparado con el anterior.",
				Icon:     "insights",
				Category: cat.Key,
			})
		}
	}

	return alerts
}

// Visible evaluates alerts against the cached previous snapshot, filters
// dismissed ones, and caches the current snapshot for the next visit.
func (s *alertService) Visible(ctx context.Context, current []RateSnapshot) ([]Alert, error) {
	previous, err := s.previousRates(ctx)
	if err != nil {
		return nil, err
	}

	alerts, err := s.CheckAll(ctx, current, previous)
	if err != nil {
		return nil, err
	}

	dismissed, err := s.dismissedIDs(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if !dismissed[a.ID] {
			visible = append(visible, a)
		}
	}

	// Cache the current board for next-visit comparison; an empty board
	// means "unavailable" and must not clobber the last good snapshot
	if len(current) > 0 {
		if err := s.client.setJSON(ctx, prevRatesKey, current); err != nil {
			return nil, err
		}
	}

	return visible, nil
}

// Dismiss hides an alert until the next calendar day.
func (s *alertService) Dismiss(ctx context.Context, alertID string) error {
	record, err := s.loadDismissals(ctx)
	if err != nil {
		return err
	}

	for _, id := range record.IDs {
		if id == alertID {
			return nil
		}
	}

	record.IDs = append(record.IDs, alertID)
	record.Date = dayStamp(s.client.now())

	if err := s.client.setJSON(ctx, dismissedKey, record); err != nil {
		return errors.Wrap(err, "failed to save dismissals")
	}

	return nil
}

// dismissalRecord is the persisted same-day dismissal state.
type dismissalRecord struct {
	IDs  []string `json:"ids"`
	Date string   `json:"date"`
}

// loadDismissals loads the dismissal record, discarding it wholesale when
// its day stamp is not today. The daily reset is a hard reset of the
// whole record, not a per-entry expiry.
func (s *alertService) loadDismissals(ctx context.Context) (*dismissalRecord, error) {
	var record dismissalRecord
	ok, err := s.client.getJSON(ctx, dismissedKey, &record)
	if err != nil {
		return nil, err
	}

	if !ok {
		return &dismissalRecord{}, nil
	}

	if record.Date != dayStamp(s.client.now()) {
		if err := s.client.store.Delete(ctx, dismissedKey); err != nil {
			return nil, errors.Wrap(err, "failed to clear stale dismissals")
		}
		return &dismissalRecord{}, nil
	}

	return &record, nil
}

// dismissedIDs returns today's dismissed alert ids as a set.
func (s *alertService) dismissedIDs(ctx context.Context) (map[string]bool, error) {
	record, err := s.loadDismissals(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(record.IDs))
	for _, id := range record.IDs {
		set[id] = true
	}
	return set, nil
}

// previousRates loads the cached previous snapshot set, nil when absent.
func (s *alertService) previousRates(ctx context.Context) ([]RateSnapshot, error) {
	var rates []RateSnapshot
	ok, err := s.client.getJSON(ctx, prevRatesKey, &rates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return rates, nil
}
