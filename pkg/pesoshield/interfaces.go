package pesoshield

import "context"

// RateService fetches exchange-rate and inflation data from the external
// providers. All three calls degrade rather than fail: an empty slice or
// nil result means "unavailable", and the caller offers a manual retry.
type RateService interface {
	// Fetch returns the current normalized rate board. Primary provider
	// failure falls back to a reduced board (oficial and blue only);
	// total failure yields an empty slice, which callers must treat as
	// "unavailable", not "zero rates".
	Fetch(ctx context.Context) []RateSnapshot

	// History returns the historical series for the Oficial and Blue
	// rates. Failure yields an empty slice.
	History(ctx context.Context) []RateHistoryPoint

	// CPI returns the latest inflation index reading, or nil when the
	// series is unavailable or empty.
	CPI(ctx context.Context) *CPIData
}

// LedgerService persists and retrieves transactions.
type LedgerService interface {
	// List returns all stored transactions. Corrupt or missing stored
	// data degrades to an empty slice.
	List(ctx context.Context) ([]Transaction, error)

	// Add validates and stores a transaction, assigning an ID when the
	// caller left it empty.
	Add(ctx context.Context, tx Transaction) (*Transaction, error)

	// Delete removes a transaction by ID. Deleting an unknown ID is a
	// no-op.
	Delete(ctx context.Context, id string) error
}

// BudgetService aggregates planned and actual spend per category.
type BudgetService interface {
	// Planned returns the recurring monthly plan, merged against the
	// full category set so every key is present, zero when unset.
	Planned(ctx context.Context) (map[CategoryKey]float64, error)

	// SavePlanned replaces the whole plan. The caller supplies a
	// complete map; there is no partial merge on write.
	SavePlanned(ctx context.Context, planned map[CategoryKey]float64) error

	// SpentByCategory sums expenses per category for the given month.
	// Every category key is present in the result, zero when nothing
	// matched.
	SpentByCategory(ctx context.Context, ym YearMonth) (map[CategoryKey]float64, error)
}

// AlertService derives the ranked alert list and tracks same-day
// dismissals.
type AlertService interface {
	// CheckAll runs the rate-spike, budget-threshold and
	// spending-pattern checks, sorts by severity and caps the result at
	// five alerts. A nil or empty previous snapshot set disables the
	// rate-spike check; this is the expected first-run state.
	CheckAll(ctx context.Context, current, previous []RateSnapshot) ([]Alert, error)

	// Visible evaluates alerts against the cached previous snapshot,
	// filters out dismissed ones, and caches the current snapshot for
	// the next visit.
	Visible(ctx context.Context, current []RateSnapshot) ([]Alert, error)

	// Dismiss hides an alert until the next calendar day.
	Dismiss(ctx context.Context, alertID string) error
}

// ReportService builds the monthly report context and drives the
// text-generation collaborator.
type ReportService interface {
	// BuildContext assembles the structured month snapshot. A nil
	// yearMonth defaults to the current month.
	BuildContext(ctx context.Context, rates []RateSnapshot, yearMonth *YearMonth) (*ReportContext, error)

	// Generate produces the natural-language monthly summary for a
	// built context. An empty month returns ErrNoReportData before the
	// collaborator is called; collaborator failure wraps
	// ErrReportUnavailable.
	Generate(ctx context.Context, reportCtx *ReportContext) (string, error)

	// Chat runs one turn of the conversational assistant over the given
	// message history.
	Chat(ctx context.Context, history []ChatMessage) (string, error)
}

// Generator is the opaque text-generation collaborator. It receives the
// report context as JSON plus a fixed style directive and returns a
// bounded-length string. Output is not deterministic; callers assert only
// structural properties.
type Generator interface {
	Generate(ctx context.Context, contextJSON []byte, directive string) (string, error)
}

// Assistant is the conversational collaborator: a running message history
// plus a fixed persona directive in, assistant text out.
type Assistant interface {
	Chat(ctx context.Context, history []ChatMessage, directive string) (string, error)
}
