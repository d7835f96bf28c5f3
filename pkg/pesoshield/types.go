package pesoshield

// RateSnapshot is one normalized exchange-rate quote. A fetch replaces the
// whole set; Type is unique within a set.
type RateSnapshot struct {
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	Buy       float64 `json:"buy"`
	Sell      float64 `json:"sell"`
	Source    string  `json:"source"`
	UpdatedAt string  `json:"updatedAt"`
}

// RateHistoryPoint is one day of the historical rate series. The provider
// does not guarantee ordering by date.
type RateHistoryPoint struct {
	Date   string  `json:"date"`
	Source string  `json:"source"` // "Oficial" or "Blue"
	Buy    float64 `json:"buy"`
	Sell   float64 `json:"sell"`
}

// CPIData is the latest inflation index reading.
type CPIData struct {
	Period        string  `json:"period"`
	Value         float64 `json:"value"`
	PreviousValue float64 `json:"previousValue,omitempty"`
	MonthlyChange float64 `json:"monthlyChange,omitempty"`
}

// TransactionType is the direction of a transaction. Amounts are always
// positive; direction is carried here, never by the sign of the amount.
type TransactionType string

const (
	// TransactionExpense is money going out
	TransactionExpense TransactionType = "gasto"

	// TransactionIncome is money coming in
	TransactionIncome TransactionType = "ingreso"
)

// Transaction is one ledger entry. Entries are never mutated in place;
// an edit is a delete plus a re-add.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    CategoryKey     `json:"category"`
}

// Severity orders alerts from most to least urgent.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// AlertKind identifies which check produced an alert.
type AlertKind string

const (
	AlertRateSpike       AlertKind = "rate-spike"
	AlertBudgetThreshold AlertKind = "budget-threshold"
	AlertSpendingPattern AlertKind = "spending-pattern"
)

// Alert is a derived, never-persisted finding. Only the dismissal record
// and the previous-rates cache survive between evaluations.
type Alert struct {
	ID       string      `json:"id"`
	Kind     AlertKind   `json:"type"`
	Severity Severity    `json:"severity"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Icon     string      `json:"icon"`
	Category CategoryKey `json:"category,omitempty"`
}

// CategoryRow is one per-category line of a report.
type CategoryRow struct {
	Label       string  `json:"label"`
	Icon        string  `json:"icon"`
	Planned     float64 `json:"planned"`
	Spent       float64 `json:"spent"`
	PercentUsed int     `json:"percentUsed"`
}

// TopExpense is one of the largest expenses of a month.
type TopExpense struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// RateQuote is the trimmed rate view embedded in a report.
type RateQuote struct {
	Label string  `json:"label"`
	Sell  float64 `json:"sell"`
}

// ReportContext is the structured snapshot of one month handed to the
// text-generation collaborator. It is derived on demand and never stored.
type ReportContext struct {
	Month              string                  `json:"month"`
	YearMonth          string                  `json:"yearMonth"`
	DaysInMonth        int                     `json:"daysInMonth"`
	DaysPassed         int                     `json:"daysPassed"`
	Categories         []CategoryRow           `json:"categories"`
	TotalPlanned       float64                 `json:"totalPlanned"`
	TotalSpent         float64                 `json:"totalSpent"`
	TotalIncome        float64                 `json:"totalIncome"`
	Balance            float64                 `json:"balance"`
	TransactionCount   int                     `json:"transactionCount"`
	TopExpenses        []TopExpense            `json:"topExpenses"`
	Rates              []RateQuote             `json:"rates"`
	PreviousMonthSpent map[CategoryKey]float64 `json:"previousMonthSpent"`
}

// ChatMessage is one turn of the conversational assistant's history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
