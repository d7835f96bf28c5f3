package pesoshield

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// reportDirective is the fixed style directive handed to the
// text-generation collaborator together with the report context.
const reportDirective = `Sos el asistente financiero de PesoShield, una app para personas mayores en Argentina.
Tu tarea es generar un resumen mensual de finanzas personales.

Reglas:
- Escribi en espanol rioplatense (vos, tenes, podes)
- Se calido y claro, como hablandole a tu abuelo/a
- Usa emojis moderados para separar secciones
- NO des consejos de inversion
- NO inventes datos, usa SOLO los numeros que te paso
- Mantene un tono optimista pero honesto
- Maximo 400 palabras

Estructura del resumen:
1. Saludo y resumen general (1 oracion)
2. Estado del presupuesto por categoria (las que tienen datos)
3. Comparacion con el mes anterior (si hay datos)
4. Impacto del tipo de cambio (menciona el blue y oficial)
5. Un consejo practico para el proximo mes
6. Cierre motivacional`

// assistantDirective is the fixed persona for the conversational
// collaborator.
const assistantDirective = `Sos el asistente de PesoShield, una aplicación diseñada para ayudar a personas mayores en Argentina a entender y manejar sus finanzas personales.

Tu rol:
- Respondé SIEMPRE en español rioplatense (usá "vos", "tenés", "podés", etc.)
- Sé cálido, paciente y claro. Explicá todo con palabras sencillas como si hablaras con tu abuelo/a
- Usá emojis con moderación para que sea más amigable 😊
- Mantené las respuestas cortas y directas (máximo 3-4 párrafos)

Reglas importantes:
- NUNCA des consejos de inversión específicos
- NUNCA inventes cotizaciones o datos numéricos
- Si la consulta es muy compleja o financiera, sugerí pedir ayuda a un familiar
- No hables de temas fuera de finanzas personales argentinas y PesoShield`

// reportService implements the ReportService interface
type reportService struct {
	client *Client
}

// BuildContext assembles the structured snapshot of one month. It is pure
// given the stored ledger and plan: no side effects on read.
func (s *reportService) BuildContext(ctx context.Context, rates []RateSnapshot, yearMonth *YearMonth) (*ReportContext, error) {
	now := s.client.now()
	currentYM := CurrentYearMonth(now)

	ym := currentYM
	if yearMonth != nil {
		ym = *yearMonth
	}

	daysInMonth := ym.DaysIn()
	daysPassed := daysInMonth
	if ym == currentYM {
		daysPassed = now.Day()
	}

	planned, err := s.client.Budgets.Planned(ctx)
	if err != nil {
		return nil, err
	}

	spent, err := s.client.Budgets.SpentByCategory(ctx, ym)
	if err != nil {
		return nil, err
	}

	prevSpent, err := s.client.Budgets.SpentByCategory(ctx, ym.Prev())
	if err != nil {
		return nil, err
	}

	var totalPlanned, totalSpent float64
	categories := make([]CategoryRow, 0, len(BudgetCategories))
	for _, c := range BudgetCategories {
		p := planned[c.Key]
		sp := spent[c.Key]
		percent := 0
		if p > 0 {
			percent = roundPercent(sp, p)
		}
		categories = append(categories, CategoryRow{
			Label:       c.Label,
			Icon:        c.Icon,
			Planned:     p,
			Spent:       sp,
			PercentUsed: percent,
		})
		totalPlanned += p
		totalSpent += sp
	}

	allTxs, err := s.client.Ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	var monthTxs []Transaction
	for _, tx := range allTxs {
		if ym.Contains(tx.Date) {
			monthTxs = append(monthTxs, tx)
		}
	}

	var totalIncome float64
	var expenses []Transaction
	for _, tx := range monthTxs {
		switch tx.Type {
		case TransactionIncome:
			totalIncome += tx.Amount
		case TransactionExpense:
			expenses = append(expenses, tx)
		}
	}

	// Largest three expenses; the stable sort keeps original relative
	// order on equal amounts
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount > expenses[j].Amount
	})
	if len(expenses) > 3 {
		expenses = expenses[:3]
	}

	topExpenses := make([]TopExpense, 0, len(expenses))
	for _, tx := range expenses {
		topExpenses = append(topExpenses, TopExpense{
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    categoryDisplayLabel(tx.Category),
		})
	}

	quotes := make([]RateQuote, 0, len(rates))
	for _, r := range rates {
		quotes = append(quotes, RateQuote{Label: r.Label, Sell: r.Sell})
	}

	return &ReportContext{
		Month:              ym.DisplayName(),
		YearMonth:          ym.String(),
		DaysInMonth:        daysInMonth,
		DaysPassed:         daysPassed,
		Categories:         categories,
		TotalPlanned:       totalPlanned,
		TotalSpent:         totalSpent,
		TotalIncome:        totalIncome,
		Balance:            totalIncome - totalSpent,
		TransactionCount:   len(monthTxs),
		TopExpenses:        topExpenses,
		Rates:              quotes,
		PreviousMonthSpent: prevSpent,
	}, nil
}

// Generate produces the natural-language monthly summary.
func (s *reportService) Generate(ctx context.Context, reportCtx *ReportContext) (string, error) {
	if reportCtx == nil {
		return "", errors.New("report context is required")
	}

	// An empty month is a legitimate state, not a generation failure
	if reportCtx.TransactionCount == 0 && reportCtx.TotalPlanned == 0 {
		return "", ErrNoReportData
	}

	if s.client.options.Generator == nil {
		return "", ErrNoGenerator
	}

	contextJSON, err := json.MarshalIndent(reportCtx, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal report context")
	}

	text, err := s.client.options.Generator.Generate(ctx, contextJSON, reportDirective)
	if err != nil {
		s.client.captureError(ctx, err, "report generation failed")
		return "", errors.Wrap(ErrReportUnavailable, err.Error())
	}

	return text, nil
}

// Chat runs one turn of the conversational assistant.
func (s *reportService) Chat(ctx context.Context, history []ChatMessage) (string, error) {
	if s.client.options.Assistant == nil {
		return "", ErrNoAssistant
	}

	reply, err := s.client.options.Assistant.Chat(ctx, history, assistantDirective)
	if err != nil {
		s.client.captureError(ctx, err, "assistant turn failed")
		return "", errors.Wrap(err, "assistant unavailable")
	}

	return reply, nil
}

// categoryDisplayLabel resolves the long display label used in reports.
func categoryDisplayLabel(key CategoryKey) string {
	for _, c := range BudgetCategories {
		if c.Key == key {
			return c.Label
		}
	}
	return string(key)
}

// roundPercent computes round(spent/planned*100) as an int.
func roundPercent(spent, planned float64) int {
	return int(math.Round(spent / planned * 100))
}
