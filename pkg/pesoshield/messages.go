package pesoshield

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message composers are pure string-template functions: no state, no I/O.
// They preserve literal newline structure because the consumer renders the
// text verbatim and also URL-encodes it into a share link.

var severityEmoji = map[Severity]string{
	SeverityCritical: "\U0001f6a8",
	SeverityWarning:  "⚠️",
	SeverityInfo:     "\U0001f4ca",
}

var arPrinter = message.NewPrinter(language.MustParse("es-AR"))

// FormatARS formats an amount as Argentine pesos with locale grouping and
// no decimals, e.g. "$ 10.000".
func FormatARS(amount float64) string {
	return arPrinter.Sprintf("$ %d", int64(math.Round(amount)))
}

// BudgetLine is one category row of the family help message.
type BudgetLine struct {
	Label   string
	Icon    string
	Planned float64
	Spent   float64
}

// BudgetHelpParams feeds BuildBudgetHelpMessage.
type BudgetHelpParams struct {
	Remaining    float64
	DaysLeft     int
	CurrentMonth string
	Lines        []BudgetLine
	PercentUsed  int
}

// BuildAlertMessage renders an alert list as a shareable message. An empty
// list renders an empty string.
func BuildAlertMessage(alerts []Alert) string {
	if len(alerts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("%s %s", severityEmoji[a.Severity], a.Title))
	}

	return strings.Join([]string{
		"Hola familia \U0001f44b",
		"Les escribo desde PesoShield con algunas alertas:",
		"",
		strings.Join(lines, "\n"),
		"",
		"¿Pueden estar atentos? Gracias! \U0001f64f",
	}, "\n")
}

// BuildBudgetHelpMessage renders the budget status into a help request.
// The category section lists up to three categories with the most budget
// left, where a hand with the shopping helps most.
func BuildBudgetHelpMessage(p BudgetHelpParams) string {
	status := fmt.Sprintf("Este mes (%s) me quedan %s para los próximos %d días.",
		p.CurrentMonth, FormatARS(p.Remaining), p.DaysLeft)
	if p.Remaining < 0 {
		status = fmt.Sprintf("Este mes (%s) me pasé del presupuesto por %s.",
			p.CurrentMonth, FormatARS(math.Abs(p.Remaining)))
	}

	withRemaining := make([]BudgetLine, 0, len(p.Lines))
	for _, l := range p.Lines {
		if l.Planned > 0 && l.Planned-l.Spent > 0 {
			withRemaining = append(withRemaining, l)
		}
	}
	sort.SliceStable(withRemaining, func(i, j int) bool {
		return withRemaining[i].Planned-withRemaining[i].Spent > withRemaining[j].Planned-withRemaining[j].Spent
	})
	if len(withRemaining) > 3 {
		withRemaining = withRemaining[:3]
	}

	parts := []string{
		"Hola familia \U0001f44b",
		"Les escribo desde PesoShield.",
		status,
		fmt.Sprintf("Gasté el %d%% del presupuesto.", p.PercentUsed),
	}

	if len(withRemaining) > 0 {
		section := "\nDonde más necesito ayuda:"
		for _, l := range withRemaining {
			section += fmt.Sprintf("\n%s %s: me quedan %s", l.Icon, l.Label, FormatARS(l.Planned-l.Spent))
		}
		parts = append(parts, section)
	}

	parts = append(parts, "\n¿Me pueden dar una mano? \U0001f64f")

	return strings.Join(parts, "\n")
}

// BuildGenericHelpMessage renders the fallback help request used when no
// budget is set up.
func BuildGenericHelpMessage() string {
	return strings.Join([]string{
		"Hola familia \U0001f44b",
		"Les escribo desde PesoShield.",
		"Necesito una mano con los gastos este mes.",
		"¿Me pueden ayudar? \U0001f64f",
	}, "\n")
}

// BuildReportShareMessage wraps a generated monthly summary for sharing.
func BuildReportShareMessage(report, month string) string {
	return strings.Join([]string{
		"Hola familia \U0001f44b",
		fmt.Sprintf("Les comparto mi resumen financiero de %s desde PesoShield:", month),
		"",
		report,
		"",
		"\U0001f6e1️ Generado por PesoShield",
	}, "\n")
}

// WhatsAppLink builds the share URL for a composed message. Spaces are
// percent-encoded, not plus-encoded, so the link works in every client.
func WhatsAppLink(text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/?text=" + escaped
}
