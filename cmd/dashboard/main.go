// Command dashboard prints the PesoShield board: current exchange rates,
// the inflation index, budget status for the month, and any active alerts,
// together with a WhatsApp link to ask the family for help.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/pesoshield/pesoshield-go/pkg/pesoshield"
)

func main() {
	// Optional .env file; real env vars win
	_ = godotenv.Load()

	store, err := openStore()
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	client, err := pesoshield.NewClient(&pesoshield.ClientOptions{
		Store:     store,
		SentryDSN: os.Getenv("SENTRY_DSN"),
	})
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	rates := client.Rates.Fetch(ctx)
	printRates(rates)

	if cpi := client.Rates.CPI(ctx); cpi != nil {
		fmt.Printf("\nInflación (%s): índice %.2f", cpi.Period, cpi.Value)
		if cpi.MonthlyChange != 0 {
			fmt.Printf(" (%+.1f%% mensual)", cpi.MonthlyChange)
		}
		fmt.Println()
	}

	if err := printBudget(ctx, client, rates); err != nil {
		log.Fatalf("failed to build budget status: %v", err)
	}

	if err := printAlerts(ctx, client, rates); err != nil {
		log.Fatalf("failed to evaluate alerts: %v", err)
	}
}

// openStore picks the storage backend from the environment: Redis when an
// address is configured, otherwise a JSON file in the home directory.
func openStore() (pesoshield.Store, error) {
	if addr := os.Getenv("PESOSHIELD_REDIS_ADDR"); addr != "" {
		return pesoshield.NewRedisStore(addr), nil
	}

	path := os.Getenv("PESOSHIELD_STORE_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".pesoshield", "data.json")
	}

	return pesoshield.NewFileStore(path)
}

func printRates(rates []pesoshield.RateSnapshot) {
	if len(rates) == 0 {
		fmt.Println("Cotizaciones no disponibles en este momento. Probá de nuevo más tarde.")
		return
	}

	fmt.Println("Cotizaciones del dólar:")
	for _, r := range rates {
		fmt.Printf("  %-22s compra %s  venta %s\n",
			r.Label, pesoshield.FormatARS(r.Buy), pesoshield.FormatARS(r.Sell))
	}
}

func printBudget(ctx context.Context, client *pesoshield.Client, rates []pesoshield.RateSnapshot) error {
	rc, err := client.Reports.BuildContext(ctx, rates, nil)
	if err != nil {
		return err
	}

	fmt.Printf("\nPresupuesto de %s (día %d de %d):\n", rc.Month, rc.DaysPassed, rc.DaysInMonth)
	for _, row := range rc.Categories {
		if row.Planned == 0 && row.Spent == 0 {
			continue
		}
		fmt.Printf("  %s %-28s %s de %s (%d%%)\n",
			row.Icon, row.Label,
			pesoshield.FormatARS(row.Spent), pesoshield.FormatARS(row.Planned),
			row.PercentUsed)
	}
	fmt.Printf("  Total: gastado %s de %s, ingresos %s, balance %s\n",
		pesoshield.FormatARS(rc.TotalSpent), pesoshield.FormatARS(rc.TotalPlanned),
		pesoshield.FormatARS(rc.TotalIncome), pesoshield.FormatARS(rc.Balance))

	return nil
}

func printAlerts(ctx context.Context, client *pesoshield.Client, rates []pesoshield.RateSnapshot) error {
	alerts, err := client.Alerts.Visible(ctx, rates)
	if err != nil {
		return err
	}

	if len(alerts) == 0 {
		fmt.Println("\nTodo tranquilo: no hay alertas por ahora.")
		return nil
	}

	fmt.Println("\nAlertas:")
	for _, a := range alerts {
		fmt.Printf("  [%s] %s\n      %s\n", a.Severity, a.Title, a.Message)
	}

	message := pesoshield.BuildAlertMessage(alerts)
	fmt.Printf("\nPara avisarle a tu familia:\n%s\n", pesoshield.WhatsAppLink(message))

	return nil
}
