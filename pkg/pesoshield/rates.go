package pesoshield

import (
	"context"
	"math"
	"time"
)

// rateService implements the RateService interface
type rateService struct {
	client *Client
}

// rateLabels maps provider rate types to the display names shown to the
// user. Unknown types fall back to the provider's own name.
var rateLabels = map[string]string{
	"oficial":         "Dólar Oficial",
	"blue":            "Dólar Blue",
	"bolsa":           "Dólar MEP (Bolsa)",
	"contadoconliqui": "Dólar CCL",
	"tarjeta":         "Dólar Tarjeta",
	"mayorista":       "Dólar Mayorista",
	"cripto":          "Dólar Cripto",
}

// RateLabel returns the display name for a rate type.
func RateLabel(rateType, fallback string) string {
	if label, ok := rateLabels[rateType]; ok {
		return label
	}
	return fallback
}

// Fetch returns the current rate board. The primary provider failing
// falls back to the reduced board; both failing yields an empty slice.
func (s *rateService) Fetch(ctx context.Context) []RateSnapshot {
	rows, err := s.client.fetcher.DolarRates(ctx)
	if err != nil {
		s.client.captureError(ctx, err, "primary rate provider failed, trying fallback")
		return s.fallback(ctx)
	}

	snapshots := make([]RateSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, RateSnapshot{
			Type:      row.Casa,
			Label:     RateLabel(row.Casa, row.Nombre),
			Buy:       row.Compra,
			Sell:      row.Venta,
			Source:    "dolarapi",
			UpdatedAt: row.FechaActualizacion,
		})
	}

	return snapshots
}

// fallback fetches the reduced oficial/blue board from the secondary
// provider.
func (s *rateService) fallback(ctx context.Context) []RateSnapshot {
	latest, err := s.client.fetcher.BluelyticsLatest(ctx)
	if err != nil {
		s.client.captureError(ctx, err, "fallback rate provider also failed")
		return []RateSnapshot{}
	}

	now := s.client.now().UTC().Format(time.RFC3339)

	return []RateSnapshot{
		{
			Type:      "oficial",
			Label:     rateLabels["oficial"],
			Buy:       latest.Oficial.ValueBuy,
			Sell:      latest.Oficial.ValueSell,
			Source:    "bluelytics",
			UpdatedAt: now,
		},
		{
			Type:      "blue",
			Label:     rateLabels["blue"],
			Buy:       latest.Blue.ValueBuy,
			Sell:      latest.Blue.ValueSell,
			Source:    "bluelytics",
			UpdatedAt: now,
		},
	}
}

// History returns the historical series filtered to the Oficial and Blue
// sources.
func (s *rateService) History(ctx context.Context) []RateHistoryPoint {
	points, err := s.client.fetcher.BluelyticsEvolution(ctx)
	if err != nil {
		s.client.captureError(ctx, err, "rate history fetch failed")
		return []RateHistoryPoint{}
	}

	out := make([]RateHistoryPoint, 0, len(points))
	for _, p := range points {
		if p.Source != "Oficial" && p.Source != "Blue" {
			continue
		}
		out = append(out, RateHistoryPoint{
			Date:   p.Date,
			Source: p.Source,
			Buy:    p.ValueBuy,
			Sell:   p.ValueSell,
		})
	}

	return out
}

// CPI returns the latest inflation index reading, with the month-over-
// month change when two data points exist.
func (s *rateService) CPI(ctx context.Context) *CPIData {
	rows, err := s.client.fetcher.CPISeries(ctx)
	if err != nil {
		s.client.captureError(ctx, err, "CPI fetch failed")
		return nil
	}

	if len(rows) == 0 {
		return nil
	}

	latest := rows[len(rows)-1]
	data := &CPIData{
		Period: latest.Period,
		Value:  latest.Value,
	}

	if len(rows) > 1 {
		previous := rows[len(rows)-2]
		data.PreviousValue = previous.Value
		data.MonthlyChange = math.Round((latest.Value/previous.Value-1)*100*10) / 10
	}

	return data
}
