package fetch

import "github.com/pkg/errors"

// DolarRate is one quote as returned by DolarAPI.
type DolarRate struct {
	Moneda             string  `json:"moneda"`
	Casa               string  `json:"casa"`
	Nombre             string  `json:"nombre"`
	Compra             float64 `json:"compra"`
	Venta              float64 `json:"venta"`
	FechaActualizacion string  `json:"fechaActualizacion"`
}

// BluelyticsQuote is one buy/sell pair from Bluelytics.
type BluelyticsQuote struct {
	ValueBuy  float64 `json:"value_buy"`
	ValueSell float64 `json:"value_sell"`
	ValueAvg  float64 `json:"value_avg"`
}

// BluelyticsLatest is the fallback provider's latest payload.
type BluelyticsLatest struct {
	Oficial    BluelyticsQuote `json:"oficial"`
	Blue       BluelyticsQuote `json:"blue"`
	LastUpdate string          `json:"last_update"`
}

// EvolutionPoint is one day of the Bluelytics historical series.
type EvolutionPoint struct {
	Date      string  `json:"date"`
	Source    string  `json:"source"`
	ValueBuy  float64 `json:"value_buy"`
	ValueSell float64 `json:"value_sell"`
}

// SeriesRow is one (period, value) point of a datos.gob.ar series.
type SeriesRow struct {
	Period string
	Value  float64
}

// seriesResponse is the raw series API payload: rows are heterogeneous
// [period, value] pairs.
type seriesResponse struct {
	Data [][]interface{} `json:"data"`
}

// rows converts the raw pairs into typed rows, skipping malformed ones.
func (r *seriesResponse) rows() ([]*SeriesRow, error) {
	if r.Data == nil {
		return nil, nil
	}

	out := make([]*SeriesRow, 0, len(r.Data))
	for _, pair := range r.Data {
		if len(pair) < 2 {
			continue
		}
		period, ok := pair[0].(string)
		if !ok {
			continue
		}
		value, ok := pair[1].(float64)
		if !ok {
			continue
		}
		out = append(out, &SeriesRow{Period: period, Value: value})
	}

	if len(out) == 0 && len(r.Data) > 0 {
		return nil, errors.New("series payload had no usable rows")
	}

	return out, nil
}
