package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesoshield/pesoshield-go/internal/types"
)

func TestDolarRates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/dolares", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"moneda":"USD","casa":"oficial","nombre":"Oficial","compra":980,"venta":1020,"fechaActualizacion":"2025-08-01T15:00:00Z"},
			{"moneda":"USD","casa":"blue","nombre":"Blue","compra":1180,"venta":1200,"fechaActualizacion":"2025-08-01T15:00:00Z"}
		]`))
	}))
	defer server.Close()

	client := New(&Options{RateBaseURL: server.URL})

	rates, err := client.DolarRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "oficial", rates[0].Casa)
	assert.Equal(t, 1020.0, rates[0].Venta)
	assert.Equal(t, "blue", rates[1].Casa)
}

func TestDolarRates_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(&Options{RateBaseURL: server.URL})

	_, err := client.DolarRates(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProviderUnavailable)
}

func TestBluelyticsLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"oficial":{"value_buy":980,"value_sell":1020,"value_avg":1000},
			"blue":{"value_buy":1180,"value_sell":1200,"value_avg":1190},
			"last_update":"2025-08-01T15:00:00Z"
		}`))
	}))
	defer server.Close()

	client := New(&Options{FallbackBaseURL: server.URL})

	latest, err := client.BluelyticsLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1200.0, latest.Blue.ValueSell)
	assert.Equal(t, 980.0, latest.Oficial.ValueBuy)
}

func TestBluelyticsEvolution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/evolution.json", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"date":"2025-07-30","source":"Oficial","value_buy":975,"value_sell":1015},
			{"date":"2025-07-30","source":"Blue","value_buy":1170,"value_sell":1190}
		]`))
	}))
	defer server.Close()

	client := New(&Options{FallbackBaseURL: server.URL})

	points, err := client.BluelyticsEvolution(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "Blue", points[1].Source)
}

func TestCPISeries_ParsesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[["2025-06-01",7864.13],["2025-07-01",8012.55]]}`))
	}))
	defer server.Close()

	client := New(&Options{SeriesBaseURL: server.URL})

	rows, err := client.CPISeries(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-07-01", rows[1].Period)
	assert.Equal(t, 8012.55, rows[1].Value)
}

func TestCPISeries_MalformedRowsSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[["2025-06-01",7864.13],["broken"],[123,"x"]]}`))
	}))
	defer server.Close()

	client := New(&Options{SeriesBaseURL: server.URL})

	rows, err := client.CPISeries(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-06-01", rows[0].Period)
}

func TestGetJSON_HooksFire(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	var sawRequest, sawResponse bool
	client := New(&Options{
		RateBaseURL: server.URL,
		Hooks: &types.Hooks{
			OnRequest: func(ctx context.Context, req *http.Request) {
				sawRequest = true
			},
			OnResponse: func(ctx context.Context, resp *http.Response, duration time.Duration) {
				sawResponse = true
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			},
		},
	})

	_, err := client.DolarRates(context.Background())
	require.NoError(t, err)
	assert.True(t, sawRequest)
	assert.True(t, sawResponse)
}
