package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartBody(symbol string, price float64) string {
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"symbol":%q,"regularMarketPrice":%v}}],"error":null}}`, symbol, price)
}

func TestGetPrice(t *testing.T) {
	var hits atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		fmt.Fprint(w, chartBody("AAPL", 110.25))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Minute, 0)

	price, err := client.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("110.25")), "got %s", price)

	// Second lookup is served from cache.
	_, err = client.GetPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
}

func TestGetPriceProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Minute, 0)

	_, err := client.GetPrice(context.Background(), "AAPL")
	assert.ErrorIs(t, err, apperrs.ErrQuoteUnavailable)
}

func TestGetPriceRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		fmt.Fprint(w, chartBody("MSFT", 401.5))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Minute, 2)

	price, err := client.GetPrice(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("401.5")))
	assert.Equal(t, int64(2), hits.Load())
}

func TestGetPriceEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, time.Minute, 0)

	_, err := client.GetPrice(context.Background(), "NOPE")
	assert.ErrorIs(t, err, apperrs.ErrQuoteUnavailable)
}
