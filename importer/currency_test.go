package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConverter(apiURL string) *CurrencyConverter {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewCurrencyConverter(apiURL, nil, log)
}

func floatPtr(v float64) *float64 { return &v }

func TestRateFromAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "ZAR", r.URL.Query().Get("to"))
		assert.Equal(t, "1", r.URL.Query().Get("amount"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": 18.42}`))
	}))
	defer srv.Close()

	rate := testConverter(srv.URL).Rate(context.Background())
	assert.Equal(t, 18.42, rate)
}

func TestRateFallbackOnUnreachableAPI(t *testing.T) {
	rate := testConverter("http://127.0.0.1:1").Rate(context.Background())
	assert.Equal(t, fallbackUSDZAR, rate)
}

func TestRateFallbackOnBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	rate := testConverter(srv.URL).Rate(context.Background())
	assert.Equal(t, fallbackUSDZAR, rate)
}

func TestRateFallbackOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rate := testConverter(srv.URL).Rate(context.Background())
	assert.Equal(t, fallbackUSDZAR, rate)
}

func TestNormalizeCurrencyUSDToZAR(t *testing.T) {
	conv := testConverter("http://127.0.0.1:1") // unreachable, fixed multiplier

	currency, price, compareAt := conv.normalizeCurrency(context.Background(), "USD", floatPtr(100), floatPtr(150))

	assert.Equal(t, "ZAR", currency)
	require.NotNil(t, price)
	assert.Equal(t, 1900.0, *price)
	require.NotNil(t, compareAt)
	assert.Equal(t, 2850.0, *compareAt)
}

func TestNormalizeCurrencyUSDCaseInsensitive(t *testing.T) {
	conv := testConverter("http://127.0.0.1:1")

	currency, price, _ := conv.normalizeCurrency(context.Background(), "usd", floatPtr(1), nil)

	assert.Equal(t, "ZAR", currency)
	require.NotNil(t, price)
	assert.Equal(t, 19.0, *price)
}

func TestNormalizeCurrencyUSDWithoutPrices(t *testing.T) {
	// No prices means nothing to convert, but the label still flips to ZAR.
	conv := testConverter("http://127.0.0.1:1")

	currency, price, compareAt := conv.normalizeCurrency(context.Background(), "USD", nil, nil)

	assert.Equal(t, "ZAR", currency)
	assert.Nil(t, price)
	assert.Nil(t, compareAt)
}

func TestNormalizeCurrencyPassthrough(t *testing.T) {
	conv := testConverter("http://127.0.0.1:1")

	for _, currency := range []string{"ZAR", "EUR", "GBP", ""} {
		got, price, _ := conv.normalizeCurrency(context.Background(), currency, floatPtr(100), nil)
		assert.Equal(t, currency, got)
		require.NotNil(t, price)
		assert.Equal(t, 100.0, *price)
	}
}

func TestNormalizeCurrencyRounding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": 18.555}`))
	}))
	defer srv.Close()

	_, price, _ := testConverter(srv.URL).normalizeCurrency(context.Background(), "USD", floatPtr(9.99), nil)

	require.NotNil(t, price)
	assert.Equal(t, 185.36, *price)
}
