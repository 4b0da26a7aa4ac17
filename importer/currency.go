package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iCreativate/peboli-sub000/observability"
)

// fallbackUSDZAR approximates the USD->ZAR rate when the FX API is down.
// A stale-ish rate is fine here: the admin reviews every imported price.
const fallbackUSDZAR = 19.0

const (
	fxCacheKey = "fx:USD:ZAR"
	fxCacheTTL = time.Hour
)

// CurrencyConverter rescales USD prices to ZAR. The FX API is best-effort:
// any failure degrades to the fixed multiplier, never to a request error.
type CurrencyConverter struct {
	Client *http.Client
	APIURL string
	Cache  *redis.Client // optional; nil skips caching
	Log    *logrus.Logger
}

func NewCurrencyConverter(apiURL string, cache *redis.Client, log *logrus.Logger) *CurrencyConverter {
	return &CurrencyConverter{
		Client: &http.Client{Timeout: 10 * time.Second},
		APIURL: apiURL,
		Cache:  cache,
		Log:    log,
	}
}

// Rate returns the USD->ZAR multiplier, consulting the cache first. The
// returned rate is always positive and finite.
func (c *CurrencyConverter) Rate(ctx context.Context) float64 {
	if c.Cache != nil {
		if cached, err := c.Cache.Get(ctx, fxCacheKey).Result(); err == nil {
			if rate, err := strconv.ParseFloat(cached, 64); err == nil && validRate(rate) {
				return rate
			}
		}
	}

	rate, err := c.fetchRate(ctx)
	if err != nil || !validRate(rate) {
		observability.FXFallbackTotal.Inc()
		if c.Log != nil {
			c.Log.WithError(err).Warnf("FX conversion unavailable, using fixed %.0fx multiplier", fallbackUSDZAR)
		}
		return fallbackUSDZAR
	}

	if c.Cache != nil {
		c.Cache.Set(ctx, fxCacheKey, strconv.FormatFloat(rate, 'f', -1, 64), fxCacheTTL)
	}
	return rate
}

func (c *CurrencyConverter) fetchRate(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s?from=USD&to=ZAR&amount=1", c.APIURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fx api status %d", resp.StatusCode)
	}

	var payload struct {
		Result *float64 `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}
	if payload.Result == nil {
		return 0, fmt.Errorf("fx api response missing result")
	}
	return *payload.Result, nil
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsNaN(rate) && !math.IsInf(rate, 0)
}

// normalizeCurrency converts USD prices to ZAR in place. Prices in any other
// currency pass through untouched. Once a product entered as USD, it always
// leaves as ZAR, conversion success or not.
func (c *CurrencyConverter) normalizeCurrency(ctx context.Context, currency string, price, compareAt *float64) (string, *float64, *float64) {
	if !strings.EqualFold(currency, "USD") {
		return currency, price, compareAt
	}

	if price != nil || compareAt != nil {
		rate := c.Rate(ctx)
		if price != nil {
			converted := roundPrice(*price * rate)
			price = &converted
		}
		if compareAt != nil {
			converted := roundPrice(*compareAt * rate)
			compareAt = &converted
		}
	}

	return "ZAR", price, compareAt
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
