package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/leonid6372/portfolio-service/pkg/log"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const retryBase = 200 * time.Millisecond

// Client fetches current market prices from the Yahoo finance chart API.
// Prices are cached for a short TTL so a portfolio valuation does not hit
// the provider once per position on every request.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *gocache.Cache
	retries uint64
}

func NewClient(baseURL string, timeout, cacheTTL time.Duration, retries uint64) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		retries: retries,
	}
}

// GetPrice returns the current market price for the ticker or
// apperrs.ErrQuoteUnavailable after the retry budget is spent.
func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if cached, ok := c.cache.Get(symbol); ok {
		return cached.(decimal.Decimal), nil
	}

	var price decimal.Decimal

	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(retryBase))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetched, err := c.fetchPrice(ctx, symbol)
		if err != nil {
			return retry.RetryableError(err)
		}

		price = fetched

		return nil
	}); err != nil {
		log.Warn("quote fetch failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return decimal.Zero, fmt.Errorf("%w: %s", apperrs.ErrQuoteUnavailable, symbol)
	}

	c.cache.Set(symbol, price, gocache.DefaultExpiration)

	return price, nil
}

func (c *Client) fetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Zero, err
	}

	// Yahoo rejects requests without a browser-looking user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; portfolio-service/1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status %d for %q", resp.StatusCode, symbol)
	}

	chart := &chartResponse{}
	if err := json.NewDecoder(resp.Body).Decode(chart); err != nil {
		return decimal.Zero, err
	}

	return chart.Price()
}
