// Package gather downloads historical daily OHLCV bars from the Alpaca
// market-data API into the local bar store. It is a thin acquisition layer;
// everything downstream consumes the stored series.
package gather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stratlab/internal/domain"
	"stratlab/internal/store"
	"stratlab/internal/util"
)

// DailyBarFetcher fetches daily bars for one symbol at a time and writes
// them to a BarStore.
type DailyBarFetcher struct {
	client      *marketdata.Client
	store       store.BarStore
	limiter     *util.RateLimiter
	maxAttempts int
	log         *slog.Logger
}

// NewDailyBarFetcher creates a fetcher with the given Alpaca credentials and
// target store. rateLimitPerMin caps API calls; maxAttempts bounds retries
// per request.
func NewDailyBarFetcher(apiKey, apiSecret, dataURL string, s store.BarStore, rateLimitPerMin, maxAttempts int) *DailyBarFetcher {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &DailyBarFetcher{
		client:      marketdata.NewClient(opts),
		store:       s,
		limiter:     util.NewRateLimiter(rateLimitPerMin),
		maxAttempts: maxAttempts,
		log:         slog.Default().With("component", "gather"),
	}
}

// Fetch downloads daily bars for symbol over [start, end], persists them,
// and returns them in ascending timestamp order.
func (f *DailyBarFetcher) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var alpacaBars []marketdata.Bar
	err := util.Retry(ctx, f.maxAttempts, time.Second, func() error {
		var err error
		alpacaBars, err = f.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
			Feed:      "iex",
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching bars for %s: %w", symbol, err)
	}
	if len(alpacaBars) == 0 {
		return nil, fmt.Errorf("no bars returned for %s in [%s, %s]",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	bars := make([]domain.Bar, len(alpacaBars))
	for i, ab := range alpacaBars {
		bars[i] = domain.Bar{
			Timestamp: ab.Timestamp,
			Open:      ab.Open,
			High:      ab.High,
			Low:       ab.Low,
			Close:     ab.Close,
			Volume:    float64(ab.Volume),
		}
	}

	if err := f.store.WriteBars(ctx, symbol, bars); err != nil {
		return nil, fmt.Errorf("storing bars for %s: %w", symbol, err)
	}
	f.log.Info("fetched bars", "symbol", symbol, "count", len(bars),
		"first", bars[0].Timestamp.Format("2006-01-02"),
		"last", bars[len(bars)-1].Timestamp.Format("2006-01-02"))

	return bars, nil
}
