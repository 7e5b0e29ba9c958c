// Command stratlab-fetch downloads daily OHLCV bars for a symbol from the
// Alpaca market-data API into the Parquet bar cache and a normalized CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"stratlab/internal/config"
	"stratlab/internal/gather"
	"stratlab/internal/store"
	"stratlab/internal/util"
)

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to fetch, e.g. SPY (required)")
	years := flag.Int("years", 0, "years of history (default from config)")
	csvOut := flag.String("csv", "", "also write a normalized CSV to this path (default <data_dir>/<SYMBOL>.csv)")
	flag.Parse()

	if *symbol == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := loadConfig()
	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	if cfg.Alpaca.APIKey == "" || cfg.Alpaca.APISecret == "" {
		log.Fatal("Alpaca credentials missing: set APCA_API_KEY_ID and APCA_API_SECRET_KEY or the alpaca config section")
	}

	if *years <= 0 {
		*years = cfg.Fetch.Years
	}
	end := time.Now().UTC()
	start := end.AddDate(-*years, 0, 0)

	barStore := store.NewParquetStore(cfg.Storage.DataDir)
	fetcher := gather.NewDailyBarFetcher(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		barStore,
		cfg.Fetch.RateLimitPerMin,
		cfg.Fetch.MaxAttempts,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bars, err := fetcher.Fetch(ctx, *symbol, start, end)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	out := *csvOut
	if out == "" {
		out = filepath.Join(cfg.Storage.DataDir, *symbol+".csv")
	}
	if err := store.WriteCSVSeries(out, bars); err != nil {
		log.Fatalf("writing CSV: %v", err)
	}

	fmt.Printf("fetched %d bars for %s into %s (CSV: %s)\n",
		len(bars), *symbol, cfg.Storage.DataDir, out)
}

func loadConfig() *config.Config {
	path := "config/stratlab.yaml"
	if p := os.Getenv("STRATLAB_CONFIG"); p != "" {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default()
		}
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
