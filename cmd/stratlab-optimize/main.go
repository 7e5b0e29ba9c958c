// Command stratlab-optimize grid-searches one strategy's parameters over a
// CSV price series and persists one run record per successful combination.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"stratlab/internal/config"
	"stratlab/internal/optimize"
	"stratlab/internal/store"
	"stratlab/internal/strategy"
	"stratlab/internal/strategy/builtins"
	"stratlab/internal/util"
)

func main() {
	stratName := flag.String("strategy", "sma-cross", "strategy name")
	dataPath := flag.String("data", "data/sample_prices.csv", "price CSV with datetime,open,high,low,close,volume")
	axisFlags := axisFlag{}
	flag.Var(&axisFlags, "param", "grid axis as name=start:stop:step, e.g. -param fast_window=5:30:5 (repeatable, order defines enumeration)")
	flag.Parse()

	cfg := loadConfig()
	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	if len(axisFlags.axes) == 0 {
		log.Fatal("at least one -param axis is required")
	}

	registry := strategy.NewRegistry()
	registry.Register(builtins.NewSMACross())
	registry.Register(builtins.NewMultiTFTrend())

	strat, ok := registry.Get(*stratName)
	if !ok {
		log.Fatalf("unknown strategy %q (known: %s)", *stratName, strings.Join(registry.List(), ", "))
	}

	grid, err := optimize.NewGrid(axisFlags.axes...)
	if err != nil {
		log.Fatalf("grid specification: %v", err)
	}

	series, err := store.ReadCSVSeries(*dataPath)
	if err != nil {
		log.Fatalf("loading price series: %v", err)
	}

	runStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening run store: %v", err)
	}
	defer runStore.Close()

	slog.Info("starting grid search", "strategy", strat.Name(), "combinations", grid.Size())

	searcher := optimize.NewSearcher(cfg.Backtest.InitialCapital, cfg.Backtest.PeriodsPerYear)
	outcomes := searcher.Search(strat, series, grid)

	ctx := context.Background()
	var saved, failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		if err := runStore.SaveRun(ctx, o.Record); err != nil {
			log.Fatalf("saving run record: %v", err)
		}
		saved++
	}

	fmt.Printf("grid search complete: %d combinations, %d records saved, %d failed\n",
		len(outcomes), saved, failed)
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

// axisFlag collects repeated -param flags as ordered grid axes.
type axisFlag struct {
	axes []optimize.Axis
}

func (a *axisFlag) String() string { return "" }

func (a *axisFlag) Set(s string) error {
	axis, err := optimize.ParseAxis(s)
	if err != nil {
		return err
	}
	a.axes = append(a.axes, axis)
	return nil
}
