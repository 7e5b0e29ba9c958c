// Command stratlab-backtest runs a single strategy over a CSV price series,
// prints a summary, and persists the run record.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"stratlab/internal/backtest"
	"stratlab/internal/config"
	"stratlab/internal/metrics"
	"stratlab/internal/store"
	"stratlab/internal/strategy"
	"stratlab/internal/strategy/builtins"
	"stratlab/internal/util"

	"stratlab/internal/domain"
)

func main() {
	stratName := flag.String("strategy", "sma-cross", "strategy name (see -list)")
	dataPath := flag.String("data", "data/sample_prices.csv", "price CSV with datetime,open,high,low,close,volume")
	paramFlags := multiFlag{}
	flag.Var(&paramFlags, "set", "override a strategy parameter, e.g. -set fast_window=10 (repeatable)")
	list := flag.Bool("list", false, "list available strategies and exit")
	noSave := flag.Bool("no-save", false, "skip persisting the run record")
	flag.Parse()

	cfg := loadConfig()
	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	registry := newRegistry()
	if *list {
		for _, name := range registry.List() {
			fmt.Println(name)
		}
		return
	}

	strat, ok := registry.Get(*stratName)
	if !ok {
		log.Fatalf("unknown strategy %q (known: %s)", *stratName, strings.Join(registry.List(), ", "))
	}

	params := strategy.Defaults(strat.Params())
	for name, v := range paramFlags.values {
		params[name] = v
	}

	series, err := store.ReadCSVSeries(*dataPath)
	if err != nil {
		log.Fatalf("loading price series: %v", err)
	}

	signals, err := strat.Signals(series, params)
	if err != nil {
		log.Fatalf("strategy %s: %v", strat.Name(), err)
	}

	engine := backtest.NewEngine(cfg.Backtest.InitialCapital)
	equity, trades, err := engine.Run(series, signals)
	if err != nil {
		log.Fatalf("backtest: %v", err)
	}

	m := metrics.Compute(equity, trades, cfg.Backtest.PeriodsPerYear)
	baseline := metrics.BuyAndHold(series)
	record := &domain.RunRecord{
		StrategyID: strat.Name(),
		Params:     params,
		Metrics:    m,
		BuyAndHold: &baseline,
		CreatedAt:  time.Now().UTC(),
	}

	printSummary(record, series)

	if !*noSave {
		runStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("opening run store: %v", err)
		}
		defer runStore.Close()

		if err := runStore.SaveRun(context.Background(), record); err != nil {
			log.Fatalf("saving run record: %v", err)
		}
		fmt.Printf("run record saved (id=%d) to %s\n", record.ID, cfg.Storage.SQLitePath)
	}
}

func printSummary(r *domain.RunRecord, series *domain.Series) {
	fmt.Println("Backtest summary:")
	fmt.Printf("  Strategy:            %s\n", r.StrategyID)
	fmt.Printf("  Bars:                %d (%s to %s)\n", series.Len(),
		series.First().Timestamp.Format("2006-01-02"), series.Last().Timestamp.Format("2006-01-02"))
	fmt.Printf("  Total return:        %7.2f%%\n", r.Metrics.TotalReturn*100)
	fmt.Printf("  Annualized return:   %7.2f%%\n", r.Metrics.AnnualizedReturn*100)
	fmt.Printf("  Volatility:          %7.2f%%\n", r.Metrics.Volatility*100)
	fmt.Printf("  Sharpe:              %7.2f\n", r.Metrics.Sharpe)
	fmt.Printf("  Max drawdown:        %7.2f%% (%d bars)\n", r.Metrics.MaxDrawdown*100, r.Metrics.MaxDrawdownDuration)
	fmt.Printf("  Expectancy:          %8.5f\n", r.Metrics.Expectancy)
	fmt.Printf("  Trades:              %d\n", r.Metrics.TradeCount)
	fmt.Printf("  Buy & hold return:   %7.2f%% (max drawdown %.2f%%)\n",
		r.BuyAndHold.TotalReturn*100, r.BuyAndHold.MaxDrawdown*100)
}

func newRegistry() *strategy.Registry {
	registry := strategy.NewRegistry()
	registry.Register(builtins.NewSMACross())
	registry.Register(builtins.NewMultiTFTrend())
	return registry
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

// multiFlag collects repeated name=value flags into a map.
type multiFlag struct {
	values map[string]float64
}

func (m *multiFlag) String() string { return "" }

func (m *multiFlag) Set(s string) error {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("non-numeric value %q for parameter %s", raw, name)
	}
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	m.values[name] = v
	return nil
}
