// Command stratlab-runs ranks persisted run records by a chosen metric and
// prints the leaderboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"stratlab/internal/config"
	"stratlab/internal/report"
	"stratlab/internal/store"
	"stratlab/internal/util"
)

func main() {
	metric := flag.String("by", report.MetricSharpe, "ranking metric: sharpe, total_return, annualized_return, max_drawdown, expectancy")
	stratName := flag.String("strategy", "", "only rank runs of this strategy")
	topN := flag.Int("top", 10, "number of rows to print (0 = all)")
	flag.Parse()

	cfg := loadConfig()
	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	runStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening run store: %v", err)
	}
	defer runStore.Close()

	records, err := runStore.ListRuns(context.Background(), *stratName, 0)
	if err != nil {
		log.Fatalf("loading run records: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("no run records found")
		return
	}

	ranked, err := report.Rank(records, *metric)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("===== TOP RUNS (by %s) =====\n", *metric)
	fmt.Print(report.FormatTable(ranked, *topN))
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
