package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retailfaker/internal/config"
	"retailfaker/logging"
	"retailfaker/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file (defaults + RETAIL_* env vars if empty)")
	countryName := flag.String("country", "", "Country the dataset is generated for")
	numProducts := flag.Int("products", -1, "Number of products to generate")
	numStores := flag.Int("stores", -1, "Number of stores to generate")
	numTransactions := flag.Int("transactions", -1, "Number of transactions to generate")
	idPool := flag.Int("pool", -1, "Size of the transaction ID pool")
	outputDir := flag.String("out", "", "Output directory for the parquet tables")
	catalogPath := flag.String("catalog", "", "Path to the product category catalog (YAML)")
	workers := flag.Int("workers", -1, "Number of generator workers (0 = number of CPUs)")
	seed := flag.Int64("seed", 0, "Random seed (0 = non-deterministic)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Флаги имеют приоритет над конфигом и окружением
	if *countryName != "" {
		cfg.Country = *countryName
	}
	if *numProducts >= 0 {
		cfg.NumProducts = *numProducts
	}
	if *numStores >= 0 {
		cfg.NumStores = *numStores
	}
	if *numTransactions >= 0 {
		cfg.NumTransactions = *numTransactions
	}
	if *idPool >= 0 {
		cfg.TransactionIDPool = *idPool
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	p := pipeline.New(cfg)
	if err := p.Run(ctx); err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	fmt.Println("\n--- Retail Dataset Generation ---")
	fmt.Printf("Run ID: %s\n", p.RunID())
	fmt.Printf("Country: %s\n", cfg.Country)
	fmt.Printf("Products: %d\n", cfg.NumProducts)
	fmt.Printf("Stores: %d\n", cfg.NumStores)
	fmt.Printf("Transactions: %d\n", cfg.NumTransactions)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Printf("Duration: %s\n", time.Since(start).Round(time.Millisecond))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
