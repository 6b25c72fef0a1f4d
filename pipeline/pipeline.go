package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"retailfaker/catalog"
	"retailfaker/country"
	"retailfaker/dataset"
	"retailfaker/generator"
	"retailfaker/internal/config"
	"retailfaker/logging"
	"retailfaker/retail"
)

// Pipeline оркестратор генерации розничного датасета
// Этапы выполняются строго последовательно: продукты, магазины, транзакции —
// генератор транзакций читает уже сохраненную таблицу продуктов
// Восстановления после частичного сбоя нет: при ошибке этапа запуск
// прерывается, ранее записанные таблицы остаются на диске как есть
type Pipeline struct {
	config   *config.Config
	provider *country.Provider
	writer   *dataset.Writer
	runID    string
}

// New создает новый конвейер генерации
func New(cfg *config.Config) *Pipeline {
	provider := country.NewProvider(country.ProviderConfig{
		CountriesURL:    cfg.CountriesURL,
		InflationURL:    cfg.InflationURL,
		ExchangeRateURL: cfg.ExchangeRateURL,
		SubdivisionsURL: cfg.SubdivisionsURL,
		FallbackCountry: cfg.FallbackCountry,
		Timeout:         cfg.LookupTimeout,
	})

	return &Pipeline{
		config:   cfg,
		provider: provider,
		writer:   dataset.NewWriter(cfg.OutputDir),
		runID:    uuid.NewString(),
	}
}

// RunID возвращает идентификатор запуска
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run выполняет полный запуск генерации
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	logging.Logger.Info("Starting retail data generation",
		"run_id", p.runID,
		"country", p.config.Country,
		"products", p.config.NumProducts,
		"stores", p.config.NumStores,
		"transactions", p.config.NumTransactions,
		"output_dir", p.config.OutputDir,
	)

	// Каталог и валютный контекст разрешаются один раз на запуск
	cat, err := catalog.Load(p.config.CatalogPath)
	if err != nil {
		return fmt.Errorf("catalog stage: %w", err)
	}

	countryContext, err := p.provider.Resolve(ctx, p.config.Country)
	if err != nil {
		return fmt.Errorf("country context stage: %w", err)
	}

	generatorConfig := generator.Config{
		Workers: p.config.Workers,
		Seed:    p.config.Seed,
	}

	if err := p.runProducts(ctx, cat, countryContext, generatorConfig); err != nil {
		return fmt.Errorf("products stage: %w", err)
	}
	if err := p.runStores(ctx, generatorConfig); err != nil {
		return fmt.Errorf("stores stage: %w", err)
	}
	if err := p.runTransactions(ctx, generatorConfig); err != nil {
		return fmt.Errorf("transactions stage: %w", err)
	}

	logging.Logger.Info("Retail data generation finished",
		"run_id", p.runID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// runProducts генерирует и сохраняет таблицу продуктов
func (p *Pipeline) runProducts(ctx context.Context, cat *catalog.Catalog, countryContext *country.Context, generatorConfig generator.Config) error {
	stageStart := time.Now()
	products, err := generator.NewProductGenerator(cat, countryContext, generatorConfig).
		Generate(ctx, p.config.NumProducts)
	if err != nil {
		return err
	}
	if err := dataset.WriteTable(p.writer, dataset.ProductsTable, products); err != nil {
		return err
	}
	logging.Logger.Info("Products table written",
		"run_id", p.runID,
		"rows", len(products),
		"path", p.writer.Path(dataset.ProductsTable),
		"duration_ms", time.Since(stageStart).Milliseconds(),
	)
	return nil
}

// runStores генерирует и сохраняет таблицу магазинов
func (p *Pipeline) runStores(ctx context.Context, generatorConfig generator.Config) error {
	subdivisions := p.provider.Subdivisions(ctx, p.config.Country)

	stageStart := time.Now()
	stores, err := generator.NewStoreGenerator(p.config.Country, subdivisions, generatorConfig).
		Generate(ctx, p.config.NumStores)
	if err != nil {
		return err
	}
	if err := dataset.WriteTable(p.writer, dataset.StoresTable, stores); err != nil {
		return err
	}
	logging.Logger.Info("Stores table written",
		"run_id", p.runID,
		"rows", len(stores),
		"path", p.writer.Path(dataset.StoresTable),
		"duration_ms", time.Since(stageStart).Milliseconds(),
	)
	return nil
}

// runTransactions читает сохраненную таблицу продуктов и генерирует транзакции
func (p *Pipeline) runTransactions(ctx context.Context, generatorConfig generator.Config) error {
	products, err := dataset.ReadTable[retail.Product](p.writer, dataset.ProductsTable)
	if err != nil {
		return err
	}

	stageStart := time.Now()
	transactions, err := generator.NewTransactionGenerator(generatorConfig).
		Generate(ctx, products, p.config.NumTransactions, p.config.TransactionIDPool)
	if err != nil {
		return err
	}
	if err := dataset.WriteTable(p.writer, dataset.TransactionsTable, transactions); err != nil {
		return err
	}
	logging.Logger.Info("Transactions table written",
		"run_id", p.runID,
		"rows", len(transactions),
		"path", p.writer.Path(dataset.TransactionsTable),
		"duration_ms", time.Since(stageStart).Milliseconds(),
	)
	return nil
}
