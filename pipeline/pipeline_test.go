package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailfaker/dataset"
	"retailfaker/internal/config"
	"retailfaker/retail"
)

const testCatalogYAML = `categories:
  Electronics:
    Headphones: [10, 300]
    Chargers: [5, 50]
  Grocery:
    Coffee: [3, 40]
`

// newLookupServer имитирует все четыре внешних справочника для Норвегии
func newLookupServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/v3.1/name/Norway", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{
			"cca2":       "NO",
			"currencies": map[string]any{"NOK": map[string]string{"name": "Norwegian krone", "symbol": "kr"}},
		}})
	})

	mux.HandleFunc("/v2/country/", func(w http.ResponseWriter, r *http.Request) {
		rows := []map[string]any{
			{"date": "2024", "value": 2.9},
		}
		json.NewEncoder(w).Encode([]any{map[string]any{"total": len(rows)}, rows})
	})

	mux.HandleFunc("/v6/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": "success",
			"rates":  map[string]float64{"USD": 1.0, "NOK": 10.42},
		})
	})

	mux.HandleFunc("/api/v0.1/countries/states", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": false,
			"data": map[string]any{
				"name": "Norway",
				"states": []map[string]string{
					{"name": "Oslo"}, {"name": "Vestland"}, {"name": "Troms"},
				},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	server := newLookupServer(t)
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "categories.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogYAML), 0o644))

	cfg := config.DefaultConfig()
	cfg.Country = "Norway"
	cfg.NumProducts = 25
	cfg.NumStores = 10
	cfg.NumTransactions = 50
	cfg.TransactionIDPool = 5
	cfg.OutputDir = filepath.Join(dir, "retail_data")
	cfg.CatalogPath = catalogPath
	cfg.Workers = 4
	cfg.Seed = 42
	cfg.CountriesURL = server.URL
	cfg.InflationURL = server.URL
	cfg.ExchangeRateURL = server.URL
	cfg.SubdivisionsURL = server.URL
	return cfg
}

func TestRunFullPipeline(t *testing.T) {
	cfg := newTestConfig(t)
	p := New(cfg)

	require.NotEmpty(t, p.RunID())
	require.NoError(t, p.Run(context.Background()))

	writer := dataset.NewWriter(cfg.OutputDir)

	products, err := dataset.ReadTable[retail.Product](writer, dataset.ProductsTable)
	require.NoError(t, err)
	require.Len(t, products, cfg.NumProducts)

	stores, err := dataset.ReadTable[retail.Store](writer, dataset.StoresTable)
	require.NoError(t, err)
	require.Len(t, stores, cfg.NumStores)

	transactions, err := dataset.ReadTable[retail.Transaction](writer, dataset.TransactionsTable)
	require.NoError(t, err)
	require.Len(t, transactions, cfg.NumTransactions)

	// Продукты несут валютный контекст страны запуска
	for _, product := range products {
		assert.Equal(t, "NOK", product.Currency)
		assert.InDelta(t, 0.029, product.InflationRate, 1e-9)
		require.NotNil(t, product.ExchangeRate)
		assert.InDelta(t, 10.42, *product.ExchangeRate, 1e-9)
	}

	// Магазины привязаны к регионам страны запуска
	subdivisions := map[string]bool{"Oslo": true, "Vestland": true, "Troms": true}
	for _, store := range stores {
		assert.Equal(t, "Norway", store.Country)
		assert.True(t, subdivisions[store.StateOrProvince], "unexpected state %q", store.StateOrProvince)
	}

	// Транзакции ссылаются только на сохраненные продукты
	productIDs := make(map[string]bool, len(products))
	for _, product := range products {
		productIDs[product.ProductID] = true
	}
	for _, transaction := range transactions {
		assert.True(t, productIDs[transaction.ProductID])
		assert.Equal(t, "NOK", transaction.Currency)
	}
}

func TestRunFailsWithoutProducts(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.NumProducts = 0
	p := New(cfg)

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transactions stage")

	// Таблицы предыдущих этапов уже записаны и остаются на диске
	writer := dataset.NewWriter(cfg.OutputDir)
	stores, err := dataset.ReadTable[retail.Store](writer, dataset.StoresTable)
	require.NoError(t, err)
	assert.Len(t, stores, cfg.NumStores)
}

func TestRunFailsOnMissingCatalog(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "no-such-catalog.yaml")

	err := New(cfg).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog stage")
}

func TestRunFailsWhenLookupsUnavailable(t *testing.T) {
	cfg := newTestConfig(t)
	// Несуществующий адрес валит и страну запуска, и резервную
	cfg.CountriesURL = "http://127.0.0.1:1"

	err := New(cfg).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "country context stage")
}
