package generator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailfaker/catalog"
	"retailfaker/country"
	"retailfaker/retail"
)

const testCatalogYAML = `categories:
  Electronics:
    Computers & Accessories: [20, 3000]
    Smart Home Devices: [15, 400]
  Grocery & Gourmet Foods:
    Beverages: [1, 15]
    Snacks & Sweets: [1, 20]
`

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0644))

	cat, err := catalog.Load(path)
	require.NoError(t, err)
	return cat
}

func testCountryContext() *country.Context {
	exchangeRate := 10.42
	return &country.Context{
		CurrencyCode:  "NOK",
		InflationRate: 0.029,
		ExchangeRate:  &exchangeRate,
	}
}

func TestProductGenerator(t *testing.T) {
	cat := loadTestCatalog(t)
	cctx := testCountryContext()
	gen := NewProductGenerator(cat, cctx, Config{Workers: 4})

	products, err := gen.Generate(context.Background(), 200)
	require.NoError(t, err)
	require.Len(t, products, 200)

	now := time.Now()
	for _, p := range products {
		// Подкатегория принадлежит набору подкатегорий своей категории
		priceRange, ok := cat.Range(p.Category, p.Subcategory)
		require.True(t, ok, "subcategory %q does not belong to category %q", p.Subcategory, p.Category)

		// Цена в долларовом диапазоне подкатегории
		assert.GreaterOrEqual(t, p.PriceInUSD, priceRange.MinUSD)
		assert.LessOrEqual(t, p.PriceInUSD, priceRange.MaxUSD)

		// Срок годности строго между 30 и 365 днями от генерации
		expiration, err := time.Parse(retail.DateFormat, p.ExpirationDate)
		require.NoError(t, err)
		days := expiration.Sub(now).Hours() / 24
		assert.Greater(t, days, 30.0, "expiration %s too close", p.ExpirationDate)
		assert.Less(t, days, 365.0, "expiration %s too far", p.ExpirationDate)

		// Валютный контекст константен для всего запуска
		assert.Equal(t, "NOK", p.Currency)
		assert.Equal(t, 0.029, p.InflationRate)
		require.NotNil(t, p.ExchangeRate)

		assert.NotEmpty(t, p.ProductID)
		assert.NotEmpty(t, p.ProductName)
		assert.NotEmpty(t, p.Brand)
	}
}

func TestProductGeneratorReproducibleWithSeed(t *testing.T) {
	cat := loadTestCatalog(t)
	cctx := testCountryContext()
	config := Config{Workers: 8, Seed: 42}

	first, err := NewProductGenerator(cat, cctx, config).Generate(context.Background(), 50)
	require.NoError(t, err)
	second, err := NewProductGenerator(cat, cctx, config).Generate(context.Background(), 50)
	require.NoError(t, err)

	// Порядок завершения воркеров не гарантирован, но набор записей
	// при фиксированном seed идентичен
	sortByID := func(products []retail.Product) {
		sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	}
	sortByID(first)
	sortByID(second)
	assert.Equal(t, first, second)
}

func TestProductGeneratorZeroCount(t *testing.T) {
	gen := NewProductGenerator(loadTestCatalog(t), testCountryContext(), Config{})

	products, err := gen.Generate(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductGeneratorCancelled(t *testing.T) {
	gen := NewProductGenerator(loadTestCatalog(t), testCountryContext(), Config{Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, 1000)
	require.Error(t, err)
}
