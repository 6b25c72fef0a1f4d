package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailfaker/apperrors"
	"retailfaker/retail"
)

func sampleProducts() []retail.Product {
	exchangeRate := 10.42
	return []retail.Product{
		{
			ProductID:      "p-1",
			ProductName:    "Sleek Keyboard",
			Description:    "A keyboard.",
			Category:       "Electronics",
			Subcategory:    "Computers & Accessories",
			Brand:          "Acme",
			PriceInUSD:     49.99,
			InflationRate:  0.029,
			ExchangeRate:   &exchangeRate,
			Currency:       "NOK",
			ExpirationDate: "2027-01-15",
		},
		{
			ProductID:      "p-2",
			ProductName:    "Green Tea",
			Description:    "Tea.",
			Category:       "Grocery & Gourmet Foods",
			Subcategory:    "Beverages",
			Brand:          "Acme",
			PriceInUSD:     4.5,
			InflationRate:  0.029,
			ExchangeRate:   nil, // Курс недоступен
			Currency:       "USD",
			ExpirationDate: "2026-10-01",
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	writer := NewWriter(filepath.Join(t.TempDir(), "retail_data"))
	products := sampleProducts()

	require.NoError(t, WriteTable(writer, ProductsTable, products))

	// Директория создана, файл существует
	_, err := os.Stat(writer.Path(ProductsTable))
	require.NoError(t, err)

	got, err := ReadTable[retail.Product](writer, ProductsTable)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, products[0], got[0])
	assert.Nil(t, got[1].ExchangeRate)
}

func TestWriteTableOverwrites(t *testing.T) {
	writer := NewWriter(t.TempDir())

	require.NoError(t, WriteTable(writer, ProductsTable, sampleProducts()))
	require.NoError(t, WriteTable(writer, ProductsTable, sampleProducts()[:1]))

	got, err := ReadTable[retail.Product](writer, ProductsTable)
	require.NoError(t, err)
	// Перезапись, не добавление
	assert.Len(t, got, 1)
}

func TestWriteEmptyTable(t *testing.T) {
	writer := NewWriter(t.TempDir())

	require.NoError(t, WriteTable(writer, ProductsTable, []retail.Product{}))

	got, err := ReadTable[retail.Product](writer, ProductsTable)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadMissingTable(t *testing.T) {
	writer := NewWriter(t.TempDir())

	_, err := ReadTable[retail.Transaction](writer, TransactionsTable)
	require.Error(t, err)
	assert.True(t, apperrors.IsPrecondition(err), "expected a precondition error, got %v", err)
}
