package generator

import (
	"context"
	"time"

	"retailfaker/apperrors"
	"retailfaker/logging"
	"retailfaker/retail"
)

// TransactionGenerator генератор синтетических транзакций
// Каждая строка ссылается на случайный продукт из уже сгенерированной таблицы
// продуктов; идентификаторы транзакций берутся из небольшого пула уникальных
// значений, чтобы моделировать повторные покупки и многострочные чеки
// Генерация однопоточная: таблица продуктов только читается
type TransactionGenerator struct {
	config Config
}

// NewTransactionGenerator создает новый генератор транзакций
func NewTransactionGenerator(config Config) *TransactionGenerator {
	return &TransactionGenerator{config: config}
}

// Generate генерирует count строк транзакций по таблице продуктов
// poolSize задает количество уникальных идентификаторов транзакций
func (g *TransactionGenerator) Generate(ctx context.Context, products []retail.Product, count, poolSize int) ([]retail.Transaction, error) {
	// Жесткое предусловие: без таблицы продуктов транзакции не генерируются
	if len(products) == 0 {
		return nil, apperrors.NewPreconditionError("products table is empty or missing, generate products first", nil)
	}
	for i := range products {
		if products[i].ProductID == "" || products[i].Currency == "" {
			return nil, apperrors.NewPreconditionError("products table is missing required columns", nil)
		}
	}

	if poolSize <= 0 {
		poolSize = 1
	}

	f := g.config.fakerFor(0)

	// Пул идентификаторов транзакций
	transactionIDs := make([]string, poolSize)
	for i := range transactionIDs {
		transactionIDs[i] = f.UUID()
	}

	start := time.Now()
	now := time.Now()
	transactions := make([]retail.Transaction, 0, count)

	for i := 0; i < count; i++ {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		product := products[f.Number(0, len(products)-1)]

		// Цена в локальной валюте; без курса цена остается в долларах
		price := round2(product.PriceInUSD)
		currency := "USD"
		if product.ExchangeRate != nil {
			price = round2(product.PriceInUSD * *product.ExchangeRate)
			currency = product.Currency
		}

		quantity := f.Number(1, 30)

		// Момент покупки равномерно в пределах последнего года
		secondsBack := f.Number(0, 365*24*3600-1)
		timestamp := now.Add(-time.Duration(secondsBack) * time.Second)

		transactions = append(transactions, retail.Transaction{
			TransactionID: transactionIDs[f.Number(0, poolSize-1)],
			Timestamp:     timestamp.Format(retail.TimestampFormat),
			ProductID:     product.ProductID,
			ProductName:   product.ProductName,
			Quantity:      int32(quantity),
			Price:         price,
			ExchangeRate:  product.ExchangeRate,
			Currency:      currency,
			InflationRate: product.InflationRate,
			// Итог всегда пересчитывается из количества и цены
			Total: round2(float64(quantity) * price),
		})
	}

	logging.Logger.Info("Generated transactions",
		"count", len(transactions),
		"products", len(products),
		"id_pool", poolSize,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return transactions, nil
}
