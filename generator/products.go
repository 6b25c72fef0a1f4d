package generator

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"retailfaker/apperrors"
	"retailfaker/catalog"
	"retailfaker/country"
	"retailfaker/logging"
	"retailfaker/retail"
)

// ProductGenerator генератор синтетических продуктов
// Категория и подкатегория выбираются равномерно из каталога, цена — равномерно
// из долларового диапазона подкатегории; валютный контекст один на весь запуск
type ProductGenerator struct {
	catalog *catalog.Catalog
	context *country.Context
	config  Config
}

// NewProductGenerator создает новый генератор продуктов
func NewProductGenerator(cat *catalog.Catalog, countryContext *country.Context, config Config) *ProductGenerator {
	return &ProductGenerator{
		catalog: cat,
		context: countryContext,
		config:  config,
	}
}

// Generate генерирует count продуктов параллельно
func (g *ProductGenerator) Generate(ctx context.Context, count int) ([]retail.Product, error) {
	// Список категорий фиксируется один раз на весь запуск
	categories := g.catalog.Categories()
	if len(categories) == 0 {
		return nil, apperrors.NewConfigError("catalog has no categories", nil)
	}

	start := time.Now()
	products, err := runPool(ctx, g.config, count, func(index int, f *gofakeit.Faker) (retail.Product, error) {
		return g.generateOne(f, categories)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Generated products",
		"count", len(products),
		"currency", g.context.CurrencyCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return products, nil
}

// generateOne генерирует одну запись продукта
func (g *ProductGenerator) generateOne(f *gofakeit.Faker, categories []string) (retail.Product, error) {
	category := categories[f.Number(0, len(categories)-1)]

	subcategories := g.catalog.SubcategoryNames(category)
	if len(subcategories) == 0 {
		return retail.Product{}, apperrors.NewConfigError("category "+category+" has no subcategories", nil)
	}
	subcategory := subcategories[f.Number(0, len(subcategories)-1)]

	priceRange, ok := g.catalog.Range(category, subcategory)
	if !ok {
		return retail.Product{}, apperrors.NewConfigError("no price range for "+category+"/"+subcategory, nil)
	}

	// Срок годности строго между 30 и 365 днями от момента генерации
	expiresInDays := f.Number(31, 364)
	expiration := time.Now().AddDate(0, 0, expiresInDays)

	return retail.Product{
		ProductID:      f.UUID(),
		ProductName:    f.ProductName(),
		Description:    f.Sentence(8),
		Category:       category,
		Subcategory:    subcategory,
		Brand:          f.Company(),
		PriceInUSD:     round2(f.Float64Range(priceRange.MinUSD, priceRange.MaxUSD)),
		InflationRate:  g.context.InflationRate,
		ExchangeRate:   g.context.ExchangeRate,
		Currency:       g.context.CurrencyCode,
		ExpirationDate: expiration.Format(retail.DateFormat),
	}, nil
}
