package generator

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"retailfaker/apperrors"
	"retailfaker/logging"
	"retailfaker/retail"
)

// Часы работы магазинов; фиксированная строка, как в исходных данных
const storeOpeningHours = "8:00 AM - 9:00 PM"

// StoreGenerator генератор синтетических магазинов
// Регион выбирается равномерно из списка регионов страны; список разрешается
// один раз до генерации (при недоступности — одноэлементный список с именем страны)
type StoreGenerator struct {
	country      string
	subdivisions []string
	config       Config
}

// NewStoreGenerator создает новый генератор магазинов
func NewStoreGenerator(countryName string, subdivisions []string, config Config) *StoreGenerator {
	return &StoreGenerator{
		country:      countryName,
		subdivisions: subdivisions,
		config:       config,
	}
}

// Generate генерирует count магазинов параллельно
func (g *StoreGenerator) Generate(ctx context.Context, count int) ([]retail.Store, error) {
	if len(g.subdivisions) == 0 {
		return nil, apperrors.NewPreconditionError("subdivision list is empty", nil)
	}

	start := time.Now()
	stores, err := runPool(ctx, g.config, count, func(index int, f *gofakeit.Faker) (retail.Store, error) {
		return g.generateOne(f), nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Generated stores",
		"count", len(stores),
		"country", g.country,
		"subdivisions", len(g.subdivisions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stores, nil
}

// generateOne генерирует одну запись магазина
func (g *StoreGenerator) generateOne(f *gofakeit.Faker) retail.Store {
	subdivision := g.subdivisions[f.Number(0, len(g.subdivisions)-1)]

	return retail.Store{
		StoreID:              f.UUID(),
		StoreName:            f.Company(),
		Address:              f.Street(),
		City:                 f.City(),
		StateOrProvince:      subdivision,
		Country:              g.country,
		PostalCode:           f.Zip(),
		StoreType:            f.RandomString(retail.StoreTypes),
		OpeningHours:         storeOpeningHours,
		Manager:              f.Name(),
		NumberOfEmployees:    int32(f.Number(5, 100)),
		NonSelfCheckoutLanes: int32(f.Number(2, 20)),
		SelfCheckoutLanes:    int32(f.Number(0, 4)),
	}
}
