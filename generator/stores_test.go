package generator

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailfaker/retail"
)

func TestStoreGenerator(t *testing.T) {
	subdivisions := []string{"Oslo", "Troms", "Vestland"}
	gen := NewStoreGenerator("Norway", subdivisions, Config{Workers: 4})

	stores, err := gen.Generate(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, stores, 100)

	known := map[string]bool{}
	for _, s := range subdivisions {
		known[s] = true
	}

	for _, s := range stores {
		// Регион только из известного набора
		assert.True(t, known[s.StateOrProvince], "unknown subdivision %q", s.StateOrProvince)
		assert.Equal(t, "Norway", s.Country)
		assert.Contains(t, retail.StoreTypes, s.StoreType)
		assert.Equal(t, storeOpeningHours, s.OpeningHours)

		assert.GreaterOrEqual(t, s.NumberOfEmployees, int32(5))
		assert.LessOrEqual(t, s.NumberOfEmployees, int32(100))
		assert.GreaterOrEqual(t, s.NonSelfCheckoutLanes, int32(2))
		assert.LessOrEqual(t, s.NonSelfCheckoutLanes, int32(20))
		assert.GreaterOrEqual(t, s.SelfCheckoutLanes, int32(0))
		assert.LessOrEqual(t, s.SelfCheckoutLanes, int32(4))

		assert.NotEmpty(t, s.StoreID)
		assert.NotEmpty(t, s.StoreName)
		assert.NotEmpty(t, s.Manager)
	}
}

func TestStoreGeneratorSingleSubdivisionFallback(t *testing.T) {
	// Деградация: список регионов заменен именем страны
	gen := NewStoreGenerator("Atlantis", []string{"Atlantis"}, Config{})

	stores, err := gen.Generate(context.Background(), 20)
	require.NoError(t, err)

	for _, s := range stores {
		assert.Equal(t, "Atlantis", s.StateOrProvince)
	}
}

func TestStoreGeneratorEmptySubdivisions(t *testing.T) {
	gen := NewStoreGenerator("Norway", nil, Config{})

	_, err := gen.Generate(context.Background(), 5)
	require.Error(t, err)
}

func TestStoreGeneratorReproducibleWithSeed(t *testing.T) {
	subdivisions := []string{"Oslo", "Troms", "Vestland"}
	config := Config{Workers: 8, Seed: 7}

	first, err := NewStoreGenerator("Norway", subdivisions, config).Generate(context.Background(), 40)
	require.NoError(t, err)
	second, err := NewStoreGenerator("Norway", subdivisions, config).Generate(context.Background(), 40)
	require.NoError(t, err)

	sortByID := func(stores []retail.Store) {
		sort.Slice(stores, func(i, j int) bool { return stores[i].StoreID < stores[j].StoreID })
	}
	sortByID(first)
	sortByID(second)
	assert.Equal(t, first, second)
}
