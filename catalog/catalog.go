package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"retailfaker/apperrors"
)

// PriceRange диапазон цен подкатегории в долларах США
type PriceRange struct {
	MinUSD float64
	MaxUSD float64
}

// Catalog статическая таксономия категория -> подкатегория -> диапазон цен
// Загружается один раз на процесс и после загрузки не изменяется,
// поэтому безопасна для конкурентного чтения воркерами
type Catalog struct {
	categories map[string]map[string]PriceRange
	names      []string // Отсортированный список категорий для детерминированного выбора
}

// catalogFile формат конфигурационного файла каталога
type catalogFile struct {
	Categories map[string]map[string][]float64 `yaml:"categories"`
}

// Load загружает каталог категорий из yaml-файла
// Каждый диапазон цен проверяется: min <= max и обе границы > 0
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to read catalog file %s", path), err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to parse catalog file %s", path), err)
	}

	if len(file.Categories) == 0 {
		return nil, apperrors.NewConfigError(fmt.Sprintf("catalog file %s has no categories", path), nil)
	}

	catalog := &Catalog{
		categories: make(map[string]map[string]PriceRange, len(file.Categories)),
		names:      make([]string, 0, len(file.Categories)),
	}

	for category, subcategories := range file.Categories {
		if len(subcategories) == 0 {
			return nil, apperrors.NewConfigError(fmt.Sprintf("category %q has no subcategories", category), nil)
		}

		ranges := make(map[string]PriceRange, len(subcategories))
		for subcategory, bounds := range subcategories {
			if len(bounds) != 2 {
				return nil, apperrors.NewConfigError(
					fmt.Sprintf("subcategory %q of %q must have exactly [min, max], got %d values", subcategory, category, len(bounds)), nil)
			}
			min, max := bounds[0], bounds[1]
			if min <= 0 || max <= 0 {
				return nil, apperrors.NewConfigError(
					fmt.Sprintf("subcategory %q of %q has non-positive price bound", subcategory, category), nil)
			}
			if min > max {
				return nil, apperrors.NewConfigError(
					fmt.Sprintf("subcategory %q of %q has min %.2f greater than max %.2f", subcategory, category, min, max), nil)
			}
			ranges[subcategory] = PriceRange{MinUSD: min, MaxUSD: max}
		}

		catalog.categories[category] = ranges
		catalog.names = append(catalog.names, category)
	}

	sort.Strings(catalog.names)
	return catalog, nil
}

// Categories возвращает отсортированный список категорий
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Subcategories возвращает подкатегории категории с их диапазонами цен
// Для отсутствующей категории возвращает пустую карту, вызывающий должен проверять
func (c *Catalog) Subcategories(category string) map[string]PriceRange {
	subcategories, ok := c.categories[category]
	if !ok {
		return map[string]PriceRange{}
	}

	result := make(map[string]PriceRange, len(subcategories))
	for name, priceRange := range subcategories {
		result[name] = priceRange
	}
	return result
}

// SubcategoryNames возвращает отсортированный список подкатегорий категории
// Порядок фиксирован, чтобы выбор по индексу был воспроизводим при заданном seed
func (c *Catalog) SubcategoryNames(category string) []string {
	subcategories, ok := c.categories[category]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(subcategories))
	for name := range subcategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Range возвращает диапазон цен подкатегории
func (c *Catalog) Range(category, subcategory string) (PriceRange, bool) {
	subcategories, ok := c.categories[category]
	if !ok {
		return PriceRange{}, false
	}
	priceRange, ok := subcategories[subcategory]
	return priceRange, ok
}
