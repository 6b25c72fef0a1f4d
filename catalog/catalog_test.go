package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"retailfaker/apperrors"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

const validCatalog = `categories:
  Electronics:
    Computers & Accessories: [20, 3000]
    Smart Home Devices: [15, 400]
  Grocery & Gourmet Foods:
    Beverages: [1, 15]
`

func TestLoad(t *testing.T) {
	catalog, err := Load(writeCatalogFile(t, validCatalog))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	categories := catalog.Categories()
	if len(categories) != 2 {
		t.Fatalf("Categories() returned %d categories, want 2", len(categories))
	}
	// Список категорий отсортирован
	if categories[0] != "Electronics" || categories[1] != "Grocery & Gourmet Foods" {
		t.Errorf("Categories() = %v, want sorted [Electronics, Grocery & Gourmet Foods]", categories)
	}

	subcategories := catalog.Subcategories("Electronics")
	if len(subcategories) != 2 {
		t.Fatalf("Subcategories(Electronics) returned %d entries, want 2", len(subcategories))
	}
	if r := subcategories["Computers & Accessories"]; r.MinUSD != 20 || r.MaxUSD != 3000 {
		t.Errorf("price range = %+v, want {20 3000}", r)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty categories",
			content: "categories: {}\n",
		},
		{
			name: "min greater than max",
			content: `categories:
  Electronics:
    Laptops: [500, 100]
`,
		},
		{
			name: "non-positive bound",
			content: `categories:
  Electronics:
    Laptops: [0, 100]
`,
		},
		{
			name: "wrong arity",
			content: `categories:
  Electronics:
    Laptops: [100]
`,
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalogFile(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !apperrors.IsConfig(err) {
				t.Errorf("Load() error kind = %v, want config", apperrors.KindOf(err))
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for a missing file")
	}
	if !apperrors.IsConfig(err) {
		t.Errorf("Load() error kind = %v, want config", apperrors.KindOf(err))
	}
}

func TestSubcategoriesAbsentCategory(t *testing.T) {
	catalog, err := Load(writeCatalogFile(t, validCatalog))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Отсутствующая категория не фатальна: возвращается пустая карта
	subcategories := catalog.Subcategories("Toys")
	if subcategories == nil {
		t.Fatal("Subcategories() returned nil, want empty map")
	}
	if len(subcategories) != 0 {
		t.Errorf("Subcategories() returned %d entries, want 0", len(subcategories))
	}

	if names := catalog.SubcategoryNames("Toys"); len(names) != 0 {
		t.Errorf("SubcategoryNames() = %v, want empty", names)
	}
}

func TestSubcategoryNamesSorted(t *testing.T) {
	catalog, err := Load(writeCatalogFile(t, validCatalog))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	names := catalog.SubcategoryNames("Electronics")
	if len(names) != 2 || names[0] != "Computers & Accessories" || names[1] != "Smart Home Devices" {
		t.Errorf("SubcategoryNames() = %v, want sorted list", names)
	}

	if _, ok := catalog.Range("Electronics", "Smart Home Devices"); !ok {
		t.Error("Range() should find an existing subcategory")
	}
	if _, ok := catalog.Range("Electronics", "Toasters"); ok {
		t.Error("Range() should not find a missing subcategory")
	}
}
