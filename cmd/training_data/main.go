package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"retailfaker/dataset"
	"retailfaker/retail"
)

// Готовит пары (категория, подкатегория) -> имя продукта для дообучения
// text-to-text модели: train.csv и validation.csv с колонками
// input_text,target_text
func main() {
	dataDir := flag.String("data", "retail_data", "Directory with the generated parquet tables")
	outDir := flag.String("out", ".", "Directory for train.csv and validation.csv")
	validationShare := flag.Float64("validation", 0.2, "Share of products held out for validation")
	seed := flag.Int64("seed", 0, "Shuffle seed (0 = non-deterministic)")
	flag.Parse()

	if *validationShare < 0 || *validationShare >= 1 {
		log.Fatalf("validation share must be in [0, 1), got %v", *validationShare)
	}

	writer := dataset.NewWriter(*dataDir)
	products, err := dataset.ReadTable[retail.Product](writer, dataset.ProductsTable)
	if err != nil {
		log.Fatalf("failed to read products table: %v", err)
	}
	if len(products) == 0 {
		log.Fatalf("products table %s is empty", writer.Path(dataset.ProductsTable))
	}

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	rng.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})

	validationCount := int(float64(len(products)) * *validationShare)
	trainPath := filepath.Join(*outDir, "train.csv")
	validationPath := filepath.Join(*outDir, "validation.csv")

	if err := writePairs(trainPath, products[validationCount:]); err != nil {
		log.Fatalf("failed to write %s: %v", trainPath, err)
	}
	if err := writePairs(validationPath, products[:validationCount]); err != nil {
		log.Fatalf("failed to write %s: %v", validationPath, err)
	}

	fmt.Println("\n--- Training Data Preparation ---")
	fmt.Printf("Products: %d\n", len(products))
	fmt.Printf("Train: %d -> %s\n", len(products)-validationCount, trainPath)
	fmt.Printf("Validation: %d -> %s\n", validationCount, validationPath)
}

// writePairs пишет CSV с парами запрос-ответ для одной выборки
func writePairs(path string, products []retail.Product) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"input_text", "target_text"}); err != nil {
		return err
	}
	for _, product := range products {
		input := fmt.Sprintf("generate product name: %s, %s", product.Category, product.Subcategory)
		if err := w.Write([]string{input, product.ProductName}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
