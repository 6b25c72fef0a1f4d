package main

import (
	"flag"
	"fmt"
	"log"

	"retailfaker/dataset"
	"retailfaker/retail"
)

// Экспортирует сгенерированную parquet таблицу в построчный формат:
// json, csv, excel или sqlite
func main() {
	dataDir := flag.String("data", "retail_data", "Directory with the generated parquet tables")
	tableName := flag.String("table", dataset.TransactionsTable, "Table to export: products, stores or transactions")
	format := flag.String("format", "csv", "Export format: json, csv, excel or sqlite")
	output := flag.String("out", "", "Output file (defaults to <table>.<format>)")
	flag.Parse()

	writer := dataset.NewWriter(*dataDir)

	table, err := loadTable(writer, *tableName)
	if err != nil {
		log.Fatalf("failed to read table %q: %v", *tableName, err)
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("%s.%s", *tableName, *format)
	}

	if err := dataset.Export(table, dataset.ExportFormat(*format), filename); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	fmt.Println("\n--- Table Export ---")
	fmt.Printf("Table: %s\n", table.Name)
	fmt.Printf("Rows: %d\n", len(table.Rows))
	fmt.Printf("Format: %s\n", *format)
	fmt.Printf("Output: %s\n", filename)
}

func loadTable(writer *dataset.Writer, name string) (dataset.TableData, error) {
	switch name {
	case dataset.ProductsTable:
		products, err := dataset.ReadTable[retail.Product](writer, name)
		if err != nil {
			return dataset.TableData{}, err
		}
		return dataset.ProductsData(products), nil
	case dataset.StoresTable:
		stores, err := dataset.ReadTable[retail.Store](writer, name)
		if err != nil {
			return dataset.TableData{}, err
		}
		return dataset.StoresData(stores), nil
	case dataset.TransactionsTable:
		transactions, err := dataset.ReadTable[retail.Transaction](writer, name)
		if err != nil {
			return dataset.TableData{}, err
		}
		return dataset.TransactionsData(transactions), nil
	default:
		return dataset.TableData{}, fmt.Errorf("unknown table %q", name)
	}
}
