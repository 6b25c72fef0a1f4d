package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"retailfaker/ai"
	"retailfaker/dataset"
	"retailfaker/report"
	"retailfaker/retail"
)

const previewRows = 20

func main() {
	dataDir := flag.String("data", "retail_data", "Directory with the generated parquet tables")
	reportPath := flag.String("report", "output.pdf", "Path of the PDF report to create or append to")
	title := flag.String("title", "Statistics", "Title of the report section")
	question := flag.String("question", "Give basic statistics for this data", "Question to ask about the transactions table")
	model := flag.String("model", "", "Chat model to use (client default if empty)")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall timeout for the completion request")
	flag.Parse()

	writer := dataset.NewWriter(*dataDir)
	transactions, err := dataset.ReadTable[retail.Transaction](writer, dataset.TransactionsTable)
	if err != nil {
		log.Fatalf("failed to read transactions table: %v", err)
	}
	if len(transactions) == 0 {
		log.Fatalf("transactions table %s is empty", writer.Path(dataset.TransactionsTable))
	}

	client := ai.NewClient()
	if *model != "" {
		client = client.WithModel(*model)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	requestID := uuid.NewString()
	answer, err := client.ChatCompletion(ctx, requestID, []ai.Message{
		{Role: "user", Content: fmt.Sprintf("%s: %s", *question, previewTransactions(transactions))},
	})
	if err != nil {
		log.Fatalf("chat completion failed: %v", err)
	}

	if err := report.AppendSection(*reportPath, *title, answer); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}

	fmt.Println("\n--- Transactions Report ---")
	fmt.Printf("Request ID: %s\n", requestID)
	fmt.Printf("Transactions: %d\n", len(transactions))
	fmt.Printf("Section: %s\n", *title)
	fmt.Printf("Report: %s\n", *reportPath)
}

// previewTransactions сворачивает таблицу в текст для запроса к модели:
// шапка, первые строки и итоговое число записей
func previewTransactions(transactions []retail.Transaction) string {
	var sb strings.Builder
	sb.WriteString("transaction_id,product_id,product_name,quantity,price,currency,total,timestamp\n")

	limit := min(previewRows, len(transactions))
	for _, t := range transactions[:limit] {
		fmt.Fprintf(&sb, "%s,%s,%s,%d,%.2f,%s,%.2f,%s\n",
			t.TransactionID, t.ProductID, t.ProductName, t.Quantity, t.Price, t.Currency, t.Total, t.Timestamp)
	}
	fmt.Fprintf(&sb, "[%d rows x 8 columns]", len(transactions))
	return sb.String()
}
