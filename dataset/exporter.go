package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"retailfaker/apperrors"
)

// ExportFormat формат экспорта
type ExportFormat string

const (
	FormatJSON   ExportFormat = "json"
	FormatCSV    ExportFormat = "csv"
	FormatExcel  ExportFormat = "excel"
	FormatSQLite ExportFormat = "sqlite"
)

// TableData табличное представление для экспорта в построчные форматы
type TableData struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Export экспортирует таблицу в указанном формате
func Export(table TableData, format ExportFormat, filename string) error {
	switch format {
	case FormatJSON:
		return ExportJSON(table, filename)
	case FormatCSV:
		return ExportCSV(table, filename)
	case FormatExcel:
		return ExportExcel(table, filename)
	case FormatSQLite:
		return ExportSQLite(table, filename)
	default:
		return apperrors.NewConfigError(fmt.Sprintf("unknown export format %q", format), nil)
	}
}

// ExportJSON экспортирует таблицу в JSON
func ExportJSON(table TableData, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to create file %s", filename), err)
	}
	defer file.Close()

	rows := make([]map[string]any, 0, len(table.Rows))
	for _, row := range table.Rows {
		object := make(map[string]any, len(table.Headers))
		for i, header := range table.Headers {
			object[header] = row[i]
		}
		rows = append(rows, object)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	result := map[string]any{
		"exported_at": time.Now().Format(time.RFC3339),
		"table":       table.Name,
		"total":       len(rows),
		"rows":        rows,
	}

	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportCSV экспортирует таблицу в CSV
func ExportCSV(table TableData, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to create file %s", filename), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Заголовки
	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	// Данные
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = formatCell(value)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return writer.Error()
}

// ExportExcel экспортирует таблицу в Excel
func ExportExcel(table TableData, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := table.Name
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	// Стиль заголовков
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// Заголовки
	for i, header := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// Данные
	for rowIdx, row := range table.Rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if value == nil {
				continue
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Автоширина колонок
	for i := range table.Headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filename); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to save Excel file %s", filename), err)
	}
	return nil
}

// formatCell преобразует значение ячейки в строку для CSV
func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	case *float64:
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%.4f", *v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
