package dataset

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"retailfaker/apperrors"
)

// ExportSQLite экспортирует таблицу в базу SQLite
// Существующая таблица с тем же именем пересоздается: семантика
// перезаписи совпадает с файловым writer
func ExportSQLite(table TableData, filename string) error {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to open sqlite database %s", filename), err)
	}
	defer db.Close()

	quoted := make([]string, len(table.Headers))
	for i, header := range table.Headers {
		quoted[i] = fmt.Sprintf("%q", header)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %q", table.Name)); err != nil {
		return fmt.Errorf("failed to drop existing table: %w", err)
	}

	createStmt := fmt.Sprintf("CREATE TABLE %q (%s)", table.Name, strings.Join(quoted, ", "))
	if _, err := db.Exec(createStmt); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Headers)), ", ")
	insertStmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %q VALUES (%s)", table.Name, placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insertStmt.Close()

	for _, row := range table.Rows {
		values := make([]any, len(row))
		for i, value := range row {
			// database/sql не принимает *float64 и int32 напрямую во всех драйверах,
			// приводим к базовым типам
			switch v := value.(type) {
			case *float64:
				if v == nil {
					values[i] = nil
				} else {
					values[i] = *v
				}
			case int32:
				values[i] = int64(v)
			default:
				values[i] = value
			}
		}
		if _, err := insertStmt.Exec(values...); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
