package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"retailfaker/apperrors"
)

// Имена таблиц датасета
const (
	ProductsTable     = "products"
	StoresTable       = "stores"
	TransactionsTable = "transactions"
)

// Writer пишет таблицы датасета в колоночном формате parquet
// Запись перезаписывает существующий файл; семантики добавления или
// слияния нет, атомарность при конкурентных писателях не гарантируется
type Writer struct {
	dir string
}

// NewWriter создает writer для выходной директории
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir возвращает выходную директорию
func (w *Writer) Dir() string {
	return w.dir
}

// Path возвращает путь файла таблицы
func (w *Writer) Path(table string) string {
	return filepath.Join(w.dir, table+".parquet")
}

// WriteTable записывает таблицу на диск
// Выходная директория создается идемпотентно
func WriteTable[T any](w *Writer, table string, rows []T) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to create output directory %s", w.dir), err)
	}

	path := w.Path(table)
	if err := parquet.WriteFile(path, rows); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write table %s", path), err)
	}
	return nil
}

// ReadTable читает таблицу с диска
// Отсутствие файла — нарушение предусловия: таблица должна быть
// сгенерирована раньше читающего этапа
func ReadTable[T any](w *Writer, table string) ([]T, error) {
	path := w.Path(table)

	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewPreconditionError(
				fmt.Sprintf("table %s does not exist, generate it first", path), err)
		}
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to read table %s", path), err)
	}
	return rows, nil
}
