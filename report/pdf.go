package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"retailfaker/apperrors"
)

// Section один раздел отчета
type Section struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// AppendSection добавляет раздел в PDF отчет по указанному пути
// PDF нельзя дописать на месте, поэтому рядом с отчетом хранится JSON
// со всеми разделами: при каждом вызове список пополняется и отчет
// перерисовывается целиком
func AppendSection(path, title, text string) error {
	if title == "" {
		return apperrors.NewPreconditionError("section title is empty", nil)
	}

	sections, err := loadSections(sidecarPath(path))
	if err != nil {
		return err
	}
	sections = append(sections, Section{Title: title, Text: text})

	if err := render(path, sections); err != nil {
		return err
	}
	return saveSections(sidecarPath(path), sections)
}

// Sections возвращает разделы, накопленные в отчете
func Sections(path string) ([]Section, error) {
	return loadSections(sidecarPath(path))
}

// sidecarPath путь JSON файла с разделами отчета
func sidecarPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".sections.json"
}

func loadSections(path string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to read report sections %s", path), err)
	}

	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to parse report sections %s", path), err)
	}
	return sections, nil
}

func saveSections(path string, sections []Section) error {
	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return apperrors.NewIOError("failed to marshal report sections", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write report sections %s", path), err)
	}
	return nil
}

// render рисует отчет целиком: каждый раздел с новой страницы,
// заголовок по центру, текст по абзацам с выравниванием по ширине
func render(path string, sections []Section) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("failed to create report directory %s", dir), err)
		}
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)

	for _, section := range sections {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 24)
		pdf.CellFormat(0, 14, section.Title, "", 1, "C", false, 0, "")
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "", 12)
		for _, paragraph := range strings.Split(section.Text, "\n") {
			paragraph = strings.TrimSpace(paragraph)
			if paragraph == "" {
				continue
			}
			pdf.MultiCell(0, 6, paragraph, "", "J", false)
			pdf.Ln(4)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write report %s", path), err)
	}
	return nil
}
