package storage

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gmaps-scraper/models"
)

const sheetName = "Businesses"

// saveExcel writes the record set to an XLSX workbook with auto-sized
// columns, capped at 50 characters per column.
func (s *FileSaver) saveExcel(businesses []*models.Business, query string) (string, error) {
	path := filepath.Join(s.outputDir, "excel", s.filename(query, "xlsx"))

	wb := excelize.NewFile()
	defer wb.Close()

	index, err := wb.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("excel: create sheet: %w", err)
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("excel: drop default sheet: %w", err)
	}

	widths := make([]int, len(models.Columns))
	writeRow := func(rowIdx int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
		return nil
	}

	if err := writeRow(1, models.Columns); err != nil {
		return "", fmt.Errorf("excel: write header: %w", err)
	}
	for i, b := range businesses {
		if err := writeRow(i+2, row(b)); err != nil {
			return "", fmt.Errorf("excel: write row %d: %w", i+1, err)
		}
	}

	for col := range models.Columns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		width := widths[col] + 2
		if width > 50 {
			width = 50
		}
		if err := wb.SetColWidth(sheetName, name, name, float64(width)); err != nil {
			return "", fmt.Errorf("excel: set column width: %w", err)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("excel: save %q: %w", path, err)
	}
	return path, nil
}
