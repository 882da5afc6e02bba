package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"gmaps-scraper/models"
)

// saveCSV writes one CSV file with a header row and one row per business.
func (s *FileSaver) saveCSV(businesses []*models.Business, query string) (string, error) {
	path := filepath.Join(s.outputDir, "csv", s.filename(query, "csv"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(models.Columns); err != nil {
		return "", fmt.Errorf("csv: write header: %w", err)
	}
	for _, b := range businesses {
		if err := w.Write(row(b)); err != nil {
			return "", fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv: flush: %w", err)
	}
	return path, nil
}
