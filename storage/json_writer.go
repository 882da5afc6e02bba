package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gmaps-scraper/models"
)

// jsonDocument is the envelope written around the record list.
type jsonDocument struct {
	SearchQuery     string           `json:"search_query"`
	ScrapedAt       string           `json:"scraped_at"`
	TotalBusinesses int              `json:"total_businesses"`
	Businesses      []map[string]any `json:"businesses"`
}

// saveJSON writes the record set as a single indented JSON document.
func (s *FileSaver) saveJSON(businesses []*models.Business, query string) (string, error) {
	path := filepath.Join(s.outputDir, "json", s.filename(query, "json"))

	doc := jsonDocument{
		SearchQuery:     query,
		ScrapedAt:       time.Now().Format(time.RFC3339),
		TotalBusinesses: len(businesses),
		Businesses:      make([]map[string]any, 0, len(businesses)),
	}
	for _, b := range businesses {
		doc.Businesses = append(doc.Businesses, b.ToMap())
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("json: create file %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("json: encode: %w", err)
	}
	return path, nil
}
