package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

// FileSaver writes finished record sets to disk in one or more formats
// (csv, json, excel) under per-format subdirectories of the output dir.
type FileSaver struct {
	outputDir string
	formats   []string
	logger    *utils.Logger
}

// NewFileSaver creates a FileSaver and ensures the output directories
// exist. The "all" format expands to every supported format.
func NewFileSaver(outputDir string, format string, logger *utils.Logger) (*FileSaver, error) {
	formats := []string{format}
	if format == "all" {
		formats = []string{"csv", "json", "excel"}
	}

	for _, f := range formats {
		dir := filepath.Join(outputDir, f)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("storage: create output dir %q: %w", dir, err)
		}
	}

	return &FileSaver{outputDir: outputDir, formats: formats, logger: logger}, nil
}

// Save writes the businesses in every configured format and returns a
// format→path map. A failure in one format does not block the others;
// an error is returned only when every format failed.
func (s *FileSaver) Save(businesses []*models.Business, query string) (map[string]string, error) {
	if len(businesses) == 0 {
		s.logger.Warn("[storage] no businesses data to save")
		return nil, nil
	}

	saved := make(map[string]string)
	var lastErr error

	for _, format := range s.formats {
		var (
			path string
			err  error
		)
		switch format {
		case "csv":
			path, err = s.saveCSV(businesses, query)
		case "json":
			path, err = s.saveJSON(businesses, query)
		case "excel":
			path, err = s.saveExcel(businesses, query)
		default:
			err = fmt.Errorf("storage: unknown output format %q", format)
		}

		if err != nil {
			s.logger.Error("[storage] error saving %s: %v", format, err)
			lastErr = err
			continue
		}
		saved[format] = path
		s.logger.Info("[storage] saved %d businesses to %s: %s", len(businesses), strings.ToUpper(format), path)
	}

	if len(saved) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return saved, nil
}

// filename builds gmaps_<query>_<timestamp>.<ext> with the query
// reduced to filename-safe characters.
func (s *FileSaver) filename(query, ext string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("gmaps_%s_%s.%s", b.String(), timestamp, ext)
}

// cleanField strips newlines and non-printable characters that leak out
// of Google's markup (icon glyphs in address buttons and the like).
func cleanField(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, value)
}

// row renders one business into the shared column order, with unset
// numeric fields as empty cells rather than zeroes.
func row(b *models.Business) []string {
	rating, reviews := "", ""
	if b.Rating > 0 {
		rating = strconv.FormatFloat(b.Rating, 'f', -1, 64)
	}
	if b.ReviewsCount > 0 {
		reviews = strconv.Itoa(b.ReviewsCount)
	}

	lat, lng := "", ""
	if b.Coordinates != nil {
		lat = strconv.FormatFloat(b.Coordinates.Latitude, 'f', -1, 64)
		lng = strconv.FormatFloat(b.Coordinates.Longitude, 'f', -1, 64)
	}

	return []string{
		cleanField(b.Name),
		cleanField(b.Address),
		cleanField(b.Phone),
		cleanField(b.Website),
		rating,
		reviews,
		cleanField(b.Category),
		cleanField(b.Hours),
		cleanField(b.PriceRange),
		lat,
		lng,
		b.GoogleMapsURL,
		cleanField(b.SearchQuery),
		b.ScrapedAt.Format(time.RFC3339),
	}
}
