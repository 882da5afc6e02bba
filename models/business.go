package models

import "time"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Business holds the data extracted from a single Google Maps place page.
// Every field except Name is optional; a Business without a name is
// considered unusable and is dropped by the pipeline.
type Business struct {
	Name          string
	Address       string
	Phone         string
	Website       string
	Rating        float64
	ReviewsCount  int
	Category      string
	Hours         string
	PriceRange    string
	Coordinates   *Coordinates
	GoogleMapsURL string
	SearchQuery   string
	ScrapedAt     time.Time
}

// ToMap flattens the business into the column set the file writers share.
// Coordinates are split into latitude/longitude like the CSV/JSON output
// expects; unset numeric fields stay empty rather than rendering zeroes.
func (b *Business) ToMap() map[string]any {
	m := map[string]any{
		"name":            b.Name,
		"address":         b.Address,
		"phone":           b.Phone,
		"website":         b.Website,
		"rating":          b.Rating,
		"reviews_count":   b.ReviewsCount,
		"category":        b.Category,
		"hours":           b.Hours,
		"price_range":     b.PriceRange,
		"google_maps_url": b.GoogleMapsURL,
		"search_query":    b.SearchQuery,
		"scraped_at":      b.ScrapedAt.Format(time.RFC3339),
	}
	if b.Coordinates != nil {
		m["latitude"] = b.Coordinates.Latitude
		m["longitude"] = b.Coordinates.Longitude
	} else {
		m["latitude"] = nil
		m["longitude"] = nil
	}
	return m
}

// Columns is the stable column order used by every tabular writer.
var Columns = []string{
	"name", "address", "phone", "website", "rating", "reviews_count",
	"category", "hours", "price_range", "latitude", "longitude",
	"google_maps_url", "search_query", "scraped_at",
}

// RunSummary counts per-item outcomes for one scrape run.
type RunSummary struct {
	Query     string
	Succeeded int
	Failed    int
}

// SuccessRate returns the percentage of detail pages that yielded a
// usable record, or 0 when nothing was attempted.
func (s RunSummary) SuccessRate() float64 {
	total := s.Succeeded + s.Failed
	if total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(total) * 100
}
