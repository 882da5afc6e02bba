package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"gmaps-scraper/models"
)

// PostgresWriter archives scraped businesses to PostgreSQL, keyed by
// their Google Maps URL so re-runs update instead of duplicating.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS businesses (
			id              SERIAL PRIMARY KEY,
			name            TEXT          NOT NULL,
			address         TEXT          NOT NULL DEFAULT '',
			phone           TEXT          NOT NULL DEFAULT '',
			website         TEXT          NOT NULL DEFAULT '',
			rating          NUMERIC(4,2)  NOT NULL DEFAULT 0,
			reviews_count   INTEGER       NOT NULL DEFAULT 0,
			category        TEXT          NOT NULL DEFAULT '',
			hours           TEXT          NOT NULL DEFAULT '',
			price_range     TEXT          NOT NULL DEFAULT '',
			latitude        NUMERIC(10,7) NULL,
			longitude       NUMERIC(10,7) NULL,
			google_maps_url TEXT          UNIQUE NOT NULL,
			search_query    TEXT          NOT NULL DEFAULT '',
			scraped_at      TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_businesses_name     ON businesses(name);
		CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses(category);
		CREATE INDEX IF NOT EXISTS idx_businesses_rating   ON businesses(rating);
		CREATE INDEX IF NOT EXISTS idx_businesses_query    ON businesses(search_query);
	`)
	return err
}

// Write batch-upserts all businesses that carry a Google Maps URL.
func (pw *PostgresWriter) Write(businesses []*models.Business) error {
	if len(businesses) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(businesses); i += batchSize {
		end := i + batchSize
		if end > len(businesses) {
			end = len(businesses)
		}
		if err := pw.insertBatch(businesses[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Business) error {
	const cols = 14
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	n := 0
	for _, b := range batch {
		if b.GoogleMapsURL == "" {
			continue
		}

		base := n * cols
		n++
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		var lat, lng sql.NullFloat64
		if b.Coordinates != nil {
			lat = sql.NullFloat64{Float64: b.Coordinates.Latitude, Valid: true}
			lng = sql.NullFloat64{Float64: b.Coordinates.Longitude, Valid: true}
		}

		valueArgs = append(valueArgs,
			b.Name, b.Address, b.Phone, b.Website, b.Rating, b.ReviewsCount,
			b.Category, b.Hours, b.PriceRange, lat, lng,
			b.GoogleMapsURL, b.SearchQuery, b.ScrapedAt)
	}

	if len(valueStrings) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO businesses (name, address, phone, website, rating, reviews_count,
			category, hours, price_range, latitude, longitude,
			google_maps_url, search_query, scraped_at)
		VALUES %s
		ON CONFLICT (google_maps_url) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			website = EXCLUDED.website,
			rating = EXCLUDED.rating,
			reviews_count = EXCLUDED.reviews_count,
			category = EXCLUDED.category,
			hours = EXCLUDED.hours,
			price_range = EXCLUDED.price_range,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			search_query = EXCLUDED.search_query,
			scraped_at = EXCLUDED.scraped_at
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
