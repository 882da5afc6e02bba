package gmaps

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"gmaps-scraper/browser"
	"gmaps-scraper/config"
	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

const maxHoursEntries = 7

var (
	// ratingRegexp captures the first decimal or integer numeral.
	ratingRegexp = regexp.MustCompile(`(\d+\.?\d*)`)
	// reviewsRegexp captures a digit run, optionally wrapped in parentheses.
	reviewsRegexp = regexp.MustCompile(`\(?(\d+)`)
	// phoneCharsRegexp matches everything a phone number may not contain.
	phoneCharsRegexp = regexp.MustCompile(`[^0-9\s\-\(\)\+]`)

	// coordinatePatterns are tried in this exact order against the
	// detail-page URL; the first match wins and later patterns are not
	// consulted even when they would also match.
	coordinatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*),`),
		regexp.MustCompile(`!3d(-?\d+\.?\d*)!4d(-?\d+\.?\d*)`),
		regexp.MustCompile(`/(-?\d+\.?\d*),(-?\d+\.?\d*)/`),
	}
)

// Extractor translates one rendered place page into a Business record.
// Every field is resolved through an ordered selector cascade; fields
// whose cascades all miss are simply left unset.
type Extractor struct {
	session browser.Session
	logger  *utils.Logger
}

// NewExtractor creates an Extractor reading from the given session.
func NewExtractor(session browser.Session, logger *utils.Logger) *Extractor {
	return &Extractor{session: session, logger: logger}
}

// Extract reads every business field from the current page. It always
// returns a record; the caller decides whether a record without a name
// is usable. Individual selector failures never propagate.
func (e *Extractor) Extract(searchQuery string) *models.Business {
	b := &models.Business{
		SearchQuery: searchQuery,
		ScrapedAt:   time.Now(),
	}

	b.Name = e.textBySelectors(config.NameSelectors, "name")
	b.Category = e.textBySelectors(config.CategorySelectors, "category")
	b.Address = e.textBySelectors(config.AddressSelectors, "address")
	b.PriceRange = e.textBySelectors(config.PriceRangeSelectors, "price range")

	if phone := e.textBySelectors(config.PhoneSelectors, "phone"); phone != "" {
		b.Phone = CleanPhone(phone)
	}

	if website := e.attributeBySelectors(config.WebsiteSelectors, "href"); website != "" {
		b.Website = website
		e.logger.Debug("[extractor] found website: %s", website)
	}

	if text := e.textBySelectors(config.RatingSelectors, "rating"); text != "" {
		if rating, ok := ParseRating(text); ok {
			b.Rating = rating
		}
	}

	if text := e.textBySelectors(config.ReviewCountSelectors, "reviews"); text != "" {
		if count, ok := ParseReviewCount(text); ok {
			b.ReviewsCount = count
		}
	}

	b.Hours = e.extractHours()
	b.Coordinates = e.extractCoordinates()

	if b.Name != "" {
		e.logger.Debug("[extractor] extracted data for: %s", b.Name)
	}
	return b
}

// textBySelectors returns the first non-empty text any selector yields.
// Selector errors count as "did not match" and the cascade continues.
func (e *Extractor) textBySelectors(selectors []string, fieldName string) string {
	for _, sel := range selectors {
		text, err := e.session.Text(sel)
		if err != nil {
			e.logger.Debug("[extractor] selector %q for %s: %v", sel, fieldName, err)
			continue
		}
		if text != "" {
			return text
		}
	}
	e.logger.Debug("[extractor] could not find %s", fieldName)
	return ""
}

func (e *Extractor) attributeBySelectors(selectors []string, attr string) string {
	for _, sel := range selectors {
		value, err := e.session.Attribute(sel, attr)
		if err != nil {
			continue
		}
		if value != "" {
			return value
		}
	}
	return ""
}

// extractHours collects up to seven per-day lines from the first hours
// container cascade that matches anything, joined with "; ".
func (e *Extractor) extractHours() string {
	for _, sel := range config.HoursSelectors {
		lines, err := e.session.TextAll(sel, maxHoursEntries)
		if err != nil || len(lines) == 0 {
			continue
		}
		return strings.Join(lines, "; ")
	}
	return ""
}

// extractCoordinates scans the current URL for an embedded lat/lng pair.
func (e *Extractor) extractCoordinates() *models.Coordinates {
	url, err := e.session.Location()
	if err != nil {
		e.logger.Debug("[extractor] could not read URL for coordinates: %v", err)
		return nil
	}
	return ParseCoordinates(url)
}

// ParseRating extracts the first numeral from a rating string like
// "4.5 (via App)". The second return is false when no numeral exists.
func ParseRating(text string) (float64, bool) {
	match := ratingRegexp.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	rating, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

// ParseReviewCount extracts a review count from strings like "(1,234)".
func ParseReviewCount(text string) (int, bool) {
	cleaned := strings.ReplaceAll(text, ",", "")
	match := reviewsRegexp.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, false
	}
	count, err := strconv.Atoi(match[1])
	if err != nil || count < 0 {
		return 0, false
	}
	return count, true
}

// CleanPhone strips label prefixes and keeps only digits, spaces,
// hyphens, parentheses and plus signs.
func CleanPhone(text string) string {
	phone := strings.ReplaceAll(text, "Call", "")
	phone = strings.ReplaceAll(phone, "Phone:", "")
	phone = phoneCharsRegexp.ReplaceAllString(phone, "")
	return strings.TrimSpace(phone)
}

// ParseCoordinates matches the URL against the coordinate patterns in
// priority order and returns the first hit, or nil.
func ParseCoordinates(url string) *models.Coordinates {
	for _, pattern := range coordinatePatterns {
		match := pattern.FindStringSubmatch(url)
		if match == nil {
			continue
		}
		lat, errLat := strconv.ParseFloat(match[1], 64)
		lng, errLng := strconv.ParseFloat(match[2], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		return &models.Coordinates{Latitude: lat, Longitude: lng}
	}
	return nil
}
