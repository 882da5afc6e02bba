package services

import (
	"fmt"
	"sort"
	"strings"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

// Report holds the computed aggregates over a finished scrape run.
type Report struct {
	Summary       models.RunSummary
	WithWebsite   int
	WithPhone     int
	Rated         int
	AverageRating float64
	TopRated      []*models.Business
	ByCategory    map[string]int
}

// ReportService turns a scraped record set into a run report.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes the aggregates for one run.
func (s *ReportService) Generate(businesses []*models.Business, summary models.RunSummary) *Report {
	report := &Report{
		Summary:    summary,
		ByCategory: make(map[string]int),
	}

	var ratingTotal float64
	var rated []*models.Business

	for _, b := range businesses {
		if b.Website != "" {
			report.WithWebsite++
		}
		if b.Phone != "" {
			report.WithPhone++
		}
		if b.Rating > 0 {
			rated = append(rated, b)
			ratingTotal += b.Rating
		}
		if b.Category != "" {
			report.ByCategory[b.Category]++
		}
	}

	report.Rated = len(rated)
	if len(rated) > 0 {
		report.AverageRating = ratingTotal / float64(len(rated))
	}

	// Top 5 by rating, review count as tiebreaker.
	sort.Slice(rated, func(i, j int) bool {
		if rated[i].Rating != rated[j].Rating {
			return rated[i].Rating > rated[j].Rating
		}
		return rated[i].ReviewsCount > rated[j].ReviewsCount
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	report.TopRated = rated

	return report
}

// Print writes a human-readable report to stdout.
func (s *ReportService) Print(r *Report) {
	sep := strings.Repeat("=", 54)
	thin := strings.Repeat("-", 54)

	fmt.Printf("\n%s\n", sep)
	fmt.Printf("  SCRAPE REPORT: %q\n", r.Summary.Query)
	fmt.Printf("%s\n\n", sep)

	fmt.Printf("  Overview\n  %s\n", thin)
	fmt.Printf("  Scraped   : %d\n", r.Summary.Succeeded)
	fmt.Printf("  Failed    : %d\n", r.Summary.Failed)
	fmt.Printf("  Success   : %.1f%%\n", r.Summary.SuccessRate())
	fmt.Printf("  Websites  : %d\n", r.WithWebsite)
	fmt.Printf("  Phones    : %d\n", r.WithPhone)
	fmt.Println()

	fmt.Printf("  Ratings\n  %s\n", thin)
	if r.Rated == 0 {
		fmt.Printf("  No rated businesses found\n")
	} else {
		fmt.Printf("  Rated businesses : %d\n", r.Rated)
		fmt.Printf("  Average rating   : %.2f\n", r.AverageRating)
		for i, b := range r.TopRated {
			fmt.Printf("  %d. %-40s %.1f (%d reviews)\n",
				i+1, truncate(b.Name, 38), b.Rating, b.ReviewsCount)
		}
	}
	fmt.Println()

	if len(r.ByCategory) > 0 {
		fmt.Printf("  Categories\n  %s\n", thin)
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range r.ByCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			return cats[i].count > cats[j].count
		})
		for _, c := range cats {
			fmt.Printf("  %-30s %d\n", truncate(c.cat, 28), c.count)
		}
	}

	fmt.Printf("\n%s\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
