package services

import (
	"testing"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

func TestGenerateReport(t *testing.T) {
	businesses := []*models.Business{
		{Name: "A", Rating: 4.0, ReviewsCount: 10, Website: "https://a.com", Category: "Cafe"},
		{Name: "B", Rating: 5.0, ReviewsCount: 3, Phone: "+1 555", Category: "Cafe"},
		{Name: "C", Rating: 5.0, ReviewsCount: 40, Category: "Bakery"},
		{Name: "D", Category: "Bakery"},
	}
	summary := models.RunSummary{Query: "cafes", Succeeded: 4, Failed: 1}

	report := NewReportService(utils.NewLogger(false)).Generate(businesses, summary)

	if report.WithWebsite != 1 {
		t.Errorf("WithWebsite = %d, want 1", report.WithWebsite)
	}
	if report.WithPhone != 1 {
		t.Errorf("WithPhone = %d, want 1", report.WithPhone)
	}
	if report.Rated != 3 {
		t.Errorf("Rated = %d, want 3 (unrated records excluded)", report.Rated)
	}
	if want := (4.0 + 5.0 + 5.0) / 3; report.AverageRating != want {
		t.Errorf("AverageRating = %v, want %v", report.AverageRating, want)
	}

	// Ties on rating break by review count.
	if len(report.TopRated) != 3 {
		t.Fatalf("TopRated has %d entries, want 3", len(report.TopRated))
	}
	if report.TopRated[0].Name != "C" || report.TopRated[1].Name != "B" {
		t.Errorf("TopRated order = [%s %s %s], want C first then B",
			report.TopRated[0].Name, report.TopRated[1].Name, report.TopRated[2].Name)
	}

	if report.ByCategory["Cafe"] != 2 || report.ByCategory["Bakery"] != 2 {
		t.Errorf("ByCategory = %v", report.ByCategory)
	}
	if rate := report.Summary.SuccessRate(); rate != 80.0 {
		t.Errorf("SuccessRate = %v, want 80", rate)
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	report := NewReportService(utils.NewLogger(false)).
		Generate(nil, models.RunSummary{Query: "nothing"})

	if report.Rated != 0 || report.AverageRating != 0 {
		t.Errorf("empty run report = %+v, want zeroed aggregates", report)
	}
	if len(report.TopRated) != 0 {
		t.Errorf("TopRated = %v, want empty", report.TopRated)
	}
}
