package models

import (
	"testing"
	"time"
)

func TestToMap(t *testing.T) {
	b := &Business{
		Name:          "Blue Bottle Coffee",
		Rating:        4.4,
		ReviewsCount:  1812,
		Coordinates:   &Coordinates{Latitude: 37.7764, Longitude: -122.4233},
		GoogleMapsURL: "https://www.google.com/maps/place/blue-bottle/",
		ScrapedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	m := b.ToMap()
	if m["name"] != "Blue Bottle Coffee" {
		t.Errorf("name = %v", m["name"])
	}
	if m["latitude"] != 37.7764 || m["longitude"] != -122.4233 {
		t.Errorf("coordinates = %v/%v", m["latitude"], m["longitude"])
	}
	if m["scraped_at"] != "2026-08-30T12:00:00Z" {
		t.Errorf("scraped_at = %v", m["scraped_at"])
	}

	// Every column the writers expect must be present.
	for _, col := range Columns {
		if _, ok := m[col]; !ok {
			t.Errorf("ToMap missing column %q", col)
		}
	}
}

func TestToMapWithoutCoordinates(t *testing.T) {
	m := (&Business{Name: "X"}).ToMap()
	if m["latitude"] != nil || m["longitude"] != nil {
		t.Errorf("coordinates = %v/%v, want nils", m["latitude"], m["longitude"])
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		summary RunSummary
		want    float64
	}{
		{RunSummary{Succeeded: 3, Failed: 0}, 100},
		{RunSummary{Succeeded: 1, Failed: 3}, 25},
		{RunSummary{}, 0},
	}
	for _, tt := range tests {
		if got := tt.summary.SuccessRate(); got != tt.want {
			t.Errorf("SuccessRate(%+v) = %v, want %v", tt.summary, got, tt.want)
		}
	}
}
