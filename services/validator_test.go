package services

import (
	"testing"

	"gmaps-scraper/utils"
)

func TestValidateWebsite(t *testing.T) {
	validator := NewWebsiteValidator(utils.NewLogger(false))

	tests := []struct {
		name     string
		url      string
		business string
		want     string
	}{
		{
			name:     "matching domain kept",
			url:      "https://bluebottlecoffee.com",
			business: "Blue Bottle Coffee",
			want:     "https://bluebottlecoffee.com",
		},
		{
			name:     "scheme added when missing",
			url:      "bluebottlecoffee.com",
			business: "Blue Bottle Coffee",
			want:     "https://bluebottlecoffee.com",
		},
		{
			name:     "google redirect unwrapped",
			url:      "https://www.google.com/url?q=https://bluebottlecoffee.com&sa=X",
			business: "Blue Bottle Coffee",
			want:     "https://bluebottlecoffee.com",
		},
		{
			name:     "social profile rejected",
			url:      "https://www.facebook.com/bluebottlecoffee",
			business: "Blue Bottle Coffee",
			want:     "",
		},
		{
			name:     "delivery aggregator rejected",
			url:      "https://www.doordash.com/store/blue-bottle",
			business: "Blue Bottle Coffee",
			want:     "",
		},
		{
			name:     "unrelated domain rejected",
			url:      "https://totallydifferent.com",
			business: "Blue Bottle Coffee",
			want:     "",
		},
		{
			name:     "junk TLD rejected",
			url:      "https://bluebottlecoffee.xyz",
			business: "Blue Bottle Coffee",
			want:     "",
		},
		{
			// No 4+ letter token to compare against, so similarity passes.
			name:     "short name passes similarity",
			url:      "https://joes.com",
			business: "Joe's",
			want:     "https://joes.com",
		},
		{
			name:     "empty input rejected",
			url:      "",
			business: "Blue Bottle Coffee",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.Validate(tt.url, tt.business); got != tt.want {
				t.Errorf("Validate(%q, %q) = %q, want %q", tt.url, tt.business, got, tt.want)
			}
		})
	}
}

func TestValidateWithMXCheck(t *testing.T) {
	var checked string
	noMail := func(domain string) bool {
		checked = domain
		return false
	}
	validator := NewWebsiteValidator(utils.NewLogger(false)).WithMXCheck(noMail)

	got := validator.Validate("https://bluebottlecoffee.com", "Blue Bottle Coffee")
	if got != "" {
		t.Errorf("Validate = %q, want rejection when MX lookup fails", got)
	}
	if checked != "bluebottlecoffee.com" {
		t.Errorf("MX checker saw %q, want the bare host", checked)
	}
}

func TestUnwrapGoogleRedirect(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.google.com/url?q=https://example.com&sa=X", "https://example.com"},
		{"https://example.com", "https://example.com"},
		{"https://www.google.com/url?sa=X", "https://www.google.com/url?sa=X"},
	}
	for _, tt := range tests {
		if got := unwrapGoogleRedirect(tt.input); got != tt.want {
			t.Errorf("unwrapGoogleRedirect(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
