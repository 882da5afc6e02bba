package main

import "testing"

func TestSplitQueries(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"cafes in Berlin", []string{"cafes in Berlin"}},
		{"cafes, bars , bakeries", []string{"cafes", "bars", "bakeries"}},
		{" , ,", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitQueries(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitQueries(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitQueries(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}
