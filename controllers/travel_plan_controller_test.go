package controllers

import "testing"

func TestPlanSlugBase(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"10 Days in Portugal", "10-days-in-portugal"},
		{"São Paulo Weekend", "sao-paulo-weekend"},
		{"", "travel-plan"},
		{"!!!", "travel-plan"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := planSlugBase(tt.title); got != tt.want {
				t.Errorf("planSlugBase(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestPlanSlugAttempt(t *testing.T) {
	tests := []struct {
		attempt int
		want    string
	}{
		{1, "amalfi-coast"},
		{2, "amalfi-coast-2"},
		{3, "amalfi-coast-3"},
		{10, "amalfi-coast-10"},
	}

	for _, tt := range tests {
		if got := planSlugAttempt("amalfi-coast", tt.attempt); got != tt.want {
			t.Errorf("planSlugAttempt(amalfi-coast, %d) = %q, want %q", tt.attempt, got, tt.want)
		}
	}
}
