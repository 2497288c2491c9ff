package utils

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Aruba", "aruba"},
		{"spaces become hyphens", "Palm Beach", "palm-beach"},
		{"accents stripped", "São José", "sao-jose"},
		{"umlauts stripped", "Düsseldorf", "dusseldorf"},
		{"already canonical", "punta-cana", "punta-cana"},
		{"punctuation collapsed", "St. John's / Antigua", "st-john-s-antigua"},
		{"repeated separators", "los   angeles--ca", "los-angeles-ca"},
		{"leading separators dropped", "  ...Miami", "miami"},
		{"trailing separators dropped", "Miami!!!", "miami"},
		{"digits preserved", "Area 51", "area-51"},
		{"empty string", "", ""},
		{"only separators", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSlug(tt.input); got != tt.want {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSlugIdempotent(t *testing.T) {
	inputs := []string{"São José", "Palm Beach", "st-john-s-antigua", "Düsseldorf 2024"}
	for _, input := range inputs {
		once := NormalizeSlug(input)
		twice := NormalizeSlug(once)
		if once != twice {
			t.Errorf("NormalizeSlug is not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
