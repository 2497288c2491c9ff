package main

import (
	"strings"
	"testing"
)

func TestParseGuide(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
		wantErr   bool
	}{
		{
			name:      "plain title and body",
			input:     "48 Hours in Aruba\n\n## Getting There\nFly into Oranjestad.",
			wantTitle: "48 Hours in Aruba",
			wantBody:  "## Getting There\nFly into Oranjestad.",
		},
		{
			name:      "markdown heading stripped from title",
			input:     "# The Best Day Trips from Lisbon\nStart early.",
			wantTitle: "The Best Day Trips from Lisbon",
			wantBody:  "Start early.",
		},
		{
			name:      "bold title stripped",
			input:     "**Eating Your Way Through Rome**\nBegin with breakfast.",
			wantTitle: "Eating Your Way Through Rome",
			wantBody:  "Begin with breakfast.",
		},
		{
			name:      "surrounding whitespace trimmed",
			input:     "\n\n  A Weekend in Kyoto  \n\nTemples first.\n\n",
			wantTitle: "A Weekend in Kyoto",
			wantBody:  "Temples first.",
		},
		{
			name:    "no body",
			input:   "Just a title",
			wantErr: true,
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: true,
		},
		{
			name:    "title line only markup",
			input:   "###\nsome body",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGuide(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseGuide(%q) returned no error, want one", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGuide(%q) returned %v", tt.input, err)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", got.Body, tt.wantBody)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	dest := destination{
		Name:    "Aruba",
		Slug:    "aruba",
		Country: "Caribbean",
		Summary: "A small Dutch island off Venezuela.",
	}

	prompt := buildPrompt(dest, "things-to-do")

	for _, fragment := range []string{"things to do", "Aruba", "Caribbean", "A small Dutch island"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt is missing %q:\n%s", fragment, prompt)
		}
	}
	if strings.Contains(prompt, "things-to-do") {
		t.Error("prompt should present the category with spaces, not the raw slug")
	}
}
