package types

import (
	"testing"
	"time"
)

func TestValidWindow(t *testing.T) {
	tests := []struct {
		window string
		want   bool
	}{
		{WindowAllTime, true},
		{WindowMonthly, true},
		{WindowWeekly, true},
		{Window28Day, true},
		{"daily", false},
		{"", false},
		{"ALL_TIME", false},
	}

	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			if got := ValidWindow(tt.window); got != tt.want {
				t.Errorf("ValidWindow(%q) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"mid month", time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC), "2025-07"},
		{"first instant", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01"},
		{"normalized to UTC", time.Date(2025, 3, 1, 0, 30, 0, 0, time.FixedZone("UTC+2", 2*3600)), "2025-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthKey(tt.time); got != tt.want {
				t.Errorf("MonthKey(%v) = %q, want %q", tt.time, got, tt.want)
			}
		})
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"ordinary week", time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC), "2025-W29"},
		{"single digit week padded", time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), "2025-W02"},
		// Jan 1 2027 falls in the last ISO week of 2026.
		{"year boundary uses ISO year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekKey(tt.time); got != tt.want {
				t.Errorf("WeekKey(%v) = %q, want %q", tt.time, got, tt.want)
			}
		})
	}
}

func TestWeekKeySameWeekStable(t *testing.T) {
	monday := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 7, 20, 23, 59, 59, 0, time.UTC)
	if WeekKey(monday) != WeekKey(sunday) {
		t.Errorf("WeekKey differs within one ISO week: %q vs %q", WeekKey(monday), WeekKey(sunday))
	}
}

func TestGetBoostPackages(t *testing.T) {
	packages := GetBoostPackages()

	wantPoints := map[string]int64{"starter": 100, "growth": 500, "max": 2000}
	if len(packages) != len(wantPoints) {
		t.Fatalf("GetBoostPackages() returned %d packages, want %d", len(packages), len(wantPoints))
	}

	for key, points := range wantPoints {
		pkg, ok := packages[key]
		if !ok {
			t.Errorf("package %q missing", key)
			continue
		}
		if pkg.Key != key {
			t.Errorf("package %q has Key %q", key, pkg.Key)
		}
		if pkg.Points != points {
			t.Errorf("package %q has %d points, want %d", key, pkg.Points, points)
		}
		if pkg.PriceKey == "" {
			t.Errorf("package %q has no price key", key)
		}
	}
}
