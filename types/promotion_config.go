package types

import (
	"fmt"
	"time"
)

const (
	MIN_POINTS_SPEND        = 10
	DEFAULT_DAILY_ALLOWANCE = 100
	ALLOWANCE_RESET_PERIOD  = 24 * time.Hour
	WINDOW_28D              = 28 * 24 * time.Hour
)

// Leaderboard window identifiers, matching the ListingScore columns.
const (
	WindowAllTime = "all_time"
	WindowMonthly = "monthly"
	WindowWeekly  = "weekly"
	Window28Day   = "28_day"
)

func ValidWindow(w string) bool {
	switch w {
	case WindowAllTime, WindowMonthly, WindowWeekly, Window28Day:
		return true
	}
	return false
}

// BoostPackage is a one-time point purchase applied straight to a listing's
// score windows. It never touches the buyer's daily allowance.
type BoostPackage struct {
	Key      string
	Points   int64
	PriceKey string // key into the configured Stripe price table
}

func GetBoostPackages() map[string]BoostPackage {
	return map[string]BoostPackage{
		"starter": {Key: "starter", Points: 100, PriceKey: "boost_starter"},
		"growth":  {Key: "growth", Points: 500, PriceKey: "boost_growth"},
		"max":     {Key: "max", Points: 2000, PriceKey: "boost_max"},
	}
}

// MonthKey returns the calendar key the monthly score column belongs to.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// WeekKey returns the ISO-week key for the weekly score column.
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
