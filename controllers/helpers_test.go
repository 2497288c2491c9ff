package controllers

import (
	"strings"
	"testing"

	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/types"
)

func TestLeaderboardColumn(t *testing.T) {
	tests := []struct {
		window string
		want   string
	}{
		{types.WindowAllTime, "score_all_time"},
		{types.WindowMonthly, "score_month"},
		{types.WindowWeekly, "score_week"},
		{types.Window28Day, "score_28d"},
		{"", "score_all_time"},
		{"garbage", "score_all_time"},
	}

	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			if got := leaderboardColumn(tt.window); got != tt.want {
				t.Errorf("leaderboardColumn(%q) = %q, want %q", tt.window, got, tt.want)
			}
		})
	}
}

func TestPriceKeysForBillingCycle(t *testing.T) {
	if got := premiumPriceKey(models.PlanTypeYearly); got != config.PricePremiumYearly {
		t.Errorf("premiumPriceKey(yearly) = %q", got)
	}
	if got := premiumPriceKey(models.PlanTypeMonthly); got != config.PricePremiumMonthly {
		t.Errorf("premiumPriceKey(monthly) = %q", got)
	}
	if got := promotionPriceKey(models.PlanTypeYearly); got != config.PricePromotionYearly {
		t.Errorf("promotionPriceKey(yearly) = %q", got)
	}
	if got := promotionPriceKey(models.PlanTypeMonthly); got != config.PricePromotionMonthly {
		t.Errorf("promotionPriceKey(monthly) = %q", got)
	}
}

func TestIsValidImageType(t *testing.T) {
	valid := []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	for _, ct := range valid {
		if !isValidImageType(ct) {
			t.Errorf("isValidImageType(%q) = false", ct)
		}
	}

	invalid := []string{"image/gif", "image/svg+xml", "application/pdf", "text/html", ""}
	for _, ct := range invalid {
		if isValidImageType(ct) {
			t.Errorf("isValidImageType(%q) = true", ct)
		}
	}
}

func TestVerifyFileOwnership(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		userID string
		want   bool
	}{
		{"own file", "uploads/plan_cover/user-1/1724800000_abc.jpg", "user-1", true},
		{"someone else's file", "uploads/plan_cover/user-2/1724800000_abc.jpg", "user-1", false},
		{"key too short", "uploads/plan_cover", "user-1", false},
		{"empty key", "", "user-1", false},
		{"user id is a prefix of another", "uploads/plan_cover/user-10/x.jpg", "user-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verifyFileOwnership(tt.key, tt.userID); got != tt.want {
				t.Errorf("verifyFileOwnership(%q, %q) = %v, want %v", tt.key, tt.userID, got, tt.want)
			}
		})
	}
}

func TestGenerateFileKey(t *testing.T) {
	uc := &UploadController{}
	key := uc.generateFileKey("user-1", "beach.JPG", "restaurant_photo")

	if !strings.HasPrefix(key, "uploads/restaurant_photo/user-1/") {
		t.Errorf("key %q missing purpose/user prefix", key)
	}
	if !strings.HasSuffix(key, ".JPG") {
		t.Errorf("key %q should keep the original extension", key)
	}
	if !verifyFileOwnership(key, "user-1") {
		t.Errorf("generated key %q fails its own ownership check", key)
	}
	if verifyFileOwnership(key, "user-2") {
		t.Errorf("generated key %q passes ownership for the wrong user", key)
	}
}

func TestTourSearchCacheKey(t *testing.T) {
	base := TourSearchQuery{Sort: "PRICE", Page: 1, PageSize: 20}

	same := tourSearchCacheKey("d777", base)
	if same != tourSearchCacheKey("d777", base) {
		t.Error("cache key is not deterministic")
	}
	if !strings.HasPrefix(same, tourCacheKeyPrefix) {
		t.Errorf("cache key %q missing prefix %q", same, tourCacheKeyPrefix)
	}

	variants := []TourSearchQuery{
		{Sort: "RATING", Page: 1, PageSize: 20},
		{Sort: "PRICE", Page: 2, PageSize: 20},
		{Sort: "PRICE", Page: 1, PageSize: 50},
	}
	for _, v := range variants {
		if tourSearchCacheKey("d777", v) == same {
			t.Errorf("query %+v collides with base cache key", v)
		}
	}
	if tourSearchCacheKey("d888", base) == same {
		t.Error("different destinations share a cache key")
	}
}
