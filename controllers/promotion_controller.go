package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v79"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/types"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errInsufficientPoints = errors.New("insufficient points")

const (
	leaderboardCacheKeyPrefix = "promotion:leaderboard:"
	leaderboardCacheTTL       = time.Minute
	leaderboardCacheTTLJitter = 30 * time.Second
)

type PromotionController struct {
	DB     *gorm.DB
	Stripe *config.StripeClient
	Cfg    *config.Config
	Cache  *redis.Client
	Logger *slog.Logger
}

func NewPromotionController(db *gorm.DB, stripeClient *config.StripeClient, cfg *config.Config, cache *redis.Client, logger *slog.Logger) *PromotionController {
	return &PromotionController{DB: db, Stripe: stripeClient, Cfg: cfg, Cache: cache, Logger: logger}
}

// loadAccount fetches (or creates) the caller's promotion account and applies
// the rolling 24h allowance reset.
func loadAccount(tx *gorm.DB, userID string, now time.Time) (*models.PromotionAccount, error) {
	var account models.PromotionAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&account).Error
	if err == gorm.ErrRecordNotFound {
		account = models.PromotionAccount{
			UserID:               userID,
			DailyPointsAllowance: types.DEFAULT_DAILY_ALLOWANCE,
			DailyPointsAvailable: types.DEFAULT_DAILY_ALLOWANCE,
			AllowanceResetAt:     now,
		}
		if err := tx.Create(&account).Error; err != nil {
			return nil, err
		}
		return &account, nil
	}
	if err != nil {
		return nil, err
	}

	if now.Sub(account.AllowanceResetAt) >= types.ALLOWANCE_RESET_PERIOD {
		account.DailyPointsAvailable = account.DailyPointsAllowance
		account.AllowanceResetAt = now
		if err := tx.Model(&account).Updates(map[string]interface{}{
			"daily_points_available": account.DailyPointsAvailable,
			"allowance_reset_at":     account.AllowanceResetAt,
		}).Error; err != nil {
			return nil, err
		}
	}

	return &account, nil
}

// applyListingPoints rolls stale score windows and credits points to all four
// aggregates for one listing. Also used by the webhook when a boost purchase
// completes.
func applyListingPoints(tx *gorm.DB, listingType, listingID string, points int64, now time.Time) error {
	var score models.ListingScore
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("listing_type = ? AND listing_id = ?", listingType, listingID).
		First(&score).Error
	if err == gorm.ErrRecordNotFound {
		score = models.ListingScore{
			ListingType:    listingType,
			ListingID:      listingID,
			MonthKey:       types.MonthKey(now),
			WeekKey:        types.WeekKey(now),
			Window28DStart: now,
		}
		if err := tx.Create(&score).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if key := types.MonthKey(now); score.MonthKey != key {
		score.ScoreMonth = 0
		score.MonthKey = key
	}
	if key := types.WeekKey(now); score.WeekKey != key {
		score.ScoreWeek = 0
		score.WeekKey = key
	}
	if now.Sub(score.Window28DStart) >= types.WINDOW_28D {
		score.Score28Day = 0
		score.Window28DStart = now
	}

	score.ScoreAllTime += points
	score.ScoreMonth += points
	score.ScoreWeek += points
	score.Score28Day += points

	return tx.Model(&models.ListingScore{}).Where("id = ?", score.ID).Updates(map[string]interface{}{
		"score_all_time":   score.ScoreAllTime,
		"score_month":      score.ScoreMonth,
		"score_week":       score.ScoreWeek,
		"score_28d":        score.Score28Day,
		"month_key":        score.MonthKey,
		"week_key":         score.WeekKey,
		"window_28d_start": score.Window28DStart,
	}).Error
}

type SpendPointsRequest struct {
	ListingType string `json:"listingType" binding:"required,oneof=tour restaurant"`
	ListingID   string `json:"listingId" binding:"required"`
	Points      int64  `json:"points" binding:"required"`
}

// SpendPoints godoc
// @Summary Spend daily-allowance points to promote a listing
// @Tags promotion
// @Accept json
// @Produce json
// @Router /promotion/spend [post]
func (pc *PromotionController) SpendPoints(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SpendPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Points < types.MIN_POINTS_SPEND {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Minimum spend is %d points", types.MIN_POINTS_SPEND))
		return
	}

	now := time.Now()
	var account *models.PromotionAccount

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = loadAccount(tx, user.UserID, now)
		if err != nil {
			return err
		}

		if req.Points > account.DailyPointsAvailable {
			return errInsufficientPoints
		}

		account.DailyPointsAvailable -= req.Points
		account.LifetimePointsSpent += req.Points
		if err := tx.Model(account).Updates(map[string]interface{}{
			"daily_points_available": account.DailyPointsAvailable,
			"lifetime_points_spent":  account.LifetimePointsSpent,
		}).Error; err != nil {
			return err
		}

		return applyListingPoints(tx, req.ListingType, req.ListingID, req.Points, now)
	})
	if err != nil {
		spendFailureResponse(c, err)
		return
	}

	respondOK(c, gin.H{
		"pointsSpent":          req.Points,
		"dailyPointsAvailable": account.DailyPointsAvailable,
		"allowanceResetAt":     account.AllowanceResetAt,
	})
}

// spendFailureResponse maps a spend transaction error onto the API response.
// Running out of allowance is a client error, everything else is a 500.
func spendFailureResponse(c *gin.Context, err error) {
	if errors.Is(err, errInsufficientPoints) {
		respondError(c, http.StatusBadRequest, "Insufficient points: not enough daily allowance remaining")
		return
	}
	respondError(c, http.StatusInternalServerError, err.Error())
}

// GetAccount returns the caller's allowance state, applying the lazy reset.
func (pc *PromotionController) GetAccount(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var account *models.PromotionAccount
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = loadAccount(tx, user.UserID, time.Now())
		return err
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, account)
}

type InstantBoostRequest struct {
	ListingType string `json:"listingType" binding:"required,oneof=tour restaurant"`
	ListingID   string `json:"listingId" binding:"required"`
	Package     string `json:"package" binding:"required"`
}

// InstantBoost godoc
// @Summary Buy points that credit a listing directly, bypassing the daily allowance
// @Tags promotion
// @Accept json
// @Produce json
// @Router /promotion/boost [post]
func (pc *PromotionController) InstantBoost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req InstantBoostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	pkg, ok := types.GetBoostPackages()[req.Package]
	if !ok {
		respondError(c, http.StatusBadRequest, "Unknown boost package")
		return
	}

	customerID, err := pc.Stripe.FindOrCreateCustomer(pc.DB, user.UserID, user.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	session, err := pc.Stripe.NewCheckoutSession(config.CheckoutParams{
		CustomerID: customerID,
		Mode:       stripe.CheckoutSessionModePayment,
		LineItems: []config.CheckoutLineItem{
			{PriceID: pc.Cfg.PriceID(pkg.PriceKey), Quantity: 1},
		},
		Metadata: map[string]string{
			"checkout_type": "instant_boost",
			"user_id":       user.UserID,
			"listing_type":  req.ListingType,
			"listing_id":    req.ListingID,
			"boost_package": pkg.Key,
			"boost_points":  fmt.Sprintf("%d", pkg.Points),
		},
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, CheckoutResponse{CheckoutURL: session.URL, SessionID: session.ID})
}

type LeaderboardQuery struct {
	Window      string `form:"window" binding:"omitempty,oneof=all_time monthly weekly 28_day"`
	ListingType string `form:"listingType" binding:"omitempty,oneof=tour restaurant"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"pageSize,default=10" binding:"min=1,max=50"`
}

// GetLeaderboard godoc
// @Summary Rank listings by promotion score over a rolling window
// @Tags promotion
// @Produce json
// @Router /promotion/leaderboard [get]
func (pc *PromotionController) GetLeaderboard(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if query.Window == "" {
		query.Window = types.WindowAllTime
	}

	// The first page is by far the hottest read, so it gets a short cache.
	cacheKey := fmt.Sprintf("%s%s:%s:%d", leaderboardCacheKeyPrefix, query.Window, query.ListingType, query.PageSize)
	if query.Page == 1 {
		if cached, err := pc.Cache.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			var page leaderboardPage
			if err := json.Unmarshal(cached, &page); err == nil {
				respondPage(c, page.Scores, 1, query.PageSize, page.Total)
				return
			}
		} else if err != redis.Nil {
			pc.Logger.Warn("leaderboard cache read failed", "key", cacheKey, "error", err)
		}
	}

	scoreColumn := leaderboardColumn(query.Window)

	db := pc.DB.Model(&models.ListingScore{})
	if query.ListingType != "" {
		db = db.Where("listing_type = ?", query.ListingType)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Equal scores rank the older listing first, then id, so ordering is
	// deterministic rather than incidental row order.
	var scores []models.ListingScore
	offset := (query.Page - 1) * query.PageSize
	if err := db.Order(scoreColumn + " DESC, created_at ASC, id ASC").
		Offset(offset).Limit(query.PageSize).Find(&scores).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if query.Page == 1 {
		if payload, err := json.Marshal(leaderboardPage{Scores: scores, Total: count}); err == nil {
			ttl := leaderboardCacheTTL + time.Duration(rand.Int64N(int64(leaderboardCacheTTLJitter)))
			if err := pc.Cache.Set(c.Request.Context(), cacheKey, payload, ttl).Err(); err != nil {
				pc.Logger.Warn("leaderboard cache write failed", "key", cacheKey, "error", err)
			}
		}
	}

	respondPage(c, scores, query.Page, query.PageSize, count)
}

type leaderboardPage struct {
	Scores []models.ListingScore `json:"scores"`
	Total  int64                 `json:"total"`
}

func leaderboardColumn(window string) string {
	switch window {
	case types.WindowMonthly:
		return "score_month"
	case types.WindowWeekly:
		return "score_week"
	case types.Window28Day:
		return "score_28d"
	default:
		return "score_all_time"
	}
}

// GetTopPromoters ranks users by lifetime allowance spend. Instant-boost
// purchases never count here.
func (pc *PromotionController) GetTopPromoters(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	db := pc.DB.Model(&models.PromotionAccount{}).Where("lifetime_points_spent > 0")

	var count int64
	if err := db.Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	type TopPromoter struct {
		UserID              string `json:"userId"`
		LifetimePointsSpent int64  `json:"lifetimePointsSpent"`
	}
	var promoters []TopPromoter
	offset := (query.Page - 1) * query.PageSize
	if err := db.Select("user_id, lifetime_points_spent").
		Order("lifetime_points_spent DESC, created_at ASC, id ASC").
		Offset(offset).Limit(query.PageSize).Scan(&promoters).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondPage(c, promoters, query.Page, query.PageSize, count)
}
