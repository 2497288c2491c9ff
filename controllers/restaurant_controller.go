package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestaurantController struct {
	DB     *gorm.DB
	Stripe *config.StripeClient
	Cfg    *config.Config
	Logger *slog.Logger
}

func NewRestaurantController(db *gorm.DB, stripeClient *config.StripeClient, cfg *config.Config, logger *slog.Logger) *RestaurantController {
	return &RestaurantController{DB: db, Stripe: stripeClient, Cfg: cfg, Logger: logger}
}

type RestaurantListQuery struct {
	Destination string  `form:"destination"`
	Cuisine     string  `form:"cuisine"`
	Latitude    float64 `form:"latitude"`
	Longitude   float64 `form:"longitude"`
	Radius      float64 `form:"radius,default=10"` // km
	Page        int     `form:"page,default=1" binding:"min=1"`
	PageSize    int     `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// GetRestaurants godoc
// @Summary Browse approved restaurants by destination or proximity
// @Tags restaurants
// @Produce json
// @Success 200 {object} controllers.StandardResponse
// @Router /restaurants [get]
func (rc *RestaurantController) GetRestaurants(c *gin.Context) {
	var query RestaurantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	db := rc.DB.Model(&models.Restaurant{}).Where("is_approved = ?", true)

	if query.Destination != "" {
		db = db.Where("destination_slug = ?", utils.NormalizeSlug(query.Destination))
	}
	if query.Cuisine != "" {
		db = db.Where("? = ANY(cuisine_types)", query.Cuisine)
	}

	if query.Latitude != 0 && query.Longitude != 0 {
		if query.Radius > 50 {
			query.Radius = 50
		}
		distanceCalc := "(6371 * acos(cos(radians(?)) * cos(radians(latitude)) * " +
			"cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude))))"
		db = db.Select("*, "+distanceCalc+" AS distance", query.Latitude, query.Longitude, query.Latitude).
			Where(distanceCalc+" <= ?", query.Latitude, query.Longitude, query.Latitude, query.Radius).
			Order("distance ASC")
	} else {
		db = db.Order("rating DESC, name ASC")
	}

	var count int64
	if err := db.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error counting restaurants: "+err.Error())
		return
	}

	var restaurants []models.Restaurant
	offset := (query.Page - 1) * query.PageSize
	if err := db.Offset(offset).Limit(query.PageSize).Find(&restaurants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching restaurants: "+err.Error())
		return
	}

	respondPage(c, restaurants, query.Page, query.PageSize, count)
}

func (rc *RestaurantController) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Restaurant not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, restaurant)
}

type SubscribeRequest struct {
	IsPremiumSelected     bool   `json:"isPremiumSelected"`
	PremiumBillingCycle   string `json:"premiumBillingCycle" binding:"omitempty,oneof=monthly yearly"`
	IsPromotionSelected   bool   `json:"isPromotionSelected"`
	PromotionBillingCycle string `json:"promotionBillingCycle" binding:"omitempty,oneof=monthly yearly"`
	HighlightColor        string `json:"highlightColor"`
	Tagline               string `json:"tagline"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	SessionID   string `json:"sessionId"`
}

// Subscribe godoc
// @Summary Start a restaurant subscription checkout
// @Description Creates pending subscription rows and a hosted Stripe checkout session
// @Tags restaurants
// @Accept json
// @Produce json
// @Param body body SubscribeRequest true "Plan selection"
// @Success 200 {object} controllers.StandardResponse
// @Router /restaurants/{id}/subscribe [post]
func (rc *RestaurantController) Subscribe(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !req.IsPremiumSelected && !req.IsPromotionSelected {
		respondError(c, http.StatusBadRequest, "Select at least one plan")
		return
	}
	if req.IsPremiumSelected && req.PremiumBillingCycle == "" {
		respondError(c, http.StatusBadRequest, "premiumBillingCycle is required when premium is selected")
		return
	}
	if req.IsPromotionSelected && req.PromotionBillingCycle == "" {
		respondError(c, http.StatusBadRequest, "promotionBillingCycle is required when promotion is selected")
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Restaurant not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if restaurant.Name == "" || restaurant.DestinationSlug == "" {
		respondError(c, http.StatusBadRequest, "Restaurant listing is incomplete")
		return
	}

	destinationSlug := utils.NormalizeSlug(restaurant.DestinationSlug)

	customerID, err := rc.Stripe.FindOrCreateCustomer(rc.DB, user.UserID, user.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	lineItems := []config.CheckoutLineItem{}
	if req.IsPremiumSelected {
		lineItems = append(lineItems, config.CheckoutLineItem{
			PriceID:  rc.Cfg.PriceID(premiumPriceKey(req.PremiumBillingCycle)),
			Quantity: 1,
		})
	}
	if req.IsPromotionSelected {
		lineItems = append(lineItems, config.CheckoutLineItem{
			PriceID:  rc.Cfg.PriceID(promotionPriceKey(req.PromotionBillingCycle)),
			Quantity: 1,
		})
	}

	now := time.Now()

	// Pre-create pending rows so state exists before payment completes. All
	// writes are upserts on the (restaurant, user) natural key inside one
	// transaction, so a retried checkout updates the same rows.
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		sub := models.RestaurantSubscription{
			RestaurantID:     restaurant.ID,
			UserID:           user.UserID,
			Status:           models.SubscriptionStatusPending,
			StripeCustomerID: customerID,
			RequestedAt:      now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "restaurant_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":             models.SubscriptionStatusPending,
				"stripe_customer_id": customerID,
				"requested_at":       now,
			}),
		}).Create(&sub).Error; err != nil {
			return err
		}

		if req.IsPremiumSelected {
			premium := models.RestaurantPremiumSubscription{
				RestaurantID: restaurant.ID,
				UserID:       user.UserID,
				PlanType:     req.PremiumBillingCycle,
				Status:       models.SubscriptionStatusPending,
				RequestedAt:  now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "restaurant_id"}, {Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"status":       models.SubscriptionStatusPending,
					"plan_type":    req.PremiumBillingCycle,
					"requested_at": now,
				}),
			}).Create(&premium).Error; err != nil {
				return err
			}
		}

		if req.IsPromotionSelected {
			promoted := models.PromotedRestaurant{
				RestaurantID:    restaurant.ID,
				UserID:          user.UserID,
				DestinationSlug: destinationSlug,
				PlanType:        req.PromotionBillingCycle,
				Status:          models.SubscriptionStatusPending,
				RequestedAt:     now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "restaurant_id"}, {Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"status":           models.SubscriptionStatusPending,
					"plan_type":        req.PromotionBillingCycle,
					"destination_slug": destinationSlug,
					"requested_at":     now,
				}),
			}).Create(&promoted).Error; err != nil {
				return err
			}
		}

		if req.HighlightColor != "" || req.Tagline != "" {
			updates := map[string]interface{}{}
			if req.HighlightColor != "" {
				updates["highlight_color"] = req.HighlightColor
			}
			if req.Tagline != "" {
				updates["tagline"] = req.Tagline
			}
			if err := tx.Model(&restaurant).Updates(updates).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to prepare subscription: "+err.Error())
		return
	}

	session, err := rc.Stripe.NewCheckoutSession(config.CheckoutParams{
		CustomerID: customerID,
		Mode:       stripe.CheckoutSessionModeSubscription,
		LineItems:  lineItems,
		Metadata: map[string]string{
			"checkout_type":    "restaurant_subscription",
			"restaurant_id":    fmt.Sprintf("%d", restaurant.ID),
			"user_id":          user.UserID,
			"destination_slug": destinationSlug,
			"is_premium":       strconv.FormatBool(req.IsPremiumSelected),
			"premium_cycle":    req.PremiumBillingCycle,
			"is_promotion":     strconv.FormatBool(req.IsPromotionSelected),
			"promotion_cycle":  req.PromotionBillingCycle,
		},
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Record the session id on the pending rows for webhook matching. The
	// checkout URL is already issued, so a failed backfill is logged rather
	// than surfaced; the webhook falls back to metadata matching.
	if err := rc.DB.Model(&models.RestaurantSubscription{}).
		Where("restaurant_id = ? AND user_id = ?", restaurant.ID, user.UserID).
		Update("stripe_session_id", session.ID).Error; err != nil {
		rc.Logger.Warn("restaurant subscription session id backfill failed", "restaurant_id", restaurant.ID, "error", err)
	}
	if req.IsPremiumSelected {
		if err := rc.DB.Model(&models.RestaurantPremiumSubscription{}).
			Where("restaurant_id = ? AND user_id = ?", restaurant.ID, user.UserID).
			Update("stripe_session_id", session.ID).Error; err != nil {
			rc.Logger.Warn("premium subscription session id backfill failed", "restaurant_id", restaurant.ID, "error", err)
		}
	}
	if req.IsPromotionSelected {
		if err := rc.DB.Model(&models.PromotedRestaurant{}).
			Where("restaurant_id = ? AND user_id = ?", restaurant.ID, user.UserID).
			Update("stripe_session_id", session.ID).Error; err != nil {
			rc.Logger.Warn("promotion session id backfill failed", "restaurant_id", restaurant.ID, "error", err)
		}
	}

	respondOK(c, CheckoutResponse{CheckoutURL: session.URL, SessionID: session.ID})
}

func premiumPriceKey(cycle string) string {
	if cycle == models.PlanTypeYearly {
		return config.PricePremiumYearly
	}
	return config.PricePremiumMonthly
}

func promotionPriceKey(cycle string) string {
	if cycle == models.PlanTypeYearly {
		return config.PricePromotionYearly
	}
	return config.PricePromotionMonthly
}
