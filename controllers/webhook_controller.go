package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/models"
	"gorm.io/gorm"
)

// WebhookController reconciles Stripe events against the pending rows created
// at checkout time. Every handler is idempotent: redelivered events find no
// pending state to flip and write nothing.
type WebhookController struct {
	DB     *gorm.DB
	Stripe *config.StripeClient
	Mailer *config.Mailer
	Logger *slog.Logger
}

func NewWebhookController(db *gorm.DB, stripeClient *config.StripeClient, mailer *config.Mailer, logger *slog.Logger) *WebhookController {
	return &WebhookController{DB: db, Stripe: stripeClient, Mailer: mailer, Logger: logger}
}

// HandleStripeWebhook godoc
// @Summary Stripe event endpoint
// @Tags webhooks
// @Accept json
// @Produce json
// @Router /webhooks/stripe [post]
func (wc *WebhookController) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read request body")
		return
	}

	event, err := wc.Stripe.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			respondError(c, http.StatusBadRequest, "malformed checkout session payload")
			return
		}
		if err := wc.handleCheckoutCompleted(&session); err != nil {
			wc.Logger.Error("checkout reconciliation failed", "session", session.ID, "error", err)
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			respondError(c, http.StatusBadRequest, "malformed subscription payload")
			return
		}
		if err := wc.syncSubscription(&sub); err != nil {
			wc.Logger.Error("subscription sync failed", "subscription", sub.ID, "error", err)
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}

	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (wc *WebhookController) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	switch session.Metadata["checkout_type"] {
	case "restaurant_subscription":
		return wc.activateRestaurantSubscription(session)
	case "operator_subscription":
		return wc.activateOperatorSubscription(session)
	case "instant_boost":
		return wc.creditInstantBoost(session)
	default:
		wc.Logger.Warn("checkout session without a known checkout_type", "session", session.ID)
		return nil
	}
}

// subscriptionPeriod fetches the billing period for an activated subscription.
// Best-effort: activation proceeds without dates if the fetch fails.
func (wc *WebhookController) subscriptionPeriod(session *stripe.CheckoutSession) (subID string, start, end *time.Time) {
	if session.Subscription == nil {
		return "", nil, nil
	}
	subID = session.Subscription.ID

	sub, err := wc.Stripe.GetSubscription(subID)
	if err != nil {
		wc.Logger.Warn("could not fetch subscription period", "subscription", subID, "error", err)
		return subID, nil, nil
	}
	s := time.Unix(sub.CurrentPeriodStart, 0)
	e := time.Unix(sub.CurrentPeriodEnd, 0)
	return subID, &s, &e
}

func (wc *WebhookController) activateRestaurantSubscription(session *stripe.CheckoutSession) error {
	restaurantID, err := strconv.ParseUint(session.Metadata["restaurant_id"], 10, 64)
	if err != nil {
		return errors.New("missing restaurant_id metadata")
	}
	userID := session.Metadata["user_id"]
	if userID == "" {
		return errors.New("missing user_id metadata")
	}

	subID, periodStart, periodEnd := wc.subscriptionPeriod(session)
	now := time.Now()

	activation := map[string]interface{}{
		"status":                 models.SubscriptionStatusActive,
		"stripe_subscription_id": subID,
		"stripe_session_id":      session.ID,
		"current_period_start":   periodStart,
		"current_period_end":     periodEnd,
		"activated_at":           &now,
	}

	err = wc.DB.Transaction(func(tx *gorm.DB) error {
		// Guarded on status so a redelivered event leaves active rows alone.
		if err := tx.Model(&models.RestaurantSubscription{}).
			Where("restaurant_id = ? AND user_id = ? AND status <> ?",
				uint(restaurantID), userID, models.SubscriptionStatusActive).
			Updates(activation).Error; err != nil {
			return err
		}
		if session.Metadata["is_premium"] == "true" {
			if err := tx.Model(&models.RestaurantPremiumSubscription{}).
				Where("restaurant_id = ? AND user_id = ? AND status <> ?",
					uint(restaurantID), userID, models.SubscriptionStatusActive).
				Updates(activation).Error; err != nil {
				return err
			}
		}
		if session.Metadata["is_promotion"] == "true" {
			if err := tx.Model(&models.PromotedRestaurant{}).
				Where("restaurant_id = ? AND user_id = ? AND status <> ?",
					uint(restaurantID), userID, models.SubscriptionStatusActive).
				Updates(activation).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	wc.sendActivationMail(session, restaurantName(wc.DB, uint(restaurantID)))
	return nil
}

func (wc *WebhookController) activateOperatorSubscription(session *stripe.CheckoutSession) error {
	operatorID, err := strconv.ParseUint(session.Metadata["operator_id"], 10, 64)
	if err != nil {
		return errors.New("missing operator_id metadata")
	}
	userID := session.Metadata["user_id"]
	if userID == "" {
		return errors.New("missing user_id metadata")
	}

	subID, periodStart, periodEnd := wc.subscriptionPeriod(session)
	now := time.Now()

	err = wc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OperatorSubscription{}).
			Where("operator_id = ? AND user_id = ? AND status <> ?",
				uint(operatorID), userID, models.SubscriptionStatusActive).
			Updates(map[string]interface{}{
				"status":                 models.SubscriptionStatusActive,
				"stripe_subscription_id": subID,
				"stripe_session_id":      session.ID,
				"current_period_start":   periodStart,
				"current_period_end":     periodEnd,
				"activated_at":           &now,
			}).Error; err != nil {
			return err
		}

		// A paid subscription closes the CRM outreach loop.
		return tx.Model(&models.TourOperatorCRM{}).
			Where("id = ?", uint(operatorID)).
			Update("status", models.CRMStatusPaidSubscribed).Error
	})
	if err != nil {
		return err
	}

	var operator models.TourOperatorCRM
	wc.DB.First(&operator, uint(operatorID))
	wc.sendActivationMail(session, operator.OperatorName)
	return nil
}

// creditInstantBoost applies a purchased point package to the listing's score
// windows. The BoostCredit row's unique session key makes redelivery a no-op,
// and the daily allowance is deliberately untouched.
func (wc *WebhookController) creditInstantBoost(session *stripe.CheckoutSession) error {
	points, err := strconv.ParseInt(session.Metadata["boost_points"], 10, 64)
	if err != nil || points <= 0 {
		return errors.New("missing boost_points metadata")
	}
	listingType := session.Metadata["listing_type"]
	listingID := session.Metadata["listing_id"]
	if listingType == "" || listingID == "" {
		return errors.New("missing listing metadata")
	}

	return wc.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.BoostCredit{}).
			Where("stripe_session_id = ?", session.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil // already credited
		}

		credit := models.BoostCredit{
			StripeSessionID: session.ID,
			UserID:          session.Metadata["user_id"],
			ListingType:     listingType,
			ListingID:       listingID,
			Points:          points,
		}
		if err := tx.Create(&credit).Error; err != nil {
			return err
		}

		return applyListingPoints(tx, listingType, listingID, points, time.Now())
	})
}

// syncSubscription mirrors provider-side status changes onto whichever rows
// carry the subscription id.
func (wc *WebhookController) syncSubscription(sub *stripe.Subscription) error {
	status := models.SubscriptionStatusActive
	switch sub.Status {
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncompleteExpired:
		status = models.SubscriptionStatusCancelled
	}

	start := time.Unix(sub.CurrentPeriodStart, 0)
	end := time.Unix(sub.CurrentPeriodEnd, 0)
	updates := map[string]interface{}{
		"status":               status,
		"current_period_start": &start,
		"current_period_end":   &end,
	}

	return wc.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.RestaurantSubscription{},
			&models.RestaurantPremiumSubscription{},
			&models.PromotedRestaurant{},
			&models.OperatorSubscription{},
		} {
			if err := tx.Model(model).
				Where("stripe_subscription_id = ?", sub.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (wc *WebhookController) sendActivationMail(session *stripe.CheckoutSession, listingName string) {
	if listingName == "" {
		return
	}
	email := ""
	if session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}
	if email == "" {
		return
	}
	// Best-effort: a failed mail never fails the webhook.
	if err := wc.Mailer.SendSubscriptionActivated(email, listingName); err != nil {
		wc.Logger.Warn("activation email failed", "to", email, "error", err)
	}
}

func restaurantName(db *gorm.DB, id uint) string {
	var restaurant models.Restaurant
	if err := db.First(&restaurant, id).Error; err != nil {
		return ""
	}
	return restaurant.Name
}
