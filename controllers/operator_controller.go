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

type OperatorController struct {
	DB     *gorm.DB
	Stripe *config.StripeClient
	Cfg    *config.Config
	Logger *slog.Logger
}

func NewOperatorController(db *gorm.DB, stripeClient *config.StripeClient, cfg *config.Config, logger *slog.Logger) *OperatorController {
	return &OperatorController{DB: db, Stripe: stripeClient, Cfg: cfg, Logger: logger}
}

type OperatorSubscribeRequest struct {
	BillingCycle string `json:"billingCycle" binding:"required,oneof=monthly yearly"`
}

// Subscribe starts a tour-operator subscription checkout. Same contract as
// the restaurant flow: a pending row exists before payment, the webhook
// activates it.
func (oc *OperatorController) Subscribe(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid operator id")
		return
	}

	var req OperatorSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var operator models.TourOperatorCRM
	if err := oc.DB.First(&operator, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Operator not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	customerID, err := oc.Stripe.FindOrCreateCustomer(oc.DB, user.UserID, user.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	priceKey := config.PriceOperatorMonthly
	if req.BillingCycle == models.PlanTypeYearly {
		priceKey = config.PriceOperatorYearly
	}

	now := time.Now()
	sub := models.OperatorSubscription{
		OperatorID:       operator.ID,
		UserID:           user.UserID,
		PlanType:         req.BillingCycle,
		Status:           models.SubscriptionStatusPending,
		StripeCustomerID: customerID,
		RequestedAt:      now,
	}
	if err := oc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "operator_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":             models.SubscriptionStatusPending,
			"plan_type":          req.BillingCycle,
			"stripe_customer_id": customerID,
			"requested_at":       now,
		}),
	}).Create(&sub).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to prepare subscription: "+err.Error())
		return
	}

	session, err := oc.Stripe.NewCheckoutSession(config.CheckoutParams{
		CustomerID: customerID,
		Mode:       stripe.CheckoutSessionModeSubscription,
		LineItems: []config.CheckoutLineItem{
			{PriceID: oc.Cfg.PriceID(priceKey), Quantity: 1},
		},
		Metadata: map[string]string{
			"checkout_type": "operator_subscription",
			"operator_id":   fmt.Sprintf("%d", operator.ID),
			"user_id":       user.UserID,
			"billing_cycle": req.BillingCycle,
		},
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Checkout URL is already issued; log a failed backfill instead of
	// failing the request, the webhook falls back to metadata matching.
	if err := oc.DB.Model(&models.OperatorSubscription{}).
		Where("operator_id = ? AND user_id = ?", operator.ID, user.UserID).
		Update("stripe_session_id", session.ID).Error; err != nil {
		oc.Logger.Warn("operator subscription session id backfill failed", "operator_id", operator.ID, "error", err)
	}

	respondOK(c, CheckoutResponse{CheckoutURL: session.URL, SessionID: session.ID})
}

type CRMListQuery struct {
	Status      string `form:"status"`
	Destination string `form:"destination"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"pageSize,default=25" binding:"min=1,max=100"`
}

// ListCRM returns the operator outreach pipeline for the admin CRM pages.
func (oc *OperatorController) ListCRM(c *gin.Context) {
	var query CRMListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if query.Status != "" && !models.ValidCRMStatus(query.Status) {
		respondError(c, http.StatusBadRequest, "invalid status filter")
		return
	}

	db := oc.DB.Model(&models.TourOperatorCRM{})
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Destination != "" {
		db = db.Where("destination_slug = ?", utils.NormalizeSlug(query.Destination))
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var operators []models.TourOperatorCRM
	offset := (query.Page - 1) * query.PageSize
	if err := db.Order("follow_up_at ASC NULLS LAST, updated_at DESC").
		Offset(offset).Limit(query.PageSize).Find(&operators).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondPage(c, operators, query.Page, query.PageSize, count)
}

type CreateCRMRequest struct {
	OperatorName    string `json:"operatorName" binding:"required"`
	ContactEmail    string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone    string `json:"contactPhone"`
	Website         string `json:"website"`
	DestinationSlug string `json:"destinationSlug"`
	Notes           string `json:"notes"`
}

func (oc *OperatorController) CreateCRM(c *gin.Context) {
	var req CreateCRMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	operator := models.TourOperatorCRM{
		OperatorName:    req.OperatorName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Website:         req.Website,
		DestinationSlug: utils.NormalizeSlug(req.DestinationSlug),
		Status:          models.CRMStatusNotContacted,
		Notes:           req.Notes,
	}
	if err := oc.DB.Create(&operator).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, operator)
}

type UpdateCRMRequest struct {
	ContactEmail    *string    `json:"contactEmail"`
	ContactPhone    *string    `json:"contactPhone"`
	Website         *string    `json:"website"`
	DestinationSlug *string    `json:"destinationSlug"`
	FollowUpAt      *time.Time `json:"followUpAt"`
	Notes           *string    `json:"notes"`
}

func (oc *OperatorController) UpdateCRM(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid operator id")
		return
	}

	var req UpdateCRMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var operator models.TourOperatorCRM
	if err := oc.DB.First(&operator, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Operator not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = *req.ContactPhone
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.DestinationSlug != nil {
		updates["destination_slug"] = utils.NormalizeSlug(*req.DestinationSlug)
	}
	if req.FollowUpAt != nil {
		updates["follow_up_at"] = *req.FollowUpAt
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := oc.DB.Model(&operator).Updates(updates).Error; err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respondOK(c, operator)
}

type CRMStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateCRMStatus moves an operator through the outreach pipeline. Moving to
// a contacted state stamps contacted_at on first transition.
func (oc *OperatorController) UpdateCRMStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid operator id")
		return
	}

	var req CRMStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ValidCRMStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "invalid status")
		return
	}

	var operator models.TourOperatorCRM
	if err := oc.DB.First(&operator, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Operator not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status != models.CRMStatusNotContacted && operator.ContactedAt == nil {
		now := time.Now()
		updates["contacted_at"] = &now
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	if err := oc.DB.Model(&operator).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, operator)
}
