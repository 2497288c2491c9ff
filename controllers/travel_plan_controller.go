package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
)

type TravelPlanController struct {
	DB *gorm.DB
}

func NewTravelPlanController(db *gorm.DB) *TravelPlanController {
	return &TravelPlanController{DB: db}
}

type PlanItemInput struct {
	Day      int    `json:"day" binding:"required,min=1"`
	Position int    `json:"position" binding:"min=0"`
	Kind     string `json:"kind" binding:"required,oneof=tour restaurant note"`
	RefID    string `json:"refId"`
	Note     string `json:"note"`
}

type CreateTravelPlanRequest struct {
	Title            string          `json:"title" binding:"required"`
	DestinationSlugs []string        `json:"destinationSlugs" binding:"required,min=1"`
	Summary          string          `json:"summary"`
	CoverImageURL    string          `json:"coverImageUrl"`
	IsPublic         bool            `json:"isPublic"`
	Items            []PlanItemInput `json:"items" binding:"dive"`
}

// CreateTravelPlan godoc
// @Summary Create a community travel plan
// @Tags travel-plans
// @Accept json
// @Produce json
// @Router /travel-plans [post]
func (tc *TravelPlanController) CreateTravelPlan(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	slugs := make([]string, 0, len(req.DestinationSlugs))
	for _, s := range req.DestinationSlugs {
		slugs = append(slugs, utils.NormalizeSlug(s))
	}

	plan := models.TravelPlan{
		UserID:           user.UserID,
		Title:            req.Title,
		DestinationSlugs: pq.StringArray(slugs),
		Summary:          req.Summary,
		CoverImageURL:    req.CoverImageURL,
		IsPublic:         req.IsPublic,
	}
	for _, item := range req.Items {
		plan.Items = append(plan.Items, models.TravelPlanItem{
			Day:      item.Day,
			Position: item.Position,
			Kind:     item.Kind,
			RefID:    item.RefID,
			Note:     item.Note,
		})
	}

	if err := tc.createWithUniqueSlug(&plan); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create plan: "+err.Error())
		return
	}

	respondCreated(c, plan)
}

const maxSlugAttempts = 50

// createWithUniqueSlug inserts the plan, suffixing a counter onto the slug
// and retrying when the insert hits the slug unique index. Relying on the
// index rather than a pre-check keeps concurrent creates of the same title
// from colliding.
func (tc *TravelPlanController) createWithUniqueSlug(plan *models.TravelPlan) error {
	base := planSlugBase(plan.Title)
	for i := 1; i <= maxSlugAttempts; i++ {
		plan.Slug = planSlugAttempt(base, i)
		err := tc.DB.Create(plan).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// The failed insert rolled back; clear generated keys before
		// the next attempt.
		plan.ID = 0
		for idx := range plan.Items {
			plan.Items[idx].ID = 0
			plan.Items[idx].TravelPlanID = 0
		}
	}
	return fmt.Errorf("could not find a free slug for %q", base)
}

func planSlugBase(title string) string {
	base := utils.NormalizeSlug(title)
	if base == "" {
		base = "travel-plan"
	}
	return base
}

func planSlugAttempt(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

type TravelPlanListQuery struct {
	Destination string `form:"destination"`
	Mine        bool   `form:"mine"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"pageSize,default=20" binding:"min=1,max=50"`
}

// GetTravelPlans lists public plans ranked by score; with mine=true it lists
// the caller's own plans regardless of visibility.
func (tc *TravelPlanController) GetTravelPlans(c *gin.Context) {
	var query TravelPlanListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	db := tc.DB.Model(&models.TravelPlan{})
	if query.Mine {
		user := utils.GetUser(c)
		if user == nil {
			respondError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		db = db.Where("user_id = ?", user.UserID)
	} else {
		db = db.Where("is_public = ?", true)
	}
	if query.Destination != "" {
		db = db.Where("? = ANY(destination_slugs)", utils.NormalizeSlug(query.Destination))
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var plans []models.TravelPlan
	offset := (query.Page - 1) * query.PageSize
	if err := db.Preload("Items").Order("score DESC, created_at ASC, id ASC").
		Offset(offset).Limit(query.PageSize).Find(&plans).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondPage(c, plans, query.Page, query.PageSize, count)
}

// GetTravelPlan returns one plan by slug. Private plans are visible to their
// owner only.
func (tc *TravelPlanController) GetTravelPlan(c *gin.Context) {
	slug := c.Param("slug")

	var plan models.TravelPlan
	if err := tc.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("day ASC, position ASC")
	}).Where("slug = ?", slug).First(&plan).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Travel plan not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !plan.IsPublic {
		user := utils.GetUser(c)
		if user == nil || user.UserID != plan.UserID {
			respondError(c, http.StatusNotFound, "Travel plan not found")
			return
		}
	}

	respondOK(c, plan)
}

type UpdateTravelPlanRequest struct {
	Title            *string          `json:"title"`
	DestinationSlugs []string         `json:"destinationSlugs"`
	Summary          *string          `json:"summary"`
	CoverImageURL    *string          `json:"coverImageUrl"`
	IsPublic         *bool            `json:"isPublic"`
	Items            *[]PlanItemInput `json:"items"`
}

func (tc *TravelPlanController) UpdateTravelPlan(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	var req UpdateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var plan models.TravelPlan
	if err := tc.DB.First(&plan, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Travel plan not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if plan.UserID != user.UserID {
		respondError(c, http.StatusForbidden, "Not your travel plan")
		return
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.DestinationSlugs != nil {
			slugs := make([]string, 0, len(req.DestinationSlugs))
			for _, s := range req.DestinationSlugs {
				slugs = append(slugs, utils.NormalizeSlug(s))
			}
			updates["destination_slugs"] = pq.StringArray(slugs)
		}
		if req.Summary != nil {
			updates["summary"] = *req.Summary
		}
		if req.CoverImageURL != nil {
			updates["cover_image_url"] = *req.CoverImageURL
		}
		if req.IsPublic != nil {
			updates["is_public"] = *req.IsPublic
		}
		if len(updates) > 0 {
			if err := tx.Model(&plan).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Items != nil {
			if err := tx.Where("travel_plan_id = ?", plan.ID).
				Delete(&models.TravelPlanItem{}).Error; err != nil {
				return err
			}
			for _, item := range *req.Items {
				newItem := models.TravelPlanItem{
					TravelPlanID: plan.ID,
					Day:          item.Day,
					Position:     item.Position,
					Kind:         item.Kind,
					RefID:        item.RefID,
					Note:         item.Note,
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	tc.DB.Preload("Items").First(&plan, plan.ID)
	respondOK(c, plan)
}

func (tc *TravelPlanController) DeleteTravelPlan(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	var plan models.TravelPlan
	if err := tc.DB.First(&plan, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Travel plan not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if plan.UserID != user.UserID {
		respondError(c, http.StatusForbidden, "Not your travel plan")
		return
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("travel_plan_id = ?", plan.ID).
			Delete(&models.TravelPlanItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, gin.H{"deleted": true})
}
