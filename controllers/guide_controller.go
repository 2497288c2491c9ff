package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuideController struct {
	DB *gorm.DB
}

func NewGuideController(db *gorm.DB) *GuideController {
	return &GuideController{DB: db}
}

type UpsertGuideRequest struct {
	DestinationID uint   `json:"destinationId" binding:"required"`
	CategorySlug  string `json:"categorySlug" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	ModelName     string `json:"modelName"`
}

// UpsertCategoryGuide writes an AI-generated guide idempotently: the content
// generator can re-run against the same (destination, category) pair and the
// row is replaced, never duplicated.
func (gc *GuideController) UpsertCategoryGuide(c *gin.Context) {
	gc.upsertGuide(c, false)
}

func (gc *GuideController) UpsertRestaurantGuide(c *gin.Context) {
	gc.upsertGuide(c, true)
}

func (gc *GuideController) upsertGuide(c *gin.Context, restaurant bool) {
	var req UpsertGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var count int64
	if err := gc.DB.Model(&models.Destination{}).Where("id = ?", req.DestinationID).Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if count == 0 {
		respondError(c, http.StatusNotFound, "Destination not found")
		return
	}

	categorySlug := utils.NormalizeSlug(req.CategorySlug)
	now := time.Now()

	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "destination_id"}, {Name: "category_slug"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"title":        req.Title,
			"content":      req.Content,
			"model_name":   req.ModelName,
			"generated_at": now,
		}),
	}

	if restaurant {
		guide := models.RestaurantGuide{
			DestinationID: req.DestinationID,
			CategorySlug:  categorySlug,
			Title:         req.Title,
			Content:       req.Content,
			ModelName:     req.ModelName,
			GeneratedAt:   now,
		}
		if err := gc.DB.Clauses(onConflict).Create(&guide).Error; err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		respondOK(c, guide)
		return
	}

	guide := models.CategoryGuide{
		DestinationID: req.DestinationID,
		CategorySlug:  categorySlug,
		Title:         req.Title,
		Content:       req.Content,
		ModelName:     req.ModelName,
		GeneratedAt:   now,
	}
	if err := gc.DB.Clauses(onConflict).Create(&guide).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(c, guide)
}

// GetCategoryGuide returns the guide for a destination slug and category.
func (gc *GuideController) GetCategoryGuide(c *gin.Context) {
	destinationSlug := utils.NormalizeSlug(c.Param("destination"))
	categorySlug := utils.NormalizeSlug(c.Param("category"))

	var destination models.Destination
	if err := gc.DB.Where("slug = ?", destinationSlug).First(&destination).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Destination not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var guide models.CategoryGuide
	if err := gc.DB.Where("destination_id = ? AND category_slug = ?", destination.ID, categorySlug).
		First(&guide).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Guide not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, guide)
}

func (gc *GuideController) GetRestaurantGuide(c *gin.Context) {
	destinationSlug := utils.NormalizeSlug(c.Param("destination"))
	categorySlug := utils.NormalizeSlug(c.Param("category"))

	var destination models.Destination
	if err := gc.DB.Where("slug = ?", destinationSlug).First(&destination).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Destination not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var guide models.RestaurantGuide
	if err := gc.DB.Where("destination_id = ? AND category_slug = ?", destination.ID, categorySlug).
		First(&guide).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Guide not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, guide)
}
