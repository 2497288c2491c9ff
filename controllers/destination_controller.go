package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
)

type DestinationController struct {
	DB *gorm.DB
}

func NewDestinationController(db *gorm.DB) *DestinationController {
	return &DestinationController{DB: db}
}

type DestinationListQuery struct {
	Country  string `form:"country"`
	Featured *bool  `form:"featured"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// GetDestinations godoc
// @Summary List destinations with optional country/featured filters
// @Tags destinations
// @Produce json
// @Success 200 {object} controllers.StandardResponse
// @Router /destinations [get]
func (dc *DestinationController) GetDestinations(c *gin.Context) {
	var query DestinationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	db := dc.DB.Model(&models.Destination{})
	if query.Country != "" {
		db = db.Where("country = ?", query.Country)
	}
	if query.Featured != nil {
		db = db.Where("is_featured = ?", *query.Featured)
	}
	if query.Search != "" {
		db = db.Where("slug LIKE ?", utils.NormalizeSlug(query.Search)+"%")
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error counting destinations: "+err.Error())
		return
	}

	var destinations []models.Destination
	offset := (query.Page - 1) * query.PageSize
	if err := db.Order("is_featured DESC, name ASC").Offset(offset).Limit(query.PageSize).Find(&destinations).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching destinations: "+err.Error())
		return
	}

	respondPage(c, destinations, query.Page, query.PageSize, count)
}

// GetDestinationBySlug looks a destination up by its canonical slug. The
// incoming value is normalized first so pretty URLs with accents still hit.
func (dc *DestinationController) GetDestinationBySlug(c *gin.Context) {
	slug := utils.NormalizeSlug(c.Param("slug"))
	if slug == "" {
		respondError(c, http.StatusBadRequest, "slug is required")
		return
	}

	var destination models.Destination
	if err := dc.DB.Where("slug = ?", slug).First(&destination).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Destination not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, destination)
}
