package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
)

// ListingController serves the small partner surfaces: baby-equipment rental
// providers and partner guides. Public reads return approved rows only;
// admins create and approve.
type ListingController struct {
	DB *gorm.DB
}

func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{DB: db}
}

func (lc *ListingController) GetBabyEquipmentRentals(c *gin.Context) {
	db := lc.DB.Model(&models.BabyEquipmentRental{}).Where("is_approved = ?", true)
	if destination := c.Query("destination"); destination != "" {
		db = db.Where("destination_slug = ?", utils.NormalizeSlug(destination))
	}

	var rentals []models.BabyEquipmentRental
	if err := db.Order("provider_name ASC").Find(&rentals).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, rentals)
}

type CreateRentalRequest struct {
	ProviderName    string   `json:"providerName" binding:"required"`
	DestinationSlug string   `json:"destinationSlug" binding:"required"`
	EquipmentTypes  []string `json:"equipmentTypes"`
	Website         string   `json:"website"`
	ContactEmail    string   `json:"contactEmail" binding:"omitempty,email"`
}

func (lc *ListingController) CreateBabyEquipmentRental(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	rental := models.BabyEquipmentRental{
		ProviderName:    req.ProviderName,
		DestinationSlug: utils.NormalizeSlug(req.DestinationSlug),
		EquipmentTypes:  pq.StringArray(req.EquipmentTypes),
		Website:         req.Website,
		ContactEmail:    req.ContactEmail,
	}
	if err := lc.DB.Create(&rental).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, rental)
}

func (lc *ListingController) ApproveBabyEquipmentRental(c *gin.Context) {
	lc.approve(c, &models.BabyEquipmentRental{})
}

func (lc *ListingController) GetPartnerGuides(c *gin.Context) {
	db := lc.DB.Model(&models.PartnerGuide{}).Where("is_approved = ?", true)
	if destination := c.Query("destination"); destination != "" {
		db = db.Where("destination_slug = ?", utils.NormalizeSlug(destination))
	}

	var guides []models.PartnerGuide
	if err := db.Order("partner_name ASC").Find(&guides).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, guides)
}

type CreatePartnerGuideRequest struct {
	PartnerName     string `json:"partnerName" binding:"required"`
	DestinationSlug string `json:"destinationSlug"`
	Website         string `json:"website" binding:"omitempty,url"`
	LogoURL         string `json:"logoUrl"`
	Description     string `json:"description"`
}

func (lc *ListingController) CreatePartnerGuide(c *gin.Context) {
	var req CreatePartnerGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	guide := models.PartnerGuide{
		PartnerName:     req.PartnerName,
		DestinationSlug: utils.NormalizeSlug(req.DestinationSlug),
		Website:         req.Website,
		LogoURL:         req.LogoURL,
		Description:     req.Description,
	}
	if err := lc.DB.Create(&guide).Error; err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondCreated(c, guide)
}

func (lc *ListingController) ApprovePartnerGuide(c *gin.Context) {
	lc.approve(c, &models.PartnerGuide{})
}

func (lc *ListingController) approve(c *gin.Context, model interface{}) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return
	}

	result := lc.DB.Model(model).Where("id = ?", uint(id)).Update("is_approved", true)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Listing not found")
		return
	}

	respondOK(c, gin.H{"approved": true})
}
