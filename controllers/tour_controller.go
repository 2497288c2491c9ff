package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/models"
	"github.com/toptours/api-go/types"
	"github.com/toptours/api-go/utils"
	"gorm.io/gorm"
)

const (
	tourCacheKeyPrefix = "viator:search:"
	tourCacheTTL       = 15 * time.Minute
	tourCacheTTLJitter = 5 * time.Minute // anti-stampede
)

type TourController struct {
	DB     *gorm.DB
	Viator *config.ViatorClient
	Cache  *redis.Client
	Logger *slog.Logger
}

func NewTourController(db *gorm.DB, viator *config.ViatorClient, cache *redis.Client, logger *slog.Logger) *TourController {
	return &TourController{DB: db, Viator: viator, Cache: cache, Logger: logger}
}

type TourSearchQuery struct {
	Destination string `form:"destination" binding:"required"`
	Sort        string `form:"sort" binding:"omitempty,oneof=DEFAULT PRICE TRAVELER_RATING ITINERARY_DURATION"`
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"pageSize,default=20" binding:"min=1,max=50"`
}

// SearchTours godoc
// @Summary Search Viator tours for a destination
// @Tags tours
// @Produce json
// @Param destination query string true "Destination slug"
// @Success 200 {object} controllers.StandardResponse
// @Router /tours/search [get]
func (tc *TourController) SearchTours(c *gin.Context) {
	var query TourSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	slug := utils.NormalizeSlug(query.Destination)
	var destination models.Destination
	if err := tc.DB.Where("slug = ?", slug).First(&destination).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, http.StatusNotFound, "Destination not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if destination.ViatorID == "" {
		respondError(c, http.StatusNotFound, "Destination has no tour inventory")
		return
	}

	cacheKey := tourSearchCacheKey(destination.ViatorID, query)

	// Cache failures never fail the request.
	if cached, err := tc.Cache.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
		var result types.ViatorSearchResponse
		if err := json.Unmarshal(cached, &result); err == nil {
			respondOK(c, result)
			return
		}
	} else if err != redis.Nil {
		tc.Logger.Warn("tour cache read failed", "key", cacheKey, "error", err)
	}

	req := types.ViatorSearchRequest{
		Filtering: types.ViatorFiltering{Destination: destination.ViatorID},
		Pagination: types.ViatorPagination{
			Start: (query.Page-1)*query.PageSize + 1,
			Count: query.PageSize,
		},
		Currency: "USD",
	}
	if query.Sort != "" {
		req.Sorting = &types.ViatorSorting{Sort: query.Sort, Order: "DESCENDING"}
	}

	result, err := tc.Viator.SearchTours(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Tour search failed: "+err.Error())
		return
	}

	if payload, err := json.Marshal(result); err == nil {
		ttl := tourCacheTTL + time.Duration(rand.Int64N(int64(tourCacheTTLJitter)))
		if err := tc.Cache.Set(c.Request.Context(), cacheKey, payload, ttl).Err(); err != nil {
			tc.Logger.Warn("tour cache write failed", "key", cacheKey, "error", err)
		}
	}

	respondOK(c, result)
}

// GetTour godoc
// @Summary Fetch one Viator product by code
// @Tags tours
// @Produce json
// @Router /tours/product/{code} [get]
func (tc *TourController) GetTour(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "product code is required")
		return
	}

	product, err := tc.Viator.GetProduct(c.Request.Context(), code)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Product lookup failed: "+err.Error())
		return
	}

	respondOK(c, product)
}

func tourSearchCacheKey(viatorID string, query TourSearchQuery) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d", viatorID, query.Sort, query.Page, query.PageSize)))
	return tourCacheKeyPrefix + hex.EncodeToString(h[:16])
}
