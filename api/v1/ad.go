package v1

import (
	"net/http"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/middleware"
	"github.com/adsboard-api/services"
	"github.com/gin-gonic/gin"
)

// AdController handles ad-related API endpoints
type AdController struct {
	adService *services.AdService
}

// NewAdController creates a new ad controller
func NewAdController(adService *services.AdService) *AdController {
	return &AdController{adService: adService}
}

// RegisterRoutes registers ad routes
func (ac *AdController) RegisterRoutes(router *gin.RouterGroup) {
	ads := router.Group("/ads")
	{
		ads.GET("", ac.ListAds)
		ads.POST("", ac.CreateAd)
		ads.GET("/me", ac.ListMyAds)
		ads.GET("/:id", ac.GetAd)
		ads.PATCH("/:id", ac.UpdateAd)
		ads.DELETE("/:id", ac.DeleteAd)
	}
}

// ListAds godoc
// @Summary List ads newest first
// @Tags ads
// @Param title query string false "Case-insensitive title substring"
// @Param page query int false "Page number"
// @Router /ads [get]
func (ac *AdController) ListAds(c *gin.Context) {
	page, err := ac.adService.List(c.Request.Context(), middleware.Principal(c), c.Query("title"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page)
}

// ListMyAds returns the caller's own ads
func (ac *AdController) ListMyAds(c *gin.Context) {
	page, err := ac.adService.ListMine(c.Request.Context(), middleware.Principal(c), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page)
}

// GetAd returns one ad with its author's contact details
func (ac *AdController) GetAd(c *gin.Context) {
	ad, err := ac.adService.Get(c.Request.Context(), middleware.Principal(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewAdDetailResponse(ad))
}

// CreateAd godoc
// @Summary Post a new ad as the caller
// @Tags ads
// @Param ad body dto.CreateAdRequest true "Ad data"
// @Router /ads [post]
func (ac *AdController) CreateAd(c *gin.Context) {
	p := middleware.Principal(c)
	if err := ac.adService.Authorize(c.Request.Context(), p, 0, authz.ActionCreate); err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateAdRequest
	if !bindJSON(c, &req) {
		return
	}

	ad, err := ac.adService.Create(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, dto.NewAdDetailResponse(ad))
}

// UpdateAd applies a partial update
func (ac *AdController) UpdateAd(c *gin.Context) {
	p := middleware.Principal(c)
	id := pathID(c, "id")
	if err := ac.adService.Authorize(c.Request.Context(), p, id, authz.ActionUpdate); err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateAdRequest
	if !bindJSON(c, &req) {
		return
	}

	ad, err := ac.adService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewAdDetailResponse(ad))
}

// DeleteAd removes an ad and its reviews
func (ac *AdController) DeleteAd(c *gin.Context) {
	if err := ac.adService.Delete(c.Request.Context(), middleware.Principal(c), pathID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
