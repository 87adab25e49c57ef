package v1

import (
	"net/http"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/middleware"
	"github.com/adsboard-api/services"
	"github.com/gin-gonic/gin"
)

// ReviewController handles the review sub-collection of an ad
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new review controller
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// RegisterRoutes registers review routes under /ads/:id/reviews
func (rc *ReviewController) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/ads/:id/reviews")
	{
		reviews.GET("", rc.ListReviews)
		reviews.POST("", rc.CreateReview)
		reviews.GET("/:reviewId", rc.GetReview)
		reviews.PATCH("/:reviewId", rc.UpdateReview)
		reviews.DELETE("/:reviewId", rc.DeleteReview)
	}
}

// ListReviews returns the reviews of an ad
func (rc *ReviewController) ListReviews(c *gin.Context) {
	page, err := rc.reviewService.List(c.Request.Context(), middleware.Principal(c), pathID(c, "id"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page)
}

// GetReview returns one review of an ad
func (rc *ReviewController) GetReview(c *gin.Context) {
	review, err := rc.reviewService.Get(c.Request.Context(), middleware.Principal(c), pathID(c, "id"), pathID(c, "reviewId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewReviewResponse(review))
}

// CreateReview leaves a review on an ad
func (rc *ReviewController) CreateReview(c *gin.Context) {
	p := middleware.Principal(c)
	adID := pathID(c, "id")
	if err := rc.reviewService.Authorize(c.Request.Context(), p, adID, 0, authz.ActionCreate); err != nil {
		respondError(c, err)
		return
	}

	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := rc.reviewService.Create(c.Request.Context(), p, adID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, dto.NewReviewResponse(review))
}

// UpdateReview changes a review's text
func (rc *ReviewController) UpdateReview(c *gin.Context) {
	p := middleware.Principal(c)
	adID, id := pathID(c, "id"), pathID(c, "reviewId")
	if err := rc.reviewService.Authorize(c.Request.Context(), p, adID, id, authz.ActionUpdate); err != nil {
		respondError(c, err)
		return
	}

	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := rc.reviewService.Update(c.Request.Context(), p, adID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewReviewResponse(review))
}

// DeleteReview removes a review
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	err := rc.reviewService.Delete(c.Request.Context(), middleware.Principal(c), pathID(c, "id"), pathID(c, "reviewId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
