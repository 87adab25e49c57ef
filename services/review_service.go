package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/config"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/repositories"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReviewList is a page of reviews
type ReviewList = dto.PageResponse[dto.ReviewResponse]

// ReviewService handles business logic for reviews. Every operation is
// scoped to a parent ad.
type ReviewService struct {
	reviews repositories.ReviewRepository
	ads     repositories.AdRepository
	engine  *authz.Engine
}

// NewReviewService creates a new review service instance
func NewReviewService(reviews repositories.ReviewRepository, ads repositories.AdRepository, engine *authz.Engine) *ReviewService {
	return &ReviewService{reviews: reviews, ads: ads, engine: engine}
}

// List returns the reviews of an ad newest first
func (s *ReviewService) List(ctx context.Context, p *authz.Principal, adID uint, page int) (*ReviewList, error) {
	if err := s.gateAndFindAd(ctx, p, adID, authz.ActionList); err != nil {
		return nil, err
	}

	page = pageNumber(page)
	reviews, total, err := s.reviews.ListByAd(ctx, adID, repositories.Page{Number: page, Size: config.DefaultPageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	resp := dto.NewPageResponse(reviews, total, page, config.DefaultPageSize, dto.NewReviewResponse)
	return &resp, nil
}

// Get returns a review of the given ad
func (s *ReviewService) Get(ctx context.Context, p *authz.Principal, adID, id uint) (*models.Review, error) {
	if err := s.gateAndFindAd(ctx, p, adID, authz.ActionRetrieve); err != nil {
		return nil, err
	}
	return s.reviews.FindByAdAndID(ctx, adID, id)
}

// Create leaves a review on an ad. Any authenticated user may review any ad.
func (s *ReviewService) Create(ctx context.Context, p *authz.Principal, adID uint, req dto.ReviewRequest) (*models.Review, error) {
	if err := s.gateAndFindAd(ctx, p, adID, authz.ActionCreate); err != nil {
		return nil, err
	}

	if err := validateReviewText(&req, true); err != nil {
		return nil, err
	}

	review := models.Review{
		Text:     *req.Text,
		AuthorID: p.ID,
		AdID:     adID,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return s.reviews.FindByAdAndID(ctx, adID, review.ID)
}

// Update changes the text of a review. Only its writer or an admin may update.
func (s *ReviewService) Update(ctx context.Context, p *authz.Principal, adID, id uint, req dto.ReviewRequest) (*models.Review, error) {
	review, err := s.loadForChange(ctx, p, adID, id, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if err := validateReviewText(&req, false); err != nil {
		return nil, err
	}
	if req.Text == nil {
		return review, nil
	}

	review.Text = *req.Text
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// Delete removes a review. Only its writer or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, p *authz.Principal, adID, id uint) error {
	if _, err := s.loadForChange(ctx, p, adID, id, authz.ActionDelete); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

// Authorize checks that p may perform action on review id of ad adID
// without touching anything. Handlers call it before reading the request
// body. id is ignored for ActionCreate.
func (s *ReviewService) Authorize(ctx context.Context, p *authz.Principal, adID, id uint, action authz.Action) error {
	if action == authz.ActionCreate {
		return s.gateAndFindAd(ctx, p, adID, action)
	}
	_, err := s.loadForChange(ctx, p, adID, id, action)
	return err
}

// gateAndFindAd rejects anonymous callers before checking the parent ad
func (s *ReviewService) gateAndFindAd(ctx context.Context, p *authz.Principal, adID uint, action authz.Action) error {
	if err := s.engine.Gate(p, authz.KindReview, action).Err(); err != nil {
		return err
	}
	exists, err := s.ads.Exists(ctx, adID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("ad %d: %w", adID, domain.ErrNotFound)
	}
	return nil
}

func (s *ReviewService) loadForChange(ctx context.Context, p *authz.Principal, adID, id uint, action authz.Action) (*models.Review, error) {
	if err := s.gateAndFindAd(ctx, p, adID, action); err != nil {
		return nil, err
	}
	review, err := s.reviews.FindByAdAndID(ctx, adID, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(p, authz.KindReview, action, authz.OwnerOf(review)); err != nil {
		return nil, err
	}
	return review, nil
}

func validateReviewText(req *dto.ReviewRequest, required bool) error {
	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		req.Text = &text
	}
	rules := []validation.Rule{notBlank}
	if required {
		rules = append([]validation.Rule{validation.NotNil}, rules...)
	}
	return domain.FromValidation(validation.ValidateStruct(req, validation.Field(&req.Text, rules...)))
}
