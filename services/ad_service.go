package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/config"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/repositories"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AdList is a page of ads in listing form
type AdList = dto.PageResponse[dto.AdResponse]

// AdService handles business logic for ads
type AdService struct {
	ads    repositories.AdRepository
	engine *authz.Engine
}

// NewAdService creates a new ad service instance
func NewAdService(ads repositories.AdRepository, engine *authz.Engine) *AdService {
	return &AdService{ads: ads, engine: engine}
}

// List returns ads newest first, optionally filtered by a title substring
func (s *AdService) List(ctx context.Context, p *authz.Principal, title string, page int) (*AdList, error) {
	if err := s.engine.Gate(p, authz.KindAd, authz.ActionList).Err(); err != nil {
		return nil, err
	}
	return s.list(ctx, repositories.AdFilter{Title: title}, page)
}

// ListMine returns the caller's own ads newest first
func (s *AdService) ListMine(ctx context.Context, p *authz.Principal, page int) (*AdList, error) {
	if err := s.engine.Gate(p, authz.KindAd, authz.ActionMine).Err(); err != nil {
		return nil, err
	}
	return s.list(ctx, repositories.AdFilter{AuthorID: p.ID}, page)
}

func (s *AdService) list(ctx context.Context, filter repositories.AdFilter, page int) (*AdList, error) {
	page = pageNumber(page)
	ads, total, err := s.ads.List(ctx, filter, repositories.Page{Number: page, Size: config.AdsPageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}

	resp := dto.NewPageResponse(ads, total, page, config.AdsPageSize, dto.NewAdResponse)
	return &resp, nil
}

// Get returns an ad with its author
func (s *AdService) Get(ctx context.Context, p *authz.Principal, id uint) (*models.Ad, error) {
	if err := s.engine.Gate(p, authz.KindAd, authz.ActionRetrieve).Err(); err != nil {
		return nil, err
	}
	return s.ads.FindByID(ctx, id)
}

// Create posts a new ad authored by the caller
func (s *AdService) Create(ctx context.Context, p *authz.Principal, req dto.CreateAdRequest) (*models.Ad, error) {
	if err := s.engine.Authorize(p, authz.KindAd, authz.ActionCreate, authz.NoOwner); err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Price, validation.NotNil, validation.Min(int64(0))),
		validation.Field(&req.Description, descriptionRules...),
	)
	if err := domain.FromValidation(err); err != nil {
		return nil, err
	}

	ad := models.Ad{
		Title:       req.Title,
		Price:       *req.Price,
		Description: req.Description,
		AuthorID:    p.ID,
		Image:       req.Image,
	}
	if err := s.ads.Create(ctx, &ad); err != nil {
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}
	log.Printf("📢 Ad %d created by user %d", ad.ID, p.ID)

	// Reload to return the author's details
	return s.ads.FindByID(ctx, ad.ID)
}

// Update applies a partial update. Only the author or an admin may update.
func (s *AdService) Update(ctx context.Context, p *authz.Principal, id uint, req dto.UpdateAdRequest) (*models.Ad, error) {
	ad, err := s.loadForChange(ctx, p, id, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	req.Title = trimmed(req.Title)
	req.Description = trimmed(req.Description)
	err = validation.ValidateStruct(&req,
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Price, validation.Min(int64(0))),
		validation.Field(&req.Description, descriptionRules...),
	)
	if err := domain.FromValidation(err); err != nil {
		return nil, err
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.Price != nil {
		ad.Price = *req.Price
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.Image != nil {
		ad.Image = req.Image
	}

	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}
	return ad, nil
}

// Delete removes an ad and its reviews. Only the author or an admin may delete.
func (s *AdService) Delete(ctx context.Context, p *authz.Principal, id uint) error {
	if _, err := s.loadForChange(ctx, p, id, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.ads.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️ Ad %d deleted by user %d", id, p.ID)
	return nil
}

// Authorize checks that p may perform action on ad id without touching
// anything. Handlers call it before reading the request body. id is
// ignored for ActionCreate.
func (s *AdService) Authorize(ctx context.Context, p *authz.Principal, id uint, action authz.Action) error {
	if action == authz.ActionCreate {
		return s.engine.Authorize(p, authz.KindAd, action, authz.NoOwner)
	}
	_, err := s.loadForChange(ctx, p, id, action)
	return err
}

// loadForChange gates the caller, loads the ad and checks ownership, in
// that order: anonymous callers never learn whether the ad exists.
func (s *AdService) loadForChange(ctx context.Context, p *authz.Principal, id uint, action authz.Action) (*models.Ad, error) {
	if err := s.engine.Gate(p, authz.KindAd, action).Err(); err != nil {
		return nil, err
	}
	ad, err := s.ads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(p, authz.KindAd, action, authz.OwnerOf(ad)); err != nil {
		return nil, err
	}
	return ad, nil
}

var (
	titleRules       = []validation.Rule{notBlank, validation.RuneLength(0, config.MaxAdTitleLength)}
	descriptionRules = []validation.Rule{notBlank, validation.RuneLength(0, config.MaxAdDescriptionLength)}
)
