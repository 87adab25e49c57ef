package repositories

import (
	"context"
	"fmt"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository handles database operations for reviews. Reviews are
// always addressed through their parent ad.
type ReviewRepository interface {
	FindByAdAndID(ctx context.Context, adID, id uint) (*models.Review, error)
	ListByAd(ctx context.Context, adID uint, page Page) ([]models.Review, int64, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByAdAndID retrieves a review that belongs to the given ad. A review
// that exists under another ad is reported as not found.
func (r *reviewRepository) FindByAdAndID(ctx context.Context, adID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("ad_id = ?", adID).
		First(&review, id).Error
	if err != nil {
		return nil, notFound(err, "review", id)
	}
	return &review, nil
}

// ListByAd retrieves an ad's reviews newest first
func (r *reviewRepository) ListByAd(ctx context.Context, adID uint, page Page) ([]models.Review, int64, error) {
	var reviews []models.Review
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.Review{}).Where("ad_id = ?", adID)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(db.Preload("Author").Order("created_at DESC, id DESC"), page).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, totalCount, nil
}

// Create inserts a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

// Update saves the review text
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).Model(review).Omit(clause.Associations).Select("Text").Updates(review)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review %d: %w", review.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a review
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
