package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdFilter narrows an ad listing. Zero values mean "no constraint".
type AdFilter struct {
	// Title matches ads whose title contains it, ignoring case
	Title string
	// AuthorID restricts the listing to one author's ads
	AuthorID uint
}

// AdRepository handles database operations for ads
type AdRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Ad, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter AdFilter, page Page) ([]models.Ad, int64, error)
	Create(ctx context.Context, ad *models.Ad) error
	Update(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id uint) error
}

type adRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a new ad repository instance
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

// FindByID retrieves an ad with its author
func (r *adRepository) FindByID(ctx context.Context, id uint) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).Preload("Author").First(&ad, id).Error; err != nil {
		return nil, notFound(err, "ad", id)
	}
	return &ad, nil
}

// Exists checks if an ad exists
func (r *adRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Ad{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List retrieves ads newest first with pagination and filtering
func (r *adRepository) List(ctx context.Context, filter AdFilter, page Page) ([]models.Ad, int64, error) {
	var ads []models.Ad
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.Ad{})

	if filter.AuthorID != 0 {
		db = db.Where("author_id = ?", filter.AuthorID)
	}

	if title := strings.TrimSpace(filter.Title); title != "" {
		db = db.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+strings.ToLower(escapeLike(title))+"%")
	}

	// Count total records with the same filter
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db.Order("created_at DESC, id DESC"), page).Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, totalCount, nil
}

// Create inserts a new ad
func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ad).Error
}

// Update saves the mutable fields of an ad. Author and creation time are
// never written.
func (r *adRepository) Update(ctx context.Context, ad *models.Ad) error {
	result := r.db.WithContext(ctx).Model(ad).Omit(clause.Associations).
		Select("Title", "Price", "Description", "Image").
		Updates(ad)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ad %d: %w", ad.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an ad and its reviews
func (r *adRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ad_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Ad{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("ad %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
