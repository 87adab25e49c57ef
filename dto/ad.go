package dto

import (
	"time"

	"github.com/adsboard-api/models"
)

// CreateAdRequest represents the body of an ad creation. There is no
// author field; the author is always the caller.
type CreateAdRequest struct {
	Title       string  `json:"title"`
	Price       *int64  `json:"price"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// UpdateAdRequest represents a partial ad update; nil fields are left as is
type UpdateAdRequest struct {
	Title       *string `json:"title"`
	Price       *int64  `json:"price"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// AdResponse is the short form used in listings
type AdResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdDetailResponse adds the author's name. Contact details stay on the
// user profile.
type AdDetailResponse struct {
	AdResponse
	AuthorID        uint   `json:"authorId"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
}

// NewAdResponse maps an ad to its listing form
func NewAdResponse(ad *models.Ad) AdResponse {
	return AdResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Price:       ad.Price,
		Description: ad.Description,
		Image:       ad.Image,
		CreatedAt:   ad.CreatedAt,
	}
}

// NewAdDetailResponse maps an ad with a loaded Author to its detail form
func NewAdDetailResponse(ad *models.Ad) AdDetailResponse {
	return AdDetailResponse{
		AdResponse:      NewAdResponse(ad),
		AuthorID:        ad.AuthorID,
		AuthorFirstName: ad.Author.FirstName,
		AuthorLastName:  ad.Author.LastName,
	}
}
