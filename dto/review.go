package dto

import (
	"time"

	"github.com/adsboard-api/models"
)

// ReviewRequest represents the body of a review create or update
type ReviewRequest struct {
	Text *string `json:"text"`
}

// ReviewResponse represents a review with its writer's display fields
type ReviewResponse struct {
	ID              uint      `json:"id"`
	Text            string    `json:"text"`
	AuthorID        uint      `json:"authorId"`
	AdID            uint      `json:"adId"`
	CreatedAt       time.Time `json:"createdAt"`
	AuthorFirstName string    `json:"authorFirstName"`
	AuthorLastName  string    `json:"authorLastName"`
	AuthorImage     *string   `json:"authorImage"`
}

// NewReviewResponse maps a review with a loaded Author
func NewReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:              r.ID,
		Text:            r.Text,
		AuthorID:        r.AuthorID,
		AdID:            r.AdID,
		CreatedAt:       r.CreatedAt,
		AuthorFirstName: r.Author.FirstName,
		AuthorLastName:  r.Author.LastName,
		AuthorImage:     r.Author.Image,
	}
}
