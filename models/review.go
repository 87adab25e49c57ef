package models

import (
	"time"
)

// Review represents a review left on an ad. It is owned by its writer,
// not by the author of the ad.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	AuthorID  uint      `json:"authorId" gorm:"not null;index"`
	AdID      uint      `json:"adId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Ad     Ad   `json:"-" gorm:"foreignKey:AdID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for Review model
func (Review) TableName() string {
	return "reviews"
}

// OwnerID returns the ID of the user who wrote the review
func (r *Review) OwnerID() uint {
	return r.AuthorID
}
