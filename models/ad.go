package models

import (
	"time"
)

// Ad represents a classified ad posted by a user
type Ad struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null"`
	Price       int64     `json:"price" gorm:"not null;check:price >= 0"`
	Description string    `json:"description" gorm:"type:varchar(1000);not null"`
	AuthorID    uint      `json:"authorId" gorm:"not null;index"`
	Image       *string   `json:"image" gorm:"default:null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for Ad model
func (Ad) TableName() string {
	return "ads"
}

// OwnerID returns the ID of the user who posted the ad
func (a *Ad) OwnerID() uint {
	return a.AuthorID
}
