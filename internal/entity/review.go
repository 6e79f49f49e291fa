package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer's rating of a delivered order. One review per
// (user, order), enforced by the composite unique index.
type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_unique,priority:1" json:"user_id"`
	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_unique,priority:2" json:"order_id"`
	Order    Order     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rating   int       `gorm:"not null" json:"rating"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	ImageURL *string   `gorm:"type:text" json:"image_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
