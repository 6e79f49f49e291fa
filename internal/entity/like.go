package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Likeable content kinds. A Like points at one of these through the
// {ContentType, ObjectID} pair rather than a real foreign key, so the set of
// likeable models can grow without schema changes.
const (
	ContentTypeOrder  = "order"
	ContentTypeReview = "review"
)

type Like struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_unique,priority:1" json:"user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ContentType string    `gorm:"size:20;not null;uniqueIndex:idx_likes_unique,priority:2;index:idx_likes_lookup,priority:1" json:"content_type"`
	ObjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_unique,priority:3;index:idx_likes_lookup,priority:2" json:"object_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
