package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/oreumshop/commerce-api/internal/entity"
)

type LikeCreateInput struct {
	ContentType string    `json:"content_type" binding:"required,oneof=order review"`
	ObjectID    uuid.UUID `json:"object_id" binding:"required"`
}

// LikeFilter carries the list query parameters. The created_at bounds accept
// either a plain date (2024-01-31) or RFC 3339.
type LikeFilter struct {
	ContentType  string `form:"content_type"`
	ObjectID     string `form:"object_id"`
	CreatedAtGte string `form:"created_at__gte"`
	CreatedAtLte string `form:"created_at__lte"`
	Ordering     string `form:"ordering"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

type LikeResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ContentType     string    `json:"content_type"`
	ContentTypeName string    `json:"content_type_name"`
	ObjectID        uuid.UUID `json:"object_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewLikeResponse(like *entity.Like) LikeResponse {
	return LikeResponse{
		ID:              like.ID,
		UserID:          like.UserID,
		ContentType:     like.ContentType,
		ContentTypeName: like.ContentType,
		ObjectID:        like.ObjectID,
		CreatedAt:       like.CreatedAt,
	}
}
