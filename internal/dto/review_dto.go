package dto

import (
	"io"

	"github.com/google/uuid"
)

type ReviewCreateInput struct {
	OrderID uuid.UUID `json:"order_id" form:"order_id" binding:"required"`
	Rating  int       `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Content string    `json:"content" form:"content" binding:"required,max=2000"`
}

type ReviewUpdateInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Content *string `json:"content" binding:"omitempty,max=2000"`
}

type ReviewFilter struct {
	OrderID  string `form:"order_id"`
	UserID   string `form:"user_id"`
	Ordering string `form:"ordering"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ReviewImage is an optional photo attached on creation.
type ReviewImage struct {
	Reader   io.Reader
	FileName string
}
