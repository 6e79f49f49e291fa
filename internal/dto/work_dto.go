package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/oreumshop/commerce-api/internal/entity"
)

type WorkCreateInput struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	WorkType    string     `json:"work_type" binding:"required,oneof=PACKAGING SHIPPING REFUND EXCHANGE INSPECTION"`
	Status      string     `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	OrderNumber string     `json:"order_number" binding:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// WorkUpdateInput uses pointers throughout so PATCH can distinguish "field
// absent" from "field set to zero value".
type WorkUpdateInput struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	WorkType    *string    `json:"work_type" binding:"omitempty,oneof=PACKAGING SHIPPING REFUND EXCHANGE INSPECTION"`
	Status      *string    `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type WorkFilter struct {
	Status      string `form:"status"`
	WorkType    string `form:"work_type"`
	Assignee    string `form:"assignee"`
	OrderNumber string `form:"order__order_number"`
	DueDate     string `form:"due_date"`
	Search      string `form:"search"`
	Ordering    string `form:"ordering"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

type WorkResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	WorkType    string     `json:"work_type"`
	AssigneeID  uuid.UUID  `json:"assignee_id"`
	Assignee    string     `json:"assignee"`
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewWorkResponse(work *entity.Work) WorkResponse {
	return WorkResponse{
		ID:          work.ID,
		Title:       work.Title,
		Description: work.Description,
		Status:      string(work.Status),
		WorkType:    string(work.WorkType),
		AssigneeID:  work.AssigneeID,
		Assignee:    work.Assignee.Nickname,
		OrderID:     work.OrderID,
		OrderNumber: work.Order.OrderNumber,
		DueDate:     work.DueDate,
		CompletedAt: work.CompletedAt,
		CreatedAt:   work.CreatedAt,
		UpdatedAt:   work.UpdatedAt,
	}
}

func NewWorkResponses(works []*entity.Work) []WorkResponse {
	out := make([]WorkResponse, 0, len(works))
	for _, w := range works {
		out = append(out, NewWorkResponse(w))
	}
	return out
}
