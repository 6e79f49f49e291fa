package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkStatus string

const (
	WorkStatusPending    WorkStatus = "PENDING"
	WorkStatusInProgress WorkStatus = "IN_PROGRESS"
	WorkStatusCompleted  WorkStatus = "COMPLETED"
	WorkStatusCancelled  WorkStatus = "CANCELLED"
)

func (s WorkStatus) Valid() bool {
	switch s {
	case WorkStatusPending, WorkStatusInProgress, WorkStatusCompleted, WorkStatusCancelled:
		return true
	}
	return false
}

type WorkType string

const (
	WorkTypePackaging  WorkType = "PACKAGING"
	WorkTypeShipping   WorkType = "SHIPPING"
	WorkTypeRefund     WorkType = "REFUND"
	WorkTypeExchange   WorkType = "EXCHANGE"
	WorkTypeInspection WorkType = "INSPECTION"
)

func (t WorkType) Valid() bool {
	switch t {
	case WorkTypePackaging, WorkTypeShipping, WorkTypeRefund, WorkTypeExchange, WorkTypeInspection:
		return true
	}
	return false
}

// Work is an internal fulfillment ticket tied to an order and an assignee.
// CompletedAt is derived: non-null exactly while Status is COMPLETED.
type Work struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      WorkStatus `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	WorkType    WorkType   `gorm:"size:20;not null;index" json:"work_type"`

	AssigneeID uuid.UUID `gorm:"type:uuid;not null;index" json:"assignee_id"`
	Assignee   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	OrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Order   Order     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	DueDate     *time.Time `gorm:"index" json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *Work) TableName() string {
	return "works"
}

func (w *Work) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID, err = uuid.NewV7()
	}
	return
}
