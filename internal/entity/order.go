package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string      `gorm:"size:40;uniqueIndex;not null" json:"order_number"`
	Status      OrderStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	TotalAmount string      `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	ShippingName    string `gorm:"size:100;not null" json:"shipping_name"`
	ShippingPhone   string `gorm:"size:30;not null" json:"shipping_phone"`
	ShippingAddress string `gorm:"size:255;not null" json:"shipping_address"`

	PaymentMethod string `gorm:"size:30;not null" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;not null;default:'UNPAID'" json:"payment_status"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID, err = uuid.NewV7()
	}
	return
}
