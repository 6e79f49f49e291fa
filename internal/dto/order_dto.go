package dto

type OrderCreateInput struct {
	TotalAmount     string `json:"total_amount" binding:"required"`
	ShippingName    string `json:"shipping_name" binding:"required,max=100"`
	ShippingPhone   string `json:"shipping_phone" binding:"required,max=30"`
	ShippingAddress string `json:"shipping_address" binding:"required,max=255"`
	PaymentMethod   string `json:"payment_method" binding:"required,max=30"`
}

type OrderUpdateInput struct {
	Status        *string `json:"status" binding:"omitempty,oneof=PENDING PAID PREPARING SHIPPED DELIVERED CANCELLED"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=UNPAID PAID REFUNDED"`
}

type OrderFilter struct {
	Status   string `form:"status"`
	Ordering string `form:"ordering"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}
