package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	// List returns orders visible to the caller. A nil userID means no
	// ownership scoping (staff view).
	List(ctx context.Context, userID *uuid.UUID, filter dto.OrderFilter) ([]*entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, order *entity.Order) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).First(&order, "order_number = ?", orderNumber).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, userID *uuid.UUID, filter dto.OrderFilter) ([]*entity.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Ordering == "created_at" {
		order = "created_at ASC"
	}

	page, limit := dto.NormalizePage(filter.Page, filter.Limit)
	var orders []*entity.Order
	err := query.
		Order(order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Delete(order).Error
}

func (r *orderRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
