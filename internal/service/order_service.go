package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.OrderCreateInput) (*entity.Order, error)
	List(ctx context.Context, actor Actor, filter dto.OrderFilter) ([]*entity.Order, int64, int, int, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input dto.OrderUpdateInput) (*entity.Order, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// generateOrderNumber builds a human-readable, collision-resistant order
// number like ORD-20260823-9F2A61.
func generateOrderNumber() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		hex.EncodeToString(buf))
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, input dto.OrderCreateInput) (*entity.Order, error) {
	order := &entity.Order{
		OrderNumber:     generateOrderNumber(),
		Status:          entity.OrderStatusPending,
		TotalAmount:     input.TotalAmount,
		ShippingName:    input.ShippingName,
		ShippingPhone:   input.ShippingPhone,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   "UNPAID",
		UserID:          userID,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, actor Actor, filter dto.OrderFilter) ([]*entity.Order, int64, int, int, error) {
	page, limit := dto.NormalizePage(filter.Page, filter.Limit)

	var scope *uuid.UUID
	if !actor.IsStaff {
		id := actor.ID
		scope = &id
	}

	orders, total, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return orders, total, page, limit, nil
}

func (s *orderService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}

	if !actor.IsStaff && order.UserID != actor.ID {
		return nil, apperror.Forbidden("you do not have access to this order")
	}
	return order, nil
}

func (s *orderService) Update(ctx context.Context, actor Actor, id uuid.UUID, input dto.OrderUpdateInput) (*entity.Order, error) {
	if !actor.IsStaff {
		return nil, apperror.Forbidden("only staff can update orders")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}

	if input.Status != nil {
		next := entity.OrderStatus(*input.Status)
		if !next.Valid() {
			return nil, apperror.BadRequest("invalid order status")
		}
		order.Status = next
	}
	if input.PaymentStatus != nil {
		order.PaymentStatus = *input.PaymentStatus
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("order not found")
		}
		return err
	}

	if !actor.IsStaff {
		if order.UserID != actor.ID {
			return apperror.Forbidden("you do not have access to this order")
		}
		// Owners may only cancel an order the shop has not started on.
		if order.Status != entity.OrderStatusPending {
			return apperror.BadRequest("only pending orders can be deleted")
		}
	}

	return s.repo.Delete(ctx, order)
}
