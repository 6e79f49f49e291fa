package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// ReviewQuery is the parsed filter for listing reviews.
type ReviewQuery struct {
	OrderID   *uuid.UUID
	UserID    *uuid.UUID
	Ascending bool
	Page      int
	Limit     int
}

type ReviewRepository interface {
	// Create inserts the review and reports apperror.ErrDuplicate when the
	// (user, order) unique index rejects it.
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	List(ctx context.Context, q ReviewQuery) ([]*entity.Review, int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, review *entity.Review) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value") {
		return apperror.ErrDuplicate
	}
	return err
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, q ReviewQuery) ([]*entity.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Review{})

	if q.OrderID != nil {
		query = query.Where("order_id = ?", *q.OrderID)
	}
	if q.UserID != nil {
		query = query.Where("user_id = ?", *q.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if q.Ascending {
		order = "created_at ASC"
	}

	var reviews []*entity.Review
	err := query.
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Delete(review).Error
}

func (r *reviewRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
