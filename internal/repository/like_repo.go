package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// LikeQuery is the parsed filter for listing a user's likes.
type LikeQuery struct {
	UserID       uuid.UUID
	ContentType  string
	ObjectID     *uuid.UUID
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	Ascending    bool
	Page         int
	Limit        int
}

type LikeRepository interface {
	// Create inserts the like and reports apperror.ErrDuplicate when the
	// (user, content_type, object_id) unique index rejects it. The race
	// between two identical requests is settled by the index, not by a
	// read-then-write check.
	Create(ctx context.Context, like *entity.Like) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Like, error)
	List(ctx context.Context, q LikeQuery) ([]*entity.Like, int64, error)
	Delete(ctx context.Context, like *entity.Like) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	err := r.db.WithContext(ctx).Create(like).Error
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

func (r *likeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Like, error) {
	var like entity.Like
	if err := r.db.WithContext(ctx).First(&like, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) List(ctx context.Context, q LikeQuery) ([]*entity.Like, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Like{}).
		Where("user_id = ?", q.UserID)

	if q.ContentType != "" {
		query = query.Where("content_type = ?", q.ContentType)
	}
	if q.ObjectID != nil {
		query = query.Where("object_id = ?", *q.ObjectID)
	}
	if q.CreatedAtGte != nil {
		query = query.Where("created_at >= ?", *q.CreatedAtGte)
	}
	if q.CreatedAtLte != nil {
		query = query.Where("created_at <= ?", *q.CreatedAtLte)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if q.Ascending {
		order = "created_at ASC"
	}

	var likes []*entity.Like
	err := query.
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&likes).Error
	return likes, total, err
}

func (r *likeRepository) Delete(ctx context.Context, like *entity.Like) error {
	return r.db.WithContext(ctx).Delete(like).Error
}
