package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/entity"
)

// WorkQuery is the parsed filter for listing work tickets. A nil AssigneeScope
// means no visibility scoping (staff view); otherwise only tickets assigned to
// that user are returned.
type WorkQuery struct {
	AssigneeScope *uuid.UUID

	Status      string
	WorkType    string
	Assignee    *uuid.UUID
	OrderNumber string
	DueDate     *time.Time
	// SearchIDs restricts results to the given ids (hits from the search
	// index). Search is the SQL fallback term when no index is available.
	SearchIDs []uuid.UUID
	Search    string

	Ordering string
	Page     int
	Limit    int
}

type WorkRepository interface {
	Create(ctx context.Context, work *entity.Work) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Work, error)
	List(ctx context.Context, q WorkQuery) ([]*entity.Work, int64, error)
	Update(ctx context.Context, work *entity.Work) error
	Delete(ctx context.Context, work *entity.Work) error
}

type workRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(ctx context.Context, work *entity.Work) error {
	return r.db.WithContext(ctx).Create(work).Error
}

func (r *workRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Work, error) {
	var work entity.Work
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Order").
		First(&work, "works.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

var workOrderings = map[string]string{
	"created_at":  "works.created_at ASC",
	"-created_at": "works.created_at DESC",
	"due_date":    "works.due_date ASC",
	"-due_date":   "works.due_date DESC",
	"status":      "works.status ASC",
	"-status":     "works.status DESC",
}

func (r *workRepository) List(ctx context.Context, q WorkQuery) ([]*entity.Work, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Work{}).
		Joins("JOIN orders ON orders.id = works.order_id")

	if q.AssigneeScope != nil {
		query = query.Where("works.assignee_id = ?", *q.AssigneeScope)
	}
	if q.Status != "" {
		query = query.Where("works.status = ?", q.Status)
	}
	if q.WorkType != "" {
		query = query.Where("works.work_type = ?", q.WorkType)
	}
	if q.Assignee != nil {
		query = query.Where("works.assignee_id = ?", *q.Assignee)
	}
	if q.OrderNumber != "" {
		query = query.Where("orders.order_number = ?", q.OrderNumber)
	}
	if q.DueDate != nil {
		dayStart := q.DueDate.Truncate(24 * time.Hour)
		query = query.Where("works.due_date >= ? AND works.due_date < ?", dayStart, dayStart.Add(24*time.Hour))
	}
	if q.SearchIDs != nil {
		query = query.Where("works.id IN ?", q.SearchIDs)
	} else if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(works.title) LIKE ? OR LOWER(works.description) LIKE ? OR LOWER(orders.order_number) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := workOrderings[q.Ordering]
	if !ok {
		order = "works.created_at DESC"
	}

	var works []*entity.Work
	err := query.
		Preload("Assignee").
		Preload("Order").
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&works).Error
	return works, total, err
}

func (r *workRepository) Update(ctx context.Context, work *entity.Work) error {
	return r.db.WithContext(ctx).Save(work).Error
}

func (r *workRepository) Delete(ctx context.Context, work *entity.Work) error {
	return r.db.WithContext(ctx).Delete(work).Error
}
