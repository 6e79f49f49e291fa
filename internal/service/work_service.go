package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// Actor identifies the requesting user for authorization decisions.
type Actor struct {
	ID      uuid.UUID
	IsStaff bool
}

// canManageWork is the authorization policy for mutating a ticket: staff, or
// the ticket's assignee.
func canManageWork(actor Actor, work *entity.Work) bool {
	return actor.IsStaff || work.AssigneeID == actor.ID
}

type WorkService interface {
	Create(ctx context.Context, actor Actor, input dto.WorkCreateInput) (*dto.WorkResponse, error)
	List(ctx context.Context, actor Actor, filter dto.WorkFilter) ([]dto.WorkResponse, int64, int, int, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.WorkResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input dto.WorkUpdateInput) (*dto.WorkResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type workService struct {
	repo      repository.WorkRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	search    SearchService
}

func NewWorkService(
	repo repository.WorkRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	search SearchService,
) WorkService {
	return &workService{
		repo:      repo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		search:    search,
	}
}

func (s *workService) Create(ctx context.Context, actor Actor, input dto.WorkCreateInput) (*dto.WorkResponse, error) {
	if !actor.IsStaff {
		return nil, apperror.Forbidden("only staff can create work tickets")
	}

	order, err := s.orderRepo.FindByOrderNumber(ctx, input.OrderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}

	// Unassigned tickets land on the staff member who opened them.
	assigneeID := actor.ID
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.BadRequest("assignee does not exist")
			}
			return nil, err
		}
		assigneeID = *input.AssigneeID
	}

	status := entity.WorkStatusPending
	if input.Status != "" {
		status = entity.WorkStatus(input.Status)
	}
	if !status.Valid() {
		return nil, apperror.BadRequest("invalid work status")
	}
	workType := entity.WorkType(input.WorkType)
	if !workType.Valid() {
		return nil, apperror.BadRequest("invalid work type")
	}

	work := &entity.Work{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		WorkType:    workType,
		AssigneeID:  assigneeID,
		OrderID:     order.ID,
		DueDate:     input.DueDate,
	}
	if status == entity.WorkStatusCompleted {
		now := time.Now()
		work.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, work); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, work.ID)
	if err != nil {
		return nil, err
	}
	s.indexWork(created)

	resp := dto.NewWorkResponse(created)
	return &resp, nil
}

func (s *workService) List(ctx context.Context, actor Actor, filter dto.WorkFilter) ([]dto.WorkResponse, int64, int, int, error) {
	page, limit := dto.NormalizePage(filter.Page, filter.Limit)

	q := repository.WorkQuery{
		Status:      filter.Status,
		WorkType:    filter.WorkType,
		OrderNumber: filter.OrderNumber,
		Ordering:    filter.Ordering,
		Page:        page,
		Limit:       limit,
	}

	// Non-staff only ever see their own tickets.
	if !actor.IsStaff {
		scope := actor.ID
		q.AssigneeScope = &scope
	}

	if filter.Assignee != "" {
		assigneeID, err := uuid.Parse(filter.Assignee)
		if err != nil {
			return nil, 0, 0, 0, apperror.BadRequest("assignee must be a valid UUID")
		}
		q.Assignee = &assigneeID
	}
	if filter.DueDate != "" {
		due, err := time.Parse(time.DateOnly, filter.DueDate)
		if err != nil {
			return nil, 0, 0, 0, apperror.BadRequest("due_date must be a date (YYYY-MM-DD)")
		}
		q.DueDate = &due
	}
	if filter.Search != "" {
		if s.search != nil {
			if ids, ok := s.search.SearchWorks(filter.Search); ok {
				q.SearchIDs = ids
			} else {
				q.Search = filter.Search
			}
		} else {
			q.Search = filter.Search
		}
	}

	works, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return dto.NewWorkResponses(works), total, page, limit, nil
}

func (s *workService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.WorkResponse, error) {
	work, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("work not found")
		}
		return nil, err
	}

	// Retrieval is scoped the same way as the list: a ticket outside the
	// caller's scope is indistinguishable from a missing one.
	if !actor.IsStaff && work.AssigneeID != actor.ID {
		return nil, apperror.NotFound("work not found")
	}

	resp := dto.NewWorkResponse(work)
	return &resp, nil
}

func (s *workService) Update(ctx context.Context, actor Actor, id uuid.UUID, input dto.WorkUpdateInput) (*dto.WorkResponse, error) {
	work, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("work not found")
		}
		return nil, err
	}

	if !canManageWork(actor, work) {
		return nil, apperror.Forbidden("only staff or the assignee can modify this work")
	}

	if input.Title != nil {
		work.Title = *input.Title
	}
	if input.Description != nil {
		work.Description = *input.Description
	}
	if input.WorkType != nil {
		workType := entity.WorkType(*input.WorkType)
		if !workType.Valid() {
			return nil, apperror.BadRequest("invalid work type")
		}
		work.WorkType = workType
	}
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(ctx, *input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.BadRequest("assignee does not exist")
			}
			return nil, err
		}
		work.AssigneeID = *input.AssigneeID
	}
	if input.DueDate != nil {
		work.DueDate = input.DueDate
	}

	// CompletedAt tracks the status on every update that carries one:
	// entering COMPLETED stamps it, leaving COMPLETED clears it.
	if input.Status != nil {
		next := entity.WorkStatus(*input.Status)
		if !next.Valid() {
			return nil, apperror.BadRequest("invalid work status")
		}
		if next == entity.WorkStatusCompleted {
			now := time.Now()
			work.CompletedAt = &now
		} else {
			work.CompletedAt = nil
		}
		work.Status = next
	}

	if err := s.repo.Update(ctx, work); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, work.ID)
	if err != nil {
		return nil, err
	}
	s.indexWork(updated)

	resp := dto.NewWorkResponse(updated)
	return &resp, nil
}

func (s *workService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	work, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("work not found")
		}
		return err
	}

	if !canManageWork(actor, work) {
		return apperror.Forbidden("only staff or the assignee can delete this work")
	}

	if err := s.repo.Delete(ctx, work); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteWork(work.ID.String()); err != nil {
			log.Printf("Failed to remove work %s from search index: %v", work.ID, err)
		}
	}
	return nil
}

func (s *workService) indexWork(work *entity.Work) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexWork(work); err != nil {
		log.Printf("Failed to index work %s: %v", work.ID, err)
	}
}
