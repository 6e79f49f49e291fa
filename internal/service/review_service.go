package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
	"github.com/oreumshop/commerce-api/pkg/storage"
)

const reviewImageFolder = "reviews"

type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.ReviewCreateInput, image *dto.ReviewImage) (*entity.Review, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.ReviewFilter) ([]*entity.Review, int64, int, int, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input dto.ReviewUpdateInput) (*entity.Review, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	orderRepo repository.OrderRepository
	images    storage.ImageStorage
	sanitizer *bluemonday.Policy
}

// NewReviewService builds the review service. images may be nil when no image
// hosting is configured; uploads are then rejected.
func NewReviewService(repo repository.ReviewRepository, orderRepo repository.OrderRepository, images storage.ImageStorage) ReviewService {
	return &reviewService{
		repo:      repo,
		orderRepo: orderRepo,
		images:    images,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, input dto.ReviewCreateInput, image *dto.ReviewImage) (*entity.Review, error) {
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperror.Forbidden("you can only review your own orders")
	}

	review := &entity.Review{
		UserID:  userID,
		OrderID: input.OrderID,
		Rating:  input.Rating,
		Content: s.sanitizer.Sanitize(input.Content),
	}

	if image != nil {
		if s.images == nil {
			return nil, apperror.BadRequest("image uploads are not available")
		}
		url, err := s.images.UploadImage(ctx, image.Reader, reviewImageFolder, image.FileName)
		if err != nil {
			return nil, err
		}
		review.ImageURL = &url
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if review.ImageURL != nil {
			if delErr := s.images.DeleteImage(ctx, *review.ImageURL); delErr != nil {
				log.Printf("Failed to clean up orphaned review image: %v", delErr)
			}
		}
		if errors.Is(err, apperror.ErrDuplicate) {
			return nil, apperror.BadRequest("you have already reviewed this order")
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) List(ctx context.Context, userID uuid.UUID, filter dto.ReviewFilter) ([]*entity.Review, int64, int, int, error) {
	page, limit := dto.NormalizePage(filter.Page, filter.Limit)

	q := repository.ReviewQuery{
		Ascending: filter.Ordering == "created_at",
		Page:      page,
		Limit:     limit,
	}

	if filter.OrderID != "" {
		orderID, err := uuid.Parse(filter.OrderID)
		if err != nil {
			return nil, 0, 0, 0, apperror.BadRequest("order_id must be a valid UUID")
		}
		q.OrderID = &orderID
	}
	if filter.UserID != "" {
		reviewerID, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, 0, 0, apperror.BadRequest("user_id must be a valid UUID")
		}
		q.UserID = &reviewerID
	}
	// With no filter at all, show the requester their own reviews.
	if q.OrderID == nil && q.UserID == nil {
		q.UserID = &userID
	}

	reviews, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return reviews, total, page, limit, nil
}

func (s *reviewService) Get(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("review not found")
		}
		return nil, err
	}
	return review, nil
}

func canManageReview(actor Actor, review *entity.Review) bool {
	return actor.IsStaff || review.UserID == actor.ID
}

func (s *reviewService) Update(ctx context.Context, actor Actor, id uuid.UUID, input dto.ReviewUpdateInput) (*entity.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("review not found")
		}
		return nil, err
	}

	if !canManageReview(actor, review) {
		return nil, apperror.Forbidden("only the author or staff can modify this review")
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Content != nil {
		review.Content = s.sanitizer.Sanitize(*input.Content)
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("review not found")
		}
		return err
	}

	if !canManageReview(actor, review) {
		return apperror.Forbidden("only the author or staff can delete this review")
	}

	if err := s.repo.Delete(ctx, review); err != nil {
		return err
	}

	if review.ImageURL != nil && s.images != nil {
		if err := s.images.DeleteImage(ctx, *review.ImageURL); err != nil {
			log.Printf("Failed to delete review image: %v", err)
		}
	}
	return nil
}
