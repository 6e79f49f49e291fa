package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// likeableLookup checks that the target of a like actually exists.
type likeableLookup func(ctx context.Context, id uuid.UUID) (bool, error)

type LikeService interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.LikeCreateInput) (*dto.LikeResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.LikeFilter) ([]dto.LikeResponse, int64, int, int, error)
	Destroy(ctx context.Context, userID uuid.UUID, likeID uuid.UUID) error
}

type likeService struct {
	repo        repository.LikeRepository
	redisClient *redis.Client
	rateLimit   time.Duration
	// likeables maps a content kind to its existence check. Adding a new
	// likeable model means registering it here, nothing else.
	likeables map[string]likeableLookup
}

func NewLikeService(
	repo repository.LikeRepository,
	orderRepo repository.OrderRepository,
	reviewRepo repository.ReviewRepository,
	redisClient *redis.Client,
	rateLimit time.Duration,
) LikeService {
	return &likeService{
		repo:        repo,
		redisClient: redisClient,
		rateLimit:   rateLimit,
		likeables: map[string]likeableLookup{
			entity.ContentTypeOrder:  orderRepo.Exists,
			entity.ContentTypeReview: reviewRepo.Exists,
		},
	}
}

func (s *likeService) Create(ctx context.Context, userID uuid.UUID, input dto.LikeCreateInput) (*dto.LikeResponse, error) {
	lookup, ok := s.likeables[input.ContentType]
	if !ok {
		return nil, apperror.BadRequest(fmt.Sprintf("unknown content type: %s", input.ContentType))
	}

	exists, err := lookup(ctx, input.ObjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound(fmt.Sprintf("%s not found", input.ContentType))
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "like", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, rateLimitError(ctx, s.redisClient, userID, "like")
	}

	like := &entity.Like{
		UserID:      userID,
		ContentType: input.ContentType,
		ObjectID:    input.ObjectID,
	}
	if err := s.repo.Create(ctx, like); err != nil {
		if errors.Is(err, apperror.ErrDuplicate) {
			return nil, apperror.BadRequest("You have already liked this item.")
		}
		return nil, err
	}

	resp := dto.NewLikeResponse(like)
	return &resp, nil
}

func (s *likeService) List(ctx context.Context, userID uuid.UUID, filter dto.LikeFilter) ([]dto.LikeResponse, int64, int, int, error) {
	page, limit := dto.NormalizePage(filter.Page, filter.Limit)

	q := repository.LikeQuery{
		UserID:      userID,
		ContentType: filter.ContentType,
		Ascending:   filter.Ordering == "created_at",
		Page:        page,
		Limit:       limit,
	}

	if filter.ObjectID != "" {
		objectID, err := uuid.Parse(filter.ObjectID)
		if err != nil {
			return nil, 0, 0, 0, apperror.BadRequest("object_id must be a valid UUID")
		}
		q.ObjectID = &objectID
	}

	var err error
	if q.CreatedAtGte, err = parseTimeBound(filter.CreatedAtGte); err != nil {
		return nil, 0, 0, 0, apperror.BadRequest("created_at__gte must be a date or RFC 3339 timestamp")
	}
	if q.CreatedAtLte, err = parseTimeBound(filter.CreatedAtLte); err != nil {
		return nil, 0, 0, 0, apperror.BadRequest("created_at__lte must be a date or RFC 3339 timestamp")
	}
	// A date-only upper bound means "through the end of that day".
	if q.CreatedAtLte != nil && len(filter.CreatedAtLte) == len(time.DateOnly) {
		end := q.CreatedAtLte.Add(24*time.Hour - time.Nanosecond)
		q.CreatedAtLte = &end
	}

	likes, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	results := make([]dto.LikeResponse, 0, len(likes))
	for _, like := range likes {
		results = append(results, dto.NewLikeResponse(like))
	}
	return results, total, page, limit, nil
}

func (s *likeService) Destroy(ctx context.Context, userID uuid.UUID, likeID uuid.UUID) error {
	like, err := s.repo.FindByID(ctx, likeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("like not found")
		}
		return err
	}

	// Ownership is the whole policy here: staff get no special power over
	// other people's likes.
	if like.UserID != userID {
		return apperror.Forbidden("only the owner can remove a like")
	}

	return s.repo.Delete(ctx, like)
}

func parseTimeBound(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("unparseable time: %q", value)
}
