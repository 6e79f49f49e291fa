package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// chatChannel is the redis pub/sub channel carrying a room's messages.
func chatChannel(roomID uuid.UUID) string {
	return "chat:" + roomID.String()
}

type ChatService interface {
	CreateRoom(ctx context.Context, userID uuid.UUID, input dto.ChatRoomCreateInput) (*entity.ChatRoom, error)
	ListRooms(ctx context.Context, actor Actor, page, limit int) ([]*entity.ChatRoom, int64, int, int, error)
	ListMessages(ctx context.Context, actor Actor, roomID uuid.UUID, filter dto.ChatMessageFilter) ([]dto.ChatMessageResponse, int64, int, int, error)
	SendMessage(ctx context.Context, actor Actor, roomID uuid.UUID, input dto.ChatMessageCreateInput) (*dto.ChatMessageResponse, error)
	MarkRead(ctx context.Context, actor Actor, roomID uuid.UUID) error
	// Subscribe opens a pub/sub subscription on the room channel. Returns nil
	// when redis is not configured.
	Subscribe(ctx context.Context, actor Actor, roomID uuid.UUID) (*redis.PubSub, error)
}

type chatService struct {
	repo        repository.ChatRepository
	redisClient *redis.Client
	rateLimit   time.Duration
	sanitizer   *bluemonday.Policy
}

func NewChatService(repo repository.ChatRepository, redisClient *redis.Client, rateLimit time.Duration) ChatService {
	return &chatService{
		repo:        repo,
		redisClient: redisClient,
		rateLimit:   rateLimit,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *chatService) CreateRoom(ctx context.Context, userID uuid.UUID, input dto.ChatRoomCreateInput) (*entity.ChatRoom, error) {
	room := &entity.ChatRoom{
		Subject: s.sanitizer.Sanitize(input.Subject),
		UserID:  userID,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *chatService) ListRooms(ctx context.Context, actor Actor, page, limit int) ([]*entity.ChatRoom, int64, int, int, error) {
	page, limit = dto.NormalizePage(page, limit)

	var scope *uuid.UUID
	if !actor.IsStaff {
		id := actor.ID
		scope = &id
	}

	rooms, total, err := s.repo.ListRooms(ctx, scope, page, limit)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return rooms, total, page, limit, nil
}

// room loads the room and enforces the participant policy: the room's owner
// and staff are in, everyone else is out.
func (s *chatService) room(ctx context.Context, actor Actor, roomID uuid.UUID) (*entity.ChatRoom, error) {
	room, err := s.repo.FindRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("chat room not found")
		}
		return nil, err
	}
	if !actor.IsStaff && room.UserID != actor.ID {
		return nil, apperror.Forbidden("you are not a participant of this chat room")
	}
	return room, nil
}

func (s *chatService) ListMessages(ctx context.Context, actor Actor, roomID uuid.UUID, filter dto.ChatMessageFilter) ([]dto.ChatMessageResponse, int64, int, int, error) {
	if _, err := s.room(ctx, actor, roomID); err != nil {
		return nil, 0, 0, 0, err
	}

	page, limit := dto.NormalizePage(filter.Page, filter.Limit)
	msgs, total, err := s.repo.ListMessages(ctx, roomID, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return dto.NewChatMessageResponses(msgs), total, page, limit, nil
}

func (s *chatService) SendMessage(ctx context.Context, actor Actor, roomID uuid.UUID, input dto.ChatMessageCreateInput) (*dto.ChatMessageResponse, error) {
	if _, err := s.room(ctx, actor, roomID); err != nil {
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, actor.ID, "chat", s.rateLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, rateLimitError(ctx, s.redisClient, actor.ID, "chat")
	}

	content := s.sanitizer.Sanitize(input.Content)
	if content == "" {
		return nil, apperror.BadRequest("message content is empty after sanitization")
	}

	msg := &entity.ChatMessage{
		ChatRoomID: roomID,
		SenderID:   actor.ID,
		Content:    content,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	resp := dto.NewChatMessageResponse(msg)
	resp.Sender = "" // Sender association is not loaded on insert.
	s.publish(ctx, roomID, resp)
	return &resp, nil
}

func (s *chatService) publish(ctx context.Context, roomID uuid.UUID, msg dto.ChatMessageResponse) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.redisClient.Publish(ctx, chatChannel(roomID), payload).Err(); err != nil {
		log.Printf("Failed to publish chat message to %s: %v", chatChannel(roomID), err)
	}
}

func (s *chatService) MarkRead(ctx context.Context, actor Actor, roomID uuid.UUID) error {
	if _, err := s.room(ctx, actor, roomID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, roomID, actor.ID)
}

func (s *chatService) Subscribe(ctx context.Context, actor Actor, roomID uuid.UUID) (*redis.PubSub, error) {
	if _, err := s.room(ctx, actor, roomID); err != nil {
		return nil, err
	}
	if s.redisClient == nil {
		return nil, nil
	}
	return s.redisClient.Subscribe(ctx, chatChannel(roomID)), nil
}
