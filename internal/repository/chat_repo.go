package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
)

type ChatRepository interface {
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error)
	// ListRooms scopes to the owner unless userID is nil (staff view).
	ListRooms(ctx context.Context, userID *uuid.UUID, page, limit int) ([]*entity.ChatRoom, int64, error)
	CreateMessage(ctx context.Context, msg *entity.ChatMessage) error
	ListMessages(ctx context.Context, roomID uuid.UUID, filter dto.ChatMessageFilter) ([]*entity.ChatMessage, int64, error)
	// MarkRead flags every message in the room not sent by readerID.
	MarkRead(ctx context.Context, roomID, readerID uuid.UUID) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *chatRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRepository) ListRooms(ctx context.Context, userID *uuid.UUID, page, limit int) ([]*entity.ChatRoom, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ChatRoom{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []*entity.ChatRoom
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rooms).Error
	return rooms, total, err
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *entity.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) ListMessages(ctx context.Context, roomID uuid.UUID, filter dto.ChatMessageFilter) ([]*entity.ChatMessage, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.ChatMessage{}).
		Where("chat_room_id = ?", roomID)

	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := dto.NormalizePage(filter.Page, filter.Limit)
	var msgs []*entity.ChatMessage
	err := query.
		Preload("Sender").
		Order("timestamp ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&msgs).Error
	return msgs, total, err
}

func (r *chatRepository) MarkRead(ctx context.Context, roomID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.ChatMessage{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
		Update("is_read", true).Error
}
