package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/oreumshop/commerce-api/internal/entity"
)

type ChatRoomCreateInput struct {
	Subject string `json:"subject" binding:"required,max=200"`
}

type ChatMessageCreateInput struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type ChatMessageFilter struct {
	IsRead *bool `form:"is_read"`
	Page   int   `form:"page"`
	Limit  int   `form:"limit"`
}

type ChatMessageResponse struct {
	ID         uuid.UUID `json:"id"`
	ChatRoomID uuid.UUID `json:"chat_room_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewChatMessageResponse(msg *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         msg.ID,
		ChatRoomID: msg.ChatRoomID,
		SenderID:   msg.SenderID,
		Sender:     msg.Sender.Nickname,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
		Timestamp:  msg.Timestamp,
	}
}

func NewChatMessageResponses(msgs []*entity.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewChatMessageResponse(m))
	}
	return out
}
