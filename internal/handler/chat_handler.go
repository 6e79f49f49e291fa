package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/service"
	"github.com/oreumshop/commerce-api/pkg/apperror"
	"github.com/oreumshop/commerce-api/pkg/response"
	"github.com/oreumshop/commerce-api/pkg/validator"
)

type ChatHandler struct {
	service  service.ChatService
	upgrader websocket.Upgrader
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
	}
}

func (h *ChatHandler) CreateRoom(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.ChatRoomCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "chat room created", room)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var paging struct {
		Page  int `form:"page"`
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&paging); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	rooms, total, page, limit, err := h.service.ListRooms(c.Request.Context(), act, paging.Page, paging.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, "chat rooms", rooms, total, page, limit)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid chat room id"))
		return
	}

	var filter dto.ChatMessageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	msgs, total, page, limit, err := h.service.ListMessages(c.Request.Context(), act, roomID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, "chat messages", msgs, total, page, limit)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid chat room id"))
		return
	}

	var input dto.ChatMessageCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), act, roomID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "message sent", msg)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid chat room id"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), act, roomID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "messages marked as read", nil)
}

// Stream relays the room's redis channel over a websocket. The auth
// middleware accepts ?token= so browser clients can connect.
func (h *ChatHandler) Stream(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid chat room id"))
		return
	}

	pubsub, err := h.service.Subscribe(c.Request.Context(), act, roomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if pubsub == nil {
		response.Error(c, apperror.New(http.StatusServiceUnavailable, "live chat is not available", apperror.ErrInternal))
		return
	}
	defer pubsub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if _, err := pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("Failed to subscribe to redis channel: %v", err)
		return
	}
	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			// Payload is the JSON-encoded message, forward as-is.
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("Failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
