package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/service"
	"github.com/oreumshop/commerce-api/pkg/apperror"
	"github.com/oreumshop/commerce-api/pkg/response"
	"github.com/oreumshop/commerce-api/pkg/validator"
)

type LikeHandler struct {
	service service.LikeService
}

func NewLikeHandler(service service.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.LikeCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	like, err := h.service.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "like created", like)
}

func (h *LikeHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.LikeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	likes, total, page, limit, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, "likes", likes, total, page, limit)
}

func (h *LikeHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	likeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid like id"))
		return
	}

	if err := h.service.Destroy(c.Request.Context(), userID, likeID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusNoContent, "", nil)
}
