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

type WorkHandler struct {
	service service.WorkService
}

func NewWorkHandler(service service.WorkService) *WorkHandler {
	return &WorkHandler{service: service}
}

func actor(c *gin.Context) (service.Actor, error) {
	userID, err := response.GetUserID(c)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{ID: userID, IsStaff: response.IsStaff(c)}, nil
}

func (h *WorkHandler) Create(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.WorkCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	work, err := h.service.Create(c.Request.Context(), act, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "work created", work)
}

func (h *WorkHandler) List(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.WorkFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	works, total, page, limit, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, "works", works, total, page, limit)
}

func (h *WorkHandler) Get(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid work id"))
		return
	}

	work, err := h.service.Get(c.Request.Context(), act, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "work", work)
}

func (h *WorkHandler) Update(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid work id"))
		return
	}

	var input dto.WorkUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	work, err := h.service.Update(c.Request.Context(), act, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "work updated", work)
}

func (h *WorkHandler) Delete(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid work id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusNoContent, "", nil)
}
