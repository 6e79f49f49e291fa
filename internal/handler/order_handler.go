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

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.OrderCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	order, err := h.service.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "order created", order)
}

func (h *OrderHandler) List(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	orders, total, page, limit, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, "orders", orders, total, page, limit)
}

func (h *OrderHandler) Get(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid order id"))
		return
	}

	order, err := h.service.Get(c.Request.Context(), act, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "order", order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid order id"))
		return
	}

	var input dto.OrderUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	order, err := h.service.Update(c.Request.Context(), act, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "order updated", order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid order id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusNoContent, "", nil)
}
