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

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create accepts either JSON or multipart/form-data; the multipart form may
// carry an "image" file.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.ReviewCreateInput
	var image *dto.ReviewImage

	if c.ContentType() == "multipart/form-data" {
		if err := c.ShouldBind(&input); err != nil {
			response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
			return
		}
		if fileHeader, err := c.FormFile("image"); err == nil {
			f, err := fileHeader.Open()
			if err != nil {
				response.Error(c, apperror.BadRequest("could not read uploaded image"))
				return
			}
			defer f.Close()
			image = &dto.ReviewImage{Reader: f, FileName: fileHeader.Filename}
		}
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
			return
		}
	}

	review, err := h.service.Create(c.Request.Context(), userID, input, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "review created", review)
}

func (h *ReviewHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	reviews, total, page, limit, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, "reviews", reviews, total, page, limit)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid review id"))
		return
	}

	review, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "review", review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid review id"))
		return
	}

	var input dto.ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	review, err := h.service.Update(c.Request.Context(), act, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "review updated", review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	act, err := actor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid review id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusNoContent, "", nil)
}
