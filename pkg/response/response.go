package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// Envelope is the uniform success body: {"data": ..., "message": ...}.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ListPayload is the shape placed under "data" for paginated list endpoints.
type ListPayload struct {
	Results any   `json:"results"`
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		userID, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, apperror.ErrUnauthorized
		}
		return userID, nil
	default:
		return uuid.Nil, apperror.ErrUnauthorized
	}
}

// IsStaff reports whether the auth middleware flagged the requester as staff.
func IsStaff(c *gin.Context) bool {
	return c.GetBool("is_staff")
}

// Success writes the uniform envelope with the given status code.
func Success(c *gin.Context, status int, message string, data any) {
	if status == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(status, Envelope{Data: data, Message: message})
}

// List writes a paginated result set inside the uniform envelope.
func List(c *gin.Context, message string, results any, count int64, page, limit int) {
	c.JSON(http.StatusOK, Envelope{
		Data: ListPayload{
			Results: results,
			Count:   count,
			Page:    page,
			Limit:   limit,
		},
		Message: message,
	})
}

// Error standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
