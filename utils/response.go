package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body shape of every /generate reply.
type MessageResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessMessage sends a 200 with a message body
func SuccessMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// ErrorResponseWithCode sends an error response with custom status code
func ErrorResponseWithCode(c *gin.Context, statusCode int, message string, err error) {
	resp := MessageResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(statusCode, resp)
}

// BadRequestError sends a 400 error response
func BadRequestError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusBadRequest, message, nil)
}

// InternalServerError sends a 500 error response
func InternalServerError(c *gin.Context, message string, err error) {
	ErrorResponseWithCode(c, http.StatusInternalServerError, message, err)
}

// UnauthorizedError sends a 401 error response
func UnauthorizedError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusUnauthorized, message, nil)
}

// TooManyRequestsError sends a 429 error response
func TooManyRequestsError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusTooManyRequests, message, nil)
}
