package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *AppError   `json:"error,omitempty"`
	// Note carries a flavor line alongside errors
	Note string `json:"note,omitempty"`
}

func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, err *AppError) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   err,
	})
}

// SendErrorWithNote sends an error response with a flavor note attached
func SendErrorWithNote(c *gin.Context, statusCode int, err *AppError, note string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   err,
		Note:    note,
	})
}

// SendValidationError sends a 400. note may be empty.
func SendValidationError(c *gin.Context, message, details, note string) {
	SendErrorWithNote(c, http.StatusBadRequest, NewAppError(ErrCodeValidation, message, details), note)
}

func SendNotFound(c *gin.Context, message, note string) {
	SendErrorWithNote(c, http.StatusNotFound, NewAppError(ErrCodeNotFound, message), note)
}

func SendInternalError(c *gin.Context, message, details, note string) {
	SendErrorWithNote(c, http.StatusInternalServerError, NewAppError(ErrCodeInternal, message, details), note)
}
