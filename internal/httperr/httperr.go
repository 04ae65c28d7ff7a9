package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a usecase error onto the HTTP surface. Anything that
// is not a BusinessError is reported as a generic backend failure.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "backend_unavailable", "the data layer did not respond; reload and retry")
		return
	}

	code := be.Code
	msg := be.Message

	switch code {
	case CodeNotFound:
		NotFound(c, code, msg)
	case CodeDuplicateEmail, CodeDuplicateUsername, CodeTimeConflict, CodeUpdateInProgress, CodeInvalidState:
		Conflict(c, code, msg)
	case CodeDeliveryFailed:
		Internal(c, code, msg)
	case CodeBlocked:
		Unauthorized(c, code, msg)
	default:
		BadRequest(c, code, msg)
	}
}
