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

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

var statusByCode = map[string]int{
	CodeInvalidDateFormat:  http.StatusBadRequest,
	CodeInvalidRange:       http.StatusBadRequest,
	CodeInvalidRequest:     http.StatusBadRequest,
	CodeSlotNotOffered:     http.StatusUnprocessableEntity,
	CodeSlotConflict:       http.StatusConflict,
	CodeAlreadyExists:      http.StatusConflict,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeTooManyRequests:    http.StatusTooManyRequests,
}

// Status maps an error returned by a use case onto its HTTP status and
// stable error code.
func Status(err error) (int, string) {
	var be BusinessError
	if errors.As(err, &be) {
		if status, ok := statusByCode[be.Code]; ok {
			return status, be.Code
		}
		return http.StatusBadRequest, be.Code
	}
	if IsUnavailable(err) {
		return http.StatusServiceUnavailable, CodeStoreUnavailable
	}
	return http.StatusInternalServerError, "internal_error"
}

// FromError writes the JSON envelope for err. Infrastructure details are
// not echoed back to the client.
func FromError(c *gin.Context, err error) {
	status, code := Status(err)

	var be BusinessError
	switch {
	case errors.As(err, &be):
		message := be.Message
		if message == "" {
			message = be.Code
		}
		Write(c, status, code, message)
	case status == http.StatusServiceUnavailable:
		Write(c, status, code, "The service is temporarily unavailable, try again.")
	default:
		Write(c, status, code, "Unexpected error.")
	}
}
