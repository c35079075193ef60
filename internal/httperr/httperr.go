package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Kind    string `json:"kind"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, kind Kind, code, message string) {
	c.JSON(status, HTTPError{
		Kind:    string(kind),
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, KindValidation, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, KindNotFound, code, message)
}

func Conflict(c *gin.Context, kind Kind, code, message string) {
	Write(c, http.StatusConflict, kind, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, KindForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, KindInternal, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, KindForbidden, code, message)
}

// FromBusiness mapeia um BusinessError para a resposta HTTP correta.
func FromBusiness(c *gin.Context, err error) bool {
	be, ok := AsBusiness(err)
	if !ok {
		return false
	}

	switch be.Kind {
	case KindValidation:
		Write(c, http.StatusBadRequest, be.Kind, be.Code, be.Message)
	case KindNotFound:
		Write(c, http.StatusNotFound, be.Kind, be.Code, be.Message)
	case KindSlotUnavailable, KindInvalidTransition:
		Write(c, http.StatusConflict, be.Kind, be.Code, be.Message)
	case KindForbidden:
		Write(c, http.StatusForbidden, be.Kind, be.Code, be.Message)
	default:
		Write(c, http.StatusBadRequest, be.Kind, be.Code, be.Message)
	}

	return true
}
