package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"supaboard/internal/apperrors"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindDuplicateName:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error renders a service error. The user-facing message goes in message,
// the kind in error and any field errors in data. Causes are never sent.
func Error(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	resp := APIResponse{
		Status:  "error",
		Message: apperrors.MessageOf(err),
		Error:   kind.String(),
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		resp.Data = gin.H{"fields": appErr.Fields}
	}
	c.JSON(StatusFor(kind), resp)
}

// Abort is Error followed by c.Abort, for middlewares.
func Abort(c *gin.Context, err error, data interface{}) {
	kind := apperrors.KindOf(err)
	c.AbortWithStatusJSON(StatusFor(kind), APIResponse{
		Status:  "error",
		Message: apperrors.MessageOf(err),
		Data:    data,
		Error:   kind.String(),
	})
}
