package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"findash/internal/domain"
	"findash/internal/middleware"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// MapDomainError translates domain errors to HTTP status codes and messages.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrQueryRequired):
		return http.StatusBadRequest, "Query is required"
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return http.StatusBadRequest, "Unsupported export format; allowed: csv, xlsx"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, log *zap.Logger, err error) {
	status, msg := MapDomainError(err)
	if status >= 500 {
		logInternal(c, log, err)
	}
	RespondError(c, status, msg)
}

func logInternal(c *gin.Context, log *zap.Logger, err error) {
	log.Error("internal error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
}
