package handlers

import (
	"errors"
	"net/http"

	"hms-system/internal/database"
	"hms-system/internal/middleware"
	"hms-system/internal/risk"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, risk.ErrInvalidArgument):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// handleError logs err with its goerr values and writes msg with the matching
// status code.
func (h *Handler) handleError(c *gin.Context, err error, msg string) {
	status := statusOf(err)

	attrs := []any{
		"request_id", middleware.RequestIDFrom(c),
		"status", status,
		"error", err.Error(),
	}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs, "values", ge.Values())
	}

	if status >= http.StatusInternalServerError {
		h.log.Error(msg, attrs...)
	} else {
		h.log.Warn(msg, attrs...)
	}

	c.String(status, msg)
}
