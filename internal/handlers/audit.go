package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const auditLimit = 200

func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := h.store.ListAuditLogs(auditLimit)
	if err != nil {
		h.handleError(c, err, "Kunne ikke laste revisjonslogg")
		return
	}

	h.render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs": logs,
	})
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusBadRequest, "Ugyldig ID")
		return 0, false
	}
	return uint(id), true
}
