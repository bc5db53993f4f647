package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	defaultFailureLimit = 50
	maxFailureLimit     = 200
)

// SyncFailures handles GET /admin/sync-failures
func (h *Handler) SyncFailures(c *gin.Context) {
	limit := intQuery(c.Query("limit"), defaultFailureLimit)
	if limit <= 0 || limit > maxFailureLimit {
		limit = defaultFailureLimit
	}

	failures, err := h.audits.RecentFailures(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list sync failures", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list sync failures"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(failures), "failures": failures})
}
