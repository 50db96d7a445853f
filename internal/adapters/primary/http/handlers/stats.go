package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Stats(c *gin.Context) {
	overview, err := h.statsSvc.Overview(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.HTML(http.StatusOK, "stats.html.tmpl", gin.H{
		"import_dates":    overview.ImportDates,
		"total_artifacts": overview.TotalArtifacts,
		"pending_tasks":   overview.PendingTasks,
	})
}
