package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Diff(c *gin.Context) {
	h.renderDiff(c, false, false)
}

func (h *Handler) DiffSorted(c *gin.Context) {
	h.renderDiff(c, true, false)
}

func (h *Handler) DiffSortedTrimmed(c *gin.Context) {
	h.renderDiff(c, true, true)
}

func (h *Handler) renderDiff(c *gin.Context, sorted, trimmed bool) {
	view, err := h.artifactSvc.Diff(c.Request.Context(), c.Param("from"), c.Param("to"), sorted, trimmed)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.HTML(http.StatusOK, "diff.html.tmpl", gin.H{
		"diff":      view.Diff,
		"diff_from": view.From,
		"diff_to":   view.To,
		"sorted":    view.Sorted,
		"trimmed":   view.Trimmed,
	})
}
