package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")

	refs, err := h.refSvc.Search(c.Request.Context(), query)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.HTML(http.StatusOK, "search.html.tmpl", gin.H{
		"search": query,
		"refs":   refs,
	})
}
