package handlers

import (
	"net/http"

	"source-registry-service/internal/adapters/primary/http/web"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html.tmpl", gin.H{})
}

func (h *Handler) StyleSheet(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", web.StyleCSS)
}
