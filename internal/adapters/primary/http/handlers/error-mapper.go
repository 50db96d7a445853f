package handlers

import (
	"errors"
	"net/http"

	"source-registry-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// mapDomainError translates domain errors into the plain-text rejection
// pages the UI serves. Rejections are never cacheable, so the header set
// by the cache middleware is cleared again here.
func mapDomainError(c *gin.Context, err error) {
	c.Header("Cache-Control", "")

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrAliasNotFound),
		errors.Is(err, domain.ErrSbomNotFound):
		c.String(http.StatusNotFound, "404 - file not found\n")

	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		c.String(http.StatusInternalServerError, "server error\n")
	}
}
