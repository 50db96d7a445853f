package handlers

import (
	"net/http"

	"source-registry-service/internal/adapters/primary/http/middleware"
	"source-registry-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	artifactSvc *services.ArtifactService
	sbomSvc     *services.SbomService
	refSvc      *services.RefService
	statsSvc    *services.StatsService
}

func New(
	artifactSvc *services.ArtifactService,
	sbomSvc *services.SbomService,
	refSvc *services.RefService,
	statsSvc *services.StatsService,
) *Handler {
	return &Handler{
		artifactSvc: artifactSvc,
		sbomSvc:     sbomSvc,
		refSvc:      refSvc,
		statsSvc:    statsSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Search and stats results churn quickly, so they carry a shorter
	// cache lifetime than the content-addressed pages.
	short := middleware.CacheControl(middleware.CacheShort)
	std := middleware.CacheControl(middleware.CacheDefault)

	r.GET("/", std, h.Index)
	r.GET("/artifact/:chksum", std, h.Artifact)
	r.GET("/sbom/:chksum", std, h.Sbom)
	r.GET("/search", short, h.Search)
	r.GET("/stats", short, h.Stats)
	r.GET("/diff/:from/:to", std, h.Diff)
	r.GET("/diff-sorted/:from/:to", std, h.DiffSorted)
	r.GET("/diff-sorted-trimmed/:from/:to", std, h.DiffSortedTrimmed)
	r.GET("/assets/style.css", std, h.StyleSheet)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 - file not found\n")
	})
}
