package handlers

import (
	"net/http"
	"strings"

	"source-registry-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Artifact(c *gin.Context) {
	chksum := c.Param("chksum")

	// A .json suffix turns the page into a machine-readable file listing.
	if plain, ok := strings.CutSuffix(chksum, ".json"); ok {
		h.artifactJSON(c, plain)
		return
	}

	view, err := h.artifactSvc.View(c.Request.Context(), chksum)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.HTML(http.StatusOK, "artifact.html.tmpl", gin.H{
		"artifact":             view.Artifact,
		"chksum":               view.Chksum,
		"alias":                view.Alias,
		"refs":                 view.Refs,
		"sbom_refs":            view.SbomRefs,
		"files":                view.Listing,
		"suspecting_autotools": view.SuspectingAutotools,
	})
}

func (h *Handler) artifactJSON(c *gin.Context, chksum string) {
	artifact, _, err := h.artifactSvc.Get(c.Request.Context(), chksum)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	sbomRefs, err := h.artifactSvc.SbomRefsForArchive(c.Request.Context(), artifact.Chksum)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArtifactFiles{
		Files:    artifact.Files,
		SbomRefs: sbomRefs,
	})
}
