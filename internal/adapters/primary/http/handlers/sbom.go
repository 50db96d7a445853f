package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Sbom(c *gin.Context) {
	chksum := c.Param("chksum")

	// A .txt suffix serves the stored lockfile verbatim.
	if plain, ok := strings.CutSuffix(chksum, ".txt"); ok {
		record, err := h.sbomSvc.Get(c.Request.Context(), plain)
		if err != nil {
			mapDomainError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(record.Data))
		return
	}

	record, err := h.sbomSvc.Get(c.Request.Context(), chksum)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	refs, err := h.sbomSvc.RefsForSbom(c.Request.Context(), record.Chksum)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.HTML(http.StatusOK, "sbom.html.tmpl", gin.H{
		"sbom":      record,
		"chksum":    chksum,
		"sbom_refs": refs,
		"packages":  h.sbomSvc.Packages(record),
	})
}
