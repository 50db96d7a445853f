package dto

import "source-registry-service/internal/core/domain"

// ArtifactFiles is the document served for /artifact/:chksum.json.
type ArtifactFiles struct {
	Files    []domain.FileEntry `json:"files"`
	SbomRefs []domain.SbomRef   `json:"sbom_refs"`
}
