package services

import (
	"context"
	"errors"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
)

type ArtifactService struct {
	artifacts ports.ArtifactRepository
	refs      ports.RefRepository
	sboms     ports.SbomRepository
}

func NewArtifactService(artifacts ports.ArtifactRepository, refs ports.RefRepository, sboms ports.SbomRepository) *ArtifactService {
	return &ArtifactService{artifacts: artifacts, refs: refs, sboms: sboms}
}

// Get resolves the checksum through the alias table and loads the artifact.
// The alias is returned alongside so callers can show what was followed.
func (s *ArtifactService) Get(ctx context.Context, chksum string) (*domain.Artifact, *domain.Alias, error) {
	alias, err := s.artifacts.GetAlias(ctx, chksum)
	if err != nil && !errors.Is(err, domain.ErrAliasNotFound) {
		return nil, nil, err
	}

	resolved := chksum
	if alias != nil {
		resolved = alias.To
	}

	artifact, err := s.artifacts.Get(ctx, resolved)
	if err != nil {
		return nil, nil, err
	}
	return artifact, alias, nil
}

func (s *ArtifactService) SbomRefsForArchive(ctx context.Context, chksum string) ([]domain.SbomRef, error) {
	return s.sboms.ListRefsForArchive(ctx, chksum)
}

// ArtifactView bundles everything the artifact page shows.
type ArtifactView struct {
	Artifact            *domain.Artifact
	Chksum              string
	Alias               *domain.Alias
	Refs                []domain.Ref
	SbomRefs            []domain.SbomRef
	Listing             string
	SuspectingAutotools bool
}

func (s *ArtifactService) View(ctx context.Context, chksum string) (*ArtifactView, error) {
	artifact, alias, err := s.Get(ctx, chksum)
	if err != nil {
		return nil, err
	}

	refs, err := s.refs.ListForArtifact(ctx, artifact.Chksum)
	if err != nil {
		return nil, err
	}
	orderRefs(refs)

	sbomRefs, err := s.sboms.ListRefsForArchive(ctx, artifact.Chksum)
	if err != nil {
		return nil, err
	}

	return &ArtifactView{
		Artifact:            artifact,
		Chksum:              chksum,
		Alias:               alias,
		Refs:                refs,
		SbomRefs:            sbomRefs,
		Listing:             archive.RenderListing(artifact.Files),
		SuspectingAutotools: detectAutotools(artifact.Files),
	}, nil
}

// DiffView bundles everything the diff page shows.
type DiffView struct {
	Diff    string
	From    string
	To      string
	Sorted  bool
	Trimmed bool
}

// Diff renders both file listings and diffs them. Sorting makes listings
// of archives with different member order comparable; trimming additionally
// drops the leading name-version/ directory so releases line up.
func (s *ArtifactService) Diff(ctx context.Context, from, to string, sorted, trimmed bool) (*DiffView, error) {
	a, _, err := s.Get(ctx, from)
	if err != nil {
		return nil, err
	}
	b, _, err := s.Get(ctx, to)
	if err != nil {
		return nil, err
	}

	if sorted {
		if trimmed {
			archive.TrimLeadingComponent(a.Files)
			archive.TrimLeadingComponent(b.Files)
		}
		archive.SortEntries(a.Files)
		archive.SortEntries(b.Files)
	}

	listingA := archive.RenderListing(a.Files)
	listingB := archive.RenderListing(b.Files)

	return &DiffView{
		// labels carry the checksums as requested, aliases unresolved
		Diff:    udiff.Unified(from, to, listingA, listingB),
		From:    from,
		To:      to,
		Sorted:  sorted,
		Trimmed: trimmed,
	}, nil
}

// detectAutotools flags archives that ship a configure script next to its
// configure.ac source, the usual sign of a generated autotools build.
func detectAutotools(files []domain.FileEntry) bool {
	configure := make(map[string]struct{})
	configureAc := make(map[string]struct{})

	for _, file := range files {
		if folder, ok := strings.CutSuffix(file.Path, "/configure"); ok {
			if _, found := configureAc[folder]; found {
				return true
			}
			configure[folder] = struct{}{}
		}
		if folder, ok := strings.CutSuffix(file.Path, "/configure.ac"); ok {
			if _, found := configure[folder]; found {
				return true
			}
			configureAc[folder] = struct{}{}
		}
	}
	return false
}
