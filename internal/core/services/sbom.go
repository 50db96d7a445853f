package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"source-registry-service/internal/archive"
	"source-registry-service/internal/core/domain"
	"source-registry-service/internal/core/ports/output"
	"source-registry-service/internal/sbom"
)

type SbomService struct {
	sboms ports.SbomRepository
}

func NewSbomService(sboms ports.SbomRepository) *SbomService {
	return &SbomService{sboms: sboms}
}

func (s *SbomService) Get(ctx context.Context, chksum string) (*domain.Sbom, error) {
	return s.sboms.Get(ctx, chksum)
}

func (s *SbomService) RefsForSbom(ctx context.Context, chksum string) ([]domain.SbomRef, error) {
	return s.sboms.ListRefsForSbom(ctx, chksum)
}

// Packages extracts the pinned dependency list. Lockfiles in the wild are
// not always parseable; those render as an empty list instead of an error.
func (s *SbomService) Packages(record *domain.Sbom) []sbom.Package {
	pkgs, err := sbom.Packages(record.Strain, record.Data)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"chksum": record.Chksum,
			"strain": record.Strain,
		}).Warn("Failed to parse package lock")
		return nil
	}
	return pkgs
}

// Register stores raw lockfile data under its own checksum.
func (s *SbomService) Register(ctx context.Context, strain, data string) (*domain.Sbom, error) {
	if !sbom.KnownStrain(strain) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSbomStrain, strain)
	}

	record := &domain.Sbom{
		Chksum: archive.SHA256Hex([]byte(data)),
		Strain: strain,
		Data:   data,
	}
	if err := s.sboms.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
